package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
	"studio-site/internal/markdown"
	"studio-site/internal/storage"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) BlogList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Content.ListBlogPosts(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	rows := make([]Node, len(posts))
	for i, p := range posts {
		state, tone := "Draft", ""
		if p.Published {
			state, tone = "Published", "success"
		}
		rows[i] = Tr(
			Td(Text(p.Title)),
			Td(statusLabel(state, tone)),
			Td(Text(formatDate(p.PublishedAt))),
			Td(Class("actions"),
				If(p.Published, A(Href("/blog/"+p.Slug), Class("btn btn-sm"), Target("_blank"), Text("View"))),
				A(Href("/admin/blog/"+p.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/blog/"+p.ID+"/delete", "Delete", true),
			),
		)
	}
	body := []Node{pageToolbar("/admin/blog/new", "New Post")}
	if len(posts) == 0 {
		body = append(body, emptyStateCard("No posts yet.", "Write the first one", "/admin/blog/new"))
	} else {
		body = append(body, table([]string{"Title", "Status", "Published", ""}, rows))
	}
	h.renderAdmin(w, r, adminPage{Title: "Blog", Active: "blog"}, body...)
}

func (h *Handler) BlogNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Post", Active: "blog"},
		formCard(r, "/admin/blog", "Create", blogFields(domain.BlogPost{})...))
}

func (h *Handler) BlogCreate(w http.ResponseWriter, r *http.Request) {
	b, err := h.parseBlogPost(r, domain.BlogPost{})
	if err == nil {
		_, err = h.Content.CreateBlogPost(r.Context(), b)
	}
	h.done(w, r, "/admin/blog", "Post created", err)
}

// BlogEdit shows the post form next to a rendered preview of the stored body.
func (h *Handler) BlogEdit(w http.ResponseWriter, r *http.Request) {
	b, err := h.Content.GetBlogPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	preview, err := h.Markdown.Render(b.Content)
	if err != nil {
		h.Logger.Warn("blog preview failed", "post_id", b.ID, "error", err)
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit Post", Active: "blog"},
		formCard(r, "/admin/blog/"+b.ID, "Save", blogFields(*b)...),
		Div(Class(cardClass("preview")),
			H2(Text("Preview")),
			P(Class(mutedClass()), Text(itoa(markdown.ReadingMinutes(b.Content))+" min read")),
			Article(Class("prose"), Raw(preview)),
		),
	)
}

func (h *Handler) BlogUpdate(w http.ResponseWriter, r *http.Request) {
	b, err := h.parseBlogPost(r, domain.BlogPost{ID: chi.URLParam(r, "id")})
	if err == nil {
		_, err = h.Content.UpdateBlogPost(r.Context(), b)
	}
	h.done(w, r, "/admin/blog", "Post saved", err)
}

func (h *Handler) BlogDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeleteBlogPost(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/blog", "Post deleted", err)
}

func blogFields(b domain.BlogPost) []Node {
	return []Node{
		textField("Title", "title", b.Title, true),
		textField("Slug (generated from the title when blank)", "slug", b.Slug, false),
		textArea("Excerpt", "excerpt", b.Excerpt, 2, false),
		textField("Category", "category", b.Category, false),
		textField("Author", "author_name", b.AuthorName, false),
		fileField("Cover image", "cover_file", "cover_image_url", b.CoverImageURL, "image/*"),
		textArea("Content (markdown)", "content", b.Content, 18, true),
		checkbox("Published", "published", b.Published),
	}
}

func (h *Handler) parseBlogPost(r *http.Request, b domain.BlogPost) (domain.BlogPost, error) {
	if err := parseForm(r); err != nil {
		return b, domain.ErrValidation("invalid form")
	}
	f := r.Form
	b.Title = formString(f, "title")
	b.Slug = formString(f, "slug")
	b.Excerpt = formString(f, "excerpt")
	b.Category = formString(f, "category")
	b.AuthorName = formString(f, "author_name")
	b.Content = formString(f, "content")
	b.Published = formBool(f, "published")
	var err error
	b.CoverImageURL, err = h.uploadField(r, "cover_file", storage.PrefixBlog, formString(f, "cover_image_url"))
	return b, err
}
