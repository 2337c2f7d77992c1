package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
	"studio-site/internal/storage"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Content.ListProjects(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	partners, err := h.Content.ListPartners(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	rows := make([]Node, len(projects))
	for i, p := range projects {
		rows[i] = dragRow(string(domain.CollectionProjects), p.ID,
			Td(Text(p.Title), If(p.Featured, statusLabel("Featured", "accent"))),
			Td(Text(p.Category.Label())),
			Td(Code(Text(p.Slug))),
			Td(Class("actions"),
				orderControls(r, string(domain.CollectionProjects), p.ID, i, len(projects)),
				A(Href("/admin/projects/"+p.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/projects/"+p.ID+"/delete", "Delete", true),
			),
		)
	}

	partnerRows := make([]Node, len(partners))
	for i, p := range partners {
		state, tone, toggle := "Active", "success", "Deactivate"
		if !p.IsActive {
			state, tone, toggle = "Hidden", "", "Activate"
		}
		partnerRows[i] = dragRow(string(domain.CollectionPartners), p.ID,
			Td(Img(Class("thumb"), Src(p.LogoURL), Alt(p.Name)), Text(" "+p.Name)),
			Td(statusLabel(state, tone)),
			Td(Class("actions"),
				orderControls(r, string(domain.CollectionPartners), p.ID, i, len(partners)),
				postButton(r, "/admin/partners/"+p.ID+"/toggle", toggle, false),
				A(Href("/admin/partners/"+p.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/partners/"+p.ID+"/delete", "Delete", true),
			),
		)
	}

	body := []Node{pageToolbar("/admin/projects/new", "New Project")}
	if len(projects) == 0 {
		body = append(body, emptyStateCard("No projects yet.", "", ""))
	} else {
		body = append(body, orderedTable(r, string(domain.CollectionProjects), []string{"Title", "Category", "Slug", ""}, rows))
	}
	body = append(body, H2(Text("Partners")), pageToolbar("/admin/partners/new", "New Partner"))
	if len(partners) == 0 {
		body = append(body, emptyStateCard("No partners yet.", "", ""))
	} else {
		body = append(body, orderedTable(r, string(domain.CollectionPartners), []string{"Partner", "Status", ""}, partnerRows))
	}
	h.renderAdmin(w, r, adminPage{Title: "Projects", Active: "projects"}, body...)
}

func (h *Handler) ProjectsNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Project", Active: "projects"},
		formCard(r, "/admin/projects", "Create", projectFields(domain.Project{})...))
}

func (h *Handler) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseProject(r, domain.Project{})
	if err == nil {
		_, err = h.Content.CreateProject(r.Context(), p)
	}
	h.done(w, r, "/admin/projects", "Project created", err)
}

func (h *Handler) ProjectsEdit(w http.ResponseWriter, r *http.Request) {
	p, err := h.Content.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit Project", Active: "projects"},
		formCard(r, "/admin/projects/"+p.ID, "Save", projectFields(*p)...))
}

func (h *Handler) ProjectsUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseProject(r, domain.Project{ID: chi.URLParam(r, "id")})
	if err == nil {
		_, err = h.Content.UpdateProject(r.Context(), p)
	}
	h.done(w, r, "/admin/projects", "Project saved", err)
}

func (h *Handler) ProjectsDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeleteProject(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/projects", "Project deleted", err)
}

func projectFields(p domain.Project) []Node {
	cats := make([][2]string, len(domain.ProjectCategories))
	for i, c := range domain.ProjectCategories {
		cats[i] = [2]string{string(c), c.Label()}
	}
	return []Node{
		textField("Title", "title", p.Title, true),
		textField("Slug (generated from the title when blank)", "slug", p.Slug, false),
		selectField("Category", "category", string(p.Category), cats),
		textArea("Short description", "short_description", p.ShortDescription, 2, false),
		textArea("Full description", "full_description", p.FullDescription, 6, false),
		fileField("Cover image", "cover_file", "cover_image_url", p.CoverImageURL, "image/*"),
		fileField("Video", "video_file", "video_url", p.VideoURL, "video/*"),
		textField("Project link", "project_link", p.ProjectLink, false),
		textField("Tools used (comma separated)", "tools_used", csvValues(p.ToolsUsed), false),
		textArea("Gallery image URLs (one per line)", "gallery_images", linesValue(p.GalleryImages), 4, false),
		Div(Class("field"), Label(Text("Add gallery images")), Input(Type("file"), Name("gallery_files"), Multiple(), Accept("image/*"))),
		checkbox("Featured", "featured", p.Featured),
	}
}

func (h *Handler) parseProject(r *http.Request, p domain.Project) (domain.Project, error) {
	if err := parseForm(r); err != nil {
		return p, domain.ErrValidation("invalid form")
	}
	f := r.Form
	p.Title = formString(f, "title")
	p.Slug = formString(f, "slug")
	p.Category = domain.ProjectCategory(formString(f, "category"))
	p.ShortDescription = formString(f, "short_description")
	p.FullDescription = formString(f, "full_description")
	p.ProjectLink = formString(f, "project_link")
	p.ToolsUsed = formCSV(f, "tools_used")
	p.GalleryImages = formLines(f, "gallery_images")
	p.Featured = formBool(f, "featured")

	var err error
	if p.CoverImageURL, err = h.uploadField(r, "cover_file", storage.PrefixImages, formString(f, "cover_image_url")); err != nil {
		return p, err
	}
	if p.VideoURL, err = h.uploadField(r, "video_file", storage.PrefixShowreel, formString(f, "video_url")); err != nil {
		return p, err
	}
	gallery, err := h.uploadFiles(r, "gallery_files", storage.PrefixGallery)
	if err != nil {
		return p, err
	}
	p.GalleryImages = append(p.GalleryImages, gallery...)
	return p, nil
}

// === Partners ===

func (h *Handler) PartnersNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Partner", Active: "projects"},
		formCard(r, "/admin/partners", "Create", partnerFields(domain.Partner{IsActive: true})...))
}

func (h *Handler) PartnersCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePartner(r, domain.Partner{})
	if err == nil {
		_, err = h.Content.CreatePartner(r.Context(), p)
	}
	h.done(w, r, "/admin/projects", "Partner created", err)
}

func (h *Handler) PartnersEdit(w http.ResponseWriter, r *http.Request) {
	p, err := h.Content.GetPartner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit Partner", Active: "projects"},
		formCard(r, "/admin/partners/"+p.ID, "Save", partnerFields(*p)...))
}

func (h *Handler) PartnersUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePartner(r, domain.Partner{ID: chi.URLParam(r, "id")})
	if err == nil {
		_, err = h.Content.UpdatePartner(r.Context(), p)
	}
	h.done(w, r, "/admin/projects", "Partner saved", err)
}

func (h *Handler) PartnersToggle(w http.ResponseWriter, r *http.Request) {
	_, err := h.Content.TogglePartnerActive(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/projects", "", err)
}

func (h *Handler) PartnersDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeletePartner(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/projects", "Partner deleted", err)
}

func partnerFields(p domain.Partner) []Node {
	return []Node{
		textField("Name", "name", p.Name, true),
		fileField("Logo", "logo_file", "logo_url", p.LogoURL, "image/*"),
		textField("Website", "website_url", p.WebsiteURL, false),
		checkbox("Show on the site", "is_active", p.IsActive),
	}
}

func (h *Handler) parsePartner(r *http.Request, p domain.Partner) (domain.Partner, error) {
	if err := parseForm(r); err != nil {
		return p, domain.ErrValidation("invalid form")
	}
	p.Name = formString(r.Form, "name")
	p.WebsiteURL = formString(r.Form, "website_url")
	p.IsActive = formBool(r.Form, "is_active")
	var err error
	p.LogoURL, err = h.uploadField(r, "logo_file", storage.PrefixPartners, formString(r.Form, "logo_url"))
	return p, err
}
