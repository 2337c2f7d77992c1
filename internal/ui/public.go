package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
	"studio-site/internal/markdown"
	"studio-site/internal/service/site"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

// PublicHome renders the landing page. Every section is always present; the
// site service substitutes built-in content for sections it cannot load.
func (h *Handler) PublicHome(w http.ResponseWriter, r *http.Request) {
	home := h.Site.Home(r.Context())
	renderHTML(w, http.StatusOK, publicShell(r, "Immersive games and XR", h.takeFlash(w, r),
		heroSection(home.HeroStats),
		servicesSection(home.Services),
		portfolioSection(home.Projects),
		teamSection(home.Team),
		awardsSection(home.Awards),
		partnersSection(home.Partners),
		blogSection(home.Posts),
		contactSection(r, home.Contact),
	))
}

func (h *Handler) PublicProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Site.Project(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.renderPublicError(w, r, err)
		return
	}
	gallery := make([]Node, len(p.GalleryImages))
	for i, src := range p.GalleryImages {
		gallery[i] = Img(Src(src), Alt(p.Title+" screenshot "+strconv.Itoa(i+1)), Loading("lazy"))
	}
	tools := make([]Node, len(p.ToolsUsed))
	for i, t := range p.ToolsUsed {
		tools[i] = Span(Class("chip"), Text(t))
	}
	renderHTML(w, http.StatusOK, publicShell(r, p.Title, nil,
		Article(Class("detail"),
			A(Href("/#portfolio"), Class("back"), Text("<- All projects")),
			Span(Class("chip chip-on"), Text(p.Category.Label())),
			H1(Text(p.Title)),
			If(p.CoverImageURL != "", Img(Class("cover"), Src(p.CoverImageURL), Alt(p.Title))),
			P(Class("lead"), Text(p.ShortDescription)),
			If(p.FullDescription != "", Div(Class("prose"), paragraphs(p.FullDescription))),
			If(p.VideoURL != "", Video(Class("showreel"), Src(p.VideoURL), Controls())),
			If(len(tools) > 0, Div(Class("chips"), Group(tools))),
			If(len(gallery) > 0, Div(Class("gallery"), Group(gallery))),
			If(p.ProjectLink != "", A(Href(p.ProjectLink), Class(primaryButtonClass()), Target("_blank"), Rel("noopener"), Text("Visit project"))),
		),
	))
}

func (h *Handler) PublicPost(w http.ResponseWriter, r *http.Request) {
	b, err := h.Site.Post(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.renderPublicError(w, r, err)
		return
	}
	body, err := h.Markdown.Render(b.Content)
	if err != nil {
		h.renderPublicError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, publicShell(r, b.Title, nil,
		Article(Class("detail"),
			A(Href("/#blog"), Class("back"), Text("<- All posts")),
			Span(Class("chip chip-on"), Text(site.PostCategory(*b))),
			H1(Text(b.Title)),
			P(Class(mutedClass()), Text(b.AuthorName+" · "+formatDate(b.PublishedAt)+" · "+strconv.Itoa(markdown.ReadingMinutes(b.Content))+" min read")),
			If(b.CoverImageURL != "", Img(Class("cover"), Src(b.CoverImageURL), Alt(b.Title))),
			Div(Class("prose"), Raw(body)),
		),
	))
}

// PublicContact accepts the landing page contact form.
func (h *Handler) PublicContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.done(w, r, "/#contact", "", domain.ErrValidation("invalid form"))
		return
	}
	_, err := h.Contact.Submit(r.Context(), domain.ContactSubmission{
		Name:    r.Form.Get("name"),
		Email:   r.Form.Get("email"),
		Subject: r.Form.Get("subject"),
		Message: r.Form.Get("message"),
	})
	h.done(w, r, "/#contact", "Thanks! We will get back to you soon.", err)
}

func (h *Handler) renderPublicError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", domain.MsgNotFound))
		return
	}
	h.Logger.Error("render public page", "path", r.URL.Path, "error", err)
	renderHTML(w, http.StatusInternalServerError, errorPage("Unexpected Error", domain.MsgGeneric))
}

func publicShell(r *http.Request, title string, f *flash, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Tobiya Studio")),
			Meta(Name("description"), Content("Tobiya Studio builds games, VR and AR experiences.")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			datastarScript(),
		),
		Body(
			Class("public"),
			Header(Class("site-header"),
				A(Href("/"), Class("brand"), Strong(Text("Tobiya Studio"))),
				Nav(Class("site-nav"),
					A(Href("/#services"), Text("Services")),
					A(Href("/#portfolio"), Text("Portfolio")),
					A(Href("/#team"), Text("Team")),
					A(Href("/#blog"), Text("Blog")),
					A(Href("/#contact"), Text("Contact")),
				),
			),
			toast(f),
			Main(Group(body)),
			Footer(Class("site-footer"), P(Class(mutedClass()), Text("© Tobiya Studio"))),
		),
	)
}

func heroSection(stats []site.Stat) Node {
	items := make([]Node, len(stats))
	for i, s := range stats {
		items[i] = Div(Class("hero-stat"), Strong(Text(s.Value)), Span(Text(s.Label)))
	}
	return Section(ID("home"), Class("hero"),
		H1(Text("We build worlds you can step into")),
		P(Class("lead"), Text("Games, virtual reality and augmented reality from Addis Ababa.")),
		Div(Class("hero-actions"),
			A(Href("#portfolio"), Class(primaryButtonClass()), Text("See our work")),
			A(Href("#contact"), Class(secondaryButtonClass()), Text("Start a project")),
		),
		Div(Class("hero-stats"), Group(items)),
	)
}

func servicesSection(services []domain.Service) Node {
	cards := make([]Node, len(services))
	for i, s := range services {
		features := make([]Node, len(s.Features))
		for j, f := range s.Features {
			features[j] = Li(Text(f))
		}
		cards[i] = Div(Class(cardClass("service")),
			Span(Class("glyph"), Attr("aria-hidden", "true"), Text(s.Icon.Glyph())),
			H3(Text(s.Title)),
			P(Text(s.Description)),
			If(len(features) > 0, Ul(Group(features))),
		)
	}
	return Section(ID("services"), Class("section"), H2(Text("What we do")), Div(Class("grid"), Group(cards)))
}

// portfolioSection filters client side on a "category" signal.
func portfolioSection(projects []domain.Project) Node {
	filters := []Node{filterButton("category", "all", "All")}
	for _, c := range domain.ProjectCategories {
		filters = append(filters, filterButton("category", string(c), c.Label()))
	}
	cards := make([]Node, len(projects))
	for i, p := range projects {
		cards[i] = A(Href("/projects/"+p.Slug), Class(cardClass("project")),
			data.Show(filterExpr("category", string(p.Category))),
			If(p.CoverImageURL != "", Img(Src(p.CoverImageURL), Alt(p.Title), Loading("lazy"))),
			Span(Class("chip"), Text(p.Category.Label())),
			H3(Text(p.Title)),
			P(Text(p.ShortDescription)),
		)
	}
	return Section(ID("portfolio"), Class("section"),
		data.Signals(map[string]any{"category": "all"}),
		H2(Text("Portfolio")),
		Div(Class("filters"), Group(filters)),
		Div(Class("grid"), Group(cards)),
	)
}

func teamSection(team []domain.TeamMember) Node {
	cards := make([]Node, len(team))
	for i, m := range team {
		links := make([]Node, 0, len(m.SocialLinks)+2)
		for _, l := range m.SocialLinks {
			links = append(links, A(Href(l.Href()), Target("_blank"), Rel("noopener"), Text(l.Platform.Label())))
		}
		if len(m.SocialLinks) == 0 {
			if m.LinkedinURL != "" {
				links = append(links, A(Href(m.LinkedinURL), Target("_blank"), Rel("noopener"), Text("LinkedIn")))
			}
			if m.TwitterURL != "" {
				links = append(links, A(Href(m.TwitterURL), Target("_blank"), Rel("noopener"), Text("Twitter")))
			}
		}
		cards[i] = Div(Class(cardClass("member")),
			If(m.PhotoURL != "", Img(Src(m.PhotoURL), Alt(m.Name), Loading("lazy"))),
			H3(Text(m.Name)),
			P(Class(mutedClass()), Text(m.Role)),
			If(m.Bio != "", P(Text(m.Bio))),
			If(len(links) > 0, Div(Class("social"), Group(links))),
		)
	}
	return Section(ID("team"), Class("section"), H2(Text("Our team")), Div(Class("grid"), Group(cards)))
}

func awardsSection(awards []domain.Award) Node {
	if len(awards) == 0 {
		return nil
	}
	items := make([]Node, len(awards))
	for i, a := range awards {
		items[i] = Div(Class(cardClass("award")),
			If(a.Year != nil, Span(Class("chip"), Text(strconv.Itoa(derefInt(a.Year))))),
			H3(Text(a.Title)),
			If(a.Description != "", P(Text(a.Description))),
		)
	}
	return Section(ID("awards"), Class("section"), H2(Text("Recognition")), Div(Class("grid"), Group(items)))
}

func partnersSection(partners []domain.Partner) Node {
	if len(partners) == 0 {
		return nil
	}
	logos := make([]Node, len(partners))
	for i, p := range partners {
		img := Img(Src(p.LogoURL), Alt(p.Name), Loading("lazy"))
		if p.WebsiteURL != "" {
			logos[i] = A(Href(p.WebsiteURL), Target("_blank"), Rel("noopener"), img)
		} else {
			logos[i] = img
		}
	}
	return Section(ID("partners"), Class("section partners"), H2(Text("Trusted by")), Div(Class("logo-row"), Group(logos)))
}

// blogSection filters client side on a "topic" signal.
func blogSection(posts []domain.BlogPost) Node {
	if len(posts) == 0 {
		return nil
	}
	var filters []Node
	for _, c := range site.BlogCategories(posts) {
		label := c
		if c == "all" {
			label = "All"
		}
		filters = append(filters, filterButton("topic", c, label))
	}
	cards := make([]Node, len(posts))
	for i, p := range posts {
		cards[i] = A(Href("/blog/"+p.Slug), Class(cardClass("post")),
			data.Show(filterExpr("topic", site.PostCategory(p))),
			If(p.CoverImageURL != "", Img(Src(p.CoverImageURL), Alt(p.Title), Loading("lazy"))),
			Span(Class("chip"), Text(site.PostCategory(p))),
			H3(Text(p.Title)),
			P(Text(p.Excerpt)),
			Span(Class(mutedClass()), Text(formatDate(p.PublishedAt)+" · "+strconv.Itoa(markdown.ReadingMinutes(p.Content))+" min read")),
		)
	}
	return Section(ID("blog"), Class("section"),
		data.Signals(map[string]any{"topic": "all"}),
		H2(Text("From the blog")),
		Div(Class("filters"), Group(filters)),
		Div(Class("grid"), Group(cards)),
	)
}

func contactSection(r *http.Request, items []site.ContactItem) Node {
	lines := make([]Node, len(items))
	for i, c := range items {
		var value Node = Text(c.Value)
		if c.Href != "" {
			value = A(Href(c.Href), Text(c.Value))
		}
		lines[i] = Li(Strong(Text(c.Label+": ")), value)
	}
	return Section(ID("contact"), Class("section contact"),
		H2(Text("Let's build something")),
		Ul(Class("contact-items"), Group(lines)),
		Form(Method("post"), Action("/contact"), Class(cardClass("stack-form")),
			csrfField(r),
			Label(For("c-name"), Text("Name")),
			Input(ID("c-name"), Type("text"), Name("name"), MaxLength(strconv.Itoa(domain.MaxNameLength)), Required()),
			Label(For("c-email"), Text("Email")),
			Input(ID("c-email"), Type("email"), Name("email"), MaxLength(strconv.Itoa(domain.MaxEmailLength)), Required()),
			Label(For("c-subject"), Text("Subject")),
			Input(ID("c-subject"), Type("text"), Name("subject"), MaxLength(strconv.Itoa(domain.MaxSubjectLength)), Required()),
			Label(For("c-message"), Text("Message")),
			Textarea(ID("c-message"), Name("message"), Rows("6"), MaxLength(strconv.Itoa(domain.MaxMessageLength)), Required()),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Send message")),
		),
	)
}

func filterButton(signal, value, label string) Node {
	return Button(Type("button"), Class("chip"),
		data.On("click", "$"+signal+" = "+strconv.Quote(value)),
		data.Class("'chip-on'", "$"+signal+" === "+strconv.Quote(value)),
		Text(label),
	)
}

func filterExpr(signal, value string) string {
	return "$" + signal + " === 'all' || $" + signal + " === " + strconv.Quote(value)
}

// paragraphs splits plain text on blank lines.
func paragraphs(text string) Node {
	var out []Node
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, P(Text(p)))
		}
	}
	return Group(out)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
