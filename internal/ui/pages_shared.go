package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
	Cap   domain.Capability // empty means unrestricted only
}

var navItems = []navItem{
	{Label: "Messages", Href: "/admin/messages", Key: "messages", Icon: "mail", Cap: domain.CapMessages},
	{Label: "Projects", Href: "/admin/projects", Key: "projects", Icon: "folder-kanban", Cap: domain.CapProjects},
	{Label: "Team", Href: "/admin/team", Key: "team", Icon: "users", Cap: domain.CapTeam},
	{Label: "Awards", Href: "/admin/awards", Key: "awards", Icon: "trophy", Cap: domain.CapAwards},
	{Label: "Services", Href: "/admin/services", Key: "services", Icon: "sparkles", Cap: domain.CapServices},
	{Label: "Blog", Href: "/admin/blog", Key: "blog", Icon: "newspaper", Cap: domain.CapBlog},
	{Label: "Settings", Href: "/admin/settings", Key: "settings", Icon: "settings", Cap: domain.CapSettings},
	{Label: "Analytics", Href: "/admin/analytics", Key: "analytics", Icon: "chart-line", Cap: domain.CapAnalytics},
	{Label: "Users", Href: "/admin/users", Key: "users", Icon: "shield", Cap: ""},
	{Label: "Audit Log", Href: "/admin/audit", Key: "audit", Icon: "scroll-text", Cap: ""},
}

// visibleNav returns the screens the access snapshot reaches.
func visibleNav(a domain.Access) []navItem {
	out := make([]navItem, 0, len(navItems))
	for _, item := range navItems {
		if (item.Cap == "" && a.IsUnrestricted) || (item.Cap != "" && a.Has(item.Cap)) {
			out = append(out, item)
		}
	}
	return out
}

// adminPage wraps body in the console shell.
type adminPage struct {
	Title   string
	Active  string
	Flash   *flash
	Refresh time.Duration // meta refresh interval, 0 for none
}

func (h *Handler) renderAdmin(w http.ResponseWriter, r *http.Request, p adminPage, body ...Node) {
	p.Flash = h.takeFlash(w, r)
	renderHTML(w, http.StatusOK, adminShell(r, p, body...))
}

func adminShell(r *http.Request, p adminPage, body ...Node) Node {
	principal := principalFromContext(r.Context())
	a := domain.AccessFromContext(r.Context())

	items := visibleNav(a)
	nav := make([]Node, 0, len(items)+1)
	nav = append(nav, navLink(navItem{Label: "Overview", Href: "/admin", Key: "home", Icon: "house"}, p.Active))
	for _, item := range items {
		nav = append(nav, navLink(item, p.Active))
	}

	role := "Editor"
	if a.IsUnrestricted {
		role = "Super Admin"
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			If(p.Refresh > 0, Meta(Attr("http-equiv", "refresh"), Content(fmt.Sprintf("%d", int(p.Refresh.Seconds()))))),
			TitleEl(Text(p.Title+" | Studio Admin")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
			datastarScript(),
		),
		Body(
			Class("admin"),
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Tobiya Studio")),
						P(Class(mutedClass()), Text("Admin console")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(p.Title)),
						Div(
							P(Class(mutedClass()), Text(principal.Email+" · "+role)),
							Form(
								Method("post"),
								Action("/admin/logout"),
								csrfField(r),
								Button(Type("submit"), Class(secondaryButtonClass()), Text("Sign out")),
							),
						),
					),
					toast(p.Flash),
					Div(Class("content"), Group(body)),
				),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
			Script(Raw(reorderScript)),
		),
	)
}

func navLink(item navItem, active string) Node {
	className := "app-nav-link"
	if item.Key == active {
		className += " active"
	}
	return A(
		Href(item.Href),
		Class(className),
		I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
		Span(Text(item.Label)),
	)
}

func datastarScript() Node {
	return Script(
		Type("module"),
		Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
	)
}

func toast(f *flash) Node {
	if f == nil {
		return nil
	}
	return Div(Class("toast toast-"+f.Kind), Attr("role", "status"), Text(f.Message))
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Tobiya Studio")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/"), Text("Back to the site"))),
			),
		),
	)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("Jan 2, 2006 15:04")
}

func formatDate(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Format("January 2, 2006")
}

func paginationCard(basePath string, page domain.PageRequest, nextToken string) Node {
	if nextToken == "" {
		return nil
	}
	href := fmt.Sprintf("%s?max_results=%d&page_token=%s", basePath, page.Limit(), url.QueryEscape(nextToken))
	return Div(Class(cardClass()), A(Href(href), Text("Next page ->")))
}

func cardClass(extra ...string) string {
	parts := []string{"card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "muted"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func pageToolbar(newHref, newLabel string) Node {
	return Div(
		Class(cardClass("toolbar")),
		A(Href(newHref), Class(primaryButtonClass()), Text(newLabel)),
	)
}

func emptyStateCard(message, ctaLabel, ctaHref string) Node {
	var cta Node
	if ctaLabel != "" && ctaHref != "" {
		cta = A(Href(ctaHref), Class(primaryButtonClass()), Text(ctaLabel))
	}
	return Div(
		Class(cardClass("blankslate")),
		P(Class(mutedClass()), Text(message)),
		cta,
	)
}

func statusLabel(text, tone string) Node {
	className := "label"
	if tone != "" {
		className += " label-" + tone
	}
	return Span(Class(className), Text(text))
}

// postButton is a one-button form for row actions.
func postButton(r *http.Request, action, label string, danger bool) Node {
	btnClass := "btn btn-sm"
	var confirm Node
	if danger {
		btnClass += " btn-danger"
		confirm = Attr("onsubmit", "return confirm('Are you sure?')")
	}
	return Form(
		Class("inline"),
		Method("post"),
		Action(action),
		confirm,
		csrfField(r),
		Button(Type("submit"), Class(btnClass), I(Attr("data-lucide", actionIconForLabel(label)), Attr("aria-hidden", "true")), Span(Text(label))),
	)
}

func actionIconForLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(lower, "delete"), strings.Contains(lower, "remove"):
		return "trash-2"
	case strings.Contains(lower, "edit"):
		return "pencil"
	case strings.Contains(lower, "up"):
		return "arrow-up"
	case strings.Contains(lower, "down"):
		return "arrow-down"
	case strings.Contains(lower, "read"):
		return "mail-open"
	case strings.Contains(lower, "add"):
		return "plus"
	default:
		return "circle"
	}
}

// orderControls renders move up/down buttons for one row of a collection.
func orderControls(r *http.Request, collection, id string, i, n int) Node {
	base := "/admin/order/" + collection + "/" + id
	return Span(
		Class("order-controls"),
		If(i > 0, postButton(r, base+"/up", "Up", false)),
		If(i < n-1, postButton(r, base+"/down", "Down", false)),
	)
}

func table(headers []string, rows []Node) Node {
	th := make([]Node, len(headers))
	for i, hd := range headers {
		th[i] = Th(Text(hd))
	}
	return Div(Class(cardClass()),
		Table(Class("table"),
			THead(Tr(Group(th))),
			TBody(Group(rows)),
		),
	)
}
