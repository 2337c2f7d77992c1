package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
	"studio-site/internal/storage"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) TeamList(w http.ResponseWriter, r *http.Request) {
	team, err := h.Content.ListTeam(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	rows := make([]Node, len(team))
	for i, m := range team {
		rows[i] = dragRow(string(domain.CollectionTeam), m.ID,
			Td(If(m.PhotoURL != "", Img(Class("thumb"), Src(m.PhotoURL), Alt(m.Name))), Text(" "+m.Name)),
			Td(Text(m.Role)),
			Td(Text(itoa(len(m.SocialLinks))+" links")),
			Td(Class("actions"),
				orderControls(r, string(domain.CollectionTeam), m.ID, i, len(team)),
				A(Href("/admin/team/"+m.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/team/"+m.ID+"/delete", "Delete", true),
			),
		)
	}
	body := []Node{pageToolbar("/admin/team/new", "New Member")}
	if len(team) == 0 {
		body = append(body, emptyStateCard("No team members yet.", "", ""))
	} else {
		body = append(body, orderedTable(r, string(domain.CollectionTeam), []string{"Name", "Role", "Social", ""}, rows))
	}
	h.renderAdmin(w, r, adminPage{Title: "Team", Active: "team"}, body...)
}

func (h *Handler) TeamNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Team Member", Active: "team"},
		formCard(r, "/admin/team", "Create", teamFields(domain.TeamMember{})...))
}

func (h *Handler) TeamCreate(w http.ResponseWriter, r *http.Request) {
	m, err := h.parseTeamMember(r, domain.TeamMember{})
	if err == nil {
		_, err = h.Content.CreateTeamMember(r.Context(), m)
	}
	h.done(w, r, "/admin/team", "Team member created", err)
}

func (h *Handler) TeamEdit(w http.ResponseWriter, r *http.Request) {
	m, err := h.Content.GetTeamMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit " + m.Name, Active: "team"},
		formCard(r, "/admin/team/"+m.ID, "Save", teamFields(*m)...),
		H2(Text("Social links")),
		formCard(r, "/admin/team/"+m.ID+"/social", "Save links", socialLinkFields(m.SocialLinks)...),
	)
}

func (h *Handler) TeamUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := h.Content.GetTeamMember(r.Context(), id)
	if err != nil {
		h.done(w, r, "/admin/team", "", err)
		return
	}
	m, err := h.parseTeamMember(r, domain.TeamMember{ID: id, SocialLinks: cur.SocialLinks})
	if err == nil {
		_, err = h.Content.UpdateTeamMember(r.Context(), m)
	}
	h.done(w, r, "/admin/team", "Team member saved", err)
}

func (h *Handler) TeamSocialLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/team/"+id+"/edit", "", domain.ErrValidation("invalid form"))
		return
	}
	platforms, urls := r.Form["platform"], r.Form["url"]
	links := make([]domain.SocialLink, 0, len(urls))
	for i, u := range urls {
		if i < len(platforms) {
			links = append(links, domain.SocialLink{Platform: domain.SocialPlatform(platforms[i]), URL: u})
		}
	}
	_, err := h.Content.SetSocialLinks(r.Context(), id, links)
	h.done(w, r, "/admin/team/"+id+"/edit", "Social links saved", err)
}

func (h *Handler) TeamDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeleteTeamMember(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/team", "Team member deleted", err)
}

func teamFields(m domain.TeamMember) []Node {
	return []Node{
		textField("Name", "name", m.Name, true),
		textField("Role", "role", m.Role, true),
		textArea("Bio", "bio", m.Bio, 4, false),
		fileField("Photo", "photo_file", "photo_url", m.PhotoURL, "image/*"),
		textField("LinkedIn URL", "linkedin_url", m.LinkedinURL, false),
		textField("Twitter URL", "twitter_url", m.TwitterURL, false),
	}
}

// socialLinkFields renders the stored links plus blank rows for new ones.
func socialLinkFields(links []domain.SocialLink) []Node {
	opts := make([][2]string, len(domain.SocialPlatforms))
	for i, p := range domain.SocialPlatforms {
		opts[i] = [2]string{string(p), p.Label()}
	}
	rows := append(append([]domain.SocialLink{}, links...), make([]domain.SocialLink, 3)...)
	out := make([]Node, len(rows))
	for i, l := range rows {
		platform := string(l.Platform)
		if platform == "" {
			platform = string(domain.PlatformWebsite)
		}
		sel := make([]Node, len(opts))
		for j, o := range opts {
			sel[j] = Option(Value(o[0]), If(o[0] == platform, Selected()), Text(o[1]))
		}
		out[i] = Div(Class("field-row"),
			Select(Name("platform"), Aria("label", "Platform"), Group(sel)),
			Input(Type("text"), Name("url"), Value(l.URL), Placeholder("URL or address")),
		)
	}
	return append(out, P(Class(mutedClass()), Text("Leave the URL empty to remove a link.")))
}

func (h *Handler) parseTeamMember(r *http.Request, m domain.TeamMember) (domain.TeamMember, error) {
	if err := parseForm(r); err != nil {
		return m, domain.ErrValidation("invalid form")
	}
	m.Name = formString(r.Form, "name")
	m.Role = formString(r.Form, "role")
	m.Bio = formString(r.Form, "bio")
	m.LinkedinURL = formString(r.Form, "linkedin_url")
	m.TwitterURL = formString(r.Form, "twitter_url")
	var err error
	m.PhotoURL, err = h.uploadField(r, "photo_file", storage.PrefixTeam, formString(r.Form, "photo_url"))
	return m, err
}
