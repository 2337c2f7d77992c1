package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
	"studio-site/internal/storage"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) AwardsList(w http.ResponseWriter, r *http.Request) {
	awards, err := h.Content.ListAwards(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	rows := make([]Node, len(awards))
	for i, a := range awards {
		year := "-"
		if a.Year != nil {
			year = itoa(*a.Year)
		}
		rows[i] = dragRow(string(domain.CollectionAwards), a.ID,
			Td(Text(a.Title)),
			Td(Text(year)),
			Td(Class("actions"),
				orderControls(r, string(domain.CollectionAwards), a.ID, i, len(awards)),
				A(Href("/admin/awards/"+a.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/awards/"+a.ID+"/delete", "Delete", true),
			),
		)
	}
	body := []Node{pageToolbar("/admin/awards/new", "New Award")}
	if len(awards) == 0 {
		body = append(body, emptyStateCard("No awards yet.", "", ""))
	} else {
		body = append(body, orderedTable(r, string(domain.CollectionAwards), []string{"Title", "Year", ""}, rows))
	}
	h.renderAdmin(w, r, adminPage{Title: "Awards", Active: "awards"}, body...)
}

func (h *Handler) AwardsNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Award", Active: "awards"},
		formCard(r, "/admin/awards", "Create", awardFields(domain.Award{})...))
}

func (h *Handler) AwardsCreate(w http.ResponseWriter, r *http.Request) {
	a, err := h.parseAward(r, domain.Award{})
	if err == nil {
		_, err = h.Content.CreateAward(r.Context(), a)
	}
	h.done(w, r, "/admin/awards", "Award created", err)
}

func (h *Handler) AwardsEdit(w http.ResponseWriter, r *http.Request) {
	a, err := h.Content.GetAward(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit Award", Active: "awards"},
		formCard(r, "/admin/awards/"+a.ID, "Save", awardFields(*a)...))
}

func (h *Handler) AwardsUpdate(w http.ResponseWriter, r *http.Request) {
	a, err := h.parseAward(r, domain.Award{ID: chi.URLParam(r, "id")})
	if err == nil {
		_, err = h.Content.UpdateAward(r.Context(), a)
	}
	h.done(w, r, "/admin/awards", "Award saved", err)
}

func (h *Handler) AwardsDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeleteAward(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/awards", "Award deleted", err)
}

func awardFields(a domain.Award) []Node {
	year := ""
	if a.Year != nil {
		year = itoa(*a.Year)
	}
	return []Node{
		textField("Title", "title", a.Title, true),
		Div(Class("field"), Label(For("year"), Text("Year")), Input(ID("year"), Type("number"), Name("year"), Value(year), Min("1900"), Max("3000"))),
		textArea("Description", "description", a.Description, 3, false),
		fileField("Image", "image_file", "image_url", a.ImageURL, "image/*"),
	}
}

func (h *Handler) parseAward(r *http.Request, a domain.Award) (domain.Award, error) {
	if err := parseForm(r); err != nil {
		return a, domain.ErrValidation("invalid form")
	}
	a.Title = formString(r.Form, "title")
	a.Description = formString(r.Form, "description")
	year, err := formOptionalInt(r.Form, "year")
	if err != nil {
		return a, domain.ErrValidation("year must be a number")
	}
	a.Year = year
	a.ImageURL, err = h.uploadField(r, "image_file", storage.PrefixImages, formString(r.Form, "image_url"))
	return a, err
}
