package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) ServicesList(w http.ResponseWriter, r *http.Request) {
	services, err := h.Content.ListServices(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	rows := make([]Node, len(services))
	for i, s := range services {
		rows[i] = dragRow(string(domain.CollectionServices), s.ID,
			Td(Span(Class("glyph"), Text(s.Icon.Glyph())), Text(" "+s.Title)),
			Td(Text(itoa(len(s.Features))+" features")),
			Td(Class("actions"),
				orderControls(r, string(domain.CollectionServices), s.ID, i, len(services)),
				A(Href("/admin/services/"+s.ID+"/edit"), Class("btn btn-sm"), Text("Edit")),
				postButton(r, "/admin/services/"+s.ID+"/delete", "Delete", true),
			),
		)
	}
	body := []Node{pageToolbar("/admin/services/new", "New Service")}
	if len(services) == 0 {
		body = append(body, emptyStateCard("No services yet.", "", ""))
	} else {
		body = append(body, orderedTable(r, string(domain.CollectionServices), []string{"Service", "Features", ""}, rows))
	}
	h.renderAdmin(w, r, adminPage{Title: "Services", Active: "services"}, body...)
}

func (h *Handler) ServicesNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, adminPage{Title: "New Service", Active: "services"},
		formCard(r, "/admin/services", "Create", serviceFields(domain.Service{Icon: domain.DefaultServiceIcon})...))
}

func (h *Handler) ServicesCreate(w http.ResponseWriter, r *http.Request) {
	s, err := parseService(r, domain.Service{})
	if err == nil {
		_, err = h.Content.CreateService(r.Context(), s)
	}
	h.done(w, r, "/admin/services", "Service created", err)
}

func (h *Handler) ServicesEdit(w http.ResponseWriter, r *http.Request) {
	s, err := h.Content.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderAdmin(w, r, adminPage{Title: "Edit Service", Active: "services"},
		formCard(r, "/admin/services/"+s.ID, "Save", serviceFields(*s)...))
}

func (h *Handler) ServicesUpdate(w http.ResponseWriter, r *http.Request) {
	s, err := parseService(r, domain.Service{ID: chi.URLParam(r, "id")})
	if err == nil {
		_, err = h.Content.UpdateService(r.Context(), s)
	}
	h.done(w, r, "/admin/services", "Service saved", err)
}

func (h *Handler) ServicesDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Content.DeleteService(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/services", "Service deleted", err)
}

func serviceFields(s domain.Service) []Node {
	icons := make([][2]string, len(domain.ServiceIcons))
	for i, ic := range domain.ServiceIcons {
		icons[i] = [2]string{string(ic), ic.Glyph() + " " + string(ic)}
	}
	return []Node{
		textField("Title", "title", s.Title, true),
		textArea("Description", "description", s.Description, 3, true),
		selectField("Icon", "icon", string(s.Icon), icons),
		textArea("Features (one per line)", "features", linesValue(s.Features), 5, false),
	}
}

func parseService(r *http.Request, s domain.Service) (domain.Service, error) {
	if err := parseForm(r); err != nil {
		return s, domain.ErrValidation("invalid form")
	}
	s.Title = formString(r.Form, "title")
	s.Description = formString(r.Form, "description")
	s.Icon = domain.ServiceIcon(formString(r.Form, "icon"))
	s.Features = formLines(r.Form, "features")
	return s, nil
}
