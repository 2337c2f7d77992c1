package ui

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Home is the console overview: a card per reachable screen.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	a := domain.AccessFromContext(r.Context())
	cards := make([]Node, 0, len(navItems))
	for _, item := range visibleNav(a) {
		var badge Node
		if item.Cap == domain.CapMessages {
			if n, err := h.Contact.UnreadCount(r.Context()); err == nil && n > 0 {
				badge = statusLabel(itoa(int(n))+" unread", "accent")
			}
		}
		cards = append(cards, A(Href(item.Href), Class(cardClass("overview-card")),
			I(Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Strong(Text(item.Label)),
			badge,
		))
	}
	h.renderAdmin(w, r, adminPage{Title: "Overview", Active: "home"}, Div(Class("overview-grid"), Group(cards)))
}

// OrderMove handles the up/down buttons of ordered collections.
func (h *Handler) OrderMove(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	_, err := h.Content.Move(r.Context(), collection, chi.URLParam(r, "id"), domain.MoveDirection(chi.URLParam(r, "dir")))
	h.done(w, r, orderBack(collection), "", err)
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"

	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &notFound):
		status, title = http.StatusNotFound, "Not Found"
	case errors.As(err, &accessDenied):
		status, title = http.StatusForbidden, "Access Denied"
	case errors.As(err, &validation):
		status, title = http.StatusBadRequest, "Invalid Request"
	case errors.As(err, &conflict):
		status, title = http.StatusConflict, "Conflict"
	default:
		h.Logger.Error("render page", "path", r.URL.Path, "error", err)
	}
	renderHTML(w, status, errorPage(title, domain.UserMessage(err)))
}
