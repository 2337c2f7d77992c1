package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) MessagesList(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r, 25)
	msgs, next, err := h.Contact.List(r.Context(), page)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if len(msgs) == 0 {
		h.renderAdmin(w, r, adminPage{Title: "Messages", Active: "messages"},
			emptyStateCard("No messages yet. Submissions from the contact form land here.", "", ""))
		return
	}
	cards := make([]Node, len(msgs))
	for i, m := range msgs {
		cards[i] = messageCard(r, m)
	}
	h.renderAdmin(w, r, adminPage{Title: "Messages", Active: "messages"},
		Div(Class("message-list"), Group(cards)),
		paginationCard("/admin/messages", page, next),
	)
}

func messageCard(r *http.Request, m domain.ContactSubmission) Node {
	extra := "message"
	toggleLabel, toggleValue := "Mark read", "true"
	if m.Read {
		toggleLabel, toggleValue = "Mark unread", "false"
	} else {
		extra += " unread"
	}
	return Div(Class(cardClass(extra)),
		Div(Class("message-head"),
			Strong(Text(m.Subject)),
			If(!m.Read, statusLabel("New", "accent")),
			Span(Class(mutedClass()), Text(formatTime(m.CreatedAt))),
		),
		P(Text(m.Name+" <"), A(Href("mailto:"+m.Email), Text(m.Email)), Text(">")),
		P(Class("message-body"), Text(m.Message)),
		Div(Class("actions"),
			Form(Method("post"), Action("/admin/messages/"+m.ID+"/read"), Class("inline-form"),
				csrfField(r),
				Input(Type("hidden"), Name("read"), Value(toggleValue)),
				Button(Type("submit"), Class("btn btn-sm"), Text(toggleLabel)),
			),
			postButton(r, "/admin/messages/"+m.ID+"/delete", "Delete", true),
		),
	)
}

func (h *Handler) MessagesMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/messages", "", domain.ErrValidation("invalid form"))
		return
	}
	err := h.Contact.MarkRead(r.Context(), chi.URLParam(r, "id"), formBool(r.Form, "read"))
	h.done(w, r, "/admin/messages", "", err)
}

func (h *Handler) MessagesDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Contact.Delete(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/messages", "Message deleted", err)
}
