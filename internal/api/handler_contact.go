package api

import (
	"net/http"
	"time"

	"studio-site/internal/domain"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactReceipt acknowledges a stored submission.
type ContactReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.contact.Submit(r.Context(), domain.ContactSubmission{
		Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ContactReceipt{ID: c.ID, CreatedAt: c.CreatedAt})
}
