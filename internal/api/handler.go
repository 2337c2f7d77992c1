// Package api provides the JSON endpoints of the studio site: session
// management, collection ordering, media uploads, contact intake and the
// notification relay.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/config"
	"studio-site/internal/domain"
	"studio-site/internal/middleware"
	"studio-site/internal/notify"
	"studio-site/internal/service/identity"
)

// SessionService issues console session tokens.
type SessionService interface {
	SignIn(ctx context.Context, req domain.SignInRequest) (*identity.Session, error)
	Refresh(ctx context.Context, principalID string) (*identity.Session, error)
}

// OrderService commits ordered-collection changes.
type OrderService interface {
	Reorder(ctx context.Context, collection string, from, to int) ([]domain.OrderedItem, error)
	ApplyOrder(ctx context.Context, collection string, ids []string) ([]domain.OrderedItem, error)
	Move(ctx context.Context, collection, id string, dir domain.MoveDirection) ([]domain.OrderedItem, error)
}

// UploadService stores media and returns its public URL.
type UploadService interface {
	Upload(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (string, error)
}

// ContactIntake stores contact form submissions.
type ContactIntake interface {
	Submit(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error)
}

// Handler serves the /api/v1 routes.
type Handler struct {
	sessions  SessionService
	order     OrderService
	uploads   UploadService
	contact   ContactIntake
	auth      config.AuthConfig
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler creates a Handler. maxUpload bounds multipart bodies.
func NewHandler(sessions SessionService, order OrderService, uploads UploadService, contact ContactIntake, auth config.AuthConfig, maxUpload int64, logger *slog.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		order:     order,
		uploads:   uploads,
		contact:   contact,
		auth:      auth,
		maxUpload: maxUpload,
		logger:    logger.With("component", "api"),
	}
}

// Routes returns the /api/v1 router. Contact submissions pass through
// contactLimit; everything except sign-in and contact requires a session.
func (h *Handler) Routes(authn *middleware.Authenticator, contactLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/session", h.signIn)
	r.With(contactLimit).Post("/contact", h.submitContact)

	r.Group(func(r chi.Router) {
		r.Use(authn.Middleware())
		r.Get("/me/access", h.myAccess)
		r.Post("/session/refresh", h.refreshSession)
		r.Delete("/session", h.signOut)
		r.Post("/collections/{collection}/reorder", h.reorder)
		r.Post("/uploads", h.upload)
	})
	return r
}

// RelayHandler serves the notification relay endpoint. Validation failures
// answer 400 and provider failures 500, both as {error}.
func RelayHandler(n notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notify.Notification
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, relayError{Error: "Invalid request body"})
			return
		}
		res, err := n.Notify(r.Context(), req)
		if err != nil {
			if httpStatusFromDomainError(err) == http.StatusBadRequest {
				writeJSON(w, http.StatusBadRequest, relayError{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, relayError{Error: "Failed to send notification"})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type relayError struct {
	Error string `json:"error"`
}
