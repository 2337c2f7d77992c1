package api

import (
	"net/http"
	"time"

	"studio-site/internal/domain"
	"studio-site/internal/middleware"
	"studio-site/internal/service/identity"
)

// Access is the response of GET /me/access.
type Access struct {
	PrincipalID    string   `json:"principal_id"`
	Email          string   `json:"email"`
	IsAdmin        bool     `json:"is_admin"`
	IsUnrestricted bool     `json:"is_unrestricted"`
	Capabilities   []string `json:"capabilities"`
}

// Session is the response of the session endpoints.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	s, err := h.sessions.SignIn(r.Context(), domain.SignInRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, s)
}

func (h *Handler) refreshSession(w http.ResponseWriter, r *http.Request) {
	cp, _ := domain.PrincipalFromContext(r.Context())
	s, err := h.sessions.Refresh(r.Context(), cp.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, s)
}

func (h *Handler) signOut(w http.ResponseWriter, _ *http.Request) {
	middleware.ClearSessionCookie(w, h.auth)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeSession(w http.ResponseWriter, s *identity.Session) {
	middleware.SetSessionCookie(w, h.auth, s.Token, s.ExpiresAt)
	writeJSON(w, http.StatusOK, Session{Token: s.Token, ExpiresAt: s.ExpiresAt, Email: s.Principal.Email})
}

func (h *Handler) myAccess(w http.ResponseWriter, r *http.Request) {
	cp, _ := domain.PrincipalFromContext(r.Context())
	a := domain.AccessFromContext(r.Context())
	writeJSON(w, http.StatusOK, Access{
		PrincipalID:    cp.ID,
		Email:          cp.Email,
		IsAdmin:        a.IsAdmin(),
		IsUnrestricted: a.IsUnrestricted,
		Capabilities:   a.Strings(),
	})
}
