package ui

import (
	"net/http"
	"net/url"
	"strings"

	"studio-site/internal/domain"
)

const flashCookieName = "studio_flash"

// flash is a one-shot toast carried across a redirect.
type flash struct {
	Kind    string // "success" or "error"
	Message string
}

func (h *Handler) setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending toast.
func (h *Handler) takeFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Path: "/", MaxAge: -1, HttpOnly: true, Secure: h.Auth.CookieSecure})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok || msg == "" {
		return nil
	}
	if kind != "success" {
		kind = "error"
	}
	return &flash{Kind: kind, Message: msg}
}

// done redirects to back, with a success toast or the friendly message for err.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, back, success string, err error) {
	if err != nil {
		h.Logger.Warn("admin action failed", "path", r.URL.Path, "error", err)
		h.setFlash(w, "error", domain.UserMessage(err))
	} else if success != "" {
		h.setFlash(w, "success", success)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
