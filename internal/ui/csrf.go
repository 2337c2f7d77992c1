package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Double-submit protection: the cookie and the form field (or header) must
// carry the same random value.
const (
	csrfCookieName = "studio_csrf"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
)

const maxFormMemory = 8 << 20

type csrfContextKey struct{}

// EnsureCSRFToken issues the token cookie on first visit and exposes the
// token to the page renderers through the request context.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := cookieToken(r)
		if token == "" {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.Auth.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfContextKey{}, token)))
	})
}

// RequireCSRF rejects state-changing requests whose submitted token does not
// match the cookie.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		want := cookieToken(r)
		got := submittedToken(r)
		if want == "" || got == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			renderHTML(w, http.StatusForbidden, errorPage("Request expired", "Reload the page and submit the form again."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func submittedToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(csrfHeader)); v != "" {
		return v
	}
	_ = parseForm(r)
	return strings.TrimSpace(r.FormValue(csrfFormField))
}

// csrfField renders the hidden input every admin and contact form carries.
func csrfField(r *http.Request) gomponents.Node {
	token, ok := r.Context().Value(csrfContextKey{}).(string)
	if !ok || token == "" {
		token = cookieToken(r)
	}
	return html.Input(html.Type("hidden"), html.Name(csrfFormField), html.Value(token))
}

func cookieToken(r *http.Request) string {
	if c, err := r.Cookie(csrfCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

func newCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
