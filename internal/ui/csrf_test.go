package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireCSRF(t *testing.T) {
	tests := []struct {
		name   string
		method string
		cookie string
		field  string
		header string
		want   int
	}{
		{name: "get passes", method: http.MethodGet, want: http.StatusNoContent},
		{name: "post without cookie", method: http.MethodPost, field: "abc123", want: http.StatusForbidden},
		{name: "post without token", method: http.MethodPost, cookie: "abc123", want: http.StatusForbidden},
		{name: "post with mismatched token", method: http.MethodPost, cookie: "abc123", field: "zzz", want: http.StatusForbidden},
		{name: "post with form token", method: http.MethodPost, cookie: "abc123", field: "abc123", want: http.StatusNoContent},
		{name: "post with header token", method: http.MethodPost, cookie: "abc123", header: "abc123", want: http.StatusNoContent},
	}

	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := url.Values{"name": {"Abebe"}}
			if tc.field != "" {
				form.Set("csrf_token", tc.field)
			}
			r := httptest.NewRequest(tc.method, "/contact", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tc.cookie})
			}
			if tc.header != "" {
				r.Header.Set("X-CSRF-Token", tc.header)
			}
			rr := httptest.NewRecorder()

			h.RequireCSRF(next).ServeHTTP(rr, r)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestEnsureCSRFToken(t *testing.T) {
	h := &Handler{}
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(csrfContextKey{}).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	h.EnsureCSRFToken(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Contains(t, rr.Header().Get("Set-Cookie"), csrfCookieName+"=")
	assert.NotEmpty(t, seen)

	// An existing cookie is reused, not rotated.
	r := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "kept"})
	rr = httptest.NewRecorder()
	h.EnsureCSRFToken(next).ServeHTTP(rr, r)
	assert.Empty(t, rr.Header().Get("Set-Cookie"))
	assert.Equal(t, "kept", seen)
}
