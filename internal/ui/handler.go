// Package ui renders the public studio site and the admin console as
// server-side HTML built with gomponents.
package ui

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"studio-site/internal/config"
	"studio-site/internal/domain"
	"studio-site/internal/markdown"
	"studio-site/internal/service"
	"studio-site/internal/service/access"
	"studio-site/internal/service/analytics"
	"studio-site/internal/service/contact"
	"studio-site/internal/service/content"
	"studio-site/internal/service/identity"
	"studio-site/internal/service/media"
	"studio-site/internal/service/site"

	gomponents "maragu.dev/gomponents"
)

// Handler serves every HTML page.
type Handler struct {
	Site      *site.Service
	Content   *content.Service
	Contact   *contact.Service
	Users     *access.UserService
	Audit     *service.AuditService
	Analytics *analytics.Service
	Media     *media.Service
	Identity  *identity.Service
	Markdown  *markdown.Renderer
	Auth      config.AuthConfig
	Logger    *slog.Logger
}

func pageFromRequest(r *http.Request, defaultPageSize int) domain.PageRequest {
	maxResults := defaultPageSize
	if maxResults <= 0 {
		maxResults = 25
	}
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxResults = parsed
		}
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 200 {
		maxResults = 200
	}
	return domain.PageRequest{
		MaxResults: maxResults,
		PageToken:  r.URL.Query().Get("page_token"),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func principalFromContext(ctx context.Context) domain.ContextPrincipal {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.ContextPrincipal{Email: "unknown", Type: "user"}
	}
	return p
}
