package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"studio-site/internal/domain"
	"studio-site/internal/middleware"
	"studio-site/internal/ui/assets"
)

// MountRoutes registers the public site, static assets and the admin
// console. maxBody caps form posts, uploads included.
func MountRoutes(r chi.Router, h *Handler, authn *middleware.Authenticator, maxBody int64, contactLimit func(http.Handler) http.Handler) {
	if contactLimit == nil {
		contactLimit = func(next http.Handler) http.Handler { return next }
	}
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(maxBody))
		r.Use(h.EnsureCSRFToken)
		r.Use(h.RequireCSRF)

		r.Get("/", h.PublicHome)
		r.Get("/projects/{slug}", h.PublicProject)
		r.Get("/blog/{slug}", h.PublicPost)
		r.With(contactLimit).Post("/contact", h.PublicContact)

		r.Route("/admin", func(r chi.Router) {
			r.With(authn.Optional()).Get("/login", h.LoginPage)
			r.Post("/login", h.LoginSubmit)
			r.Post("/logout", h.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authn.RedirectToLogin("/admin/login"))
				r.Use(h.RequireAdmin())
				r.Get("/", h.Home)
				r.Post("/order/{collection}", h.OrderApply)
				r.Post("/order/{collection}/{id}/{dir}", h.OrderMove)

				r.With(h.RequireCapability(domain.CapMessages)).Route("/messages", func(r chi.Router) {
					r.Get("/", h.MessagesList)
					r.Post("/{id}/read", h.MessagesMarkRead)
					r.Post("/{id}/delete", h.MessagesDelete)
				})

				r.With(h.RequireCapability(domain.CapProjects)).Group(func(r chi.Router) {
					r.Get("/projects", h.ProjectsList)
					r.Get("/projects/new", h.ProjectsNew)
					r.Post("/projects", h.ProjectsCreate)
					r.Get("/projects/{id}/edit", h.ProjectsEdit)
					r.Post("/projects/{id}", h.ProjectsUpdate)
					r.Post("/projects/{id}/delete", h.ProjectsDelete)

					r.Get("/partners/new", h.PartnersNew)
					r.Post("/partners", h.PartnersCreate)
					r.Get("/partners/{id}/edit", h.PartnersEdit)
					r.Post("/partners/{id}", h.PartnersUpdate)
					r.Post("/partners/{id}/toggle", h.PartnersToggle)
					r.Post("/partners/{id}/delete", h.PartnersDelete)
				})

				r.With(h.RequireCapability(domain.CapTeam)).Route("/team", func(r chi.Router) {
					r.Get("/", h.TeamList)
					r.Get("/new", h.TeamNew)
					r.Post("/", h.TeamCreate)
					r.Get("/{id}/edit", h.TeamEdit)
					r.Post("/{id}", h.TeamUpdate)
					r.Post("/{id}/social", h.TeamSocialLinks)
					r.Post("/{id}/delete", h.TeamDelete)
				})

				r.With(h.RequireCapability(domain.CapAwards)).Route("/awards", func(r chi.Router) {
					r.Get("/", h.AwardsList)
					r.Get("/new", h.AwardsNew)
					r.Post("/", h.AwardsCreate)
					r.Get("/{id}/edit", h.AwardsEdit)
					r.Post("/{id}", h.AwardsUpdate)
					r.Post("/{id}/delete", h.AwardsDelete)
				})

				r.With(h.RequireCapability(domain.CapServices)).Route("/services", func(r chi.Router) {
					r.Get("/", h.ServicesList)
					r.Get("/new", h.ServicesNew)
					r.Post("/", h.ServicesCreate)
					r.Get("/{id}/edit", h.ServicesEdit)
					r.Post("/{id}", h.ServicesUpdate)
					r.Post("/{id}/delete", h.ServicesDelete)
				})

				r.With(h.RequireCapability(domain.CapBlog)).Route("/blog", func(r chi.Router) {
					r.Get("/", h.BlogList)
					r.Get("/new", h.BlogNew)
					r.Post("/", h.BlogCreate)
					r.Get("/{id}/edit", h.BlogEdit)
					r.Post("/{id}", h.BlogUpdate)
					r.Post("/{id}/delete", h.BlogDelete)
				})

				r.With(h.RequireCapability(domain.CapSettings)).Route("/settings", func(r chi.Router) {
					r.Get("/", h.SettingsPage)
					r.Post("/", h.SettingsSave)
					r.Post("/recipients", h.RecipientAdd)
					r.Post("/recipients/remove", h.RecipientRemove)
				})

				r.With(h.RequireCapability(domain.CapAnalytics)).Get("/analytics", h.AnalyticsPage)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireUnrestricted())
					r.Get("/users", h.UsersList)
					r.Post("/users", h.UsersCreate)
					r.Post("/users/{id}/delete", h.UsersDelete)
					r.Post("/users/{id}/capabilities/{capability}", h.UsersToggleCapability)
					r.Post("/users/{id}/unrestricted", h.UsersSetUnrestricted)
					r.Get("/audit", h.AuditPage)
				})
			})
		})
	})
}
