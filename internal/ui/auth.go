package ui

import (
	"net/http"
	"net/url"
	"strings"

	"studio-site/internal/domain"
	"studio-site/internal/middleware"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := domain.PrincipalFromContext(r.Context()); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(r, h.takeFlash(w, r), safeNext(r.URL.Query().Get("next"))))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.done(w, r, "/admin/login", "", domain.ErrValidation("invalid form"))
		return
	}
	next := safeNext(formString(r.Form, "next"))
	session, err := h.Identity.SignIn(r.Context(), domain.SignInRequest{
		Email:    formString(r.Form, "email"),
		Password: r.Form.Get("password"),
	})
	if err != nil {
		h.done(w, r, "/admin/login?next="+url.QueryEscape(next), "", err)
		return
	}
	middleware.SetSessionCookie(w, h.Auth, session.Token, session.ExpiresAt)
	h.Logger.Info("admin signed in", "principal_id", session.Principal.ID)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.Auth)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// safeNext keeps post-login redirects inside the console.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/admin") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/admin"
	}
	return next
}

// RequireCapability renders 403 unless the caller holds c. Services check
// again on every operation; this only keeps unreachable screens closed.
func (h *Handler) RequireCapability(c domain.Capability) func(http.Handler) http.Handler {
	return h.gate(func(a domain.Access) bool { return a.Has(c) })
}

// RequireUnrestricted renders 403 unless the caller is a super admin.
func (h *Handler) RequireUnrestricted() func(http.Handler) http.Handler {
	return h.gate(func(a domain.Access) bool { return a.IsUnrestricted })
}

// RequireAdmin renders 403 for signed-in principals without any grant.
func (h *Handler) RequireAdmin() func(http.Handler) http.Handler {
	return h.gate(domain.Access.IsAdmin)
}

func (h *Handler) gate(allowed func(domain.Access) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(domain.AccessFromContext(r.Context())) {
				renderHTML(w, http.StatusForbidden, errorPage("Access Denied", domain.MsgPermission))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loginPage(r *http.Request, f *flash, next string) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text("Sign in | Studio Admin")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("login-shell"),
				Div(
					Class(cardClass("login-card")),
					H1(Text("Tobiya Studio")),
					P(Class(mutedClass()), Text("Sign in to manage the site.")),
					toast(f),
					Form(
						Method("post"),
						Action("/admin/login"),
						Class("stack-form"),
						csrfField(r),
						Input(Type("hidden"), Name("next"), Value(next)),
						Label(For("email"), Text("Email")),
						Input(ID("email"), Type("email"), Name("email"), AutoComplete("username"), Required()),
						Label(For("password"), Text("Password")),
						Input(ID("password"), Type("password"), Name("password"), AutoComplete("current-password"), Required()),
						Button(Type("submit"), Class(primaryButtonClass()), Text("Sign In")),
					),
					P(A(Href("/"), Text("Back to the site"))),
				),
			),
		),
	)
}
