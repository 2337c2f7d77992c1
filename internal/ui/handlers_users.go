package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	self := principalFromContext(r.Context()).ID
	rows := make([]Node, len(users))
	for i, u := range users {
		rows[i] = userRow(r, u, u.UserID == self)
	}
	h.renderAdmin(w, r, adminPage{Title: "Users", Active: "users"},
		table([]string{"Email", "Role", "Capabilities", ""}, rows),
		H2(Text("Add admin")),
		formCard(r, "/admin/users", "Create", newUserFields()...),
	)
}

func userRow(r *http.Request, u domain.AdminUser, self bool) Node {
	held := u.Access()
	caps := make([]Node, 0, len(domain.GrantableCapabilities()))
	for _, c := range domain.GrantableCapabilities() {
		label := c.Label()
		if held.Has(c) {
			label = "✓ " + label
		}
		if u.IsUnrestricted {
			caps = append(caps, statusLabel(label, "success"))
			continue
		}
		chip := "chip"
		if held.Has(c) {
			chip += " chip-on"
		}
		caps = append(caps, Form(Method("post"), Action("/admin/users/"+u.UserID+"/capabilities/"+string(c)), Class("inline-form"),
			csrfField(r),
			Button(Type("submit"), Class(chip), Text(label)),
		))
	}
	role, promote, flip := "Editor", "Make super admin", "true"
	if u.IsUnrestricted {
		role, promote, flip = "Super Admin", "Make editor", "false"
	}
	return Tr(
		Td(Text(u.Email), If(self, Span(Class(mutedClass()), Text(" (you)")))),
		Td(Text(role)),
		Td(Div(Class("chips"), Group(caps))),
		Td(Class("actions"), If(!self, Group([]Node{
			Form(Method("post"), Action("/admin/users/"+u.UserID+"/unrestricted"), Class("inline-form"),
				csrfField(r),
				Input(Type("hidden"), Name("unrestricted"), Value(flip)),
				Button(Type("submit"), Class("btn btn-sm"), Text(promote)),
			),
			postButton(r, "/admin/users/"+u.UserID+"/delete", "Delete", true),
		}))),
	)
}

func newUserFields() []Node {
	fields := []Node{
		Div(Class("field"), Label(For("email"), Text("Email")), Input(ID("email"), Type("email"), Name("email"), Required())),
		Div(Class("field"), Label(For("password"), Text("Password")), Input(ID("password"), Type("password"), Name("password"), AutoComplete("new-password"), Required())),
		checkbox("Super admin (every screen, including users)", "unrestricted", false),
	}
	for _, c := range domain.GrantableCapabilities() {
		fields = append(fields, Div(Class("field field-inline"),
			Input(ID("cap-"+string(c)), Type("checkbox"), Name("capabilities"), Value(string(c))),
			Label(For("cap-"+string(c)), Text(c.Label())),
		))
	}
	return fields
}

func (h *Handler) UsersCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/users", "", domain.ErrValidation("invalid form"))
		return
	}
	req := domain.CreateAdminRequest{
		Email:          formString(r.Form, "email"),
		Password:       r.Form.Get("password"),
		IsUnrestricted: formBool(r.Form, "unrestricted"),
	}
	for _, raw := range r.Form["capabilities"] {
		c, ok := domain.ParseCapability(raw)
		if !ok {
			h.done(w, r, "/admin/users", "", domain.ErrValidation("unknown capability %q", raw))
			return
		}
		req.Capabilities = append(req.Capabilities, c)
	}
	_, err := h.Users.Create(r.Context(), req)
	h.done(w, r, "/admin/users", "Admin created", err)
}

func (h *Handler) UsersDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Users.Delete(r.Context(), chi.URLParam(r, "id"))
	h.done(w, r, "/admin/users", "Admin removed", err)
}

func (h *Handler) UsersToggleCapability(w http.ResponseWriter, r *http.Request) {
	c, ok := domain.ParseCapability(chi.URLParam(r, "capability"))
	if !ok {
		h.done(w, r, "/admin/users", "", domain.ErrValidation("unknown capability"))
		return
	}
	_, err := h.Users.ToggleCapability(r.Context(), chi.URLParam(r, "id"), c)
	h.done(w, r, "/admin/users", "", err)
}

func (h *Handler) UsersSetUnrestricted(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/users", "", domain.ErrValidation("invalid form"))
		return
	}
	err := h.Users.SetUnrestricted(r.Context(), chi.URLParam(r, "id"), formBool(r.Form, "unrestricted"))
	h.done(w, r, "/admin/users", "Role updated", err)
}
