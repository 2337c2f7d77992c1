package ui

import (
	"net/http"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Content.Settings(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	recipients, err := h.Content.Recipients(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	rows := make([]Node, len(recipients))
	for i, addr := range recipients {
		rows[i] = Tr(
			Td(Text(addr)),
			Td(Class("actions"), Form(Method("post"), Action("/admin/settings/recipients/remove"), Class("inline-form"),
				csrfField(r),
				Input(Type("hidden"), Name("email"), Value(addr)),
				Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Remove")),
			)),
		)
	}
	var recipientList Node = P(Class(mutedClass()), Text("No recipients. Contact notifications are not sent."))
	if len(recipients) > 0 {
		recipientList = table([]string{"Address", ""}, rows)
	}

	h.renderAdmin(w, r, adminPage{Title: "Settings", Active: "settings"},
		H2(Text("Hero stats")),
		formCard(r, "/admin/settings", "Save", settingFields(domain.HeroStatFields, settings)...),
		H2(Text("Contact details")),
		formCard(r, "/admin/settings", "Save", settingFields(domain.ContactFields, settings)...),
		H2(Text("Notification recipients")),
		Div(Class(cardClass()), recipientList),
		formCard(r, "/admin/settings/recipients", "Add recipient", Div(Class("field"),
			Label(For("recipient"), Text("Email")),
			Input(ID("recipient"), Type("email"), Name("email"), Required()),
		)),
	)
}

func settingFields(fields []domain.SettingField, s domain.Settings) []Node {
	out := make([]Node, len(fields))
	for i, f := range fields {
		out[i] = Div(Class("field"),
			Label(For(f.Key), Text(f.Label)),
			Input(ID(f.Key), Type("text"), Name(f.Key), Value(s.Get(f.Key, "")), Placeholder(f.Default)),
		)
	}
	return out
}

// SettingsSave stores whichever known setting keys the form carried.
func (h *Handler) SettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/settings", "", domain.ErrValidation("invalid form"))
		return
	}
	values := map[string]string{}
	for _, group := range [][]domain.SettingField{domain.HeroStatFields, domain.ContactFields} {
		for _, f := range group {
			if _, ok := r.Form[f.Key]; ok {
				values[f.Key] = formString(r.Form, f.Key)
			}
		}
	}
	h.done(w, r, "/admin/settings", "Settings saved", h.Content.SaveSettings(r.Context(), values))
}

func (h *Handler) RecipientAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/settings", "", domain.ErrValidation("invalid form"))
		return
	}
	_, err := h.Content.AddRecipient(r.Context(), formString(r.Form, "email"))
	h.done(w, r, "/admin/settings", "Recipient added", err)
}

func (h *Handler) RecipientRemove(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.done(w, r, "/admin/settings", "", domain.ErrValidation("invalid form"))
		return
	}
	_, err := h.Content.RemoveRecipient(r.Context(), formString(r.Form, "email"))
	h.done(w, r, "/admin/settings", "Recipient removed", err)
}
