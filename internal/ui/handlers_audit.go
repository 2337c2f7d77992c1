package ui

import (
	"net/http"
	"net/url"

	"studio-site/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func (h *Handler) AuditPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AuditFilter{
		ActorID: q.Get("actor"),
		Entity:  q.Get("entity"),
		Status:  q.Get("status"),
		Page:    pageFromRequest(r, 50),
	}
	entries, total, err := h.Audit.List(r.Context(), filter)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	rows := make([]Node, len(entries))
	for i, e := range entries {
		detail := ""
		if e.Detail != nil {
			detail = *e.Detail
		}
		tone := "success"
		switch e.Status {
		case domain.AuditDenied:
			tone = "danger"
		case domain.AuditError:
			tone = "warning"
		}
		actor := e.ActorEmail
		if actor == "" {
			actor = e.ActorID
		}
		rows[i] = Tr(
			Td(Text(formatTime(e.CreatedAt))),
			Td(Text(actor)),
			Td(Code(Text(e.Action))),
			Td(Text(e.Entity), If(e.EntityID != "", Span(Class(mutedClass()), Text(" "+e.EntityID)))),
			Td(statusLabel(e.Status, tone)),
			Td(Text(detail)),
		)
	}

	base := url.Values{}
	for _, k := range []string{"actor", "entity", "status"} {
		if v := q.Get(k); v != "" {
			base.Set(k, v)
		}
	}
	basePath := "/admin/audit"
	if enc := base.Encode(); enc != "" {
		basePath += "?" + enc + "&"
	} else {
		basePath += "?"
	}
	next := domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total)

	var list Node = emptyStateCard("No audit entries match.", "", "")
	if len(entries) > 0 {
		list = table([]string{"When", "Actor", "Action", "Entity", "Status", "Detail"}, rows)
	}
	h.renderAdmin(w, r, adminPage{Title: "Audit Log", Active: "audit"},
		Form(Method("get"), Action("/admin/audit"), Class(cardClass("filter-bar")),
			Input(Type("text"), Name("actor"), Value(filter.ActorID), Placeholder("Actor ID")),
			Input(Type("text"), Name("entity"), Value(filter.Entity), Placeholder("Entity")),
			Select(Name("status"),
				Option(Value(""), Text("Any status")),
				auditStatusOption(domain.AuditAllowed, filter.Status),
				auditStatusOption(domain.AuditDenied, filter.Status),
				auditStatusOption(domain.AuditError, filter.Status),
			),
			Button(Type("submit"), Class(secondaryButtonClass()), Text("Filter")),
		),
		list,
		auditNextLink(basePath, filter.Page, next),
	)
}

func auditStatusOption(status, selected string) Node {
	return Option(Value(status), If(status == selected, Selected()), Text(status))
}

func auditNextLink(basePath string, page domain.PageRequest, next string) Node {
	if next == "" {
		return nil
	}
	return Div(Class(cardClass()), A(
		Href(basePath+"max_results="+itoa(page.Limit())+"&page_token="+url.QueryEscape(next)),
		Text("Next page ->"),
	))
}
