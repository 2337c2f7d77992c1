package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

// reorderScript moves the dragged row in place, writes the full id order
// into the collection's hidden form and submits it as one commit.
const reorderScript = `window.studioReorder = function (target, id, formId) {
  var body = target.parentElement;
  var rows = Array.prototype.slice.call(body.children);
  var moving = rows.find(function (row) { return row.dataset.id === id; });
  if (!moving || moving === target) { return; }
  body.insertBefore(moving, rows.indexOf(moving) < rows.indexOf(target) ? target.nextSibling : target);
  var form = document.getElementById(formId);
  form.elements.ids.value = Array.prototype.map.call(body.children, function (row) { return row.dataset.id; }).join(",");
  form.requestSubmit();
};`

func orderFormID(collection string) string {
	return "order-" + collection
}

// orderBack is the list page a collection is managed from.
func orderBack(collection string) string {
	switch collection {
	case "partners":
		return "/admin/projects"
	case "team_members":
		return "/admin/team"
	}
	return "/admin/" + collection
}

// dragRow is a table row that can be dropped onto another row of the same
// ordered table.
func dragRow(collection, id string, cells ...Node) Node {
	return Tr(
		Class("drag-row"),
		Draggable("true"),
		Data("id", id),
		data.On("dragstart", "$_dragging = el.dataset.id"),
		data.On("dragover", "evt.preventDefault()"),
		data.On("drop", "studioReorder(el, $_dragging, '"+orderFormID(collection)+"')", data.ModifierPrevent),
		Group(cells),
	)
}

// orderedTable renders rows built with dragRow plus the hidden form a drop
// submits. The form sits outside the table because rows hold their own forms.
func orderedTable(r *http.Request, collection string, headers []string, rows []Node) Node {
	th := make([]Node, len(headers))
	for i, hd := range headers {
		th[i] = Th(Text(hd))
	}
	return Div(Class(cardClass()),
		Table(Class("table"),
			THead(Tr(Group(th))),
			TBody(data.Signals(map[string]any{"_dragging": ""}), Group(rows)),
		),
		Form(ID(orderFormID(collection)), Method("post"), Action("/admin/order/"+collection),
			csrfField(r),
			Input(Type("hidden"), Name("ids")),
		),
		P(Class(mutedClass()), Text("Drag a row to change the order shown on the site.")),
	)
}

// OrderApply commits a full id order for a collection, as sent after a drag.
func (h *Handler) OrderApply(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if err := parseForm(r); err != nil {
		h.done(w, r, orderBack(collection), "", err)
		return
	}
	var ids []string
	for _, id := range strings.Split(r.FormValue("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	_, err := h.Content.ApplyOrder(r.Context(), collection, ids)
	h.done(w, r, orderBack(collection), "Order saved", err)
}
