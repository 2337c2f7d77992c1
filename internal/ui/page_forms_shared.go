package ui

import (
	"net/http"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// formCard renders a multipart form posting to action.
func formCard(r *http.Request, action, submit string, fields ...Node) Node {
	nodes := []Node{csrfField(r)}
	nodes = append(nodes, fields...)
	return Div(
		Class(cardClass()),
		Form(
			Class("stack-form"),
			Method("post"),
			Action(action),
			EncType("multipart/form-data"),
			Group(nodes),
			Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text(submit))),
		),
	)
}

func textField(label, name, value string, required bool) Node {
	return Div(Class("field"),
		Label(For(name), Text(label)),
		Input(ID(name), Type("text"), Name(name), Value(value), If(required, Required())),
	)
}

func textArea(label, name, value string, rows int, required bool) Node {
	return Div(Class("field"),
		Label(For(name), Text(label)),
		Textarea(ID(name), Name(name), Rows(itoa(rows)), If(required, Required()), Text(value)),
	)
}

func checkbox(label, name string, checked bool) Node {
	return Div(Class("field field-inline"),
		Input(ID(name), Type("checkbox"), Name(name), Value("true"), If(checked, Checked())),
		Label(For(name), Text(label)),
	)
}

func selectField(label, name, selected string, options [][2]string) Node {
	opts := make([]Node, len(options))
	for i, o := range options {
		opts[i] = Option(Value(o[0]), If(o[0] == selected, Selected()), Text(o[1]))
	}
	return Div(Class("field"),
		Label(For(name), Text(label)),
		Select(ID(name), Name(name), Group(opts)),
	)
}

// fileField shows the current asset next to a file picker. The URL can also
// be typed in directly.
func fileField(label, name, urlName, current, accept string) Node {
	return Div(Class("field"),
		Label(For(urlName), Text(label)),
		If(current != "" && strings.HasPrefix(accept, "image"), Img(Class("thumb"), Src(current), Alt(label))),
		Input(ID(urlName), Type("url"), Name(urlName), Value(current), Placeholder("https://")),
		Input(Type("file"), Name(name), Accept(accept)),
	)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
