package notify

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// renderBody builds the notification HTML. gomponents escapes every text node.
func renderBody(n Notification) (string, error) {
	doc := h.Div(h.Style("font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;"),
		h.H2(h.Style("color: #00d9ff;"), g.Text("New Contact Form Submission")),
		h.Div(h.Style("background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;"),
			h.P(h.Strong(g.Text("From:")), g.Text(" "+n.Name)),
			h.P(h.Strong(g.Text("Email:")), g.Text(" "), h.A(h.Href("mailto:"+n.Email), g.Text(n.Email))),
			h.P(h.Strong(g.Text("Subject:")), g.Text(" "+n.Subject)),
		),
		h.Div(h.Style("background: #fff; border: 1px solid #ddd; padding: 20px; border-radius: 8px;"),
			h.H3(h.Style("margin-top: 0;"), g.Text("Message:")),
			h.P(h.Style("white-space: pre-wrap;"), g.Text(n.Message)),
		),
		h.P(h.Style("color: #888; font-size: 12px; margin-top: 20px;"),
			g.Text("This email was sent from the contact form on tobiyastudio.com"),
		),
	)
	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}
