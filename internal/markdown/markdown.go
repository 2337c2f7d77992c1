// Package markdown renders blog post bodies to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. Raw HTML in the source is dropped.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GitHub-flavored extensions.
func New() *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)}
}

// Render returns the HTML for src.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// ReadingMinutes estimates reading time at 200 words a minute, minimum one.
func ReadingMinutes(src string) int {
	return len(strings.Fields(src))/200 + 1
}
