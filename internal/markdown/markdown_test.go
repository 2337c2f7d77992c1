package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	out, err := r.Render("# Building for Quest 3\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Building for Quest 3</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")

	out, err = r.Render("hi <script>alert(1)</script>\n\n<div onclick=\"x\">raw</div>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "onclick")

	out, err = r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")

	out, err = r.Render("[x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript:")
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 1, ReadingMinutes(""))
	assert.Equal(t, 3, ReadingMinutes(strings.Repeat("word ", 450)))
}
