// Package assets embeds the stylesheet served under /static.
package assets

import "embed"

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static directory.
func StaticFS() embed.FS {
	return staticFS
}
