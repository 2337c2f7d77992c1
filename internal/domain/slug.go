package domain

import (
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of non-alphanumerics to a single
// dash and trims dashes from both ends.
func Slugify(s string) string {
	s = slugSeparators.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
