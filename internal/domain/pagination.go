package domain

import (
	"encoding/base64"
	"strconv"
)

// DefaultMaxResults is the page size used when a request names none.
const DefaultMaxResults = 50

// MaxMaxResults caps the page size of the inbox and audit log.
const MaxMaxResults = 500

// PageRequest holds offset pagination for the message inbox and audit log.
// PageToken is opaque to clients; it is a URL-safe encoding of the offset.
type PageRequest struct {
	MaxResults int
	PageToken  string
}

// Offset decodes the page token. Empty, malformed and negative tokens all
// mean the first page.
func (p PageRequest) Offset() int {
	if p.PageToken == "" {
		return 0
	}
	decoded, err := base64.RawURLEncoding.DecodeString(p.PageToken)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(decoded))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// Limit returns the effective page size, clamped to [1, MaxMaxResults].
func (p PageRequest) Limit() int {
	switch {
	case p.MaxResults <= 0:
		return DefaultMaxResults
	case p.MaxResults > MaxMaxResults:
		return MaxMaxResults
	}
	return p.MaxResults
}

// EncodePageToken returns the token for offset, or "" for the first page.
func EncodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// NextPageToken returns the token of the page after [offset, offset+limit),
// or "" when total rows fit on the pages already served.
func NextPageToken(offset, limit int, total int64) string {
	next := offset + limit
	if int64(next) >= total {
		return ""
	}
	return EncodePageToken(next)
}
