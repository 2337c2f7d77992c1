// Package media handles console file uploads.
package media

import (
	"context"
	"io"
	"strings"
	"time"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
	"studio-site/internal/service/auditutil"
	"studio-site/internal/storage"
)

// Service uploads files into the configured object store.
type Service struct {
	store    storage.Store
	audit    domain.AuditRepository
	maxBytes int64
	now      func() time.Time
}

// NewService creates a media Service. Files larger than maxBytes are rejected.
func NewService(store storage.Store, audit domain.AuditRepository, maxBytes int64) *Service {
	return &Service{store: store, audit: audit, maxBytes: maxBytes, now: time.Now}
}

// PrefixCapability returns the capability needed to upload into prefix.
func PrefixCapability(prefix string) domain.Capability {
	switch prefix {
	case storage.PrefixBlog:
		return domain.CapBlog
	case storage.PrefixTeam:
		return domain.CapTeam
	default:
		return domain.CapProjects
	}
}

// Upload stores body under a fresh key in prefix and returns its public URL.
// The stored content type follows the file extension, never the client's
// declared type.
func (s *Service) Upload(ctx context.Context, prefix, filename, _ string, size int64, body io.Reader) (string, error) {
	if !storage.ValidPrefix(prefix) {
		return "", domain.ErrValidation("unknown upload folder %q", prefix)
	}
	if err := access.Require(ctx, PrefixCapability(prefix)); err != nil {
		auditutil.LogDenied(ctx, s.audit, auditutil.Event{Action: "UPLOAD", Entity: "storage", Detail: prefix})
		return "", err
	}
	if size <= 0 {
		return "", domain.ErrValidation("file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", domain.ErrValidation("file exceeds the %d MB limit", s.maxBytes>>20)
	}
	ct, ok := storage.ContentType(prefix, filename)
	if !ok {
		return "", domain.ErrValidation("%s accepts only %s files", prefix, strings.Join(storage.AllowedExtensions(prefix), ", "))
	}

	key := storage.ObjectKey(prefix, filename, s.now())
	url, err := s.store.Put(ctx, key, io.LimitReader(body, size), size, ct)
	ev := auditutil.Event{Action: "UPLOAD", Entity: "storage", EntityID: key}
	if err != nil {
		auditutil.LogError(ctx, s.audit, ev, err)
		return "", err
	}
	auditutil.LogAllowed(ctx, s.audit, ev)
	return url, nil
}
