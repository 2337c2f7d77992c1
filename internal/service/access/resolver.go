// Package access resolves and administers console permissions.
package access

import (
	"context"
	"errors"
	"log/slog"

	"studio-site/internal/domain"
)

// Resolver computes the Access snapshot for a principal.
type Resolver struct {
	admins domain.AdminRepository
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(admins domain.AdminRepository, logger *slog.Logger) *Resolver {
	return &Resolver{admins: admins, logger: logger.With("component", "access")}
}

// Resolve returns the principal's access. An empty id, a missing grant, or
// any read failure yields NoAccess; failures are logged.
func (r *Resolver) Resolve(ctx context.Context, principalID string) domain.Access {
	if principalID == "" {
		return domain.NoAccess()
	}

	grant, err := r.admins.GetGrant(ctx, principalID)
	if err != nil {
		var nf *domain.NotFoundError
		if !errors.As(err, &nf) {
			r.logger.Warn("resolve admin grant failed", "principal_id", principalID, "error", err)
		}
		return domain.NoAccess()
	}
	if grant.IsUnrestricted {
		return domain.UnrestrictedAccess()
	}

	caps, err := r.admins.ListCapabilities(ctx, principalID)
	if err != nil {
		r.logger.Warn("list capabilities failed", "principal_id", principalID, "error", err)
		return domain.NoAccess()
	}
	return domain.RestrictedAccess(caps)
}

// Require returns AccessDeniedError unless the caller in ctx holds c.
func Require(ctx context.Context, c domain.Capability) error {
	if _, ok := domain.PrincipalFromContext(ctx); !ok {
		return domain.ErrAccessDenied("authentication required")
	}
	if !domain.AccessFromContext(ctx).Has(c) {
		return domain.ErrAccessDenied("%s access required", c)
	}
	return nil
}

// RequireUnrestricted returns AccessDeniedError unless the caller in ctx is a
// super admin.
func RequireUnrestricted(ctx context.Context) error {
	if _, ok := domain.PrincipalFromContext(ctx); !ok {
		return domain.ErrAccessDenied("authentication required")
	}
	if !domain.AccessFromContext(ctx).IsUnrestricted {
		return domain.ErrAccessDenied("super admin privileges required")
	}
	return nil
}
