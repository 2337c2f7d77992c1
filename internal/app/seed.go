package app

import (
	"context"
	"fmt"

	"studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
	"studio-site/internal/service/identity"
)

// SeedAdmin creates a console user outside the permission checks so the
// first super admin can be bootstrapped. An existing principal with the same
// email keeps its ID and gets the new password; an existing grant is a conflict.
func SeedAdmin(ctx context.Context, st *db.Store, req domain.CreateAdminRequest) (*domain.AdminUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := repository.NewAdminRepo(st.Write).Create(ctx,
		&domain.Principal{Email: req.Email, PasswordHash: hash},
		req.IsUnrestricted, req.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("seed admin %s: %w", req.Email, err)
	}
	return u, nil
}
