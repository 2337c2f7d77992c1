package service

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

// AuditService reads the console audit log. Only super admins may list it.
type AuditService struct {
	repo domain.AuditRepository
}

// NewAuditService creates an AuditService.
func NewAuditService(repo domain.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns audit entries newest first.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	if err := access.RequireUnrestricted(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}
