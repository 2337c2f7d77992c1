// Package content implements the console's content management operations.
package content

import (
	"context"
	"errors"
	"time"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
	"studio-site/internal/service/auditutil"
)

// Repositories groups the row stores the content service writes to.
type Repositories struct {
	Projects domain.ProjectRepository
	Team     domain.TeamRepository
	Awards   domain.AwardRepository
	Services domain.ServiceRepository
	Partners domain.PartnerRepository
	Blog     domain.BlogRepository
	Settings domain.SettingsRepository
	Order    domain.OrderRepository
	Audit    domain.AuditRepository
}

// Service provides capability-gated CRUD over the site's content tables.
type Service struct {
	repos Repositories
	now   func() time.Time
}

// NewService creates a content Service.
func NewService(repos Repositories) *Service {
	return &Service{repos: repos, now: time.Now}
}

// authorize checks c and records a denial.
func (s *Service) authorize(ctx context.Context, c domain.Capability, action, entity, id string) error {
	if err := access.Require(ctx, c); err != nil {
		auditutil.LogDenied(ctx, s.repos.Audit, auditutil.Event{Action: action, Entity: entity, EntityID: id})
		return err
	}
	return nil
}

// record logs the outcome of a mutation and passes err through.
func (s *Service) record(ctx context.Context, action, entity, id string, err error) error {
	ev := auditutil.Event{Action: action, Entity: entity, EntityID: id}
	if err != nil {
		auditutil.LogError(ctx, s.repos.Audit, ev, err)
		return err
	}
	auditutil.LogAllowed(ctx, s.repos.Audit, ev)
	return nil
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}
