package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entityServices = "services"

// ListServices returns every service offering in display order.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	if err := access.Require(ctx, domain.CapServices); err != nil {
		return nil, err
	}
	return s.repos.Services.List(ctx)
}

// GetService returns one service offering by id.
func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	if err := access.Require(ctx, domain.CapServices); err != nil {
		return nil, err
	}
	return s.repos.Services.GetByID(ctx, id)
}

// CreateService validates v and appends it to the services list.
func (s *Service) CreateService(ctx context.Context, v domain.Service) (*domain.Service, error) {
	if err := s.authorize(ctx, domain.CapServices, "CREATE", entityServices, ""); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Services.Create(ctx, &v)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityServices, "", err)
	}
	return out, s.record(ctx, "CREATE", entityServices, out.ID, nil)
}

// UpdateService replaces the editable fields of service v.ID.
func (s *Service) UpdateService(ctx context.Context, v domain.Service) (*domain.Service, error) {
	if err := s.authorize(ctx, domain.CapServices, "UPDATE", entityServices, v.ID); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Services.Update(ctx, &v)
	return out, s.record(ctx, "UPDATE", entityServices, v.ID, err)
}

// DeleteService removes a service offering.
func (s *Service) DeleteService(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapServices, "DELETE", entityServices, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityServices, id, s.repos.Services.Delete(ctx, id))
}
