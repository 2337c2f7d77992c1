package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

// Partners are managed from the projects screen and share its capability.
const entityPartners = "partners"

// ListPartners returns every partner, active or not, in display order.
func (s *Service) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	if err := access.Require(ctx, domain.CapProjects); err != nil {
		return nil, err
	}
	return s.repos.Partners.List(ctx, false)
}

// GetPartner returns one partner by id.
func (s *Service) GetPartner(ctx context.Context, id string) (*domain.Partner, error) {
	if err := access.Require(ctx, domain.CapProjects); err != nil {
		return nil, err
	}
	return s.repos.Partners.GetByID(ctx, id)
}

// CreatePartner validates p and appends it to the partner strip.
func (s *Service) CreatePartner(ctx context.Context, p domain.Partner) (*domain.Partner, error) {
	if err := s.authorize(ctx, domain.CapProjects, "CREATE", entityPartners, ""); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Partners.Create(ctx, &p)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityPartners, "", err)
	}
	return out, s.record(ctx, "CREATE", entityPartners, out.ID, nil)
}

// UpdatePartner replaces the editable fields of partner p.ID.
func (s *Service) UpdatePartner(ctx context.Context, p domain.Partner) (*domain.Partner, error) {
	if err := s.authorize(ctx, domain.CapProjects, "UPDATE", entityPartners, p.ID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Partners.Update(ctx, &p)
	return out, s.record(ctx, "UPDATE", entityPartners, p.ID, err)
}

// TogglePartnerActive flips whether a partner is shown on the public site.
func (s *Service) TogglePartnerActive(ctx context.Context, id string) (*domain.Partner, error) {
	if err := s.authorize(ctx, domain.CapProjects, "UPDATE", entityPartners, id); err != nil {
		return nil, err
	}
	p, err := s.repos.Partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsActive = !p.IsActive
	out, err := s.repos.Partners.Update(ctx, p)
	return out, s.record(ctx, "UPDATE", entityPartners, id, err)
}

// DeletePartner removes a partner.
func (s *Service) DeletePartner(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapProjects, "DELETE", entityPartners, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityPartners, id, s.repos.Partners.Delete(ctx, id))
}
