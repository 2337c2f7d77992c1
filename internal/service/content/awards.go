package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entityAwards = "awards"

// ListAwards returns every award in display order.
func (s *Service) ListAwards(ctx context.Context) ([]domain.Award, error) {
	if err := access.Require(ctx, domain.CapAwards); err != nil {
		return nil, err
	}
	return s.repos.Awards.List(ctx)
}

// GetAward returns one award by id.
func (s *Service) GetAward(ctx context.Context, id string) (*domain.Award, error) {
	if err := access.Require(ctx, domain.CapAwards); err != nil {
		return nil, err
	}
	return s.repos.Awards.GetByID(ctx, id)
}

// CreateAward validates a and appends it to the awards list.
func (s *Service) CreateAward(ctx context.Context, a domain.Award) (*domain.Award, error) {
	if err := s.authorize(ctx, domain.CapAwards, "CREATE", entityAwards, ""); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Awards.Create(ctx, &a)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityAwards, "", err)
	}
	return out, s.record(ctx, "CREATE", entityAwards, out.ID, nil)
}

// UpdateAward replaces the editable fields of award a.ID.
func (s *Service) UpdateAward(ctx context.Context, a domain.Award) (*domain.Award, error) {
	if err := s.authorize(ctx, domain.CapAwards, "UPDATE", entityAwards, a.ID); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Awards.Update(ctx, &a)
	return out, s.record(ctx, "UPDATE", entityAwards, a.ID, err)
}

// DeleteAward removes an award.
func (s *Service) DeleteAward(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapAwards, "DELETE", entityAwards, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityAwards, id, s.repos.Awards.Delete(ctx, id))
}
