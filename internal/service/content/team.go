package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entityTeam = "team_members"

// ListTeam returns every team member in display order.
func (s *Service) ListTeam(ctx context.Context) ([]domain.TeamMember, error) {
	if err := access.Require(ctx, domain.CapTeam); err != nil {
		return nil, err
	}
	return s.repos.Team.List(ctx)
}

// GetTeamMember returns one team member by id.
func (s *Service) GetTeamMember(ctx context.Context, id string) (*domain.TeamMember, error) {
	if err := access.Require(ctx, domain.CapTeam); err != nil {
		return nil, err
	}
	return s.repos.Team.GetByID(ctx, id)
}

// CreateTeamMember validates m and appends it to the team list.
func (s *Service) CreateTeamMember(ctx context.Context, m domain.TeamMember) (*domain.TeamMember, error) {
	if err := s.authorize(ctx, domain.CapTeam, "CREATE", entityTeam, ""); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Team.Create(ctx, &m)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityTeam, "", err)
	}
	return out, s.record(ctx, "CREATE", entityTeam, out.ID, nil)
}

// UpdateTeamMember replaces the editable fields of member m.ID.
func (s *Service) UpdateTeamMember(ctx context.Context, m domain.TeamMember) (*domain.TeamMember, error) {
	if err := s.authorize(ctx, domain.CapTeam, "UPDATE", entityTeam, m.ID); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Team.Update(ctx, &m)
	return out, s.record(ctx, "UPDATE", entityTeam, m.ID, err)
}

// SetSocialLinks replaces the social links of member id.
func (s *Service) SetSocialLinks(ctx context.Context, id string, links []domain.SocialLink) (*domain.TeamMember, error) {
	if err := s.authorize(ctx, domain.CapTeam, "UPDATE_SOCIAL_LINKS", entityTeam, id); err != nil {
		return nil, err
	}
	m, err := s.repos.Team.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.SocialLinks = links
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Team.Update(ctx, m)
	return out, s.record(ctx, "UPDATE_SOCIAL_LINKS", entityTeam, id, err)
}

// DeleteTeamMember removes a team member.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapTeam, "DELETE", entityTeam, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityTeam, id, s.repos.Team.Delete(ctx, id))
}
