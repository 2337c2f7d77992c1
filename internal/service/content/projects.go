package content

import (
	"context"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entityProjects = "projects"

// ListProjects returns every project in display order.
func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if err := access.Require(ctx, domain.CapProjects); err != nil {
		return nil, err
	}
	return s.repos.Projects.List(ctx)
}

// GetProject returns one project by id.
func (s *Service) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if err := access.Require(ctx, domain.CapProjects); err != nil {
		return nil, err
	}
	return s.repos.Projects.GetByID(ctx, id)
}

// CreateProject validates p and appends it to the end of the portfolio.
func (s *Service) CreateProject(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if err := s.authorize(ctx, domain.CapProjects, "CREATE", entityProjects, ""); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Projects.Create(ctx, &p)
	if err != nil {
		return nil, s.record(ctx, "CREATE", entityProjects, "", err)
	}
	return out, s.record(ctx, "CREATE", entityProjects, out.ID, nil)
}

// UpdateProject replaces the editable fields of project p.ID.
func (s *Service) UpdateProject(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if err := s.authorize(ctx, domain.CapProjects, "UPDATE", entityProjects, p.ID); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repos.Projects.Update(ctx, &p)
	return out, s.record(ctx, "UPDATE", entityProjects, p.ID, err)
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.authorize(ctx, domain.CapProjects, "DELETE", entityProjects, id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", entityProjects, id, s.repos.Projects.Delete(ctx, id))
}
