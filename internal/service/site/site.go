// Package site assembles the public read model for the marketing pages.
package site

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"studio-site/internal/domain"
)

// Stat is one hero banner counter.
type Stat struct {
	Value string
	Label string
}

// ContactItem is one line of the contact section.
type ContactItem struct {
	Key   string
	Label string
	Value string
	Href  string
}

func newContactItem(key, label, value string) ContactItem {
	item := ContactItem{Key: key, Label: label, Value: value}
	if item.Label == "" {
		item.Label = key
	}
	switch key {
	case domain.SettingContactEmail:
		item.Href = "mailto:" + value
	case domain.SettingContactPhone:
		item.Href = "tel:" + strings.Join(strings.Fields(value), "")
	case domain.SettingContactWebsite:
		if strings.HasPrefix(value, "http") {
			item.Href = value
		} else {
			item.Href = "https://" + value
		}
	}
	return item
}

// Home is everything the landing page renders.
type Home struct {
	HeroStats []Stat
	Services  []domain.Service
	Projects  []domain.Project
	Team      []domain.TeamMember
	Awards    []domain.Award
	Partners  []domain.Partner
	Posts     []domain.BlogPost
	Contact   []ContactItem
}

// Readers groups the row stores the public site reads from.
type Readers struct {
	Projects domain.ProjectRepository
	Team     domain.TeamRepository
	Awards   domain.AwardRepository
	Services domain.ServiceRepository
	Partners domain.PartnerRepository
	Blog     domain.BlogRepository
	Settings domain.SettingsRepository
}

// Service serves public content. Reads never fail: a section whose query
// errors, or which is empty where the built-in dataset has content, is served
// from the fallback dataset.
type Service struct {
	r        Readers
	fallback *Dataset
	logger   *slog.Logger
}

// NewService creates a site Service.
func NewService(r Readers, fallback *Dataset, logger *slog.Logger) *Service {
	return &Service{r: r, fallback: fallback, logger: logger.With("component", "site")}
}

// Home loads every landing page section concurrently.
func (s *Service) Home(ctx context.Context) *Home {
	h := &Home{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.r.Settings.List(gctx)
		s.warn("settings", err)
		h.HeroStats = s.heroStats(rows)
		h.Contact = s.contact(rows)
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Services.List(gctx)
		h.Services = orFallback(v, err, s.fallback.Services, s.warn, "services")
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Projects.List(gctx)
		h.Projects = orFallback(v, err, s.fallback.Projects, s.warn, "projects")
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Team.List(gctx)
		h.Team = orFallback(v, err, s.fallback.Team, s.warn, "team")
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Awards.List(gctx)
		h.Awards = orFallback(v, err, s.fallback.Awards, s.warn, "awards")
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Partners.List(gctx, true)
		s.warn("partners", err)
		h.Partners = v
		return nil
	})
	g.Go(func() error {
		v, err := s.r.Blog.List(gctx, true)
		s.warn("blog", err)
		h.Posts = v
		return nil
	})

	_ = g.Wait()
	return h
}

// Project returns a project by slug, looking in the fallback dataset when the
// row store has no such project.
func (s *Service) Project(ctx context.Context, slug string) (*domain.Project, error) {
	p, err := s.r.Projects.GetBySlug(ctx, slug)
	if err == nil {
		return p, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		s.warn("project", err)
	}
	if fp, ok := s.fallback.project(slug); ok {
		return fp, nil
	}
	return nil, domain.ErrNotFound("project %q not found", slug)
}

// Post returns a published blog post by slug. Drafts are not found.
func (s *Service) Post(ctx context.Context, slug string) (*domain.BlogPost, error) {
	b, err := s.r.Blog.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !b.Published {
		return nil, domain.ErrNotFound("blog post %q not found", slug)
	}
	return b, nil
}

// BlogCategories lists the distinct post categories, "all" first.
// Posts without a category are filed under "General".
func BlogCategories(posts []domain.BlogPost) []string {
	out := []string{"all"}
	seen := map[string]bool{}
	for _, p := range posts {
		c := PostCategory(p)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// PostCategory returns the post's category, or "General".
func PostCategory(p domain.BlogPost) string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return "General"
}

func (s *Service) heroStats(rows []domain.SiteSetting) []Stat {
	byKey := make(map[string]domain.SiteSetting, len(rows))
	for _, r := range rows {
		byKey[r.Key] = r
	}
	out := make([]Stat, 0, len(domain.HeroStatFields))
	for _, f := range domain.HeroStatFields {
		r, ok := byKey[f.Key]
		if !ok {
			return s.fallback.HeroStats
		}
		label := r.Label
		if label == "" {
			label = f.Label
		}
		out = append(out, Stat{Value: r.Value, Label: label})
	}
	return out
}

func (s *Service) contact(rows []domain.SiteSetting) []ContactItem {
	var out []ContactItem
	for _, f := range domain.ContactFields {
		for _, r := range rows {
			if r.Key == f.Key && strings.TrimSpace(r.Value) != "" {
				label := r.Label
				if label == "" {
					label = f.Label
				}
				out = append(out, newContactItem(r.Key, label, r.Value))
			}
		}
	}
	if len(out) == 0 {
		return s.fallback.Contact
	}
	return out
}

func (s *Service) warn(section string, err error) {
	if err != nil {
		s.logger.Warn("public read failed, serving fallback", "section", section, "error", err)
	}
}

func orFallback[T any](rows []T, err error, fallback []T, warn func(string, error), section string) []T {
	warn(section, err)
	if err != nil || len(rows) == 0 {
		return fallback
	}
	return rows
}
