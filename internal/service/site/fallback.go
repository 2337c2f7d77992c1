package site

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"studio-site/internal/domain"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackFile struct {
	HeroStats []fallbackSetting `yaml:"hero_stats"`
	Contact   []fallbackSetting `yaml:"contact"`
	Services  []struct {
		Title       string   `yaml:"title"`
		Icon        string   `yaml:"icon"`
		Description string   `yaml:"description"`
		Features    []string `yaml:"features"`
	} `yaml:"services"`
	Projects []struct {
		Title            string   `yaml:"title"`
		Slug             string   `yaml:"slug"`
		Category         string   `yaml:"category"`
		ShortDescription string   `yaml:"short_description"`
		CoverImageURL    string   `yaml:"cover_image_url"`
		ToolsUsed        []string `yaml:"tools_used"`
		Featured         bool     `yaml:"featured"`
	} `yaml:"projects"`
	Team []struct {
		Name string `yaml:"name"`
		Role string `yaml:"role"`
		Bio  string `yaml:"bio"`
	} `yaml:"team"`
	Awards []struct {
		Title       string `yaml:"title"`
		Year        int    `yaml:"year"`
		Description string `yaml:"description"`
	} `yaml:"awards"`
}

type fallbackSetting struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Dataset is the built-in content shown when the row store cannot serve a
// section.
type Dataset struct {
	HeroStats []Stat
	Contact   []ContactItem
	Services  []domain.Service
	Projects  []domain.Project
	Team      []domain.TeamMember
	Awards    []domain.Award
}

// LoadFallback parses the embedded dataset.
func LoadFallback() (*Dataset, error) {
	return parseFallback(fallbackYAML)
}

func parseFallback(raw []byte) (*Dataset, error) {
	var f fallbackFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fallback dataset: %w", err)
	}

	d := &Dataset{}
	for _, s := range f.HeroStats {
		d.HeroStats = append(d.HeroStats, Stat{Value: s.Value, Label: s.Label})
	}
	for _, s := range f.Contact {
		d.Contact = append(d.Contact, newContactItem(s.Key, s.Label, s.Value))
	}
	for i, s := range f.Services {
		d.Services = append(d.Services, domain.Service{
			ID: "fallback-service-" + strconv.Itoa(i), Title: s.Title, Description: s.Description,
			Icon: domain.ParseServiceIcon(s.Icon), Features: s.Features, DisplayOrder: i,
		})
	}
	for i, p := range f.Projects {
		cat, ok := domain.ParseProjectCategory(p.Category)
		if !ok {
			return nil, fmt.Errorf("fallback project %q: unknown category %q", p.Slug, p.Category)
		}
		d.Projects = append(d.Projects, domain.Project{
			ID: "fallback-project-" + strconv.Itoa(i), Title: p.Title, Slug: p.Slug, Category: cat,
			ShortDescription: p.ShortDescription, CoverImageURL: p.CoverImageURL,
			ToolsUsed: p.ToolsUsed, Featured: p.Featured, DisplayOrder: i,
		})
	}
	for i, m := range f.Team {
		d.Team = append(d.Team, domain.TeamMember{
			ID: "fallback-team-" + strconv.Itoa(i), Name: m.Name, Role: m.Role, Bio: m.Bio, DisplayOrder: i,
		})
	}
	for i, a := range f.Awards {
		year := a.Year
		d.Awards = append(d.Awards, domain.Award{
			ID: "fallback-award-" + strconv.Itoa(i), Title: a.Title, Year: &year, Description: a.Description, DisplayOrder: i,
		})
	}
	return d, nil
}

func (d *Dataset) project(slug string) (*domain.Project, bool) {
	for i := range d.Projects {
		if d.Projects[i].Slug == slug {
			p := d.Projects[i]
			return &p, true
		}
	}
	return nil, false
}
