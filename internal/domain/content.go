package domain

import (
	"strings"
	"time"
)

// ProjectCategory is the closed set of portfolio categories.
type ProjectCategory string

// Project categories.
const (
	CategoryVR          ProjectCategory = "vr"
	CategoryAR          ProjectCategory = "ar"
	CategoryInteractive ProjectCategory = "interactive"
	CategoryAward       ProjectCategory = "award"
)

// ProjectCategories lists the categories in filter order.
var ProjectCategories = []ProjectCategory{CategoryVR, CategoryAR, CategoryInteractive, CategoryAward}

// ParseProjectCategory returns the category named by s.
func ParseProjectCategory(s string) (ProjectCategory, bool) {
	for _, c := range ProjectCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Label returns the display label for the category.
func (c ProjectCategory) Label() string {
	switch c {
	case CategoryVR:
		return "VR"
	case CategoryAR:
		return "AR"
	case CategoryInteractive:
		return "Interactive"
	case CategoryAward:
		return "Award Winning"
	}
	return string(c)
}

// Project is a portfolio entry.
type Project struct {
	ID               string
	Title            string
	Slug             string
	Category         ProjectCategory
	ShortDescription string
	FullDescription  string
	CoverImageURL    string
	VideoURL         string
	ProjectLink      string
	ToolsUsed        []string
	GalleryImages    []string
	Featured         bool
	DisplayOrder     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate normalises the project and checks required fields.
func (p *Project) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrValidation("title is required")
	}
	p.Slug = Slugify(p.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Slug == "" {
		return ErrValidation("slug is required")
	}
	if p.Category == "" {
		p.Category = CategoryVR
	}
	if _, ok := ParseProjectCategory(string(p.Category)); !ok {
		return ErrValidation("category must be one of vr, ar, interactive, award")
	}
	p.ToolsUsed = CleanList(p.ToolsUsed)
	p.GalleryImages = CleanList(p.GalleryImages)
	return nil
}

// TeamMember is a studio team profile.
type TeamMember struct {
	ID           string
	Name         string
	Role         string
	Bio          string
	PhotoURL     string
	LinkedinURL  string
	TwitterURL   string
	SocialLinks  []SocialLink
	DisplayOrder int
	CreatedAt    time.Time
}

// Validate normalises the member and checks required fields.
func (m *TeamMember) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
	if m.Name == "" || m.Role == "" {
		return ErrValidation("name and role are required")
	}
	links := m.SocialLinks[:0]
	for _, l := range m.SocialLinks {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			continue
		}
		l.Platform = ParseSocialPlatform(string(l.Platform))
		links = append(links, l)
	}
	m.SocialLinks = links
	return nil
}

// Award is a recognition shown in the awards section.
type Award struct {
	ID           string
	Title        string
	Year         *int
	Description  string
	ImageURL     string
	DisplayOrder int
	CreatedAt    time.Time
}

// Validate normalises the award and checks required fields.
func (a *Award) Validate() error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return ErrValidation("title is required")
	}
	if a.Year != nil && (*a.Year < 1900 || *a.Year > 3000) {
		return ErrValidation("year %d is out of range", *a.Year)
	}
	return nil
}

// Service is an offering shown in the services section.
type Service struct {
	ID           string
	Title        string
	Description  string
	Icon         ServiceIcon
	Features     []string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate normalises the service and checks required fields.
func (s *Service) Validate() error {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	if s.Title == "" || s.Description == "" {
		return ErrValidation("title and description are required")
	}
	s.Icon = ParseServiceIcon(string(s.Icon))
	s.Features = CleanList(s.Features)
	return nil
}

// Partner is a client or collaborator logo.
type Partner struct {
	ID           string
	Name         string
	LogoURL      string
	WebsiteURL   string
	IsActive     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate normalises the partner and checks required fields.
func (p *Partner) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.LogoURL = strings.TrimSpace(p.LogoURL)
	if p.Name == "" || p.LogoURL == "" {
		return ErrValidation("name and logo are required")
	}
	return nil
}

// DefaultAuthorName is used when a blog post has no author.
const DefaultAuthorName = "Tobiya Studio"

// BlogPost is a markdown article.
type BlogPost struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	CoverImageURL string
	Category      string
	AuthorName    string
	Published     bool
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate normalises the post and checks required fields.
func (b *BlogPost) Validate() error {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" || strings.TrimSpace(b.Content) == "" {
		return ErrValidation("title and content are required")
	}
	b.Slug = Slugify(b.Slug)
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	if b.Slug == "" {
		return ErrValidation("slug is required")
	}
	b.AuthorName = strings.TrimSpace(b.AuthorName)
	if b.AuthorName == "" {
		b.AuthorName = DefaultAuthorName
	}
	return nil
}

// StampPublished sets PublishedAt the first time a post is published.
func (b *BlogPost) StampPublished(prev *BlogPost, now time.Time) {
	if !b.Published {
		return
	}
	if prev != nil && prev.PublishedAt != nil {
		b.PublishedAt = prev.PublishedAt
		return
	}
	if b.PublishedAt == nil {
		t := now.UTC()
		b.PublishedAt = &t
	}
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Contact form field caps, in characters.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 255
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// Validate trims the submission and checks presence, shape and length.
func (c *ContactSubmission) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
	if c.Name == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return ErrValidation("name, email, subject and message are required")
	}
	if !ValidEmail(c.Email) {
		return ErrValidation("email %q is not a valid address", c.Email)
	}
	switch {
	case len([]rune(c.Name)) > MaxNameLength:
		return ErrValidation("name must be at most %d characters", MaxNameLength)
	case len([]rune(c.Email)) > MaxEmailLength:
		return ErrValidation("email must be at most %d characters", MaxEmailLength)
	case len([]rune(c.Subject)) > MaxSubjectLength:
		return ErrValidation("subject must be at most %d characters", MaxSubjectLength)
	case len([]rune(c.Message)) > MaxMessageLength:
		return ErrValidation("message must be at most %d characters", MaxMessageLength)
	}
	return nil
}

// CleanList trims entries and drops empty ones.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList parses a comma separated form value.
func SplitList(s string) []string {
	return CleanList(strings.Split(s, ","))
}
