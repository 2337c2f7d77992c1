package domain

import (
	"context"
	"time"
)

// PrincipalRepository stores authenticated identities.
type PrincipalRepository interface {
	GetByID(ctx context.Context, id string) (*Principal, error)
	GetByEmail(ctx context.Context, email string) (*Principal, error)
}

// AdminRepository stores admin grants and their capability rows.
type AdminRepository interface {
	// GetGrant returns NotFoundError when the principal has no console access.
	GetGrant(ctx context.Context, userID string) (*AdminGrant, error)
	ListCapabilities(ctx context.Context, userID string) ([]string, error)
	List(ctx context.Context) ([]AdminUser, error)
	// Create inserts the principal, its admin grant and capability rows atomically.
	Create(ctx context.Context, p *Principal, isUnrestricted bool, caps []Capability) (*AdminUser, error)
	// Delete removes the grant and every capability row of userID atomically.
	Delete(ctx context.Context, userID string) error
	SetUnrestricted(ctx context.Context, userID string, unrestricted bool) error
	AddCapability(ctx context.Context, userID string, c Capability) error
	RemoveCapability(ctx context.Context, userID string, c Capability) error
}

// OrderRepository reads and writes display_order for reorderable collections.
type OrderRepository interface {
	ListOrder(ctx context.Context, c Collection) ([]OrderedItem, error)
	// ApplyOrder writes every assignment in one transaction. Assignments
	// naming ids outside the collection fail the whole batch.
	ApplyOrder(ctx context.Context, c Collection, order []OrderAssignment) error
	NextPosition(ctx context.Context, c Collection) (int, error)
}

// ProjectRepository provides CRUD operations for projects.
type ProjectRepository interface {
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id string) error
}

// TeamRepository provides CRUD operations for team members.
type TeamRepository interface {
	List(ctx context.Context) ([]TeamMember, error)
	GetByID(ctx context.Context, id string) (*TeamMember, error)
	Create(ctx context.Context, m *TeamMember) (*TeamMember, error)
	Update(ctx context.Context, m *TeamMember) (*TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// AwardRepository provides CRUD operations for awards.
type AwardRepository interface {
	List(ctx context.Context) ([]Award, error)
	GetByID(ctx context.Context, id string) (*Award, error)
	Create(ctx context.Context, a *Award) (*Award, error)
	Update(ctx context.Context, a *Award) (*Award, error)
	Delete(ctx context.Context, id string) error
}

// ServiceRepository provides CRUD operations for services.
type ServiceRepository interface {
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, s *Service) (*Service, error)
	Update(ctx context.Context, s *Service) (*Service, error)
	Delete(ctx context.Context, id string) error
}

// PartnerRepository provides CRUD operations for partners.
type PartnerRepository interface {
	List(ctx context.Context, activeOnly bool) ([]Partner, error)
	GetByID(ctx context.Context, id string) (*Partner, error)
	Create(ctx context.Context, p *Partner) (*Partner, error)
	Update(ctx context.Context, p *Partner) (*Partner, error)
	Delete(ctx context.Context, id string) error
}

// BlogRepository provides CRUD operations for blog posts.
type BlogRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]BlogPost, error)
	GetByID(ctx context.Context, id string) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)
	Create(ctx context.Context, b *BlogPost) (*BlogPost, error)
	Update(ctx context.Context, b *BlogPost) (*BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores site settings by key.
type SettingsRepository interface {
	List(ctx context.Context) ([]SiteSetting, error)
	Get(ctx context.Context, key string) (*SiteSetting, error)
	// Upsert writes all rows in one transaction.
	Upsert(ctx context.Context, rows []SiteSetting) error
}

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Insert(ctx context.Context, c *ContactSubmission) (*ContactSubmission, error)
	List(ctx context.Context, page PageRequest) ([]ContactSubmission, int64, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

// PageViewRepository stores page views for the analytics panel.
type PageViewRepository interface {
	Record(ctx context.Context, v *PageView) error
	Summary(ctx context.Context, since time.Time, topPaths int) (*AnalyticsSummary, error)
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
}
