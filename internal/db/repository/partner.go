package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type partnerRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	LogoURL      string    `db:"logo_url"`
	WebsiteURL   string    `db:"website_url"`
	IsActive     bool      `db:"is_active"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r partnerRow) toDomain() domain.Partner {
	return domain.Partner{
		ID: r.ID, Name: r.Name, LogoURL: r.LogoURL, WebsiteURL: r.WebsiteURL,
		IsActive: r.IsActive, DisplayOrder: r.DisplayOrder, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const partnerColumns = `id, name, logo_url, website_url, is_active, display_order, created_at, updated_at`

// PartnerRepo implements domain.PartnerRepository.
type PartnerRepo struct {
	db *sqlx.DB
}

// NewPartnerRepo creates a PartnerRepo.
func NewPartnerRepo(db *sqlx.DB) *PartnerRepo {
	return &PartnerRepo{db: db}
}

// List returns partners in display order, optionally only the active ones.
func (r *PartnerRepo) List(ctx context.Context, activeOnly bool) ([]domain.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY ` + displayOrder

	var rows []partnerRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.Partner, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single partner.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	var row partnerRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+partnerColumns+` FROM partners WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	p := row.toDomain()
	return &p, nil
}

// Create appends the partner at the end of the display order.
func (r *PartnerRepo) Create(ctx context.Context, p *domain.Partner) (*domain.Partner, error) {
	now := nowUTC()
	row := partnerRow{
		ID: domain.NewID(), Name: p.Name, LogoURL: p.LogoURL, WebsiteURL: p.WebsiteURL,
		IsActive: p.IsActive, CreatedAt: now, UpdatedAt: now,
	}
	err := withTx(ctx, r.db, "create-partner", func(tx *sqlx.Tx) error {
		pos, err := nextPosition(ctx, tx, "partners")
		if err != nil {
			return err
		}
		row.DisplayOrder = pos
		_, err = tx.NamedExecContext(ctx, `INSERT INTO partners (`+partnerColumns+`) VALUES (
			:id, :name, :logo_url, :website_url, :is_active, :display_order, :created_at, :updated_at)`, row)
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields.
func (r *PartnerRepo) Update(ctx context.Context, p *domain.Partner) (*domain.Partner, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE partners SET name = ?, logo_url = ?, website_url = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.LogoURL, p.WebsiteURL, p.IsActive, nowUTC(), p.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "partner", p.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

// Delete removes a partner.
func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "partner", id)
}
