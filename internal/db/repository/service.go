package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type serviceRow struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Icon         string    `db:"icon"`
	Features     jsonList  `db:"features"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r serviceRow) toDomain() domain.Service {
	return domain.Service{
		ID: r.ID, Title: r.Title, Description: r.Description,
		Icon:     domain.ParseServiceIcon(r.Icon),
		Features: []string(r.Features), DisplayOrder: r.DisplayOrder,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const serviceColumns = `id, title, description, icon, features, display_order, created_at, updated_at`

// ServiceRepo implements domain.ServiceRepository.
type ServiceRepo struct {
	db *sqlx.DB
}

// NewServiceRepo creates a ServiceRepo.
func NewServiceRepo(db *sqlx.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

// List returns services in display order.
func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+serviceColumns+` FROM services ORDER BY `+displayOrder); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.Service, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single service.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	var row serviceRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	s := row.toDomain()
	return &s, nil
}

// Create appends the service at the end of the display order.
func (r *ServiceRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	now := nowUTC()
	row := serviceRow{
		ID: domain.NewID(), Title: s.Title, Description: s.Description, Icon: string(s.Icon),
		Features: jsonList(s.Features), CreatedAt: now, UpdatedAt: now,
	}
	err := withTx(ctx, r.db, "create-service", func(tx *sqlx.Tx) error {
		pos, err := nextPosition(ctx, tx, "services")
		if err != nil {
			return err
		}
		row.DisplayOrder = pos
		_, err = tx.NamedExecContext(ctx, `INSERT INTO services (`+serviceColumns+`) VALUES (
			:id, :title, :description, :icon, :features, :display_order, :created_at, :updated_at)`, row)
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields.
func (r *ServiceRepo) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET title = ?, description = ?, icon = ?, features = ?, updated_at = ? WHERE id = ?`,
		s.Title, s.Description, string(s.Icon), jsonList(s.Features), nowUTC(), s.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "service", s.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, s.ID)
}

// Delete removes a service.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "service", id)
}
