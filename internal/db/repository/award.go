package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type awardRow struct {
	ID           string        `db:"id"`
	Title        string        `db:"title"`
	Year         sql.NullInt64 `db:"year"`
	Description  string        `db:"description"`
	ImageURL     string        `db:"image_url"`
	DisplayOrder int           `db:"display_order"`
	CreatedAt    time.Time     `db:"created_at"`
}

func (r awardRow) toDomain() domain.Award {
	a := domain.Award{
		ID: r.ID, Title: r.Title, Description: r.Description, ImageURL: r.ImageURL,
		DisplayOrder: r.DisplayOrder, CreatedAt: r.CreatedAt,
	}
	if r.Year.Valid {
		y := int(r.Year.Int64)
		a.Year = &y
	}
	return a
}

func nullYear(y *int) sql.NullInt64 {
	if y == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*y), Valid: true}
}

const awardColumns = `id, title, year, description, image_url, display_order, created_at`

// AwardRepo implements domain.AwardRepository.
type AwardRepo struct {
	db *sqlx.DB
}

// NewAwardRepo creates an AwardRepo.
func NewAwardRepo(db *sqlx.DB) *AwardRepo {
	return &AwardRepo{db: db}
}

// List returns awards in display order.
func (r *AwardRepo) List(ctx context.Context) ([]domain.Award, error) {
	var rows []awardRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+awardColumns+` FROM awards ORDER BY `+displayOrder); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.Award, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// GetByID returns a single award.
func (r *AwardRepo) GetByID(ctx context.Context, id string) (*domain.Award, error) {
	var row awardRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+awardColumns+` FROM awards WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	a := row.toDomain()
	return &a, nil
}

// Create appends the award at the end of the display order.
func (r *AwardRepo) Create(ctx context.Context, a *domain.Award) (*domain.Award, error) {
	row := awardRow{
		ID: domain.NewID(), Title: a.Title, Year: nullYear(a.Year), Description: a.Description,
		ImageURL: a.ImageURL, CreatedAt: nowUTC(),
	}
	err := withTx(ctx, r.db, "create-award", func(tx *sqlx.Tx) error {
		pos, err := nextPosition(ctx, tx, "awards")
		if err != nil {
			return err
		}
		row.DisplayOrder = pos
		_, err = tx.NamedExecContext(ctx, `INSERT INTO awards (`+awardColumns+`) VALUES (
			:id, :title, :year, :description, :image_url, :display_order, :created_at)`, row)
		return mapDBError(err)
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// Update overwrites the editable fields.
func (r *AwardRepo) Update(ctx context.Context, a *domain.Award) (*domain.Award, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE awards SET title = ?, year = ?, description = ?, image_url = ? WHERE id = ?`,
		a.Title, nullYear(a.Year), a.Description, a.ImageURL, a.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := notFoundIfNone(res, "award", a.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID)
}

// Delete removes an award.
func (r *AwardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM awards WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "award", id)
}
