package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type settingRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	Label     string    `db:"label"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r settingRow) toDomain() domain.SiteSetting {
	return domain.SiteSetting{Key: r.Key, Value: r.Value, Label: r.Label, UpdatedAt: r.UpdatedAt}
}

// SettingsRepo implements domain.SettingsRepository.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// List returns every setting ordered by key.
func (r *SettingsRepo) List(ctx context.Context) ([]domain.SiteSetting, error) {
	var rows []settingRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value, label, updated_at FROM site_settings ORDER BY key`); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.SiteSetting, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Get returns a single setting.
func (r *SettingsRepo) Get(ctx context.Context, key string) (*domain.SiteSetting, error) {
	var row settingRow
	if err := r.db.GetContext(ctx, &row, `SELECT key, value, label, updated_at FROM site_settings WHERE key = ?`, key); err != nil {
		return nil, mapDBError(err)
	}
	s := row.toDomain()
	return &s, nil
}

// Upsert inserts or updates rows by key in one transaction. An empty label
// keeps the stored one.
func (r *SettingsRepo) Upsert(ctx context.Context, rows []domain.SiteSetting) error {
	now := nowUTC()
	return withTx(ctx, r.db, "upsert-settings", func(tx *sqlx.Tx) error {
		for _, s := range rows {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO site_settings (id, key, value, label, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (key) DO UPDATE SET
					value = excluded.value,
					label = CASE WHEN excluded.label = '' THEN site_settings.label ELSE excluded.label END,
					updated_at = excluded.updated_at`,
				domain.NewID(), s.Key, s.Value, s.Label, now, now)
			if err != nil {
				return mapDBError(err)
			}
		}
		return nil
	})
}
