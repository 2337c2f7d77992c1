package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type principalRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r principalRow) toDomain() *domain.Principal {
	return &domain.Principal{ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

// PrincipalRepo implements domain.PrincipalRepository.
type PrincipalRepo struct {
	db *sqlx.DB
}

// NewPrincipalRepo creates a PrincipalRepo.
func NewPrincipalRepo(db *sqlx.DB) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

// GetByID returns the principal with the given id.
func (r *PrincipalRepo) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	var row principalRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, email, password_hash, created_at FROM auth_users WHERE id = ?`, id); err != nil {
		return nil, mapDBError(err)
	}
	return row.toDomain(), nil
}

// GetByEmail returns the principal with the given email, case-insensitively.
func (r *PrincipalRepo) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	var row principalRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, email, password_hash, created_at FROM auth_users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, mapDBError(err)
	}
	return row.toDomain(), nil
}

// UpdatePassword replaces the stored hash.
func (r *PrincipalRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE auth_users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "principal", id)
}
