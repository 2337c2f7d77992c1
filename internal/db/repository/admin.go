package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type adminRow struct {
	UserID         string    `db:"user_id"`
	Email          string    `db:"email"`
	IsUnrestricted bool      `db:"is_super_admin"`
	CreatedAt      time.Time `db:"created_at"`
}

// AdminRepo implements domain.AdminRepository.
type AdminRepo struct {
	db *sqlx.DB
}

// NewAdminRepo creates an AdminRepo.
func NewAdminRepo(db *sqlx.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// GetGrant returns the admin grant for userID.
func (r *AdminRepo) GetGrant(ctx context.Context, userID string) (*domain.AdminGrant, error) {
	var row adminRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, '' AS email, is_super_admin, created_at FROM admin_users WHERE user_id = ?`, userID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &domain.AdminGrant{UserID: row.UserID, IsUnrestricted: row.IsUnrestricted, CreatedAt: row.CreatedAt}, nil
}

// ListCapabilities returns the raw capability strings stored for userID.
func (r *AdminRepo) ListCapabilities(ctx context.Context, userID string) ([]string, error) {
	var caps []string
	err := r.db.SelectContext(ctx, &caps,
		`SELECT permission FROM admin_permissions WHERE user_id = ? ORDER BY permission`, userID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return caps, nil
}

// List returns every admin with their email and capability rows.
func (r *AdminRepo) List(ctx context.Context) ([]domain.AdminUser, error) {
	var rows []adminRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT a.user_id, u.email, a.is_super_admin, a.created_at
		FROM admin_users a JOIN auth_users u ON u.id = a.user_id
		ORDER BY a.created_at ASC, u.email ASC`)
	if err != nil {
		return nil, mapDBError(err)
	}

	var perms []struct {
		UserID     string `db:"user_id"`
		Permission string `db:"permission"`
	}
	if err := r.db.SelectContext(ctx, &perms, `SELECT user_id, permission FROM admin_permissions ORDER BY permission`); err != nil {
		return nil, mapDBError(err)
	}
	byUser := make(map[string][]domain.Capability)
	for _, p := range perms {
		if c, ok := domain.ParseCapability(p.Permission); ok {
			byUser[p.UserID] = append(byUser[p.UserID], c)
		}
	}

	out := make([]domain.AdminUser, len(rows))
	for i, row := range rows {
		out[i] = domain.AdminUser{
			AdminGrant:   domain.AdminGrant{UserID: row.UserID, IsUnrestricted: row.IsUnrestricted, CreatedAt: row.CreatedAt},
			Email:        row.Email,
			Capabilities: byUser[row.UserID],
		}
	}
	return out, nil
}

// Create inserts or reuses the principal for p.Email, then its admin grant and
// capability rows, in one transaction. A principal that already holds a grant
// is a conflict.
func (r *AdminRepo) Create(ctx context.Context, p *domain.Principal, isUnrestricted bool, caps []domain.Capability) (*domain.AdminUser, error) {
	now := nowUTC()
	var userID string

	err := withTx(ctx, r.db, "create-admin", func(tx *sqlx.Tx) error {
		var existing principalRow
		err := tx.GetContext(ctx, &existing, `SELECT id, email, password_hash, created_at FROM auth_users WHERE email = ?`, p.Email)
		var nf *domain.NotFoundError
		switch err = mapDBError(err); {
		case err == nil:
			userID = existing.ID
			if _, err := tx.ExecContext(ctx, `UPDATE auth_users SET password_hash = ? WHERE id = ?`, p.PasswordHash, userID); err != nil {
				return mapDBError(err)
			}
		case errors.As(err, &nf):
			userID = p.ID
			if userID == "" {
				userID = domain.NewID()
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO auth_users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
				userID, p.Email, p.PasswordHash, now); err != nil {
				return mapDBError(err)
			}
		default:
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO admin_users (id, user_id, is_super_admin, created_at) VALUES (?, ?, ?, ?)`,
			domain.NewID(), userID, isUnrestricted, now); err != nil {
			return mapDBError(err)
		}
		for _, c := range caps {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO admin_permissions (id, user_id, permission, created_at) VALUES (?, ?, ?, ?)`,
				domain.NewID(), userID, string(c), now); err != nil {
				return mapDBError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.AdminUser{
		AdminGrant:   domain.AdminGrant{UserID: userID, IsUnrestricted: isUnrestricted, CreatedAt: now},
		Email:        p.Email,
		Capabilities: caps,
	}, nil
}

// Delete removes every capability row of userID and then its grant. The
// principal itself is kept so its sign-in history survives.
func (r *AdminRepo) Delete(ctx context.Context, userID string) error {
	return withTx(ctx, r.db, "delete-admin", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_permissions WHERE user_id = ?`, userID); err != nil {
			return mapDBError(err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM admin_users WHERE user_id = ?`, userID)
		if err != nil {
			return mapDBError(err)
		}
		return notFoundIfNone(res, "admin", userID)
	})
}

// SetUnrestricted flips the super admin flag.
func (r *AdminRepo) SetUnrestricted(ctx context.Context, userID string, unrestricted bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admin_users SET is_super_admin = ? WHERE user_id = ?`, unrestricted, userID)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "admin", userID)
}

// AddCapability grants c to userID. Granting a held capability is a no-op.
func (r *AdminRepo) AddCapability(ctx context.Context, userID string, c domain.Capability) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_permissions (id, user_id, permission, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, permission) DO NOTHING`,
		domain.NewID(), userID, string(c), nowUTC())
	return mapDBError(err)
}

// RemoveCapability revokes c from userID. Revoking an absent capability is a no-op.
func (r *AdminRepo) RemoveCapability(ctx context.Context, userID string, c domain.Capability) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_permissions WHERE user_id = ? AND permission = ?`, userID, string(c))
	return mapDBError(err)
}
