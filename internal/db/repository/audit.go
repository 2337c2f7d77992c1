package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type auditRow struct {
	ID         string         `db:"id"`
	ActorID    string         `db:"actor_id"`
	ActorEmail string         `db:"actor_email"`
	Action     string         `db:"action"`
	Entity     string         `db:"entity"`
	EntityID   string         `db:"entity_id"`
	Status     string         `db:"status"`
	Detail     sql.NullString `db:"detail"`
	CreatedAt  time.Time      `db:"created_at"`
}

// AuditRepo implements domain.AuditRepository.
type AuditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates an AuditRepo.
func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Insert appends an entry.
func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	row := auditRow{
		ID: e.ID, ActorID: e.ActorID, ActorEmail: e.ActorEmail, Action: e.Action,
		Entity: e.Entity, EntityID: e.EntityID, Status: e.Status, CreatedAt: e.CreatedAt,
	}
	if row.ID == "" {
		row.ID = domain.NewID()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = nowUTC()
	}
	if e.Detail != nil {
		row.Detail = sql.NullString{String: *e.Detail, Valid: true}
	}
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO audit_log
		(id, actor_id, actor_email, action, entity, entity_id, status, detail, created_at)
		VALUES (:id, :actor_id, :actor_email, :action, :entity, :entity_id, :status, :detail, :created_at)`, row)
	return mapDBError(err)
}

// List returns entries newest first, narrowed by filter.
func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	var where []string
	var args []any
	if filter.ActorID != "" {
		where = append(where, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if filter.Entity != "" {
		where = append(where, "entity = ?")
		args = append(args, filter.Entity)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM audit_log`+clause, args...); err != nil {
		return nil, 0, mapDBError(err)
	}

	var rows []auditRow
	q := `SELECT id, actor_id, actor_email, action, entity, entity_id, status, detail, created_at
		FROM audit_log` + clause + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &rows, q, append(args, filter.Page.Limit(), filter.Page.Offset())...); err != nil {
		return nil, 0, mapDBError(err)
	}

	out := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		out[i] = domain.AuditEntry{
			ID: row.ID, ActorID: row.ActorID, ActorEmail: row.ActorEmail, Action: row.Action,
			Entity: row.Entity, EntityID: row.EntityID, Status: row.Status, CreatedAt: row.CreatedAt,
		}
		if row.Detail.Valid {
			d := row.Detail.String
			out[i].Detail = &d
		}
	}
	return out, total, nil
}
