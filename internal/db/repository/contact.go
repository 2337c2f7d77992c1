package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

type contactRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

func (r contactRow) toDomain() domain.ContactSubmission {
	return domain.ContactSubmission{
		ID: r.ID, Name: r.Name, Email: r.Email, Subject: r.Subject,
		Message: r.Message, Read: r.Read, CreatedAt: r.CreatedAt,
	}
}

// ContactRepo implements domain.ContactRepository.
type ContactRepo struct {
	db *sqlx.DB
}

// NewContactRepo creates a ContactRepo.
func NewContactRepo(db *sqlx.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// Insert stores a new unread submission.
func (r *ContactRepo) Insert(ctx context.Context, c *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	row := contactRow{
		ID: domain.NewID(), Name: c.Name, Email: c.Email, Subject: c.Subject,
		Message: c.Message, CreatedAt: nowUTC(),
	}
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO contact_submissions (id, name, email, subject, message, read, created_at)
		VALUES (:id, :name, :email, :subject, :message, :read, :created_at)`, row)
	if err != nil {
		return nil, mapDBError(err)
	}
	out := row.toDomain()
	return &out, nil
}

// List returns submissions newest first.
func (r *ContactRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.ContactSubmission, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM contact_submissions`); err != nil {
		return nil, 0, mapDBError(err)
	}
	var rows []contactRow
	err := r.db.SelectContext(ctx, &rows, `SELECT id, name, email, subject, message, read, created_at
		FROM contact_submissions ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, mapDBError(err)
	}
	out := make([]domain.ContactSubmission, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, total, nil
}

// SetRead marks a submission read or unread.
func (r *ContactRepo) SetRead(ctx context.Context, id string, read bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contact_submissions SET read = ? WHERE id = ?`, read, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "message", id)
}

// Delete removes a submission.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	return notFoundIfNone(res, "message", id)
}

// CountUnread returns the number of unread submissions.
func (r *ContactRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM contact_submissions WHERE read = 0`); err != nil {
		return 0, mapDBError(err)
	}
	return n, nil
}
