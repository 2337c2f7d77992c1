// Package repository implements domain repository interfaces using SQLite.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"studio-site/internal/domain"
)

// mapDBError converts driver errors into typed domain errors. sqlite3.Error
// carries an extended code that identifies the violated constraint; the text
// match only applies to errors from other drivers.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}

	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &domain.ConflictError{Message: "resource already exists", Constraint: domain.ConstraintUnique}
		case sqlite3.ErrConstraintNotNull:
			return &domain.ValidationError{Message: "required field is missing", Constraint: domain.ConstraintNotNull}
		case sqlite3.ErrConstraintForeignKey:
			return &domain.ConflictError{Message: "resource is referenced by other data", Constraint: domain.ConstraintForeignKey}
		case sqlite3.ErrConstraintCheck:
			return &domain.ValidationError{Message: "value is not allowed", Constraint: domain.ConstraintCheck}
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &domain.ConflictError{Message: "resource already exists", Constraint: domain.ConstraintUnique}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &domain.ValidationError{Message: "required field is missing", Constraint: domain.ConstraintNotNull}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &domain.ConflictError{Message: "resource is referenced by other data", Constraint: domain.ConstraintForeignKey}
	}
	return err
}

// notFoundIfNone turns a zero-row mutation into a NotFoundError.
func notFoundIfNone(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("%s %q not found", what, id)
	}
	return nil
}

// withTx runs fn in a write transaction, committing on success.
func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s tx: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", name, err)
	}
	return nil
}

// jsonList stores a string slice as a JSON array in a TEXT column.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *jsonList) Scan(src any) error {
	return scanJSON(src, (*[]string)(l))
}

// socialLinks stores team member links as a JSON array of objects.
type socialLinks []domain.SocialLink

func (s socialLinks) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]domain.SocialLink(s))
	return string(b), err
}

func (s *socialLinks) Scan(src any) error {
	return scanJSON(src, (*[]domain.SocialLink)(s))
}

func scanJSON(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
