package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

// OrderRepo implements domain.OrderRepository over the display_order column.
type OrderRepo struct {
	db *sqlx.DB
	rd *sqlx.DB
}

// NewOrderRepo creates an OrderRepo. Reads go to rd, writes to db.
func NewOrderRepo(db, rd *sqlx.DB) *OrderRepo {
	return &OrderRepo{db: db, rd: rd}
}

// displayOrder is the sort every ordered list and ListOrder share, so an
// index a reader sees is the index a reorder acts on.
const displayOrder = "display_order ASC, created_at ASC, id ASC"

// table returns the table for c. Only parsed collections reach the SQL text.
func table(c domain.Collection) (string, error) {
	if _, ok := domain.ParseCollection(string(c)); !ok {
		return "", domain.ErrValidation("collection %q is not reorderable", c)
	}
	return string(c), nil
}

// ListOrder returns the collection sorted as readers see it.
func (r *OrderRepo) ListOrder(ctx context.Context, c domain.Collection) ([]domain.OrderedItem, error) {
	t, err := table(c)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID           string `db:"id"`
		DisplayOrder int    `db:"display_order"`
	}
	q := fmt.Sprintf(`SELECT id, display_order FROM %s ORDER BY %s`, t, displayOrder)
	if err := r.rd.SelectContext(ctx, &rows, q); err != nil {
		return nil, mapDBError(err)
	}
	out := make([]domain.OrderedItem, len(rows))
	for i, row := range rows {
		out[i] = domain.OrderedItem{ID: row.ID, DisplayOrder: row.DisplayOrder}
	}
	return out, nil
}

// ApplyOrder writes every assignment in a single transaction. An id that does
// not exist in the collection rolls back the whole batch.
func (r *OrderRepo) ApplyOrder(ctx context.Context, c domain.Collection, order []domain.OrderAssignment) error {
	t, err := table(c)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE %s SET display_order = ? WHERE id = ?`, t)
	return withTx(ctx, r.db, "apply-order", func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, q)
		if err != nil {
			return fmt.Errorf("prepare order update: %w", err)
		}
		defer stmt.Close() //nolint:errcheck

		for _, a := range order {
			res, err := stmt.ExecContext(ctx, a.Position, a.ID)
			if err != nil {
				return mapDBError(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return domain.ErrValidation("item %q does not belong to %s", a.ID, c)
			}
		}
		return nil
	})
}

// NextPosition returns max(display_order)+1, or 0 for an empty collection.
func (r *OrderRepo) NextPosition(ctx context.Context, c domain.Collection) (int, error) {
	t, err := table(c)
	if err != nil {
		return 0, err
	}
	return nextPosition(ctx, r.db, t)
}

func nextPosition(ctx context.Context, q sqlx.QueryerContext, tableName string) (int, error) {
	var next int
	err := sqlx.GetContext(ctx, q, &next, fmt.Sprintf(`SELECT COALESCE(MAX(display_order) + 1, 0) FROM %s`, tableName))
	if err != nil {
		return 0, mapDBError(err)
	}
	return next, nil
}
