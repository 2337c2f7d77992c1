package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"studio-site/internal/domain"
)

// PageViewRepo implements domain.PageViewRepository.
type PageViewRepo struct {
	db *sqlx.DB
}

// NewPageViewRepo creates a PageViewRepo.
func NewPageViewRepo(db *sqlx.DB) *PageViewRepo {
	return &PageViewRepo{db: db}
}

// Record stores one page view.
func (r *PageViewRepo) Record(ctx context.Context, v *domain.PageView) error {
	at := v.CreatedAt
	if at.IsZero() {
		at = nowUTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO page_views (path, visitor_hash, referrer, created_at) VALUES (?, ?, ?, ?)`,
		v.Path, v.VisitorHash, v.Referrer, at.UTC())
	return mapDBError(err)
}

// Summary aggregates views recorded at or after since.
func (r *PageViewRepo) Summary(ctx context.Context, since time.Time, topPaths int) (*domain.AnalyticsSummary, error) {
	since = since.UTC()
	s := &domain.AnalyticsSummary{Since: since}

	var totals struct {
		Visitors  int64 `db:"visitors"`
		Pageviews int64 `db:"pageviews"`
	}
	err := r.db.GetContext(ctx, &totals,
		`SELECT count(DISTINCT visitor_hash) AS visitors, count(*) AS pageviews FROM page_views WHERE created_at >= ?`, since)
	if err != nil {
		return nil, mapDBError(err)
	}
	s.TotalVisitors = totals.Visitors
	s.TotalPageviews = totals.Pageviews

	var daily []struct {
		Day       string `db:"day"`
		Visitors  int64  `db:"visitors"`
		Pageviews int64  `db:"pageviews"`
	}
	err = r.db.SelectContext(ctx, &daily, `
		SELECT substr(created_at, 1, 10) AS day, count(DISTINCT visitor_hash) AS visitors, count(*) AS pageviews
		FROM page_views WHERE created_at >= ?
		GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, mapDBError(err)
	}
	for _, d := range daily {
		s.DailyVisitors = append(s.DailyVisitors, domain.DailyCount{Day: d.Day, Value: d.Visitors})
		s.DailyPageviews = append(s.DailyPageviews, domain.DailyCount{Day: d.Day, Value: d.Pageviews})
	}

	var top []struct {
		Path  string `db:"path"`
		Value int64  `db:"n"`
	}
	err = r.db.SelectContext(ctx, &top, `
		SELECT path, count(*) AS n FROM page_views WHERE created_at >= ?
		GROUP BY path ORDER BY n DESC, path ASC LIMIT ?`, since, topPaths)
	if err != nil {
		return nil, mapDBError(err)
	}
	for _, t := range top {
		s.TopPaths = append(s.TopPaths, domain.PathCount{Path: t.Path, Value: t.Value})
	}
	return s, nil
}

// PruneBefore deletes views older than before and returns how many went.
func (r *PageViewRepo) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM page_views WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
