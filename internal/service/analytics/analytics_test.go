package analytics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
)

func setup(t *testing.T) *Service {
	t.Helper()
	s := internaldb.OpenTestStore(t)
	return NewService(repository.NewPageViewRepo(s.Write), 90*24*time.Hour, "salt", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func analyst() context.Context {
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: "a"})
	return domain.WithAccess(ctx, domain.RestrictedAccess([]string{"analytics"}))
}

func TestVisitorHash(t *testing.T) {
	svc := setup(t)
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	a := svc.VisitorHash("10.0.0.1", "Firefox")
	assert.Len(t, a, 32)
	assert.Equal(t, a, svc.VisitorHash("10.0.0.1", "Firefox"))
	assert.NotEqual(t, a, svc.VisitorHash("10.0.0.2", "Firefox"))

	svc.now = func() time.Time { return day.Add(24 * time.Hour) }
	assert.NotEqual(t, a, svc.VisitorHash("10.0.0.1", "Firefox"), "hashes rotate daily")
}

func TestSummaryAndPrune(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	at := func(d time.Time) { svc.now = func() time.Time { return d } }
	at(now.Add(-200 * 24 * time.Hour))
	svc.Record(ctx, "/", "old", "")
	at(now.Add(-24 * time.Hour))
	svc.Record(ctx, "/", "v1", "")
	svc.Record(ctx, "/blog/hello", "v1", "")
	at(now)
	svc.Record(ctx, "/", "v2", "https://google.com")

	_, err := svc.Summary(ctx)
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	sum, err := svc.Summary(analyst())
	require.NoError(t, err)
	assert.True(t, sum.HasData())
	assert.EqualValues(t, 3, sum.TotalPageviews)
	assert.EqualValues(t, 2, sum.TotalVisitors)
	require.NotEmpty(t, sum.TopPaths)
	assert.Equal(t, "/", sum.TopPaths[0].Path)
	assert.Len(t, sum.DailyPageviews, 2)

	n, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStartPruner(t *testing.T) {
	svc := setup(t)
	require.Error(t, svc.StartPruner("not a schedule"))
	require.NoError(t, svc.StartPruner("@daily"))
	svc.Stop()
}

func TestLiveVisitors(t *testing.T) {
	for range 50 {
		v := LiveVisitors()
		assert.GreaterOrEqual(t, v, 3)
		assert.Less(t, v, 25)
	}
}
