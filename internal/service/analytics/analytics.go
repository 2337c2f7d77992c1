// Package analytics records public page views and serves the console's
// analytics panel.
package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/robfig/cron/v3"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

// Window is the span covered by the analytics panel.
const Window = 30 * 24 * time.Hour

// RefreshInterval is how often the analytics panel reloads itself.
const RefreshInterval = time.Minute

// TopPaths is the number of rows in the top pages table.
const TopPaths = 10

// Service records page views and summarizes them.
type Service struct {
	repo      domain.PageViewRepository
	retention time.Duration
	salt      string
	logger    *slog.Logger
	now       func() time.Time

	cron *cron.Cron
}

// NewService creates an analytics Service. Views older than retention are
// removed by the prune job. salt is mixed into visitor hashes.
func NewService(repo domain.PageViewRepository, retention time.Duration, salt string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		retention: retention,
		salt:      salt,
		logger:    logger.With("component", "analytics"),
		now:       time.Now,
	}
}

// VisitorHash derives an anonymous visitor key from the client address and
// user agent. The key rotates daily so visitors cannot be tracked across days.
func (s *Service) VisitorHash(remoteIP, userAgent string) string {
	sum := sha256.Sum256([]byte(s.salt + "|" + s.now().UTC().Format(time.DateOnly) + "|" + remoteIP + "|" + userAgent))
	return hex.EncodeToString(sum[:16])
}

// Record stores one page view. Failures are logged, never returned.
func (s *Service) Record(ctx context.Context, path, visitorHash, referrer string) {
	err := s.repo.Record(ctx, &domain.PageView{
		Path: path, VisitorHash: visitorHash, Referrer: referrer, CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("record page view", "path", path, "error", err)
	}
}

// Summary returns the last 30 days of traffic.
func (s *Service) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	if err := access.Require(ctx, domain.CapAnalytics); err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, s.now().UTC().Add(-Window), TopPaths)
}

// LiveVisitors returns the simulated live visitor figure shown on the panel.
// It is a display value only and not derived from recorded traffic.
func LiveVisitors() int {
	return 3 + rand.IntN(22)
}

// Prune deletes views older than the retention window.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	n, err := s.repo.PruneBefore(ctx, s.now().UTC().Add(-s.retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("pruned page views", "deleted", n)
	}
	return n, nil
}

// StartPruner schedules Prune on schedule (a cron expression such as "@daily").
func (s *Service) StartPruner(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Prune(ctx); err != nil {
			s.logger.Warn("prune page views", "error", err)
		}
	}); err != nil {
		return err
	}
	s.cron = c
	c.Start()
	return nil
}

// Stop halts the prune schedule and waits for a running job.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
