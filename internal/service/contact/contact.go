// Package contact accepts public contact-form submissions and serves the
// console's message inbox.
package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"studio-site/internal/domain"
	"studio-site/internal/notify"
	"studio-site/internal/service/access"
	"studio-site/internal/service/auditutil"
)

const entityMessages = "contact_submissions"

// Service stores submissions and triggers the notification relay.
type Service struct {
	repo     domain.ContactRepository
	notifier notify.Notifier
	audit    domain.AuditRepository
	timeout  time.Duration
	logger   *slog.Logger

	inflight sync.WaitGroup
}

// NewService creates a contact Service. notifier may be nil.
func NewService(repo domain.ContactRepository, notifier notify.Notifier, audit domain.AuditRepository, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		timeout:  timeout,
		logger:   logger.With("component", "contact"),
	}
}

// Submit validates and stores c, then notifies the studio in the background.
// The stored row is authoritative: relay failures are logged and never
// reported to the submitter.
func (s *Service) Submit(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Read = false
	saved, err := s.repo.Insert(ctx, &c)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.relay(ctx, *saved)
	}
	return saved, nil
}

func (s *Service) relay(ctx context.Context, c domain.ContactSubmission) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()
		res, err := s.notifier.Notify(rctx, notify.Notification{
			Name: c.Name, Email: c.Email, Subject: c.Subject, Message: c.Message,
		})
		if err != nil {
			s.logger.Warn("contact notification failed", "submission_id", c.ID, "error", err)
			return
		}
		s.logger.Info("contact notification relayed", "submission_id", c.ID, "skipped", res.Skipped)
	}()
}

// Wait blocks until every in-flight notification has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// List returns submissions newest first with a next-page token.
func (s *Service) List(ctx context.Context, page domain.PageRequest) ([]domain.ContactSubmission, string, error) {
	if err := access.Require(ctx, domain.CapMessages); err != nil {
		return nil, "", err
	}
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, "", err
	}
	return rows, domain.NextPageToken(page.Offset(), page.Limit(), total), nil
}

// UnreadCount returns the number of unread submissions.
func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	if err := access.Require(ctx, domain.CapMessages); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx)
}

// MarkRead sets the read flag of submission id.
func (s *Service) MarkRead(ctx context.Context, id string, read bool) error {
	if err := s.authorize(ctx, "MARK_READ", id); err != nil {
		return err
	}
	err := s.repo.SetRead(ctx, id, read)
	return s.record(ctx, "MARK_READ", id, err)
}

// Delete removes submission id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.authorize(ctx, "DELETE", id); err != nil {
		return err
	}
	return s.record(ctx, "DELETE", id, s.repo.Delete(ctx, id))
}

func (s *Service) authorize(ctx context.Context, action, id string) error {
	if err := access.Require(ctx, domain.CapMessages); err != nil {
		auditutil.LogDenied(ctx, s.audit, auditutil.Event{Action: action, Entity: entityMessages, EntityID: id})
		return err
	}
	return nil
}

func (s *Service) record(ctx context.Context, action, id string, err error) error {
	ev := auditutil.Event{Action: action, Entity: entityMessages, EntityID: id}
	if err != nil {
		auditutil.LogError(ctx, s.audit, ev, err)
		return err
	}
	auditutil.LogAllowed(ctx, s.audit, ev)
	return nil
}
