// Package notify delivers contact-form notification emails.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"studio-site/internal/domain"
)

// Email is one outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers an Email through a mail provider.
type Sender interface {
	Send(ctx context.Context, e Email) (string, error)
}

// Notification is the payload of the relay endpoint.
type Notification struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Result reports what the relay did.
type Result struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	ID      string `json:"id,omitempty"`
}

// ErrSendFailed wraps provider failures.
var ErrSendFailed = errors.New("failed to send notification")

// Relay turns contact submissions into notification emails.
type Relay struct {
	sender   Sender
	settings domain.SettingsRepository
	from     string
	fallback string
	logger   *slog.Logger
}

// NewRelay creates a Relay. A nil sender means no API key is configured and
// every notification is skipped.
func NewRelay(sender Sender, settings domain.SettingsRepository, from, fallback string, logger *slog.Logger) *Relay {
	return &Relay{sender: sender, settings: settings, from: from, fallback: fallback, logger: logger.With("component", "notify")}
}

// Notify validates n, resolves recipients and sends one email.
func (r *Relay) Notify(ctx context.Context, n Notification) (Result, error) {
	if r.sender == nil {
		r.logger.Info("email provider not configured, skipping notification")
		return Result{Success: true, Skipped: true}, nil
	}

	n = clip(n)
	if n.Name == "" || n.Email == "" || n.Subject == "" || n.Message == "" {
		return Result{}, domain.ErrValidation("Missing required fields")
	}
	if !domain.ValidEmail(n.Email) {
		return Result{}, domain.ErrValidation("Invalid email format")
	}

	to := r.Recipients(ctx)
	body, err := renderBody(n)
	if err != nil {
		return Result{}, fmt.Errorf("render notification: %w", err)
	}
	r.logger.Info("sending contact notification", "recipients", len(to))

	id, err := r.sender.Send(ctx, Email{
		From:    r.from,
		To:      to,
		Subject: "New Contact: " + html.EscapeString(n.Subject),
		HTML:    body,
		ReplyTo: n.Email,
	})
	if err != nil {
		r.logger.Error("send contact notification", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return Result{Success: true, ID: id}, nil
}

// Recipients returns the configured notification list, or the fallback
// address when the list is unset or empty, plus the public contact email when
// it is not already present.
func (r *Relay) Recipients(ctx context.Context) []string {
	var to []string
	if row, err := r.settings.Get(ctx, domain.SettingNotificationRecipients); err == nil {
		to = domain.ParseRecipients(row.Value)
	} else if !isNotFound(err) {
		r.logger.Warn("read notification recipients", "error", err)
	}
	if len(to) == 0 {
		to = []string{r.fallback}
	}

	row, err := r.settings.Get(ctx, domain.SettingContactEmail)
	if err != nil {
		return to
	}
	extra := strings.TrimSpace(row.Value)
	if extra == "" || !domain.ValidEmail(extra) {
		return to
	}
	for _, e := range to {
		if strings.EqualFold(e, extra) {
			return to
		}
	}
	return append(to, extra)
}

func clip(n Notification) Notification {
	return Notification{
		Name:    truncate(strings.TrimSpace(n.Name), domain.MaxNameLength),
		Email:   truncate(strings.TrimSpace(n.Email), domain.MaxEmailLength),
		Subject: truncate(strings.TrimSpace(n.Subject), domain.MaxSubjectLength),
		Message: truncate(strings.TrimSpace(n.Message), domain.MaxMessageLength),
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}
