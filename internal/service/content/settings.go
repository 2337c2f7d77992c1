package content

import (
	"context"
	"strings"

	"studio-site/internal/domain"
	"studio-site/internal/service/access"
)

const entitySettings = "site_settings"

// Settings returns every stored site setting.
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	if err := access.Require(ctx, domain.CapSettings); err != nil {
		return nil, err
	}
	rows, err := s.repos.Settings.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewSettings(rows), nil
}

// SaveSettings upserts the hero stat and contact fields present in values.
// Keys outside those two groups are rejected.
func (s *Service) SaveSettings(ctx context.Context, values map[string]string) error {
	if err := s.authorize(ctx, domain.CapSettings, "UPSERT", entitySettings, ""); err != nil {
		return err
	}
	labels := make(map[string]string)
	for _, f := range append(append([]domain.SettingField{}, domain.HeroStatFields...), domain.ContactFields...) {
		labels[f.Key] = f.Label
	}
	rows := make([]domain.SiteSetting, 0, len(values))
	for k, v := range values {
		label, ok := labels[k]
		if !ok {
			return domain.ErrValidation("unknown setting %q", k)
		}
		rows = append(rows, domain.SiteSetting{Key: k, Value: strings.TrimSpace(v), Label: label})
	}
	if len(rows) == 0 {
		return nil
	}
	return s.record(ctx, "UPSERT", entitySettings, "", s.repos.Settings.Upsert(ctx, rows))
}

// Recipients returns the notification recipient list.
func (s *Service) Recipients(ctx context.Context) ([]string, error) {
	if err := access.Require(ctx, domain.CapSettings); err != nil {
		return nil, err
	}
	row, err := s.repos.Settings.Get(ctx, domain.SettingNotificationRecipients)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return domain.ParseRecipients(row.Value), nil
}

// SaveRecipients replaces the notification recipient list.
func (s *Service) SaveRecipients(ctx context.Context, list []string) ([]string, error) {
	if err := s.authorize(ctx, domain.CapSettings, "UPSERT", entitySettings, domain.SettingNotificationRecipients); err != nil {
		return nil, err
	}
	raw, err := domain.EncodeRecipients(list)
	if err != nil {
		return nil, err
	}
	err = s.repos.Settings.Upsert(ctx, []domain.SiteSetting{{
		Key: domain.SettingNotificationRecipients, Value: raw, Label: "Notification Recipients",
	}})
	if err := s.record(ctx, "UPSERT", entitySettings, domain.SettingNotificationRecipients, err); err != nil {
		return nil, err
	}
	return domain.ParseRecipients(raw), nil
}

// AddRecipient appends email to the recipient list.
func (s *Service) AddRecipient(ctx context.Context, email string) ([]string, error) {
	current, err := s.Recipients(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrValidation("%q is not a valid email address", email)
	}
	for _, e := range current {
		if strings.EqualFold(e, email) {
			return nil, domain.ErrConflict("%s is already a recipient", email)
		}
	}
	return s.SaveRecipients(ctx, append(current, email))
}

// RemoveRecipient drops email from the recipient list.
func (s *Service) RemoveRecipient(ctx context.Context, email string) ([]string, error) {
	current, err := s.Recipients(ctx)
	if err != nil {
		return nil, err
	}
	next := current[:0]
	for _, e := range current {
		if !strings.EqualFold(e, email) {
			next = append(next, e)
		}
	}
	return s.SaveRecipients(ctx, next)
}
