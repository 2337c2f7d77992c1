package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Site setting keys.
const (
	SettingHeroProjects           = "hero_projects"
	SettingHeroTeamMembers        = "hero_team_members"
	SettingHeroAwards             = "hero_awards"
	SettingHeroYears              = "hero_years"
	SettingContactEmail           = "contact_email"
	SettingContactPhone           = "contact_phone"
	SettingContactLocation        = "contact_location"
	SettingContactWebsite         = "contact_website"
	SettingNotificationRecipients = "notification_recipients"
)

// SiteSetting is one key/value row.
type SiteSetting struct {
	Key       string
	Value     string
	Label     string
	UpdatedAt time.Time
}

// SettingField describes one editable setting on a settings form.
type SettingField struct {
	Key     string
	Label   string
	Default string
}

// HeroStatFields are the counters shown in the hero banner.
var HeroStatFields = []SettingField{
	{Key: SettingHeroProjects, Label: "Projects Completed", Default: "50+"},
	{Key: SettingHeroTeamMembers, Label: "Team Members", Default: "15+"},
	{Key: SettingHeroAwards, Label: "Awards Won", Default: "10+"},
	{Key: SettingHeroYears, Label: "Years Experience", Default: "5+"},
}

// ContactFields are the contact details shown in the contact section.
var ContactFields = []SettingField{
	{Key: SettingContactEmail, Label: "Email", Default: "hello@tobiyastudio.com"},
	{Key: SettingContactPhone, Label: "Phone", Default: "+251 911 234 567"},
	{Key: SettingContactLocation, Label: "Location", Default: "Addis Ababa, Ethiopia"},
	{Key: SettingContactWebsite, Label: "Website", Default: "www.tobiyastudio.com"},
}

// Settings is a key/value view over the settings table.
type Settings map[string]string

// NewSettings indexes rows by key.
func NewSettings(rows []SiteSetting) Settings {
	s := make(Settings, len(rows))
	for _, r := range rows {
		s[r.Key] = r.Value
	}
	return s
}

// Get returns the value for key, or def when missing or blank.
func (s Settings) Get(key, def string) string {
	if v := strings.TrimSpace(s[key]); v != "" {
		return v
	}
	return def
}

// ParseRecipients decodes a JSON array of addresses. Invalid JSON and
// non-email entries are dropped.
func ParseRecipients(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		e = strings.TrimSpace(e)
		if ValidEmail(e) {
			out = append(out, e)
		}
	}
	return out
}

// EncodeRecipients validates addresses and encodes them as a JSON array.
// Duplicates are removed case-insensitively, keeping the first spelling.
func EncodeRecipients(list []string) (string, error) {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, e := range list {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !ValidEmail(e) {
			return "", ErrValidation("%q is not a valid email address", e)
		}
		k := strings.ToLower(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
