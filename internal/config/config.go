// Package config handles application configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const insecureDevSecret = "dev-only-insecure-jwt-secret"

// DefaultNotifyRecipient receives contact notifications when no recipient list is configured.
const DefaultNotifyRecipient = "oliyadtesfaye2020@gmail.com"

// AuthConfig holds session and identity provider configuration.
type AuthConfig struct {
	JWTSecret      string        // HS256 secret for console session tokens
	SessionTTL     time.Duration // lifetime of a session token (default 8h)
	CookieName     string        // session cookie name (default "studio_session")
	CookieSecure   bool          // mark the session cookie Secure
	IssuerURL      string        // optional OIDC issuer for bearer tokens
	Audience       string        // required audience when IssuerURL is set
	AllowedIssuers []string      // accepted issuers (defaults to [IssuerURL])
}

// OIDCEnabled returns true when an external identity provider is configured.
func (a *AuthConfig) OIDCEnabled() bool {
	return a.IssuerURL != ""
}

// Validate checks that the auth configuration is internally consistent.
func (a *AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if a.IssuerURL != "" && a.Audience == "" {
		return fmt.Errorf("AUTH_AUDIENCE is required when AUTH_ISSUER_URL is set")
	}
	return nil
}

// StorageConfig selects where uploaded media is written.
type StorageConfig struct {
	// S3 fields are optional; nil when not configured.
	S3KeyID         *string
	S3Secret        *string
	S3Endpoint      *string
	S3Region        *string
	S3Bucket        *string
	S3PublicBaseURL string // public URL prefix for stored objects

	UploadDir      string // local fallback directory (default "uploads")
	MaxUploadBytes int64  // per-file limit (default 50 MiB)
}

// HasS3 returns true if the S3 fields needed to store objects are set.
func (s *StorageConfig) HasS3() bool {
	return s.S3KeyID != nil && s.S3Secret != nil && s.S3Region != nil && s.S3Bucket != nil
}

// NotifyConfig configures the contact notification relay.
type NotifyConfig struct {
	ResendAPIKey      string        // relay is skipped when empty
	From              string        // sender shown on notification emails
	FallbackRecipient string        // used when no recipients are configured
	RelayURL          string        // where Submit posts notifications (default: own relay endpoint)
	Timeout           time.Duration // per-notification timeout (default 15s)
}

// Config holds the configuration for the site server.
type Config struct {
	DBPath            string // path to the SQLite database file
	ListenAddr        string // HTTP listen address (default ":8080")
	PublicBaseURL     string // externally visible base URL
	TLSCertFile       string // TLS certificate file path (optional)
	TLSKeyFile        string // TLS private key file path (optional)
	AllowInsecureHTTP bool   // allow non-TLS listener in production (for trusted TLS termination)
	LogLevel          string // log level: debug, info, warn, error (default "info")
	Env               string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 20)
	RateLimitBurst int     // burst capacity (default 40)
	TrustProxy     bool    // key clients by X-Forwarded-For (behind a trusted proxy only)

	// ContactPerMinute caps contact form submissions per client (default 3).
	ContactPerMinute int

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// AnalyticsRetention is how long page views are kept (default 90 days).
	AnalyticsRetention time.Duration
	// AnalyticsSalt is mixed into visitor hashes; defaults to JWTSecret.
	AnalyticsSalt string
	// PruneSchedule is the cron expression for deleting expired page views.
	PruneSchedule string

	Auth    AuthConfig
	Storage StorageConfig
	Notify  NotifyConfig

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:        os.Getenv("DB_PATH"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		TLSCertFile:   os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:    os.Getenv("TLS_KEY_FILE"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Env:           os.Getenv("ENV"),
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}
	if v := os.Getenv("CONTACT_RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ContactPerMinute = n
		}
	}
	cfg.TrustProxy = parseBoolEnvDefault("TRUST_PROXY", false)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if strings.EqualFold(os.Getenv("ALLOW_INSECURE_HTTP"), "true") {
		cfg.AllowInsecureHTTP = true
	}
	cfg.AnalyticsRetention = parseDurationEnv("ANALYTICS_RETENTION", 90*24*time.Hour)
	cfg.AnalyticsSalt = os.Getenv("ANALYTICS_SALT")
	cfg.PruneSchedule = os.Getenv("ANALYTICS_PRUNE_SCHEDULE")

	// Storage
	cfg.Storage = StorageConfig{
		S3KeyID:         optionalEnv("KEY_ID"),
		S3Secret:        optionalEnv("SECRET"),
		S3Endpoint:      optionalEnv("ENDPOINT"),
		S3Region:        optionalEnv("REGION"),
		S3Bucket:        optionalEnv("BUCKET"),
		S3PublicBaseURL: strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Storage.MaxUploadBytes = int64(n) << 20
		}
	}

	// Auth
	cfg.Auth = AuthConfig{
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SessionTTL:   parseDurationEnv("SESSION_TTL", 8*time.Hour),
		CookieName:   os.Getenv("SESSION_COOKIE_NAME"),
		IssuerURL:    os.Getenv("AUTH_ISSUER_URL"),
		Audience:     os.Getenv("AUTH_AUDIENCE"),
		CookieSecure: parseBoolEnvDefault("SESSION_COOKIE_SECURE", false),
	}
	if v := os.Getenv("AUTH_ALLOWED_ISSUERS"); v != "" {
		cfg.Auth.AllowedIssuers = splitList(v)
	}

	// Notifications
	cfg.Notify = NotifyConfig{
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		From:              os.Getenv("NOTIFY_FROM"),
		FallbackRecipient: os.Getenv("NOTIFY_FALLBACK_RECIPIENT"),
		RelayURL:          os.Getenv("NOTIFY_RELAY_URL"),
		Timeout:           parseDurationEnv("NOTIFY_TIMEOUT", 15*time.Second),
	}

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "studio.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 40
	}
	if cfg.ContactPerMinute == 0 {
		cfg.ContactPerMinute = 3
	}
	if cfg.PruneSchedule == "" {
		cfg.PruneSchedule = "@daily"
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "studio_session"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "uploads"
	}
	if cfg.Storage.MaxUploadBytes == 0 {
		cfg.Storage.MaxUploadBytes = 50 << 20
	}
	if cfg.Notify.From == "" {
		cfg.Notify.From = "Tobiya Studio <onboarding@resend.dev>"
	}
	if cfg.Notify.FallbackRecipient == "" {
		cfg.Notify.FallbackRecipient = DefaultNotifyRecipient
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("both TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = insecureDevSecret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set; using insecure default. Set JWT_SECRET in production!")
	}
	if cfg.AnalyticsSalt == "" {
		cfg.AnalyticsSalt = cfg.Auth.JWTSecret
	}
	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}
	if cfg.Notify.ResendAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "RESEND_API_KEY not set; contact notifications will be skipped")
	}
	if !cfg.Storage.HasS3() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("S3 is not configured; uploads are written to %s", cfg.Storage.UploadDir))
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret == insecureDevSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
		if cfg.TLSCertFile == "" && !cfg.AllowInsecureHTTP {
			return nil, fmt.Errorf("TLS_CERT_FILE/TLS_KEY_FILE must be set in production unless ALLOW_INSECURE_HTTP=true")
		}
		cfg.Auth.CookieSecure = true
	}

	return cfg, nil
}

func optionalEnv(key string) *string {
	if v := os.Getenv(key); v != "" {
		return &v
	}
	return nil
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch v {
	case "0", "false", "no", "off":
		return false
	case "1", "true", "yes", "on":
		return true
	}
	return defaultVal
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
