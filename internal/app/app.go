// Package app provides application-level wiring and dependency injection
// for the studio site server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"studio-site/internal/api"
	"studio-site/internal/config"
	"studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/markdown"
	"studio-site/internal/middleware"
	"studio-site/internal/notify"
	"studio-site/internal/service"
	"studio-site/internal/service/access"
	"studio-site/internal/service/analytics"
	"studio-site/internal/service/contact"
	"studio-site/internal/service/content"
	"studio-site/internal/service/identity"
	"studio-site/internal/service/media"
	"studio-site/internal/service/site"
	"studio-site/internal/storage"
	"studio-site/internal/ui"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Store  *db.Store
	Logger *slog.Logger
}

// Services groups the wired services the HTTP layers depend on.
type Services struct {
	Site      *site.Service
	Content   *content.Service
	Contact   *contact.Service
	Users     *access.UserService
	Resolver  *access.Resolver
	Audit     *service.AuditService
	Analytics *analytics.Service
	Media     *media.Service
	Identity  *identity.Service
}

// App holds the fully-wired application and its HTTP router.
type App struct {
	Services Services
	Router   http.Handler

	registry *prometheus.Registry
	logger   *slog.Logger
}

// New wires repositories, services, and the router from the provided deps.
// Background workers started here are bound to ctx and stopped by Close.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	write, read := deps.Store.Write, deps.Store.Read

	// === Repositories (write-pool) ===
	auditRepo := repository.NewAuditRepo(write)
	adminRepo := repository.NewAdminRepo(write)
	contactRepo := repository.NewContactRepo(write)
	pageViewRepo := repository.NewPageViewRepo(write)
	settingsRepo := repository.NewSettingsRepo(write)
	principalRepo := repository.NewPrincipalRepo(write)

	// === Repositories (read-pool) ===
	readers := site.Readers{
		Projects: repository.NewProjectRepo(read),
		Team:     repository.NewTeamRepo(read),
		Awards:   repository.NewAwardRepo(read),
		Services: repository.NewServiceRepo(read),
		Partners: repository.NewPartnerRepo(read),
		Blog:     repository.NewBlogRepo(read),
		Settings: repository.NewSettingsRepo(read),
	}

	fallback, err := site.LoadFallback()
	if err != nil {
		return nil, fmt.Errorf("load fallback content: %w", err)
	}

	store := newMediaStore(cfg.Storage)

	relay := notify.NewRelay(newSender(cfg.Notify), settingsRepo, cfg.Notify.From, cfg.Notify.FallbackRecipient, logger)
	var notifier notify.Notifier = relay
	if cfg.Notify.RelayURL != "" {
		notifier = notify.NewClient(cfg.Notify.RelayURL, &http.Client{Timeout: cfg.Notify.Timeout})
	}

	svcs := Services{
		Site: site.NewService(readers, fallback, logger),
		Content: content.NewService(content.Repositories{
			Projects: repository.NewProjectRepo(write),
			Team:     repository.NewTeamRepo(write),
			Awards:   repository.NewAwardRepo(write),
			Services: repository.NewServiceRepo(write),
			Partners: repository.NewPartnerRepo(write),
			Blog:     repository.NewBlogRepo(write),
			Settings: settingsRepo,
			Order:    repository.NewOrderRepo(write, read),
			Audit:    auditRepo,
		}),
		Contact:   contact.NewService(contactRepo, notifier, auditRepo, cfg.Notify.Timeout, logger),
		Users:     access.NewUserService(adminRepo, auditRepo, bcrypt.DefaultCost),
		Resolver:  access.NewResolver(adminRepo, logger),
		Audit:     service.NewAuditService(auditRepo),
		Analytics: analytics.NewService(pageViewRepo, cfg.AnalyticsRetention, cfg.AnalyticsSalt, logger),
		Media:     media.NewService(store, auditRepo, cfg.Storage.MaxUploadBytes),
		Identity:  identity.NewService(principalRepo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
	}

	validator, err := newValidator(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}
	authn := middleware.NewAuthenticator(validator, principalRepo, svcs.Resolver, cfg.Auth, logger)

	if err := svcs.Analytics.StartPruner(cfg.PruneSchedule); err != nil {
		return nil, fmt.Errorf("start analytics pruner: %w", err)
	}

	a := &App{
		Services: svcs,
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Router = a.routes(ctx, cfg, deps.Store, authn, relay, store)
	return a, nil
}

// Close stops background workers and waits for in-flight notifications.
func (a *App) Close() {
	a.Services.Analytics.Stop()
	a.Services.Contact.Wait()
}

func (a *App) routes(ctx context.Context, cfg *config.Config, st *db.Store, authn *middleware.Authenticator, relay *notify.Relay, store storage.Store) http.Handler {
	limiter := middleware.NewRateLimiter(ctx, middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
		TrustForwarded:    cfg.TrustProxy,
	})
	contactLimiter := middleware.NewRateLimiter(ctx, middleware.RateLimitConfig{
		RequestsPerSecond: float64(cfg.ContactPerMinute) / 60,
		Burst:             cfg.ContactPerMinute,
		TrustForwarded:    cfg.TrustProxy,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.NewMetrics(a.registry).Middleware)
	r.Use(limiter.Middleware())
	r.Use(middleware.PageViews(a.Services.Analytics, cfg.TrustProxy))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Read.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	r.With(contactLimiter.Middleware()).Post("/functions/v1/send-contact-notification", api.RelayHandler(relay))

	apiHandler := api.NewHandler(
		a.Services.Identity, a.Services.Content, a.Services.Media, a.Services.Contact,
		cfg.Auth, cfg.Storage.MaxUploadBytes, a.logger,
	)
	r.Mount("/api/v1", apiHandler.Routes(authn, contactLimiter.Middleware()))

	if disk, ok := store.(*storage.DiskStore); ok {
		r.Handle("/uploads/*", inertFiles(http.StripPrefix("/uploads/", http.FileServer(http.Dir(disk.Dir())))))
	}

	h := &ui.Handler{
		Site:      a.Services.Site,
		Content:   a.Services.Content,
		Contact:   a.Services.Contact,
		Users:     a.Services.Users,
		Audit:     a.Services.Audit,
		Analytics: a.Services.Analytics,
		Media:     a.Services.Media,
		Identity:  a.Services.Identity,
		Markdown:  markdown.New(),
		Auth:      cfg.Auth,
		Logger:    a.logger,
	}
	// Forms carry at most one upload plus text fields.
	ui.MountRoutes(r, h, authn, cfg.Storage.MaxUploadBytes+1<<20, contactLimiter.Middleware())
	return r
}

// inertFiles serves uploads so a browser never sniffs them into markup or
// runs script from them on the site's origin.
func inertFiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "sandbox; default-src 'none'; img-src 'self'; media-src 'self'")
		next.ServeHTTP(w, r)
	})
}

func newMediaStore(cfg config.StorageConfig) storage.Store {
	if !cfg.HasS3() {
		return storage.NewDiskStore(cfg.UploadDir, "/uploads")
	}
	s3cfg := storage.S3Config{
		KeyID:     *cfg.S3KeyID,
		Secret:    *cfg.S3Secret,
		Region:    *cfg.S3Region,
		Bucket:    *cfg.S3Bucket,
		PublicURL: cfg.S3PublicBaseURL,
	}
	if cfg.S3Endpoint != nil {
		s3cfg.Endpoint = *cfg.S3Endpoint
	}
	return storage.NewS3Store(s3cfg)
}

// newSender returns nil when no API key is configured so the relay skips sends.
func newSender(cfg config.NotifyConfig) notify.Sender {
	if cfg.ResendAPIKey == "" {
		return nil
	}
	return notify.NewResendSender(cfg.ResendAPIKey)
}

func newValidator(ctx context.Context, cfg config.AuthConfig) (middleware.JWTValidator, error) {
	hs, err := middleware.NewHS256Validator(cfg.JWTSecret, identity.Issuer)
	if err != nil {
		return nil, fmt.Errorf("session validator: %w", err)
	}
	if !cfg.OIDCEnabled() {
		return hs, nil
	}
	oidc, err := middleware.NewOIDCValidator(ctx, cfg.IssuerURL, cfg.Audience, cfg.AllowedIssuers)
	if err != nil {
		return nil, fmt.Errorf("oidc validator: %w", err)
	}
	return middleware.ChainValidator{hs, oidc}, nil
}
