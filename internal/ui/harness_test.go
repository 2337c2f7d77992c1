package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studio-site/internal/config"
	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
	"studio-site/internal/markdown"
	"studio-site/internal/middleware"
	"studio-site/internal/service"
	"studio-site/internal/service/access"
	"studio-site/internal/service/analytics"
	"studio-site/internal/service/contact"
	"studio-site/internal/service/content"
	"studio-site/internal/service/identity"
	"studio-site/internal/service/media"
	"studio-site/internal/service/site"
	"studio-site/internal/storage"
)

const (
	testSecret    = "ui-test-secret"
	testPassword  = "correct-horse-battery"
	testCSRFToken = "csrf-test-token"
)

type harness struct {
	t       *testing.T
	router  http.Handler
	handler *Handler
	content *content.Service
	super   string // session token of an unrestricted admin
	editor  string // session token of a blog-only admin
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := internaldb.OpenTestStore(t)
	logger := discardLogger()

	auditRepo := repository.NewAuditRepo(store.Write)
	adminRepo := repository.NewAdminRepo(store.Write)
	principals := repository.NewPrincipalRepo(store.Write)
	readers := site.Readers{
		Projects: repository.NewProjectRepo(store.Read),
		Team:     repository.NewTeamRepo(store.Read),
		Awards:   repository.NewAwardRepo(store.Read),
		Services: repository.NewServiceRepo(store.Read),
		Partners: repository.NewPartnerRepo(store.Read),
		Blog:     repository.NewBlogRepo(store.Read),
		Settings: repository.NewSettingsRepo(store.Read),
	}
	contentSvc := content.NewService(content.Repositories{
		Projects: repository.NewProjectRepo(store.Write),
		Team:     repository.NewTeamRepo(store.Write),
		Awards:   repository.NewAwardRepo(store.Write),
		Services: repository.NewServiceRepo(store.Write),
		Partners: repository.NewPartnerRepo(store.Write),
		Blog:     repository.NewBlogRepo(store.Write),
		Settings: repository.NewSettingsRepo(store.Write),
		Order:    repository.NewOrderRepo(store.Write, store.Read),
		Audit:    auditRepo,
	})
	fallback, err := site.LoadFallback()
	require.NoError(t, err)

	authCfg := config.AuthConfig{JWTSecret: testSecret, SessionTTL: time.Hour, CookieName: "studio_session"}
	ident := identity.NewService(principals, testSecret, time.Hour)
	h := &Handler{
		Site:      site.NewService(readers, fallback, logger),
		Content:   contentSvc,
		Contact:   contact.NewService(repository.NewContactRepo(store.Write), nil, auditRepo, time.Second, logger),
		Users:     access.NewUserService(adminRepo, auditRepo, bcrypt.MinCost),
		Audit:     service.NewAuditService(auditRepo),
		Analytics: analytics.NewService(repository.NewPageViewRepo(store.Write), 90*24*time.Hour, "salt", logger),
		Media:     media.NewService(storage.NewDiskStore(t.TempDir(), "/uploads"), auditRepo, 1<<20),
		Identity:  ident,
		Markdown:  markdown.New(),
		Auth:      authCfg,
		Logger:    logger,
	}

	validator, err := middleware.NewHS256Validator(testSecret, identity.Issuer)
	require.NoError(t, err)
	authn := middleware.NewAuthenticator(validator, principals, access.NewResolver(adminRepo, logger), authCfg, logger)

	r := chi.NewRouter()
	MountRoutes(r, h, authn, 8<<20, nil)

	hs := &harness{t: t, router: r, handler: h, content: contentSvc}
	hs.super = hs.seedAdmin(adminRepo, ident, "owner@studio.io", true)
	hs.editor = hs.seedAdmin(adminRepo, ident, "writer@studio.io", false, domain.CapBlog)
	return hs
}

func (hs *harness) seedAdmin(admins *repository.AdminRepo, ident *identity.Service, email string, unrestricted bool, caps ...domain.Capability) string {
	hs.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(hs.t, err)
	_, err = admins.Create(context.Background(), &domain.Principal{Email: email, PasswordHash: string(hash)}, unrestricted, caps)
	require.NoError(hs.t, err)
	sess, err := ident.SignIn(context.Background(), domain.SignInRequest{Email: email, Password: testPassword})
	require.NoError(hs.t, err)
	return sess.Token
}

// get issues a GET, signed in with token when non-empty.
func (hs *harness) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "studio_session", Value: token})
	}
	rr := httptest.NewRecorder()
	hs.router.ServeHTTP(rr, req)
	return rr
}

// post submits an urlencoded form with a valid CSRF pair.
func (hs *harness) post(path, token string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRFToken})
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "studio_session", Value: token})
	}
	rr := httptest.NewRecorder()
	hs.router.ServeHTTP(rr, req)
	return rr
}

func flashFrom(rr *httptest.ResponseRecorder) string {
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName {
			v, _ := url.QueryUnescape(c.Value)
			return v
		}
	}
	return ""
}

func hasCookie(rr *httptest.ResponseRecorder, name string) bool {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 && c.Value != "" {
			return true
		}
	}
	return false
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func httptestPost(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func httptestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func serve(hs *harness, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	hs.router.ServeHTTP(rr, req)
	return rr
}
