package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studio-site/internal/config"
	"studio-site/internal/domain"
)

// PrincipalLookup resolves token subjects to stored principals.
type PrincipalLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
}

// AccessResolver computes the console access of a principal.
type AccessResolver interface {
	Resolve(ctx context.Context, principalID string) domain.Access
}

// Authenticator reads the session token from the Authorization header or the
// session cookie, resolves the principal and its access, and stores both in
// the request context. Access is resolved again on every request so grant
// changes apply immediately.
type Authenticator struct {
	validator  JWTValidator
	principals PrincipalLookup
	resolver   AccessResolver
	cfg        config.AuthConfig
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator. A nil logger discards output.
func NewAuthenticator(validator JWTValidator, principals PrincipalLookup, resolver AccessResolver, cfg config.AuthConfig, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Authenticator{
		validator:  validator,
		principals: principals,
		resolver:   resolver,
		cfg:        cfg,
		logger:     logger.With("component", "auth"),
	}
}

var errNoCredentials = errors.New("no credentials")

// Authenticate returns the request context enriched with the principal and
// its access snapshot.
func (a *Authenticator) Authenticate(r *http.Request) (context.Context, error) {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie(a.cfg.CookieName); err == nil {
			token = c.Value
		}
	}
	if token == "" || a.validator == nil {
		return nil, errNoCredentials
	}

	ctx := r.Context()
	claims, err := a.validator.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	cp, err := a.lookup(ctx, claims)
	if err != nil {
		return nil, err
	}
	ctx = domain.WithPrincipal(ctx, cp)
	access := domain.NoAccess()
	if a.resolver != nil {
		access = a.resolver.Resolve(ctx, cp.ID)
	}
	return domain.WithAccess(ctx, access), nil
}

// lookup maps claims to a principal: session tokens carry the principal id
// as subject, provider tokens are matched by email.
func (a *Authenticator) lookup(ctx context.Context, claims *JWTClaims) (domain.ContextPrincipal, error) {
	if a.principals == nil {
		return domain.ContextPrincipal{}, errors.New("principal lookup not configured")
	}
	p, err := a.principals.GetByID(ctx, claims.Subject)
	if err == nil {
		return domain.ContextPrincipal{ID: p.ID, Email: p.Email, Type: "user"}, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || claims.Email == nil {
		return domain.ContextPrincipal{}, err
	}
	p, err = a.principals.GetByEmail(ctx, strings.ToLower(*claims.Email))
	if err != nil {
		return domain.ContextPrincipal{}, err
	}
	return domain.ContextPrincipal{ID: p.ID, Email: p.Email, Type: "oidc"}, nil
}

// Middleware rejects requests without a valid session with 401 JSON.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				a.debug(r, err)
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional attaches the principal when the request carries a valid session
// and passes anonymous requests through unchanged.
func (a *Authenticator) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ctx, err := a.Authenticate(r); err == nil {
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectToLogin sends browsers without a valid session to loginPath,
// remembering where they were headed.
func (a *Authenticator) RedirectToLogin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				a.debug(r, err)
				target := loginPath
				if r.Method == http.MethodGet {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Authenticator) debug(r *http.Request, err error) {
	if !errors.Is(err, errNoCredentials) {
		a.logger.Debug("authentication failed", "path", r.URL.Path, "error", err)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": "authentication required",
	})
}

// SetSessionCookie stores a session token in the HttpOnly session cookie.
func SetSessionCookie(w http.ResponseWriter, cfg config.AuthConfig, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg config.AuthConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
