// Package identity signs console users in and issues session tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"studio-site/internal/domain"
)

// Issuer is the iss claim on session tokens.
const Issuer = "studio-site"

// Session is a signed session token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// Service authenticates principals and mints HS256 session tokens.
type Service struct {
	principals domain.PrincipalRepository
	secret     []byte
	ttl        time.Duration
	now        func() time.Time

	// dummyHash is compared when the email is unknown so both paths cost one bcrypt.
	dummyHash []byte
}

// NewService creates an identity Service.
func NewService(principals domain.PrincipalRepository, secret string, ttl time.Duration) *Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	return &Service{principals: principals, secret: []byte(secret), ttl: ttl, now: time.Now, dummyHash: dummy}
}

// SignIn checks the credentials and returns a new session.
func (s *Service) SignIn(ctx context.Context, req domain.SignInRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.principals.GetByEmail(ctx, req.Email)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(*p)
}

// Refresh re-reads the principal and issues a fresh session.
func (s *Service) Refresh(ctx context.Context, principalID string) (*Session, error) {
	p, err := s.principals.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.issue(*p)
}

func (s *Service) issue(p domain.Principal) (*Session, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"email": p.Email,
		"iss":   Issuer,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	p.PasswordHash = ""
	return &Session{Token: tok, ExpiresAt: exp, Principal: p}, nil
}

// HashPassword returns a bcrypt hash suitable for auth_users.password_hash.
func HashPassword(password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", domain.ErrValidation("password must be at least %d characters", domain.MinPasswordLength)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
