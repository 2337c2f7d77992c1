// Package middleware provides HTTP middleware for session authentication,
// rate limiting, request tracing and metrics.
package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the identity carried by a verified token.
type JWTClaims struct {
	Subject  string
	Issuer   string
	Audience []string
	Email    *string
}

// JWTValidator verifies a bearer or cookie token.
type JWTValidator interface {
	Validate(ctx context.Context, tokenString string) (*JWTClaims, error)
}

// sessionClaims mirrors the claim set the identity service signs.
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HS256Validator checks console session tokens signed with the shared secret.
type HS256Validator struct {
	secret []byte
	parser *jwt.Parser
}

// NewHS256Validator builds a session validator. A non-empty issuer must match
// the iss claim.
func NewHS256Validator(secret, issuer string) (*HS256Validator, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &HS256Validator{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

func (v *HS256Validator) Validate(_ context.Context, tokenString string) (*JWTClaims, error) {
	var sc sessionClaims
	if _, err := v.parser.ParseWithClaims(tokenString, &sc, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("session token: %w", err)
	}
	out := &JWTClaims{Subject: sc.Subject, Issuer: sc.Issuer, Audience: sc.Audience}
	if sc.Email != "" {
		out.Email = &sc.Email
	}
	return out, nil
}

// OIDCValidator accepts ID tokens from an external provider, discovered
// through the issuer's well-known configuration.
type OIDCValidator struct {
	verifier *oidc.IDTokenVerifier
	issuers  map[string]struct{}
}

// NewOIDCValidator runs provider discovery against issuerURL. With no
// allowedIssuers, only issuerURL itself is trusted.
func NewOIDCValidator(ctx context.Context, issuerURL, audience string, allowedIssuers []string) (*OIDCValidator, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider %s: %w", issuerURL, err)
	}
	if len(allowedIssuers) == 0 {
		allowedIssuers = []string{issuerURL}
	}
	issuers := make(map[string]struct{}, len(allowedIssuers))
	for _, iss := range allowedIssuers {
		issuers[iss] = struct{}{}
	}
	return &OIDCValidator{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
		issuers:  issuers,
	}, nil
}

func (v *OIDCValidator) Validate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	tok, err := v.verifier.Verify(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("oidc token: %w", err)
	}
	if _, ok := v.issuers[tok.Issuer]; !ok {
		return nil, fmt.Errorf("oidc token: issuer %q not trusted", tok.Issuer)
	}
	var extra struct {
		Email string `json:"email"`
	}
	if err := tok.Claims(&extra); err != nil {
		return nil, fmt.Errorf("oidc claims: %w", err)
	}
	out := &JWTClaims{Subject: tok.Subject, Issuer: tok.Issuer, Audience: tok.Audience}
	if extra.Email != "" {
		out.Email = &extra.Email
	}
	return out, nil
}

// ChainValidator returns the claims of the first validator that accepts the
// token. Nil entries are skipped.
type ChainValidator []JWTValidator

func (c ChainValidator) Validate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	var errs []error
	for _, v := range c {
		if v == nil {
			continue
		}
		claims, err := v.Validate(ctx, tokenString)
		if err == nil {
			return claims, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no token validator configured")
	}
	return nil, errors.Join(errs...)
}
