package domain

import (
	"regexp"
	"strings"
	"time"
)

// Principal is an authenticated identity known to the session provider.
type Principal struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AdminGrant marks a principal as having console access.
type AdminGrant struct {
	UserID         string
	IsUnrestricted bool
	CreatedAt      time.Time
}

// AdminUser is an AdminGrant joined with its principal and capability rows,
// as listed on the users screen.
type AdminUser struct {
	AdminGrant
	Email        string
	Capabilities []Capability
}

// Access returns the snapshot this admin row resolves to.
func (u AdminUser) Access() Access {
	if u.IsUnrestricted {
		return UnrestrictedAccess()
	}
	a := NoAccess()
	for _, c := range u.Capabilities {
		a.Capabilities[c] = true
	}
	return a
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the shape local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// MinPasswordLength is the shortest password accepted for new principals.
const MinPasswordLength = 8

// CreateAdminRequest holds parameters for creating a console user.
type CreateAdminRequest struct {
	Email          string
	Password       string
	IsUnrestricted bool
	Capabilities   []Capability
}

// Validate checks that the request is well-formed.
func (r *CreateAdminRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if !ValidEmail(r.Email) {
		return ErrValidation("email %q is not a valid address", r.Email)
	}
	if len(r.Password) < MinPasswordLength {
		return ErrValidation("password must be at least %d characters", MinPasswordLength)
	}
	for _, c := range r.Capabilities {
		if !c.Grantable() {
			return ErrValidation("capability %q cannot be granted", c)
		}
	}
	if r.IsUnrestricted {
		r.Capabilities = nil
	}
	return nil
}

// SignInRequest holds console sign-in credentials.
type SignInRequest struct {
	Email    string
	Password string
}

// Validate checks that the request is well-formed.
func (r *SignInRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return ErrValidation("email and password are required")
	}
	return nil
}
