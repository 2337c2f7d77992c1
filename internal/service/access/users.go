package access

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"studio-site/internal/domain"
	"studio-site/internal/service/auditutil"
)

// UserService manages admin grants. Every operation requires an unrestricted caller.
type UserService struct {
	admins domain.AdminRepository
	audit  domain.AuditRepository
	cost   int
}

// NewUserService creates a UserService. cost is the bcrypt cost; 0 uses the default.
func NewUserService(admins domain.AdminRepository, audit domain.AuditRepository, cost int) *UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{admins: admins, audit: audit, cost: cost}
}

// List returns every admin with their capabilities.
func (s *UserService) List(ctx context.Context) ([]domain.AdminUser, error) {
	if err := RequireUnrestricted(ctx); err != nil {
		return nil, err
	}
	return s.admins.List(ctx)
}

// Create adds a principal with console access and the requested capabilities.
func (s *UserService) Create(ctx context.Context, req domain.CreateAdminRequest) (*domain.AdminUser, error) {
	if err := s.guard(ctx, "CREATE_ADMIN", ""); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.admins.Create(ctx, &domain.Principal{Email: req.Email, PasswordHash: string(hash)}, req.IsUnrestricted, req.Capabilities)
	if err != nil {
		return nil, err
	}
	auditutil.LogAllowed(ctx, s.audit, auditutil.Event{Action: "CREATE_ADMIN", Entity: "admin_users", EntityID: u.UserID, Detail: u.Email})
	return u, nil
}

// Delete removes userID's grant and capabilities. Callers cannot remove themselves.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.guard(ctx, "DELETE_ADMIN", userID); err != nil {
		return err
	}
	if err := s.notSelf(ctx, userID, "remove your own admin access"); err != nil {
		return err
	}
	if err := s.admins.Delete(ctx, userID); err != nil {
		return err
	}
	auditutil.LogAllowed(ctx, s.audit, auditutil.Event{Action: "DELETE_ADMIN", Entity: "admin_users", EntityID: userID})
	return nil
}

// SetCapability grants or revokes c for userID.
func (s *UserService) SetCapability(ctx context.Context, userID string, c domain.Capability, enabled bool) error {
	action := "GRANT"
	if !enabled {
		action = "REVOKE"
	}
	if err := s.guard(ctx, action, userID); err != nil {
		return err
	}
	if !c.Grantable() {
		return domain.ErrValidation("capability %q cannot be granted", c)
	}
	if _, err := s.admins.GetGrant(ctx, userID); err != nil {
		return err
	}

	var err error
	if enabled {
		err = s.admins.AddCapability(ctx, userID, c)
	} else {
		err = s.admins.RemoveCapability(ctx, userID, c)
	}
	if err != nil {
		return err
	}
	auditutil.LogAllowed(ctx, s.audit, auditutil.Event{Action: action, Entity: "admin_permissions", EntityID: userID, Detail: string(c)})
	return nil
}

// ToggleCapability flips c for userID and returns the new state.
func (s *UserService) ToggleCapability(ctx context.Context, userID string, c domain.Capability) (bool, error) {
	if err := RequireUnrestricted(ctx); err != nil {
		return false, err
	}
	held, err := s.admins.ListCapabilities(ctx, userID)
	if err != nil {
		return false, err
	}
	enabled := true
	for _, h := range held {
		if h == string(c) {
			enabled = false
			break
		}
	}
	return enabled, s.SetCapability(ctx, userID, c, enabled)
}

// SetUnrestricted flips userID's super admin flag. Callers cannot change their own.
func (s *UserService) SetUnrestricted(ctx context.Context, userID string, unrestricted bool) error {
	if err := s.guard(ctx, "SET_SUPER_ADMIN", userID); err != nil {
		return err
	}
	if err := s.notSelf(ctx, userID, "change your own super admin status"); err != nil {
		return err
	}
	if err := s.admins.SetUnrestricted(ctx, userID, unrestricted); err != nil {
		return err
	}
	auditutil.LogAllowed(ctx, s.audit, auditutil.Event{
		Action: "SET_SUPER_ADMIN", Entity: "admin_users", EntityID: userID, Detail: strconv.FormatBool(unrestricted),
	})
	return nil
}

func (s *UserService) guard(ctx context.Context, action, userID string) error {
	if err := RequireUnrestricted(ctx); err != nil {
		auditutil.LogDenied(ctx, s.audit, auditutil.Event{Action: action, Entity: "admin_users", EntityID: userID})
		return err
	}
	return nil
}

func (s *UserService) notSelf(ctx context.Context, userID, what string) error {
	if p, _ := domain.PrincipalFromContext(ctx); p.ID == userID {
		return domain.ErrValidation("you cannot %s", what)
	}
	return nil
}
