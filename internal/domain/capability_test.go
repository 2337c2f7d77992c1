package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapability(t *testing.T) {
	for _, c := range AllCapabilities {
		got, ok := ParseCapability(string(c))
		require.True(t, ok, c)
		assert.Equal(t, c, got)
	}

	for _, s := range []string{"", "Messages", "admin", "users ", "superuser"} {
		_, ok := ParseCapability(s)
		assert.False(t, ok, "%q should not parse", s)
	}
}

func TestGrantableCapabilities(t *testing.T) {
	caps := GrantableCapabilities()
	assert.Len(t, caps, len(AllCapabilities)-1)
	assert.NotContains(t, caps, CapUsers)
	assert.False(t, CapUsers.Grantable())
	assert.False(t, Capability("bogus").Grantable())
	assert.True(t, CapBlog.Grantable())
}

func TestAccess(t *testing.T) {
	t.Run("no access", func(t *testing.T) {
		a := NoAccess()
		assert.False(t, a.IsAdmin())
		for _, c := range AllCapabilities {
			assert.False(t, a.Has(c))
		}
		assert.Empty(t, a.List())
	})

	t.Run("unrestricted holds all nine", func(t *testing.T) {
		a := UnrestrictedAccess()
		assert.True(t, a.IsAdmin())
		assert.Len(t, a.List(), 9)
		assert.True(t, a.Has(CapUsers))
	})

	t.Run("restricted drops unknown values", func(t *testing.T) {
		a := RestrictedAccess([]string{"blog", "projects", "nonsense", "BLOG"})
		assert.True(t, a.IsAdmin())
		assert.False(t, a.IsUnrestricted)
		assert.Equal(t, []Capability{CapBlog, CapProjects}, a.List())
		assert.Equal(t, []string{"blog", "projects"}, a.Strings())
		assert.False(t, a.Has(CapUsers))
		assert.False(t, a.Has(CapMessages))
	})

	t.Run("restricted with only unknown values is not admin", func(t *testing.T) {
		a := RestrictedAccess([]string{"root"})
		assert.False(t, a.IsAdmin())
	})
}

func TestAdminUser_Access(t *testing.T) {
	u := AdminUser{AdminGrant: AdminGrant{UserID: "u1"}, Capabilities: []Capability{CapTeam}}
	a := u.Access()
	assert.True(t, a.Has(CapTeam))
	assert.False(t, a.Has(CapAwards))

	u.IsUnrestricted = true
	assert.True(t, u.Access().Has(CapAwards))
}

func TestCreateAdminRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateAdminRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateAdminRequest{Email: " Editor@Studio.io ", Password: "longenough", Capabilities: []Capability{CapBlog}},
		},
		{
			name:    "missing email",
			req:     CreateAdminRequest{Password: "longenough"},
			wantErr: "email is required",
		},
		{
			name:    "bad email",
			req:     CreateAdminRequest{Email: "nope", Password: "longenough"},
			wantErr: "not a valid address",
		},
		{
			name:    "short password",
			req:     CreateAdminRequest{Email: "a@b.co", Password: "short"},
			wantErr: "password must be at least 8 characters",
		},
		{
			name:    "users not grantable",
			req:     CreateAdminRequest{Email: "a@b.co", Password: "longenough", Capabilities: []Capability{CapUsers}},
			wantErr: `capability "users" cannot be granted`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCreateAdminRequest_ValidateNormalises(t *testing.T) {
	req := CreateAdminRequest{
		Email:          " Boss@Studio.IO",
		Password:       "longenough",
		IsUnrestricted: true,
		Capabilities:   []Capability{CapBlog},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "boss@studio.io", req.Email)
	assert.Nil(t, req.Capabilities)
}
