package access

import (
	"context"
	"errors"
	"sort"
	"sync"

	"studio-site/internal/domain"
)

type fakeAdmins struct {
	mu      sync.Mutex
	grants  map[string]*domain.AdminGrant
	caps    map[string]map[string]bool
	emails  map[string]string
	failGet error
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{
		grants: map[string]*domain.AdminGrant{},
		caps:   map[string]map[string]bool{},
		emails: map[string]string{},
	}
}

func (f *fakeAdmins) seed(id string, unrestricted bool, caps ...string) {
	f.grants[id] = &domain.AdminGrant{UserID: id, IsUnrestricted: unrestricted}
	f.caps[id] = map[string]bool{}
	for _, c := range caps {
		f.caps[id][c] = true
	}
}

func (f *fakeAdmins) GetGrant(_ context.Context, userID string) (*domain.AdminGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	g, ok := f.grants[userID]
	if !ok {
		return nil, domain.ErrNotFound("admin %q not found", userID)
	}
	cp := *g
	return &cp, nil
}

func (f *fakeAdmins) ListCapabilities(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for c := range f.caps[userID] {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeAdmins) List(_ context.Context) ([]domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AdminUser
	for id, g := range f.grants {
		u := domain.AdminUser{AdminGrant: *g, Email: f.emails[id]}
		for c := range f.caps[id] {
			if cc, ok := domain.ParseCapability(c); ok {
				u.Capabilities = append(u.Capabilities, cc)
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeAdmins) Create(_ context.Context, p *domain.Principal, unrestricted bool, caps []domain.Capability) (*domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "id-" + p.Email
	if _, ok := f.grants[id]; ok {
		return nil, domain.ErrConflict("admin exists")
	}
	f.grants[id] = &domain.AdminGrant{UserID: id, IsUnrestricted: unrestricted}
	f.caps[id] = map[string]bool{}
	for _, c := range caps {
		f.caps[id][string(c)] = true
	}
	f.emails[id] = p.Email
	return &domain.AdminUser{AdminGrant: *f.grants[id], Email: p.Email, Capabilities: caps}, nil
}

func (f *fakeAdmins) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.grants[userID]; !ok {
		return domain.ErrNotFound("admin %q not found", userID)
	}
	delete(f.grants, userID)
	delete(f.caps, userID)
	return nil
}

func (f *fakeAdmins) SetUnrestricted(_ context.Context, userID string, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.grants[userID]
	if !ok {
		return domain.ErrNotFound("admin %q not found", userID)
	}
	g.IsUnrestricted = v
	return nil
}

func (f *fakeAdmins) AddCapability(_ context.Context, userID string, c domain.Capability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caps[userID][string(c)] = true
	return nil
}

func (f *fakeAdmins) RemoveCapability(_ context.Context, userID string, c domain.Capability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.caps[userID], string(c))
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Insert(_ context.Context, e *domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *e)
	return nil
}

func (a *recordingAudit) List(_ context.Context, _ domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	return a.entries, int64(len(a.entries)), nil
}

var errStoreDown = errors.New("database is locked")
