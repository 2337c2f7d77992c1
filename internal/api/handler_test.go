package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site/internal/config"
	"studio-site/internal/domain"
	"studio-site/internal/middleware"
	"studio-site/internal/notify"
	"studio-site/internal/service/identity"
)

// === Mocks ===

type mockSessions struct {
	signInFn  func(ctx context.Context, req domain.SignInRequest) (*identity.Session, error)
	refreshFn func(ctx context.Context, principalID string) (*identity.Session, error)
}

func (m *mockSessions) SignIn(ctx context.Context, req domain.SignInRequest) (*identity.Session, error) {
	if m.signInFn == nil {
		panic("mockSessions.SignIn called but not configured")
	}
	return m.signInFn(ctx, req)
}

func (m *mockSessions) Refresh(ctx context.Context, principalID string) (*identity.Session, error) {
	if m.refreshFn == nil {
		panic("mockSessions.Refresh called but not configured")
	}
	return m.refreshFn(ctx, principalID)
}

type mockOrder struct {
	reorderFn func(ctx context.Context, collection string, from, to int) ([]domain.OrderedItem, error)
	applyFn   func(ctx context.Context, collection string, ids []string) ([]domain.OrderedItem, error)
	moveFn    func(ctx context.Context, collection, id string, dir domain.MoveDirection) ([]domain.OrderedItem, error)
}

func (m *mockOrder) Reorder(ctx context.Context, collection string, from, to int) ([]domain.OrderedItem, error) {
	if m.reorderFn == nil {
		panic("mockOrder.Reorder called but not configured")
	}
	return m.reorderFn(ctx, collection, from, to)
}

func (m *mockOrder) ApplyOrder(ctx context.Context, collection string, ids []string) ([]domain.OrderedItem, error) {
	if m.applyFn == nil {
		panic("mockOrder.ApplyOrder called but not configured")
	}
	return m.applyFn(ctx, collection, ids)
}

func (m *mockOrder) Move(ctx context.Context, collection, id string, dir domain.MoveDirection) ([]domain.OrderedItem, error) {
	if m.moveFn == nil {
		panic("mockOrder.Move called but not configured")
	}
	return m.moveFn(ctx, collection, id, dir)
}

type mockUploads struct {
	uploadFn func(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (string, error)
}

func (m *mockUploads) Upload(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (string, error) {
	if m.uploadFn == nil {
		panic("mockUploads.Upload called but not configured")
	}
	return m.uploadFn(ctx, prefix, filename, contentType, size, body)
}

type mockContact struct {
	submitFn func(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error)
}

func (m *mockContact) Submit(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error) {
	if m.submitFn == nil {
		panic("mockContact.Submit called but not configured")
	}
	return m.submitFn(ctx, c)
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, n notify.Notification) (notify.Result, error)
}

func (m *mockNotifier) Notify(ctx context.Context, n notify.Notification) (notify.Result, error) {
	return m.notifyFn(ctx, n)
}

type tokenValidator struct{}

func (tokenValidator) Validate(_ context.Context, token string) (*middleware.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &middleware.JWTClaims{Subject: "u1"}, nil
}

type principalLookup struct{}

func (principalLookup) GetByID(_ context.Context, id string) (*domain.Principal, error) {
	if id != "u1" {
		return nil, domain.ErrNotFound("principal %s not found", id)
	}
	return &domain.Principal{ID: "u1", Email: "editor@studio.io"}, nil
}

func (principalLookup) GetByEmail(_ context.Context, email string) (*domain.Principal, error) {
	return nil, domain.ErrNotFound("principal %s not found", email)
}

type fixedResolver struct{ access domain.Access }

func (f fixedResolver) Resolve(context.Context, string) domain.Access { return f.access }

// === Harness ===

var testAuth = config.AuthConfig{CookieName: "studio_session"}

type harness struct {
	sessions *mockSessions
	order    *mockOrder
	uploads  *mockUploads
	contact  *mockContact
	router   http.Handler
}

func newHarness(t *testing.T, access domain.Access) *harness {
	t.Helper()
	h := &harness{sessions: &mockSessions{}, order: &mockOrder{}, uploads: &mockUploads{}, contact: &mockContact{}}
	handler := NewHandler(h.sessions, h.order, h.uploads, h.contact, testAuth, 1<<20, discardLogger())
	authn := middleware.NewAuthenticator(tokenValidator{}, principalLookup{}, fixedResolver{access}, testAuth, nil)
	passthrough := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	r.Mount("/api/v1", handler.Routes(authn, passthrough))
	h.router = r
	return h
}

func (h *harness) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer good")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) Error {
	t.Helper()
	var e Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&e))
	return e
}

// === Tests ===

func TestHTTPStatusFromDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound("x"), http.StatusNotFound},
		{domain.ErrAccessDenied("x"), http.StatusForbidden},
		{domain.ErrValidation("x"), http.StatusBadRequest},
		{domain.ErrConflict("x"), http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, httpStatusFromDomainError(tc.err), tc.err.Error())
	}
}

func TestMyAccess(t *testing.T) {
	h := newHarness(t, domain.RestrictedAccess([]string{"team", "blog"}))

	w := h.do(http.MethodGet, "/api/v1/me/access", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var got Access
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, Access{
		PrincipalID: "u1", Email: "editor@studio.io", IsAdmin: true,
		Capabilities: []string{"blog", "team"},
	}, got)

	w = h.do(http.MethodGet, "/api/v1/me/access", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignIn(t *testing.T) {
	h := newHarness(t, domain.NoAccess())
	exp := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	h.sessions.signInFn = func(_ context.Context, req domain.SignInRequest) (*identity.Session, error) {
		if req.Password != "correct horse" {
			return nil, domain.ErrInvalidCredentials
		}
		return &identity.Session{Token: "tok", ExpiresAt: exp, Principal: domain.Principal{Email: req.Email}}, nil
	}

	w := h.do(http.MethodPost, "/api/v1/session", `{"email":"a@b.co","password":"correct horse"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	var s Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, "tok", s.Token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "studio_session=tok")

	w = h.do(http.MethodPost, "/api/v1/session", `{"email":"a@b.co","password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.MsgInvalidCredentials, decodeError(t, w).Message)
}

func TestRefreshSession(t *testing.T) {
	h := newHarness(t, domain.NoAccess())
	h.sessions.refreshFn = func(_ context.Context, id string) (*identity.Session, error) {
		assert.Equal(t, "u1", id)
		return &identity.Session{Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	w := h.do(http.MethodPost, "/api/v1/session/refresh", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "studio_session=fresh")
}

func TestReorder(t *testing.T) {
	h := newHarness(t, domain.UnrestrictedAccess())
	h.order.reorderFn = func(_ context.Context, collection string, from, to int) ([]domain.OrderedItem, error) {
		assert.Equal(t, "services", collection)
		assert.Equal(t, 2, from)
		assert.Equal(t, 0, to)
		return []domain.OrderedItem{{ID: "c", DisplayOrder: 0}, {ID: "a", DisplayOrder: 1}}, nil
	}
	h.order.applyFn = func(_ context.Context, _ string, ids []string) ([]domain.OrderedItem, error) {
		return nil, domain.ErrValidation("ids must be a permutation of the current order")
	}
	h.order.moveFn = func(_ context.Context, _ string, id string, dir domain.MoveDirection) ([]domain.OrderedItem, error) {
		assert.Equal(t, domain.MoveUp, dir)
		return []domain.OrderedItem{{ID: id, DisplayOrder: 0}}, nil
	}

	w := h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{"from":2,"to":0}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []OrderedItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []OrderedItem{{ID: "c", DisplayOrder: 0}, {ID: "a", DisplayOrder: 1}}, body.Items)

	w = h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{"ids":["a"]}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{"id":"b","direction":"up"}`, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{"from":0,"to":1,"extra":true}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorder_AccessDenied(t *testing.T) {
	h := newHarness(t, domain.RestrictedAccess([]string{"blog"}))
	h.order.reorderFn = func(context.Context, string, int, int) ([]domain.OrderedItem, error) {
		return nil, domain.ErrAccessDenied("services capability required")
	}
	w := h.do(http.MethodPost, "/api/v1/collections/services/reorder", `{"from":0,"to":1}`, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, http.StatusForbidden, e.Code)
	assert.Equal(t, domain.MsgPermission, e.Message)
}

func TestUpload(t *testing.T) {
	h := newHarness(t, domain.UnrestrictedAccess())
	h.uploads.uploadFn = func(_ context.Context, prefix, filename, contentType string, size int64, body io.Reader) (string, error) {
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "blog", prefix)
		assert.Equal(t, "cover.png", filename)
		assert.Equal(t, int64(len(data)), size)
		return "https://cdn.example/blog/1-abc.png", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads?prefix=blog", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var up Upload
	require.NoError(t, json.NewDecoder(w.Body).Decode(&up))
	assert.Equal(t, "https://cdn.example/blog/1-abc.png", up.URL)

	w = h.do(http.MethodPost, "/api/v1/uploads?prefix=blog", "not multipart", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitContact(t *testing.T) {
	h := newHarness(t, domain.NoAccess())
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	h.contact.submitFn = func(_ context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error) {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		c.ID = "m1"
		c.CreatedAt = created
		return &c, nil
	}

	w := h.do(http.MethodPost, "/api/v1/contact", `{"name":"Abebe","email":"abebe@example.com","subject":"Hi","message":"Hello"}`, false)
	require.Equal(t, http.StatusCreated, w.Code)
	var rc ContactReceipt
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rc))
	assert.Equal(t, "m1", rc.ID)

	w = h.do(http.MethodPost, "/api/v1/contact", `{"name":"Abebe","email":"nope","subject":"Hi","message":"Hello"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelayHandler(t *testing.T) {
	n := &mockNotifier{}
	handler := RelayHandler(n)
	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/functions/v1/send-contact-notification", strings.NewReader(body)))
		return w
	}
	payload := `{"name":"A","email":"a@b.co","subject":"S","message":"M"}`

	n.notifyFn = func(context.Context, notify.Notification) (notify.Result, error) {
		return notify.Result{Success: true, Skipped: true}, nil
	}
	w := post(payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"skipped":true}`, w.Body.String())

	n.notifyFn = func(context.Context, notify.Notification) (notify.Result, error) {
		return notify.Result{}, domain.ErrValidation("Invalid email format")
	}
	w = post(payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())

	n.notifyFn = func(context.Context, notify.Notification) (notify.Result, error) {
		return notify.Result{}, fmt.Errorf("%w: %w", notify.ErrSendFailed, errors.New("resend: 422"))
	}
	w = post(payload)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send notification"}`, w.Body.String())

	w = post("{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
