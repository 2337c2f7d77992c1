package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site/internal/domain"
)

type stubSettings struct {
	rows map[string]string
	err  error
}

func (s *stubSettings) List(context.Context) ([]domain.SiteSetting, error) { return nil, nil }

func (s *stubSettings) Get(_ context.Context, key string) (*domain.SiteSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.rows[key]
	if !ok {
		return nil, domain.ErrNotFound("setting %q not found", key)
	}
	return &domain.SiteSetting{Key: key, Value: v}, nil
}

func (s *stubSettings) Upsert(context.Context, []domain.SiteSetting) error { return nil }

type captureSender struct {
	sent []Email
	err  error
}

func (c *captureSender) Send(_ context.Context, e Email) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.sent = append(c.sent, e)
	return "msg_1", nil
}

const fallbackAddr = "fallback@studio.io"

func newRelay(sender Sender, settings map[string]string) *Relay {
	return NewRelay(sender, &stubSettings{rows: settings}, "Studio <noreply@studio.io>", fallbackAddr,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validNotification() Notification {
	return Notification{Name: "Abebe", Email: "abebe@example.com", Subject: "Quote", Message: "Hello <b>team</b>"}
}

func TestRelay_SkipsWithoutSender(t *testing.T) {
	r := NewRelay(nil, &stubSettings{}, "from", fallbackAddr, slog.New(slog.NewTextHandler(io.Discard, nil)))
	res, err := r.Notify(context.Background(), Notification{})
	require.NoError(t, err)
	assert.Equal(t, Result{Success: true, Skipped: true}, res)
}

func TestRelay_Validation(t *testing.T) {
	r := newRelay(&captureSender{}, nil)
	var ve *domain.ValidationError

	_, err := r.Notify(context.Background(), Notification{Name: "  ", Email: "a@b.co", Subject: "s", Message: "m"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Missing required fields", ve.Message)

	_, err = r.Notify(context.Background(), Notification{Name: "n", Email: "nope", Subject: "s", Message: "m"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid email format", ve.Message)
}

func TestRelay_EscapesAndCaps(t *testing.T) {
	sender := &captureSender{}
	r := newRelay(sender, nil)
	n := validNotification()
	n.Subject = "<script>" + strings.Repeat("s", 300)
	n.Message = strings.Repeat("m", 6000)

	res, err := r.Notify(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, "msg_1", res.ID)
	require.Len(t, sender.sent, 1)

	e := sender.sent[0]
	assert.True(t, strings.HasPrefix(e.Subject, "New Contact: &lt;script&gt;"))
	assert.NotContains(t, e.HTML, "<script>")
	assert.Contains(t, e.HTML, "&lt;script&gt;")
	assert.NotContains(t, e.HTML, strings.Repeat("m", 5001))
	assert.Contains(t, e.HTML, strings.Repeat("m", 5000))
	assert.Equal(t, "abebe@example.com", e.ReplyTo)
}

func TestRelay_Recipients(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]string
		want     []string
	}{
		{"no settings uses fallback", nil, []string{fallbackAddr}},
		{"empty list uses fallback", map[string]string{"notification_recipients": "[]"}, []string{fallbackAddr}},
		{"invalid json uses fallback", map[string]string{"notification_recipients": "{"}, []string{fallbackAddr}},
		{
			"configured list plus contact email",
			map[string]string{"notification_recipients": `["a@studio.io","b@studio.io"]`, "contact_email": "hello@studio.io"},
			[]string{"a@studio.io", "b@studio.io", "hello@studio.io"},
		},
		{
			"contact email already listed",
			map[string]string{"notification_recipients": `["hello@studio.io"]`, "contact_email": "Hello@Studio.io"},
			[]string{"hello@studio.io"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &captureSender{}
			_, err := newRelay(sender, tc.settings).Notify(context.Background(), validNotification())
			require.NoError(t, err)
			assert.Equal(t, tc.want, sender.sent[0].To)
		})
	}
}

func TestRelay_SendFailure(t *testing.T) {
	r := newRelay(&captureSender{err: errors.New("422 validation_error")}, nil)
	_, err := r.Notify(context.Background(), validNotification())
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestClient(t *testing.T) {
	var got Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.Email == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid email format"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"skipped":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	res, err := c.Notify(context.Background(), validNotification())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, "Abebe", got.Name)

	_, err = c.Notify(context.Background(), Notification{Email: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email format")
}
