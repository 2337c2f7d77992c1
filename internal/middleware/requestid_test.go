package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRequestID(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return seen, rec
}

func TestRequestID(t *testing.T) {
	cases := map[string]struct {
		header string
		keep   bool
	}{
		"absent":          {header: "", keep: false},
		"client id":       {header: "contact-7f3a_B", keep: true},
		"128 chars":       {header: strings.Repeat("x", 128), keep: true},
		"129 chars":       {header: strings.Repeat("x", 129), keep: false},
		"newline forgery": {header: "id\nlevel=ERROR", keep: false},
		"markup":          {header: "<b>id</b>", keep: false},
		"space":           {header: "two words", keep: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			seen, rec := serveWithRequestID(t, tc.header)
			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
			if tc.keep {
				assert.Equal(t, tc.header, seen)
			} else {
				assert.NotEqual(t, tc.header, seen)
			}
		})
	}

	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestAccessLog_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/projects/lalibela-vr", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "trace-1", line["request_id"])
	assert.Equal(t, "/projects/lalibela-vr", line["path"])
	assert.InDelta(t, float64(http.StatusTeapot), line["status"], 0)
	assert.InDelta(t, float64(15), line["bytes"], 0)
}

func TestRequestID_GeneratesTimeOrderedUUID(t *testing.T) {
	id, err := uuid.Parse(newRequestID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
