package middleware

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// PageViewRecorder stores anonymous page views.
type PageViewRecorder interface {
	VisitorHash(remoteIP, userAgent string) string
	Record(ctx context.Context, path, visitorHash, referrer string)
}

// untrackedPrefixes are never counted as page views.
var untrackedPrefixes = []string{"/admin", "/api/", "/functions/", "/static/", "/uploads/", "/metrics", "/healthz", "/favicon"}

// PageViews records successful public GET page loads after they are served.
func PageViews(rec PageViewRecorder, trustForwarded bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || !trackable(r) {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if status := ww.Status(); status != 0 && status != http.StatusOK {
				return
			}
			hash := rec.VisitorHash(clientIP(r, trustForwarded), r.UserAgent())
			rec.Record(r.Context(), r.URL.Path, hash, r.Referer())
		})
	}
}

func trackable(r *http.Request) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(r.URL.Path, p) {
			return false
		}
	}
	ua := strings.ToLower(r.UserAgent())
	return !strings.Contains(ua, "bot") && !strings.Contains(ua, "spider") && !strings.Contains(ua, "crawl")
}
