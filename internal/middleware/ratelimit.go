package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the rate limiter middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit (tokens added per second).
	RequestsPerSecond float64
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
	// TrustForwarded keys clients by the first X-Forwarded-For hop. Enable
	// only behind a proxy that overwrites the header.
	TrustForwarded bool
}

// clientLimiter tracks a per-client rate limiter and when it was last seen.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter enforces a per-client token-bucket limit.
type RateLimiter struct {
	cfg     RateLimitConfig
	clients sync.Map // map[string]*clientLimiter
	now     func() time.Time
}

// NewRateLimiter creates a RateLimiter. Stale clients are swept every five
// minutes until ctx is cancelled.
func NewRateLimiter(ctx context.Context, cfg RateLimitConfig) *RateLimiter {
	l := &RateLimiter{cfg: cfg, now: time.Now}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep(10 * time.Minute)
			}
		}
	}()
	return l
}

func (l *RateLimiter) sweep(idle time.Duration) {
	cutoff := l.now().Add(-idle).UnixNano()
	l.clients.Range(func(key, value any) bool {
		if value.(*clientLimiter).lastSeen.Load() < cutoff {
			l.clients.Delete(key)
		}
		return true
	})
}

func (l *RateLimiter) limiterFor(ip string) *rate.Limiter {
	now := l.now().UnixNano()
	if v, ok := l.clients.Load(ip); ok {
		cl := v.(*clientLimiter)
		cl.lastSeen.Store(now)
		return cl.limiter
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
	cl.lastSeen.Store(now)
	v, _ := l.clients.LoadOrStore(ip, cl)
	return v.(*clientLimiter).limiter
}

// Middleware responds with 429 Too Many Requests when the client exceeds its
// limit and sets standard rate-limit headers otherwise.
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := l.limiterFor(clientIP(r, l.cfg.TrustForwarded))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				writeTooManyRequests(w, 0)
				return
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				writeTooManyRequests(w, int(delay.Seconds())+1)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(l.now().Add(time.Second).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP address from the request, stripping the
// port. X-Forwarded-For is consulted only when trusted.
func clientIP(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeTooManyRequests(w http.ResponseWriter, retryAfterSecs int) {
	if retryAfterSecs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    429,
		"message": "rate limit exceeded",
	})
}
