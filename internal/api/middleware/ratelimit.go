// internal/api/middleware/ratelimit.go
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"

	"golang.org/x/time/rate"
)

const (
	loginBucketSize   = 5
	loginRefillPerMin = 5
)

// LoginRateLimiter keeps one token bucket per client identity for the login
// endpoint. State is process-local.
type LoginRateLimiter struct {
	enabled bool

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewLoginRateLimiter creates the limiter. When disabled it passes every
// request through.
func NewLoginRateLimiter(enabled bool) *LoginRateLimiter {
	return &LoginRateLimiter{
		enabled: enabled,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Handler wraps next with the token-bucket check.
func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.enabled {
			next.ServeHTTP(w, r)
			return
		}
		if !l.bucketFor(clientKey(r)).Allow() {
			problem.WriteCode(w, r, apperr.CodeRateLimitExceeded, "", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Reset drops all bucket state. Test hook.
func (l *LoginRateLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets = make(map[string]*rate.Limiter)
}

func (l *LoginRateLimiter) bucketFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rate.Limit(loginRefillPerMin)/60, loginBucketSize)
		l.buckets[key] = bucket
	}
	return bucket
}

// clientKey picks the client identity: the X-Test-Id header, else the first
// hop of X-Forwarded-For, else the remote peer.
func clientKey(r *http.Request) string {
	if id := r.Header.Get("X-Test-Id"); id != "" {
		return id
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
