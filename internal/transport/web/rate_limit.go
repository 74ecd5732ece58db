package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Melvins45/maferme237/internal/authz"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per visitor key. Keys are hashed IPs
// for anonymous traffic and person ids for authenticated traffic.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cancel   context.CancelFunc
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter and starts the eviction goroutine, which
// stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	ctx, cancel := context.WithCancel(ctx)
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		cancel:   cancel,
	}
	go rl.evictLoop(ctx)
	return rl
}

// Stop ends the eviction goroutine / Arrête la goroutine d'éviction
func (rl *RateLimiter) Stop() {
	rl.cancel()
}

// allow takes one token from the visitor's bucket, creating it on first
// sight.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// evictLoop drops visitors idle for more than 3 minutes so the map does not
// grow with every IP that ever hit the API.
func (rl *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// clientIP resolves the caller's address. Proxy headers are honored only
// when the direct peer is a configured trusted proxy; anything else would
// let clients spoof their way around the limiter.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, p := range trustedProxies {
		if remoteIP == p {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	// X-Forwarded-For lists "client, proxy1, proxy2"; the first entry is the
	// original caller.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return remoteIP
}

// ipKey hashes the address before it is used as a map key; raw IPs are not
// kept in memory.
func ipKey(r *http.Request, trustedProxies []string) string {
	h := sha256.Sum256([]byte(clientIP(r, trustedProxies)))
	return hex.EncodeToString(h[:])
}

// limit is the shared middleware body: one limiter, one key source, one
// metrics scope.
func (mw *Middleware) limit(next http.Handler, rl *RateLimiter, scope string, key func(*http.Request) string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mw.conf.RateLimiter.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		if !rl.allow(key(r)) {
			mw.metrics.RecordRateLimitHit(scope)
			rateLimitExceeded(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies the global per-IP limit / Applique la limite globale par IP
func (mw *Middleware) RateLimit(next http.Handler) http.Handler {
	return mw.limit(next, mw.globalLimiter, "global", func(r *http.Request) string {
		return ipKey(r, mw.conf.Security.TrustedProxies)
	})
}

// RateLimitStrict applies the tight limit reserved for credential endpoints
// (register, login).
func (mw *Middleware) RateLimitStrict(next http.Handler) http.Handler {
	return mw.limit(next, mw.strictLimiter, "strict", func(r *http.Request) string {
		return ipKey(r, mw.conf.Security.TrustedProxies)
	})
}

// RateLimitByUser keys the limit on the authenticated person id, falling
// back to the IP for anonymous callers.
func (mw *Middleware) RateLimitByUser(next http.Handler) http.Handler {
	return mw.limit(next, mw.userLimiter, "user", func(r *http.Request) string {
		if claims, ok := r.Context().Value(ClaimsContextKey).(authz.Claims); ok && claims.SubjectID != 0 {
			return fmt.Sprintf("user_%d", claims.SubjectID)
		}
		return ipKey(r, mw.conf.Security.TrustedProxies)
	})
}

const retryAfterSeconds = 60

// rateLimitExceeded answers 429 with a Retry-After hint.
func rateLimitExceeded(w http.ResponseWriter) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	jsonResponseStatus(w, http.StatusTooManyRequests, map[string]any{
		"error":               "rate_limit_exceeded",
		"message":             "Too many requests. Please try again later.",
		"retry_after_seconds": retryAfterSeconds,
	})
}
