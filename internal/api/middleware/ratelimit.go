package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/config"
)

// visitor tracks one client IP's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies per-IP token-bucket limits with separate read and
// write tiers. State is in-memory; a restart resets all buckets.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	readLimit  rate.Limit
	readBurst  int
	writeLimit rate.Limit
	writeBurst int
}

// NewRateLimiter creates a RateLimiter from config and starts the
// background eviction loop for idle visitors.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		visitors:   make(map[string]*visitor),
		readLimit:  rate.Limit(cfg.ReadPerSecond),
		readBurst:  cfg.ReadBurst,
		writeLimit: rate.Limit(cfg.WritePerSecond),
		writeBurst: cfg.WriteBurst,
	}
	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(key string, limit rate.Limit, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(limit, burst)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// ReadLimit rate-limits read-heavy routes.
func (rl *RateLimiter) ReadLimit(next http.Handler) http.Handler {
	return rl.limit(next, "read", rl.readLimit, rl.readBurst)
}

// WriteLimit rate-limits mutating routes with a tighter budget.
func (rl *RateLimiter) WriteLimit(next http.Handler) http.Handler {
	return rl.limit(next, "write", rl.writeLimit, rl.writeBurst)
}

func (rl *RateLimiter) limit(next http.Handler, tier string, limit rate.Limit, burst int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		limiter := rl.getVisitor(tier+":"+ip, limit, burst)
		if !limiter.Allow() {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's remote IP. chi's RealIP middleware runs
// earlier in the chain and rewrites RemoteAddr from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
