package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go-healthcare-portal/pkg/response"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	limiterTTL     = 10 * time.Minute
	limiterCleanup = 5 * time.Minute
)

// RateLimiter keeps one token bucket per client IP. Idle buckets expire from
// the cache after limiterTTL. Forwarding headers are only honoured when
// trustProxy is set.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   *cache.Cache
	rps        rate.Limit
	burst      int
	trustProxy bool
}

func NewRateLimiter(rps float64, burst int, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		limiters:   cache.New(limiterTTL, limiterCleanup),
		rps:        rate.Limit(rps),
		burst:      burst,
		trustProxy: trustProxy,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
	}
	rl.limiters.SetDefault(ip, limiter)
	rl.mu.Unlock()

	return limiter.(*rate.Limiter).Allow()
}

// Limit rejects requests over the budget with 429 Too Many Requests.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.key(r)) {
			response.TooManyRequests(w, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) key(r *http.Request) string {
	if rl.trustProxy {
		return ClientIP(r)
	}
	return RemoteIP(r)
}

// ClientIP prefers X-Real-Ip, then the first X-Forwarded-For hop. Both are
// client supplied unless a proxy rewrites them.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	return RemoteIP(r)
}

// RemoteIP is the host part of the connection's remote address.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
