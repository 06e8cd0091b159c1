package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"golang.org/x/time/rate"
)

const defaultIdleTTL = 10 * time.Minute

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client key. Buckets idle for
// longer than idleTTL are swept, at most once per idleTTL.
type IPRateLimiter struct {
	ips       map[string]*ipBucket
	mu        sync.Mutex
	r         rate.Limit
	b         int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *IPRateLimiter {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &IPRateLimiter{
		ips:     make(map[string]*ipBucket),
		r:       r,
		b:       b,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idleTTL {
		i.sweep(now)
	}

	bucket, exists := i.ips[key]
	if !exists {
		bucket = &ipBucket{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[key] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter
}

// sweep drops idle buckets. Callers hold mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	for key, bucket := range i.ips {
		if now.Sub(bucket.lastSeen) >= i.idleTTL {
			delete(i.ips, key)
		}
	}
	i.lastSweep = now
}

// Len reports how many clients currently hold a bucket.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// clientIP strips the port from RemoteAddr. Forwarded headers are never read
// here; RemoteAddr only reflects them when RealIP runs first behind a trusted
// proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitByIP rejects requests above r per second (burst b) per client IP.
func RateLimitByIP(r rate.Limit, b int, idleTTL time.Duration) func(http.Handler) http.Handler {
	return RateLimit(NewIPRateLimiter(r, b, idleTTL))
}

// RateLimit enforces limiter keyed by client IP.
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.GetLimiter(clientIP(req)).Allow() {
				response.TooManyRequests(w, "Too many requests from this IP")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
