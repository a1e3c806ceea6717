package limiter

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPLimiter limits rate of requests per client ip.
// Limiters of clients not seen for ttl are dropped.
type IPLimiter struct {
	rate  rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter *rate.Limiter
	lastHit time.Time
}

// NewIPLimiter creates IPLimiter instance.
// maxRate - maximum number of requests per second for a single client.
func NewIPLimiter(maxRate float64, burst int, ttl time.Duration) *IPLimiter {
	if burst < 1 {
		burst = 1
	}

	return &IPLimiter{
		rate:     rate.Limit(maxRate),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
		limiters: make(map[string]*clientLimiter),
	}
}

// Allow tells if request from given ip is within limit.
func (l *IPLimiter) Allow(ip string) bool {
	if ip == "" {
		ip = "unknown"
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, c := range l.limiters {
		if now.Sub(c.lastHit) > l.ttl {
			delete(l.limiters, k)
		}
	}

	c, ok := l.limiters[ip]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[ip] = c
	}
	c.lastHit = now

	return c.limiter.AllowN(now, 1)
}

// Middleware rejects requests exceeding limit with status 429.
func (l *IPLimiter) Middleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// ClientIP returns host part of request's remote address.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
