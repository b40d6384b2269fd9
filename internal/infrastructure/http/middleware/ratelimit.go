package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
)

// LoginRateLimiter throttles login attempts per client IP. Limiters for idle
// clients are evicted after an hour.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rps      rate.Limit
	burst    int
	enabled  bool
	stop     chan struct{}
	stopOnce sync.Once
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginRateLimiter creates the limiter from configuration
func NewLoginRateLimiter(cfg *config.Config) *LoginRateLimiter {
	l := &LoginRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rps:      rate.Limit(cfg.RateLimit.RequestsPerMin) / 60,
		burst:    cfg.RateLimit.BurstSize,
		enabled:  cfg.RateLimit.Enable,
		stop:     make(chan struct{}),
	}

	go l.cleanup()
	return l
}

// Stop ends the background eviction goroutine. Safe to call more than once.
func (l *LoginRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Middleware rejects requests over the per-IP budget with 429
func (l *LoginRateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.enabled {
				next.ServeHTTP(w, r)
				return
			}

			if !l.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"success":false,"error":"Çok fazla deneme yaptınız. Lütfen biraz bekleyin."}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (l *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip, entry := range l.limiters {
				if time.Since(entry.lastSeen) > time.Hour {
					delete(l.limiters, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
