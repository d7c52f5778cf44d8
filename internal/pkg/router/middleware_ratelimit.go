package router

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures a per client IP token bucket.
type RateLimitConfig struct {
	// Requests allowed per Window once the burst is spent.
	Requests int
	Window   time.Duration
	// Burst is the bucket size. Defaults to Requests.
	Burst int
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a middleware that rejects clients exceeding cfg with 429.
// It relies on middlewareIP having resolved RemoteAddr to the client address.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Requests <= 0 {
		cfg.Requests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Requests
	}

	const idleTTL = 30 * time.Minute

	var (
		mu        sync.Mutex
		limiters  = make(map[string]*ipLimiter)
		lastSweep = time.Now()
		every     = rate.Every(cfg.Window / time.Duration(cfg.Requests))
		retry     = strconv.Itoa(int((cfg.Window / time.Duration(cfg.Requests)).Seconds()) + 1)
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			key := r.RemoteAddr

			mu.Lock()
			if now.Sub(lastSweep) > idleTTL {
				for ip, l := range limiters {
					if now.Sub(l.lastSeen) > idleTTL {
						delete(limiters, ip)
					}
				}
				lastSweep = now
			}

			l, ok := limiters[key]
			if !ok {
				l = &ipLimiter{limiter: rate.NewLimiter(every, cfg.Burst)}
				limiters[key] = l
			}
			l.lastSeen = now
			allowed := l.limiter.AllowN(now, 1)
			mu.Unlock()

			if !allowed {
				w.Header().Set("Retry-After", retry)
				writeJSON(w, errorResponse{
					Message: "Too many login attempts. Please try again later.",
					Code:    "ERROR_CODE_TOO_MANY_REQUESTS",
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
