package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimit throttles requests per client IP with a token bucket of the
// given rate and burst. Meant for expensive endpoints like the agroplan
// analysis.
func RateLimit(r rate.Limit, burst int) echo.MiddlewareFunc {
	type visitor struct {
		limiter *rate.Limiter
		seen    time.Time
	}

	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	// Stale entries are dropped lazily on each lookup.
	const idle = 10 * time.Minute

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		for addr, v := range visitors {
			if now.Sub(v.seen) > idle {
				delete(visitors, addr)
			}
		}

		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(r, burst)}
			visitors[ip] = v
		}
		v.seen = now
		return v.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
