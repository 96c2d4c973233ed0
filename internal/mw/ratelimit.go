package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cardoza1991/Room-Reservation-App/config"
)

const (
	defaultRatePerSec = 10
	defaultBurst      = 5
)

// ipLimiters hands out one token bucket per client IP. Entries are never
// evicted; a server fronting one campus sees few distinct clients, so the
// map stays small without the bookkeeping an eviction policy would cost.
type ipLimiters struct {
	mu    sync.Mutex
	perIP map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perIP[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.perIP[ip] = lim
	}
	return lim
}

// RateLimit builds the per-IP throttling middleware from server config.
// Unset or non-positive settings fall back to 10 requests per second with
// a burst of 5. A client over its budget gets 429 before any handler runs.
func RateLimit(cfg *config.ServerConfig) gin.HandlerFunc {
	limit := rate.Limit(cfg.RateLimitPerSec)
	if limit <= 0 {
		limit = defaultRatePerSec
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = defaultBurst
	}
	limiters := &ipLimiters{
		perIP: make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
