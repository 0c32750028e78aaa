// Package middleware provides HTTP middleware for the followscope server.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Per-IP limiter table bounds.
const (
	maxBuckets   = 100_000
	bucketMaxAge = 10 * time.Minute
)

// RateLimiter applies a token bucket per client IP. Idle buckets expire and
// the table is bounded, evicting the least recently seen IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *rate.Limiter]
	rate    rate.Limit
	burst   int
}

// NewRateLimiter creates a RateLimiter with the given requests per second and burst size.
func NewRateLimiter(ratePerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](maxBuckets, nil, bucketMaxAge),
		rate:    rate.Limit(ratePerSec),
		burst:   burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.buckets.Get(ip)
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
	}

	// Re-adding refreshes the idle expiry.
	rl.buckets.Add(ip, l)

	return l
}

// Handler returns Gin middleware that applies rate limiting per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		if !rl.limiter(c.ClientIP()).Allow() {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
