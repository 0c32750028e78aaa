package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/followscope/followscope/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func rateLimitedRouter(rl *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func hit(r *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)

	return w.Code
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	r := rateLimitedRouter(middleware.NewRateLimiter(10, 5))

	if code := hit(r, "1.2.3.4:1234"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRateLimiter_BlocksExceedingLimit(t *testing.T) {
	r := rateLimitedRouter(middleware.NewRateLimiter(1, 2)) // burst=2

	for i := range 3 {
		code := hit(r, "1.2.3.4:1234")

		if i < 2 && code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
		if i == 2 && code != http.StatusTooManyRequests {
			t.Fatalf("request %d: expected 429, got %d", i, code)
		}
	}
}

func TestRateLimiter_IndependentBuckets(t *testing.T) {
	r := rateLimitedRouter(middleware.NewRateLimiter(1, 1))

	// Use IP A's token
	hit(r, "1.1.1.1:1000")

	// IP B should still work
	if code := hit(r, "2.2.2.2:1000"); code != http.StatusOK {
		t.Fatalf("different IP should not be rate limited, got %d", code)
	}
}

func TestRateLimiter_TokensRefillOverTime(t *testing.T) {
	// High rate so even tiny elapsed time refills tokens
	r := rateLimitedRouter(middleware.NewRateLimiter(1000000, 2))

	for range 2 {
		hit(r, "5.5.5.5:1000")
	}

	if code := hit(r, "5.5.5.5:1000"); code != http.StatusOK {
		t.Fatalf("expected tokens to refill, got %d", code)
	}
}
