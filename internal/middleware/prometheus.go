package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/followscope/followscope/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so probing
// arbitrary paths cannot grow label cardinality.
const unmatchedRoute = "unmatched"

// PrometheusMiddleware records request counts and durations per route
// pattern (e.g. /api/sessions/:id/view). Scrapes of /metrics are not
// recorded. WebSocket upgrades are counted but not timed, since their
// duration is the life of the viewer connection.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "/metrics" {
			c.Next()
			return
		}

		upgrade := c.IsWebsocket()
		start := time.Now()

		c.Next()

		if route == "" {
			route = unmatchedRoute
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()

		if !upgrade {
			metrics.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		}
	}
}
