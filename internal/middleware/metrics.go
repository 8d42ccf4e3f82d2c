package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/pkg/metrics"
)

// UnmatchedRoute labels requests that hit no registered route, keeping
// arbitrary paths such as /api/restaurant/abc/xyz out of the label set.
const UnmatchedRoute = "unmatched"

// Metrics counts requests and records their latency per route template,
// e.g. /api/restaurant/:id/dish rather than /api/restaurant/7/dish.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.APILatency.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
