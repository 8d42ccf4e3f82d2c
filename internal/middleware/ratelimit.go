package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/logger"
	"github.com/charlesng35/restaurants/pkg/response"
)

// RateLimit limits requests per (clientIP, route) within a fixed window. A nil
// store falls back to process-local counters. Store failures let the request
// through.
func RateLimit(store RateStore, maxRequests int, window time.Duration) gin.HandlerFunc {
	if store == nil {
		store = NewMemoryRateStore()
	}

	return func(c *gin.Context) {
		if maxRequests <= 0 || window <= 0 {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := c.ClientIP() + "|" + c.Request.Method + "|" + route

		count, ttl, err := store.Increment(c.Request.Context(), key, window)
		if err != nil {
			logger.WithModule("http").Warn("rate limit store failed", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, maxRequests-count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))

		if count > maxRequests {
			c.Header("Retry-After", strconv.Itoa(max(1, int(math.Ceil(ttl.Seconds())))))
			response.Error(c, errors.ErrRateLimit)
			c.Abort()
			return
		}

		c.Next()
	}
}
