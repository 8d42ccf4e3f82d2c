package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	CtxRequestIDKey = "requestID"
)

// Logger writes a concise structured access log for each request and tags it
// with a request id, reusing the caller's X-Request-ID when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if userID, ok := c.Get(CtxUserIDKey); ok {
			fields = append(fields, zap.Any("user_id", userID))
		}

		logger.WithModule("http").Info("request", fields...)
	}
}
