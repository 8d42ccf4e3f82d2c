package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/logger"
	"github.com/charlesng35/restaurants/pkg/response"
)

const healthTimeout = 2 * time.Second

// ErrDatabaseUnavailable reports a failed readiness check.
var ErrDatabaseUnavailable = appErrors.New("SERVICE_UNAVAILABLE", "Database unavailable", http.StatusServiceUnavailable)

// Pinger checks connectivity to a backing service. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health returns a status payload useful for readiness checks. A nil pinger reports ok.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(requestContext(c), healthTimeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				logger.WithModule("health").Warn("database ping failed", zap.Error(err))
				response.Error(c, ErrDatabaseUnavailable)
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
