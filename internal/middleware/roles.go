package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/logger"
	"github.com/charlesng35/restaurants/pkg/response"
)

// RequireRoles allows the request through when the principal holds any of
// the roles. It must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.HasRole(role) {
				c.Next()
				return
			}
		}

		logger.WithModule("http").Info("role check failed",
			zap.Int("principal_id", principal.ID()),
			zap.Strings("required", roles),
		)
		response.Error(c, errors.ErrForbidden)
		c.Abort()
	}
}
