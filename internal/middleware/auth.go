package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/authz"
	"github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/response"
)

const (
	CtxClaimsKey    = "authClaims"
	CtxUserIDKey    = "userID"
	CtxPrincipalKey = "principal"
)

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateAccessToken(token string) (*iauth.Claims, error)
}

// Auth enforces JWT authentication and attaches the caller's principal to
// both the gin context and the request context.
func Auth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(strings.TrimSpace(header[7:]))
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		principal := iauth.PrincipalFromClaims(claims)
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxPrincipalKey, principal)
		c.Request = c.Request.WithContext(iauth.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// PrincipalFrom returns the principal attached by Auth.
func PrincipalFrom(c *gin.Context) (authz.Principal, bool) {
	value, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return authz.Principal{}, false
	}
	principal, ok := value.(authz.Principal)
	return principal, ok
}
