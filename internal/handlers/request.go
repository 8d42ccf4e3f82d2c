package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/response"
)

// requestContext hands services the request context, which carries the
// principal set by the auth middleware. Tests without a request get Background.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// intParam reads a positive integer path parameter such as :id or :dishId,
// writing a 400 response when it is malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		response.Error(c, appErrors.NewBadRequest(name+" must be a positive integer"))
		return 0, false
	}
	return value, true
}
