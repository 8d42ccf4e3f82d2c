package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/handlers"
)

func registerAccountRoutes(api *gin.RouterGroup, handler *handlers.AccountHandler) {
	account := api.Group("/account")
	{
		account.POST("/register", handler.Register)
		account.POST("/login", handler.Login)
	}
}
