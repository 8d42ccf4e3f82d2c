package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/handlers"
	"github.com/charlesng35/restaurants/internal/middleware"
	"github.com/charlesng35/restaurants/internal/models"
)

// Reads are public. Creating a restaurant needs an elevated role; changing
// one is decided by ownership in the service layer.
func registerRestaurantRoutes(api *gin.RouterGroup, handler *handlers.RestaurantHandler, requireAuth gin.HandlerFunc) {
	restaurants := api.Group("/restaurant")
	{
		restaurants.GET("", handler.List)
		restaurants.GET("/:id", handler.Get)
		restaurants.POST("", requireAuth, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), handler.Create)
		restaurants.PUT("/:id", requireAuth, handler.Update)
		restaurants.DELETE("/:id", requireAuth, handler.Delete)
	}
}
