package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/handlers"
)

func registerDishRoutes(api *gin.RouterGroup, handler *handlers.DishHandler, requireAuth gin.HandlerFunc) {
	dishes := api.Group("/restaurant/:id/dish")
	{
		dishes.GET("", handler.List)
		dishes.GET("/:dishId", handler.Get)
		dishes.POST("", requireAuth, handler.Create)
		dishes.DELETE("", requireAuth, handler.RemoveAll)
		dishes.DELETE("/:dishId", requireAuth, handler.Remove)
	}
}
