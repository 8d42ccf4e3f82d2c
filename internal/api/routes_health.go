package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/handlers"
)

func registerHealthRoutes(r *gin.Engine, db handlers.Pinger) {
	health := handlers.Health(db)
	r.GET("/health", health)
	r.GET("/api/health", health)
}
