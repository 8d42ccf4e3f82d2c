package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/app"
	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/handlers"
	"github.com/charlesng35/restaurants/internal/middleware"
	"github.com/charlesng35/restaurants/internal/realtime"
	"github.com/charlesng35/restaurants/internal/services"
	"github.com/charlesng35/restaurants/internal/store"
)

// Dependencies bundles the infrastructure the router wires into handlers.
// RateStore, Publisher and Hub are optional.
type Dependencies struct {
	DB        *gorm.DB
	JWT       *iauth.JWTService
	Config    *app.Config
	RateStore middleware.RateStore
	Publisher events.Publisher
	Hub       *realtime.Hub
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	cfg := deps.Config

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders(cfg.Server.TLS))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins...))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(deps.RateStore, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	registerHealthRoutes(r, sqlDB)
	registerMonitoringRoutes(r, cfg.Monitoring.Prometheus)

	restaurantStore, err := store.NewRestaurantStore(deps.DB)
	if err != nil {
		return nil, err
	}
	dishStore, err := store.NewDishStore(deps.DB)
	if err != nil {
		return nil, err
	}
	userStore, err := store.NewUserStore(deps.DB)
	if err != nil {
		return nil, err
	}

	principals := iauth.ContextResolver{}
	mapper := services.DefaultMapper{}

	restaurantSvc, err := services.NewRestaurantService(restaurantStore, principals, mapper, deps.Publisher)
	if err != nil {
		return nil, err
	}
	dishSvc, err := services.NewDishService(dishStore, restaurantStore, principals, mapper, deps.Publisher)
	if err != nil {
		return nil, err
	}
	accountSvc, err := services.NewAccountService(userStore, cfg.Auth.PasswordHasher(), deps.JWT)
	if err != nil {
		return nil, err
	}

	accountHandler, err := handlers.NewAccountHandler(accountSvc)
	if err != nil {
		return nil, err
	}
	restaurantHandler, err := handlers.NewRestaurantHandler(restaurantSvc)
	if err != nil {
		return nil, err
	}
	dishHandler, err := handlers.NewDishHandler(dishSvc)
	if err != nil {
		return nil, err
	}

	requireAuth := middleware.Auth(deps.JWT)
	api := r.Group("/api")

	registerAccountRoutes(api, accountHandler)
	registerRestaurantRoutes(api, restaurantHandler, requireAuth)
	registerDishRoutes(api, dishHandler, requireAuth)

	if cfg.Realtime.Enabled && deps.Hub != nil {
		registerRealtimeRoutes(r, handlers.NewRealtimeHandler(deps.Hub))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
