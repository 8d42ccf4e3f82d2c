package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/api"
	"github.com/charlesng35/restaurants/internal/app"
	"github.com/charlesng35/restaurants/internal/app/maintenance"
	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/cache"
	"github.com/charlesng35/restaurants/internal/database"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/middleware"
	"github.com/charlesng35/restaurants/internal/realtime"
	"github.com/charlesng35/restaurants/internal/security"
	"github.com/charlesng35/restaurants/pkg/logger"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Kafka     *events.KafkaPublisher
	Cleaner   *maintenance.Cleaner
	RateStore middleware.RateStore
	Router    *gin.Engine
}

// bootstrapRuntime initialises the database, event sinks, background jobs and the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	auditSecurity(stack.DB, cfg, log)

	dbStore := cache.NewDatabaseStore(stack.DB)

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	publishers := events.Multi{}
	if cfg.Realtime.Enabled {
		stack.Hub = realtime.NewHub()
		publishers = append(publishers, events.NewHubPublisher(stack.Hub))
	}
	if cfg.Events.Kafka.Enabled {
		stack.Kafka, err = events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:        cfg.Events.Kafka.Brokers,
			Topic:          cfg.Events.Kafka.Topic,
			BatchTimeout:   cfg.Events.Kafka.BatchTimeout,
			PublishTimeout: cfg.Events.Kafka.PublishTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise kafka publisher: %w", err)
		}
		publishers = append(publishers, stack.Kafka)
		log.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Events.Kafka.Brokers), zap.String("topic", cfg.Events.Kafka.Topic))
	}

	stack.RateStore = selectRateStore(cfg.RateLimit, dbStore)

	stack.Cleaner = maintenance.NewCleaner(
		maintenance.WithSchedule(cfg.Maintenance.CachePurgeSchedule),
		maintenance.WithPurger("database", dbStore),
	)
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.Router, err = api.NewRouter(api.Dependencies{
		DB:        stack.DB,
		JWT:       jwtSvc,
		Config:    cfg,
		RateStore: stack.RateStore,
		Publisher: publishers,
		Hub:       stack.Hub,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func auditSecurity(db *gorm.DB, cfg *app.Config, log *zap.Logger) {
	result := security.NewAuditService(db, cfg).Run(context.Background())
	for _, finding := range result.Findings() {
		fields := []zap.Field{
			zap.String("check", finding.ID),
			zap.String("remediation", finding.Remediation),
		}
		if finding.Status == security.StatusFail {
			log.Error(finding.Message, fields...)
			continue
		}
		log.Warn(finding.Message, fields...)
	}
}

func selectRateStore(cfg app.RateLimitConfig, dbStore *cache.DatabaseStore) middleware.RateStore {
	if strings.EqualFold(strings.TrimSpace(cfg.Store), "database") && dbStore != nil {
		return middleware.NewDatabaseRateStore(dbStore)
	}
	return middleware.NewMemoryRateStore()
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			ctx = stopCtx
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
	}

	if s.Hub != nil {
		s.Hub.Close()
	}

	if s.Kafka != nil {
		if err := s.Kafka.Close(); err != nil {
			log.Warn("kafka shutdown", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.ConnectionConfig()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", dbCfg.Driver))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
