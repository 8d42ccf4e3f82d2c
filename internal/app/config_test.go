package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/database"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata"))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "console", cfg.Server.LogFormat)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "restaurants-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
	require.Equal(t, 12, cfg.Auth.BcryptCost)

	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 20, cfg.RateLimit.Requests)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	require.Equal(t, "database", cfg.RateLimit.Store)

	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	require.False(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
	require.False(t, cfg.Realtime.Enabled)

	require.True(t, cfg.Events.Kafka.Enabled)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Kafka.Brokers)
	require.Equal(t, "restaurant-events", cfg.Events.Kafka.Topic)
	require.Equal(t, 50*time.Millisecond, cfg.Events.Kafka.BatchTimeout)
	require.Equal(t, 2*time.Second, cfg.Events.Kafka.PublishTimeout)

	require.Equal(t, "@hourly", cfg.Maintenance.CachePurgeSchedule)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/restaurants.sqlite", cfg.Database.Path)
	require.Equal(t, time.Hour, cfg.Auth.JWT.TTL)
	require.Equal(t, "memory", cfg.RateLimit.Store)
	require.Equal(t, 100, cfg.RateLimit.Requests)
	require.True(t, cfg.Realtime.Enabled)
	require.False(t, cfg.Events.Kafka.Enabled)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("RESTAURANTS_SERVER_PORT", "7070")
	t.Setenv("RESTAURANTS_AUTH_JWT_SECRET", "from-env")
	t.Setenv("RESTAURANTS_EVENTS_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "from-env", cfg.Auth.JWT.Secret)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Kafka.Brokers)
}

func TestAuthConfigAdapters(t *testing.T) {
	cfg := AuthConfig{
		JWT: JWTSettings{
			Secret: "secret",
			Issuer: "issuer",
			TTL:    30 * time.Minute,
		},
		BcryptCost: 4,
	}

	require.Equal(t, auth.JWTConfig{
		Secret:         "secret",
		Issuer:         "issuer",
		AccessTokenTTL: 30 * time.Minute,
	}, cfg.JWTServiceConfig())

	hash, err := cfg.PasswordHasher().Hash("secret1")
	require.NoError(t, err)
	require.True(t, cfg.PasswordHasher().Verify(hash, "secret1"))
}

func TestAuthConfigAdaptersFallback(t *testing.T) {
	var cfg AuthConfig
	require.Equal(t, auth.DefaultAccessTokenTTL, cfg.JWTServiceConfig().AccessTokenTTL)
}

func TestDatabaseConnectionConfig(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: "MySQL",
		MySQL: DBAuthConfig{
			Host:     "mysql.internal",
			Port:     3307,
			Database: "restaurants",
			Username: "api",
			Password: "pw",
		},
		Postgres: DBAuthConfig{Host: "ignored"},
	}

	require.Equal(t, database.Config{
		Driver:   "mysql",
		Host:     "mysql.internal",
		Port:     3307,
		Name:     "restaurants",
		User:     "api",
		Password: "pw",
	}, cfg.ConnectionConfig())

	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/test.sqlite", Postgres: DBAuthConfig{Host: "ignored"}}
	require.Equal(t, database.Config{Driver: "sqlite", Path: "./data/test.sqlite"}, sqlite.ConnectionConfig())
}
