package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. RESTAURANTS_SERVER_PORT.
const EnvPrefix = "RESTAURANTS"

// Config represents the runtime configuration for the restaurants API.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring"`
	Realtime    RealtimeConfig    `mapstructure:"realtime"`
	Events      EventsConfig      `mapstructure:"events"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	TLS       bool   `mapstructure:"tls"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AuthConfig captures all authentication-related settings.
type AuthConfig struct {
	JWT        JWTSettings `mapstructure:"jwt"`
	BcryptCost int         `mapstructure:"bcrypt_cost"`
}

// JWTSettings configures JWT access tokens.
type JWTSettings struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"access_token_ttl"`
}

// RateLimitConfig throttles requests per client and route.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Store    string        `mapstructure:"store"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MonitoringConfig enables metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// RealtimeConfig toggles the websocket event stream.
type RealtimeConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EventsConfig configures domain event sinks.
type EventsConfig struct {
	Kafka KafkaSettings `mapstructure:"kafka"`
}

// KafkaSettings configures the Kafka event publisher.
type KafkaSettings struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	Topic          string        `mapstructure:"topic"`
	BatchTimeout   time.Duration `mapstructure:"batch_timeout"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// MaintenanceConfig schedules background housekeeping.
type MaintenanceConfig struct {
	CachePurgeSchedule string `mapstructure:"cache_purge_schedule"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.tls", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/restaurants.sqlite")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.mysql.port", 3306)

	v.SetDefault("auth.jwt.issuer", "restaurants-api")
	v.SetDefault("auth.jwt.access_token_ttl", "1h")
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.store", "memory")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")

	v.SetDefault("realtime.enabled", true)

	v.SetDefault("events.kafka.enabled", false)
	v.SetDefault("events.kafka.brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("events.kafka.topic", "restaurants.events")
	v.SetDefault("events.kafka.batch_timeout", "50ms")
	v.SetDefault("events.kafka.publish_timeout", "2s")

	v.SetDefault("maintenance.cache_purge_schedule", "@every 10m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
