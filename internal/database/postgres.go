package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// applicationName tags API connections in pg_stat_activity.
const applicationName = "restaurants-api"

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// buildPostgresDSN renders a keyword/value connection string. Timestamps are
// exchanged in UTC so stored dates of birth do not shift with the server zone.
func buildPostgresDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	if cfg.User == "" || cfg.Name == "" {
		return "", errors.New("postgres configuration requires user and database name")
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	params := []string{
		"host=" + pgValue(host),
		fmt.Sprintf("port=%d", port),
		"user=" + pgValue(cfg.User),
		"dbname=" + pgValue(cfg.Name),
	}
	if cfg.Password != "" {
		params = append(params, "password="+pgValue(cfg.Password))
	}

	options := map[string]string{
		"sslmode":          "disable",
		"TimeZone":         "UTC",
		"application_name": applicationName,
	}
	for key, value := range cfg.Options {
		options[key] = value
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		params = append(params, key+"="+pgValue(options[key]))
	}

	return strings.Join(params, " "), nil
}

// pgValue quotes values containing spaces, quotes or backslashes.
func pgValue(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}
