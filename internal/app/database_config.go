package app

import (
	"strings"

	"github.com/charlesng35/restaurants/internal/database"
)

// ConnectionConfig converts DatabaseConfig into the parameters expected by database.Open.
func (c DatabaseConfig) ConnectionConfig() database.Config {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	cfg := database.Config{
		Driver: driver,
		Path:   c.Path,
		DSN:    c.DSN,
	}

	var host DBAuthConfig
	switch driver {
	case "postgres", "postgresql", "pgx":
		host = c.Postgres
	case "mysql", "mariadb":
		host = c.MySQL
	default:
		return cfg
	}

	cfg.Host = host.Host
	cfg.Port = host.Port
	cfg.Name = host.Database
	cfg.User = host.Username
	cfg.Password = host.Password
	return cfg
}
