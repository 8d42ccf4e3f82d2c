package database

import (
	"strings"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
)

func TestBuildPostgresDSNDefaults(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User: "restaurants",
		Name: "restaurants",
	})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	expected := "host=localhost port=5432 user=restaurants dbname=restaurants TimeZone=UTC application_name=restaurants-api sslmode=disable"
	if dsn != expected {
		t.Fatalf("expected %q, got %q", expected, dsn)
	}
}

func TestBuildPostgresDSNWithOptions(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "user",
		Name:     "db",
		Host:     "db.example.com",
		Port:     6543,
		Password: "pass",
		Options: map[string]string{
			"sslmode":     "require",
			"search_path": "public",
		},
	})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	if !containsAll(
		dsn,
		"host=db.example.com",
		"port=6543",
		"user=user",
		"dbname=db",
		"password=pass",
		"sslmode=require",
		"search_path=public",
	) {
		t.Fatalf("dsn missing expected components: %q", dsn)
	}
}

func TestBuildPostgresDSNQuotesValues(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "api",
		Name:     "restaurants",
		Password: `it's a secret`,
	})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	if !strings.Contains(dsn, `password='it\'s a secret'`) {
		t.Fatalf("expected quoted password, got %q", dsn)
	}
}

func TestBuildPostgresDSNRequiresUserAndName(t *testing.T) {
	if _, err := buildPostgresDSN(Config{}); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}

func TestBuildMySQLDSNDefaults(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User: "restaurants",
		Name: "restaurants",
	})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	if !strings.HasPrefix(dsn, "restaurants@tcp(127.0.0.1:3306)/restaurants?") {
		t.Fatalf("unexpected dsn prefix: %q", dsn)
	}
	if !containsAll(dsn, "charset=utf8mb4", "parseTime=true") {
		t.Fatalf("dsn missing expected components: %q", dsn)
	}
	if strings.Contains(dsn, "loc=") {
		t.Fatalf("expected UTC location to be implied, got %q", dsn)
	}

	parsed, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if parsed.Loc != time.UTC || !parsed.ParseTime {
		t.Fatalf("expected UTC times with parseTime, got loc=%v parseTime=%v", parsed.Loc, parsed.ParseTime)
	}
}

func TestBuildMySQLDSNWithOptions(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "user",
		Password: "secret",
		Name:     "db",
		Host:     "db.example.com",
		Port:     3307,
		Options: map[string]string{
			"tls": "skip-verify",
		},
	})
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	if !containsAll(
		dsn,
		"user:secret@tcp(db.example.com:3307)/db?",
		"charset=utf8mb4",
		"parseTime=true",
		"tls=skip-verify",
	) {
		t.Fatalf("dsn missing expected components: %q", dsn)
	}
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	if _, err := buildMySQLDSN(Config{Host: "localhost"}); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}

func containsAll(value string, parts ...string) bool {
	for _, part := range parts {
		if !strings.Contains(value, part) {
			return false
		}
	}
	return true
}
