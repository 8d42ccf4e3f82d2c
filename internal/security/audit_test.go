package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/app"
	testutil "github.com/charlesng35/restaurants/internal/database/testutil"
	"github.com/charlesng35/restaurants/internal/models"
)

func findCheck(t *testing.T, result Result, id string) Check {
	t.Helper()
	for _, check := range result.Checks {
		if check.ID == id {
			return check
		}
	}
	t.Fatalf("check %q not found", id)
	return Check{}
}

func TestAuditServiceRun(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	var admin models.Role
	require.NoError(t, db.Where("name = ?", models.RoleAdmin).First(&admin).Error)
	require.NoError(t, db.Omit("Role").Create(&models.User{
		Email:        "admin@example.com",
		PasswordHash: "hashed",
		RoleID:       admin.ID,
	}).Error)

	cfg := &app.Config{
		Server: app.ServerConfig{TLS: true},
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: "0123456789abcdef0123456789abcdef0123456789abcdef",
				TTL:    time.Hour,
			},
		},
		CORS: app.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}},
	}

	svc := NewAuditService(db, cfg)
	fixed := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return fixed })

	result := svc.Run(context.Background())
	require.Equal(t, fixed, result.CheckedAt)
	require.Len(t, result.Checks, 5)
	require.Equal(t, 5, result.Summary[string(StatusPass)])
	require.Empty(t, result.Findings())
}

func TestAuditServiceReportsWeakConfiguration(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{Secret: "short", TTL: 72 * time.Hour},
		},
		CORS: app.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	result := NewAuditService(db, cfg).Run(context.Background())

	require.Equal(t, StatusWarn, findCheck(t, result, "admin_user_present").Status)
	require.Equal(t, StatusFail, findCheck(t, result, "jwt_secret_strength").Status)
	require.Equal(t, StatusWarn, findCheck(t, result, "access_token_ttl").Status)
	require.Equal(t, StatusWarn, findCheck(t, result, "cors_origins").Status)
	require.Equal(t, StatusWarn, findCheck(t, result, "transport_security").Status)
	require.Len(t, result.Findings(), 5)
}

func TestAuditServiceWithoutDependencies(t *testing.T) {
	result := NewAuditService(nil, nil).Run(context.Background())
	require.Equal(t, 5, result.Summary[string(StatusWarn)])
}
