package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/app"
	"github.com/charlesng35/restaurants/internal/models"
)

// CheckStatus captures the outcome of a security audit check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

const (
	minSecretLength         = 32
	recommendedSecretLength = 48
	maxAccessTokenTTL       = 24 * time.Hour
)

// Check contains the result of a single audit verification.
type Check struct {
	ID          string      `json:"id"`
	Status      CheckStatus `json:"status"`
	Message     string      `json:"message"`
	Remediation string      `json:"remediation,omitempty"`
	Details     any         `json:"details,omitempty"`
}

// Result aggregates all checks with a simple status summary.
type Result struct {
	CheckedAt time.Time      `json:"checkedAt"`
	Checks    []Check        `json:"checks"`
	Summary   map[string]int `json:"summary"`
}

// Findings returns the checks that did not pass.
func (r Result) Findings() []Check {
	var findings []Check
	for _, check := range r.Checks {
		if check.Status != StatusPass {
			findings = append(findings, check)
		}
	}
	return findings
}

// AuditService evaluates the deployment configuration at startup. Both
// dependencies are optional; missing inputs degrade specific checks to warnings.
type AuditService struct {
	db  *gorm.DB
	cfg *app.Config
	now func() time.Time
}

// NewAuditService constructs the audit service.
func NewAuditService(db *gorm.DB, cfg *app.Config) *AuditService {
	return &AuditService{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

// WithClock overrides the clock used in results.
func (s *AuditService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Run executes all audit checks and returns their outcome.
func (s *AuditService) Run(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	checks := []Check{
		s.checkAdminUser(ctx),
		s.checkJWTSecret(),
		s.checkAccessTokenTTL(),
		s.checkCORSOrigins(),
		s.checkTransport(),
	}

	summary := map[string]int{
		string(StatusPass): 0,
		string(StatusWarn): 0,
		string(StatusFail): 0,
	}
	for _, check := range checks {
		summary[string(check.Status)]++
	}

	return Result{
		CheckedAt: s.now().UTC(),
		Checks:    checks,
		Summary:   summary,
	}
}

func (s *AuditService) checkAdminUser(ctx context.Context) Check {
	if s.db == nil {
		return Check{
			ID:          "admin_user_present",
			Status:      StatusWarn,
			Message:     "Database unavailable, unable to confirm an administrator exists",
			Remediation: "Ensure database connectivity before running the audit.",
		}
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return Check{
			ID:          "admin_user_present",
			Status:      StatusWarn,
			Message:     fmt.Sprintf("Could not count administrators: %v", err),
			Remediation: "Retry after resolving database errors.",
		}
	}

	if count == 0 {
		return Check{
			ID:          "admin_user_present",
			Status:      StatusWarn,
			Message:     "No user holds the Admin role.",
			Remediation: "Register an account with roleId 3 to manage restaurants.",
		}
	}

	return Check{
		ID:      "admin_user_present",
		Status:  StatusPass,
		Message: "Administrator present.",
		Details: map[string]any{"count": count},
	}
}

func (s *AuditService) checkJWTSecret() Check {
	if s.cfg == nil {
		return missingConfig("jwt_secret_strength")
	}

	length := len(strings.TrimSpace(s.cfg.Auth.JWT.Secret))
	switch {
	case length == 0:
		return Check{
			ID:          "jwt_secret_strength",
			Status:      StatusFail,
			Message:     "Missing JWT signing secret.",
			Remediation: "Provide a cryptographically secure signing secret (>= 32 bytes).",
		}
	case length < minSecretLength:
		return Check{
			ID:          "jwt_secret_strength",
			Status:      StatusFail,
			Message:     fmt.Sprintf("JWT signing secret is too short (%d bytes).", length),
			Remediation: "Use a randomly generated secret of at least 32 bytes.",
		}
	case length < recommendedSecretLength:
		return Check{
			ID:          "jwt_secret_strength",
			Status:      StatusWarn,
			Message:     fmt.Sprintf("JWT signing secret is %d bytes. Consider increasing to 48+ bytes.", length),
			Remediation: "Increase the length of " + app.EnvPrefix + "_AUTH_JWT_SECRET to at least 48 bytes.",
			Details:     map[string]any{"length": length},
		}
	default:
		return Check{
			ID:      "jwt_secret_strength",
			Status:  StatusPass,
			Message: fmt.Sprintf("JWT signing secret length is %d bytes.", length),
			Details: map[string]any{"length": length},
		}
	}
}

func (s *AuditService) checkAccessTokenTTL() Check {
	if s.cfg == nil {
		return missingConfig("access_token_ttl")
	}

	ttl := s.cfg.Auth.JWT.TTL
	if ttl <= 0 {
		return Check{
			ID:          "access_token_ttl",
			Status:      StatusWarn,
			Message:     "Access token TTL is not configured; using default duration.",
			Remediation: "Set " + app.EnvPrefix + "_AUTH_JWT_ACCESS_TOKEN_TTL to control token lifetime.",
		}
	}

	if ttl > maxAccessTokenTTL {
		return Check{
			ID:          "access_token_ttl",
			Status:      StatusWarn,
			Message:     fmt.Sprintf("Access token TTL (%s) exceeds recommended maximum (%s).", ttl, maxAccessTokenTTL),
			Remediation: "Tokens cannot be revoked; keep their lifetime at one day or lower.",
			Details:     map[string]any{"ttl": ttl.String()},
		}
	}

	return Check{
		ID:      "access_token_ttl",
		Status:  StatusPass,
		Message: fmt.Sprintf("Access token TTL is %s.", ttl),
		Details: map[string]any{"ttl": ttl.String()},
	}
}

func (s *AuditService) checkCORSOrigins() Check {
	if s.cfg == nil {
		return missingConfig("cors_origins")
	}

	origins := s.cfg.CORS.AllowedOrigins
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			return Check{
				ID:          "cors_origins",
				Status:      StatusWarn,
				Message:     "CORS accepts requests from any origin.",
				Remediation: "List the front-end origins in cors.allowed_origins.",
			}
		}
	}
	if len(origins) == 0 {
		return Check{
			ID:          "cors_origins",
			Status:      StatusWarn,
			Message:     "No CORS origins configured; any origin is accepted.",
			Remediation: "List the front-end origins in cors.allowed_origins.",
		}
	}

	return Check{
		ID:      "cors_origins",
		Status:  StatusPass,
		Message: "CORS restricted to configured origins.",
		Details: map[string]any{"origins": origins},
	}
}

func (s *AuditService) checkTransport() Check {
	if s.cfg == nil {
		return missingConfig("transport_security")
	}

	if !s.cfg.Server.TLS {
		return Check{
			ID:          "transport_security",
			Status:      StatusWarn,
			Message:     "Server is not marked as served over TLS; HSTS is disabled.",
			Remediation: "Terminate TLS in front of the API and set server.tls to true.",
		}
	}

	return Check{
		ID:      "transport_security",
		Status:  StatusPass,
		Message: "TLS enabled with HSTS.",
	}
}

func missingConfig(id string) Check {
	return Check{
		ID:          id,
		Status:      StatusWarn,
		Message:     "Configuration not loaded, check skipped.",
		Remediation: "Load configuration before running the security audit.",
	}
}
