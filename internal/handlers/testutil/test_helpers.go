package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/api"
	"github.com/charlesng35/restaurants/internal/app"
	iauth "github.com/charlesng35/restaurants/internal/auth"
	sharedtestutil "github.com/charlesng35/restaurants/internal/database/testutil"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/pkg/crypto"
	"github.com/charlesng35/restaurants/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	JWT    *iauth.JWTService
	Config *app.Config

	mu     sync.Mutex
	events []events.Event
}

// NewEnv provisions a fresh handler test environment with migrations and seed data applied.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithSeedData())

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: "test-suite-super-secret-key-32-bytes!!",
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
			BcryptCost: bcrypt.MinCost,
		},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		},
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	env := &Env{
		T:      t,
		DB:     db,
		JWT:    jwtSvc,
		Config: cfg,
	}

	router, err := api.NewRouter(api.Dependencies{
		DB:        db,
		JWT:       jwtSvc,
		Config:    cfg,
		Publisher: events.PublisherFunc(env.record),
	})
	require.NoError(t, err)
	env.Router = router

	return env
}

func (e *Env) record(_ context.Context, event events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

// EventTopics lists the topics of every published event in order.
func (e *Env) EventTopics() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	topics := make([]string, 0, len(e.events))
	for _, event := range e.events {
		topics = append(topics, event.Topic)
	}
	return topics
}

// CreateUser inserts a user with the given role name and returns the record.
func (e *Env) CreateUser(role, password string) *models.User {
	e.T.Helper()

	var record models.Role
	require.NoError(e.T, e.DB.Where("name = ?", role).First(&record).Error)

	hashed, err := crypto.NewPasswordHasher(bcrypt.MinCost).Hash(password)
	require.NoError(e.T, err)

	user := &models.User{
		Email:        "user-" + uuid.NewString() + "@example.com",
		PasswordHash: hashed,
		FirstName:    "Test",
		LastName:     role,
		Nationality:  "Polish",
		RoleID:       record.ID,
	}
	require.NoError(e.T, e.DB.Omit("Role").Create(user).Error)
	user.Role = &record
	return user
}

// Token issues an access token for the user without going through the login endpoint.
func (e *Env) Token(user *models.User) string {
	e.T.Helper()

	token, err := e.JWT.GenerateAccessToken(iauth.AccessTokenInput{
		UserID: user.ID,
		Role:   user.RoleName(),
		Name:   user.FullName(),
	})
	require.NoError(e.T, err)
	return token
}

// LoginResult mirrors the JSON response from POST /api/account/login.
type LoginResult struct {
	Token string `json:"token"`
}

// Login authenticates through the API and returns the issued token.
func (e *Env) Login(email, password string) string {
	e.T.Helper()

	w := e.Request(http.MethodPost, "/api/account/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.True(e.T, resp.Success, w.Body.String())

	var result LoginResult
	DecodeInto(e.T, resp.Data, &result)
	require.NotEmpty(e.T, result.Token)
	return result.Token
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
