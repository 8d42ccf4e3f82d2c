package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/cache"
	"github.com/charlesng35/restaurants/internal/database/testutil"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Unix(1_700_000_000, 0)
	store := newMemoryRateStore(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(store, 2, time.Second))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return w
	}

	// First two requests should pass
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do().Code)
	}

	// Third request within window should be rate-limited
	w := do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	// After window resets, should pass again
	now = now.Add(1500 * time.Millisecond)
	require.Equal(t, http.StatusOK, do().Code)
}

func TestMemoryRateStoreSweepsExpiredCounters(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := newMemoryRateStore(func() time.Time { return now })
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "a", time.Second)
	require.NoError(t, err)
	require.Len(t, store.data, 1)

	now = now.Add(2 * time.Minute)
	count, ttl, err := store.Increment(ctx, "b", time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, time.Second, ttl)
	require.Len(t, store.data, 1)
}

func TestDatabaseRateStore(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	backing := cache.NewDatabaseStore(db)
	require.NotNil(t, backing)

	store := NewDatabaseRateStore(backing)
	require.NotNil(t, store)
	require.Nil(t, NewDatabaseRateStore(nil))

	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		count, ttl, err := store.Increment(ctx, "client|GET|/api/restaurant", time.Minute)
		require.NoError(t, err)
		require.Equal(t, want, count)
		require.Positive(t, ttl)
	}
}

type failingRateStore struct{}

func (failingRateStore) Increment(context.Context, string, time.Duration) (int, time.Duration, error) {
	return 0, 0, errors.New("store down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(failingRateStore{}, 1, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}
