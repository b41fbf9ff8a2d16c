package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/middleware"
)

func runThrough(t *testing.T, mw echo.MiddlewareFunc, n int) int {
	t.Helper()
	e := echo.New()
	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "ok")
	})
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, "/reservas", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	return calls
}

// Without a Redis client the limiter never throttles, even past its
// nominal capacity.
func TestTokenBucket_passThroughWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
	mw := middleware.NewTokenBucket(cfg, nil)
	require.Equal(t, 5, runThrough(t, mw, 5))
}

func TestTokenBucket_passThroughWhenDisabled(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Capacity: 1}
	mw := middleware.NewTokenBucket(cfg, nil)
	require.Equal(t, 3, runThrough(t, mw, 3))
}
