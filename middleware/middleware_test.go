package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yshengliao/pathway/middleware"
	"github.com/yshengliao/pathway/router"
	"github.com/yshengliao/pathway/template"
)

func newTable(t *testing.T, m ...echo.MiddlewareFunc) (*router.Router, *echo.Echo) {
	t.Helper()
	r := router.New(template.Options{CaseSensitive: true}, nil)
	r.Use(m...)
	_, err := r.GET("/user/{id}", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)
	e := echo.New()
	r.Mount(e)
	return r, e
}

func TestRequestID_Generates(t *testing.T) {
	_, e := newTable(t, middleware.RequestID())

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestID_ReusesInbound(t *testing.T) {
	_, e := newTable(t, middleware.RequestID())

	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRateLimit_ByFingerprint(t *testing.T) {
	store := middleware.NewMemoryStore(1, 1)
	defer store.Stop()

	_, e := newTable(t, middleware.RateLimit(&middleware.RateLimitConfig{
		Store: store,
		KeyFunc: func(c echo.Context) string {
			route, _ := router.MatchedRoute(c)
			return route.Fingerprint()
		},
	}))

	// Different parameter values share the shape, so they share the budget.
	req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/user/2", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.Equal(t, 1, store.Size())
}

func TestMemoryStore_Reset(t *testing.T) {
	store := middleware.NewMemoryStore(1, 1)
	defer store.Stop()

	require.True(t, store.Allow("k"))
	require.False(t, store.Allow("k"))
	store.Reset("k")
	assert.True(t, store.Allow("k"))
}

func TestRouteLogger_IncludesFingerprint(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	_, e := newTable(t, middleware.RouteLogger(logger))

	req := httptest.NewRequest(http.MethodGet, "/user/7", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/user/{id}", fields["template"])
	assert.Equal(t, "/user/?", fields["fingerprint"])
	assert.Equal(t, "GET", fields["method"])
}
