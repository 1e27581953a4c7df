package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/middleware"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "server-test-secret"

// newTestServer loads a sqlite backed configuration, extended by extraYAML,
// and runs Setup without listening.
func newTestServer(t *testing.T, extraYAML string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	base := fmt.Sprintf(`
auth:
  secret_key: %s
  algorithm: HS256
database:
  driver: sqlite
  path: %s
  auto_migrate: true
  connect_retries: 0
`, testSecret, filepath.Join(dir, "posts.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(base+extraYAML), 0o600))
	manager := config.NewManager(nil)
	_, err := manager.Load(t.Context(), config.NewYAMLProvider(path))
	require.NoError(t, err)
	ctx := config.ContextWithManager(context.Background(), manager)
	srv, err := NewServer(ctx)
	require.NoError(t, err)
	require.NoError(t, srv.Setup())
	t.Cleanup(func() {
		srv.cleanup()
		srv.cancel()
	})
	return srv
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": fmt.Sprint(userID)}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestProbes(t *testing.T) {
	t.Run("Should report liveness and readiness", func(t *testing.T) {
		srv := newTestServer(t, "")

		live := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
		ready := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))

		assert.Equal(t, http.StatusOK, live.Code)
		assert.Contains(t, live.Body.String(), `"status":"ok"`)
		assert.Equal(t, http.StatusOK, ready.Code)
		assert.Contains(t, ready.Body.String(), `"store":"ok"`)
	})

	t.Run("Should fail readiness when the store is closed", func(t *testing.T) {
		srv := newTestServer(t, "")
		require.NoError(t, srv.provider.Close(t.Context()))

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"store":"unavailable"`)
	})

	t.Run("Should include redis when it is connected", func(t *testing.T) {
		mr := miniredis.RunT(t)
		srv := newTestServer(t, fmt.Sprintf("cache:\n  driver: redis\nredis:\n  addr: %s\n", mr.Addr()))

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"ok"`)
	})
}

func TestPostFlow(t *testing.T) {
	t.Run("Should create and read a post through the full middleware chain", func(t *testing.T) {
		srv := newTestServer(t, "cache:\n  driver: memory\n")
		req := httptest.NewRequest(http.MethodPost, "/post/create", strings.NewReader(`{"text":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer(t, 7))

		created := serve(srv, req)

		require.Equal(t, http.StatusCreated, created.Code)
		assert.NotEmpty(t, created.Header().Get(router.HeaderRequestID))
		read := serve(srv, httptest.NewRequest(http.MethodGet, "/post/read?post_id=1", http.NoBody))
		require.Equal(t, http.StatusOK, read.Code)
		assert.Contains(t, read.Body.String(), `"user_id":7`)
	})

	t.Run("Should echo an inbound request id", func(t *testing.T) {
		srv := newTestServer(t, "")
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		req.Header.Set(router.HeaderRequestID, "trace-123")

		w := serve(srv, req)

		assert.Equal(t, "trace-123", w.Header().Get(router.HeaderRequestID))
	})

	t.Run("Should answer unknown routes with a problem document", func(t *testing.T) {
		srv := newTestServer(t, "")

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	})

	t.Run("Should reject oversized bodies", func(t *testing.T) {
		srv := newTestServer(t, "server:\n  body_limit: 16\n")
		req := httptest.NewRequest(http.MethodPost, "/post/create", strings.NewReader(`{"text":"far too long for the limit"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearer(t, 7))

		w := serve(srv, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("Should throttle API routes but not probes", func(t *testing.T) {
		srv := newTestServer(t, "ratelimit:\n  enabled: true\n  driver: memory\n  global_rate:\n    limit: 2\n    period: 1m\n")
		for range 2 {
			w := serve(srv, httptest.NewRequest(http.MethodGet, "/post/read_all_posts?limit=1", http.NoBody))
			require.Equal(t, http.StatusOK, w.Code)
		}

		blocked := serve(srv, httptest.NewRequest(http.MethodGet, "/post/read_all_posts?limit=1", http.NoBody))
		probe := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
		assert.Equal(t, http.StatusOK, probe.Code)
	})
}

func TestMonitoring(t *testing.T) {
	t.Run("Should expose request metrics", func(t *testing.T) {
		middleware.ResetMetricsForTesting()
		t.Cleanup(middleware.ResetMetricsForTesting)
		srv := newTestServer(t, "monitoring:\n  enabled: true\n  path: /metrics\n")
		serve(srv, httptest.NewRequest(http.MethodGet, "/post/read_all_posts?limit=1", http.NoBody))

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "postapi_http_requests_total")
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("Should answer preflight requests for allowed origins", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://app.example"}, MaxAge: 60}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodOptions, "/x", http.NoBody)
		req.Header.Set("Origin", "https://app.example")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("Should not echo unknown origins", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://app.example"}}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
		req.Header.Set("Origin", "https://evil.example")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("Should convert panics into 500 problems", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(RecoveryMiddleware())
		r.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), router.ErrInternalCode)
	})
}

func TestOpenAPI(t *testing.T) {
	t.Run("Should serve an OpenAPI 3 document", func(t *testing.T) {
		srv := newTestServer(t, "server:\n  swagger_enabled: true\n")

		w := serve(srv, httptest.NewRequest(http.MethodGet, "/openapi.json", http.NoBody))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"openapi"`)
		assert.Contains(t, w.Body.String(), "/post/read_all_posts")
	})
}
