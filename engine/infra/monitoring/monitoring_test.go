package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

func TestNewMonitoringService(t *testing.T) {
	t.Run("Should create service with default config when nil provided", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), nil)
		require.NoError(t, err)
		assert.False(t, service.config.Enabled)
		assert.Equal(t, "/metrics", service.Path())
		assert.False(t, service.IsInitialized())
	})
	t.Run("Should fail with invalid config", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), &Config{Enabled: true, Path: ""})
		assert.Nil(t, service)
		assert.ErrorContains(t, err, "monitoring path cannot be empty")
	})
	t.Run("Should initialize with Prometheus exporter when enabled", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), &Config{Enabled: true, Path: "/metrics"})
		require.NoError(t, err)
		assert.True(t, service.IsInitialized())
		assert.NotNil(t, service.exporter)
		assert.NotNil(t, service.provider)
		assert.Implements(t, (*metric.Meter)(nil), service.Meter())
		assert.NoError(t, service.InitializationError())
	})
	t.Run("Should use no-op meter when disabled", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), &Config{Enabled: false, Path: "/metrics"})
		require.NoError(t, err)
		assert.Nil(t, service.provider)
		assert.NotNil(t, service.Meter())
	})
}

func TestNewMonitoringServiceWithFallback(t *testing.T) {
	t.Run("Should return degraded service when config is invalid", func(t *testing.T) {
		service := NewMonitoringServiceWithFallback(t.Context(), &Config{Enabled: true, Path: "metrics"})
		assert.False(t, service.IsInitialized())
		assert.Error(t, service.InitializationError())
	})
}

func TestMonitoringService_Handlers(t *testing.T) {
	t.Run("Should return 503 when not initialized", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), DefaultConfig())
		require.NoError(t, err)
		w := httptest.NewRecorder()
		service.ExporterHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
	t.Run("Should expose recorded HTTP metrics", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), &Config{Enabled: true, Path: "/metrics"})
		require.NoError(t, err)
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(service.GinMiddleware(t.Context()))
		r.GET("/post/read", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/metrics", gin.WrapH(service.ExporterHandler()))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/read", http.NoBody))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "postapi_http_requests_total")
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})
	t.Run("Should shutdown gracefully", func(t *testing.T) {
		service, err := NewMonitoringService(t.Context(), &Config{Enabled: true, Path: "/metrics"})
		require.NoError(t, err)
		assert.NoError(t, service.Shutdown(t.Context()))
	})
}

func TestConfig(t *testing.T) {
	t.Run("Should map application settings", func(t *testing.T) {
		cfg := FromAppConfig(&config.MonitoringConfig{Enabled: true, Path: "/m"})
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "/m", cfg.Path)
	})
	t.Run("Should reject paths under the post API", func(t *testing.T) {
		assert.Error(t, (&Config{Path: "/post/metrics"}).Validate())
		assert.Error(t, (&Config{Path: "metrics"}).Validate())
		assert.Error(t, (&Config{Path: "/metrics?x=1"}).Validate())
		assert.NoError(t, (&Config{Path: "/metrics"}).Validate())
	})
}
