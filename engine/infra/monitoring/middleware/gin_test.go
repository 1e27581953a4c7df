package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth/userctx"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newMeteredRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	ResetMetricsForTesting()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMetrics(t.Context(), provider.Meter("test")))
	router.GET("/post/read", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": 1})
	})
	router.POST("/post/create", func(c *gin.Context) {
		c.Request = c.Request.WithContext(userctx.WithUserID(c.Request.Context(), 7))
		c.Status(http.StatusCreated)
	})
	return router, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func pathOf(attrs attribute.Set) string {
	v, _ := attrs.Value("path")
	return v.AsString()
}

func TestHTTPMetrics(t *testing.T) {
	t.Run("Should record counters, latency and in flight gauges", func(t *testing.T) {
		router, reader := newMeteredRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/read?post_id=1", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		got := collect(t, reader)
		require.Contains(t, got, "postapi_http_requests_total")
		require.Contains(t, got, "postapi_http_request_duration_seconds")
		require.Contains(t, got, "postapi_http_requests_in_flight")
		sum, ok := got["postapi_http_requests_total"].Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		attrs := sum.DataPoints[0].Attributes.ToSlice()
		assert.Contains(t, attrs, attribute.String("method", "GET"))
		assert.Contains(t, attrs, attribute.String("path", "/post/read"))
		assert.Contains(t, attrs, attribute.String("status_code", "200"))
		assert.Contains(t, attrs, attribute.Bool("authenticated", false))
	})

	t.Run("Should label status codes of writes", func(t *testing.T) {
		router, reader := newMeteredRouter(t)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/post/create", http.NoBody))

		sum := collect(t, reader)["postapi_http_requests_total"].Data.(metricdata.Sum[int64])
		attrs := sum.DataPoints[0].Attributes.ToSlice()
		assert.Contains(t, attrs, attribute.String("status_code", "201"))
		assert.Contains(t, attrs, attribute.Bool("authenticated", true))
	})

	t.Run("Should group unknown routes under unmatched", func(t *testing.T) {
		router, reader := newMeteredRouter(t)

		for _, path := range []string{"/a", "/b/c", "/post/unknown"} {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
		}

		sum := collect(t, reader)["postapi_http_requests_total"].Data.(metricdata.Sum[int64])
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, "unmatched", pathOf(sum.DataPoints[0].Attributes))
		assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	})

	t.Run("Should use the HTTP latency buckets", func(t *testing.T) {
		router, reader := newMeteredRouter(t)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/read", http.NoBody))

		hist := collect(t, reader)["postapi_http_request_duration_seconds"].Data.(metricdata.Histogram[float64])
		assert.Equal(t, []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, hist.DataPoints[0].Bounds)
	})

	t.Run("Should pass requests through with a nil meter", func(t *testing.T) {
		ResetMetricsForTesting()
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(HTTPMetrics(t.Context(), nil))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
