package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth/userctx"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/metrics"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	httpRequestsInFlight metric.Int64UpDownCounter
	initOnce             sync.Once
	initMutex            sync.Mutex
)

func initMetrics(ctx context.Context, meter metric.Meter) {
	if meter == nil {
		return
	}
	log := logger.FromContext(ctx)
	initOnce.Do(func() {
		var err error
		httpRequestsTotal, err = meter.Int64Counter(
			metrics.MetricNameWithSubsystem("http", "requests_total"),
			metric.WithDescription("Total HTTP requests"),
		)
		if err != nil {
			log.Error("Failed to create http requests total counter", "error", err)
		}
		httpRequestDuration, err = meter.Float64Histogram(
			metrics.MetricNameWithSubsystem("http", "request_duration_seconds"),
			metric.WithDescription("HTTP request latency"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(metrics.HTTPDurationBuckets...),
		)
		if err != nil {
			log.Error("Failed to create http request duration histogram", "error", err)
		}
		httpRequestsInFlight, err = meter.Int64UpDownCounter(
			metrics.MetricNameWithSubsystem("http", "requests_in_flight"),
			metric.WithDescription("Currently active HTTP requests"),
		)
		if err != nil {
			log.Error("Failed to create http requests in flight counter", "error", err)
		}
	})
}

// ResetMetricsForTesting resets the metrics initialization state for testing
func ResetMetricsForTesting() {
	initMutex.Lock()
	defer initMutex.Unlock()
	httpRequestsTotal = nil
	httpRequestDuration = nil
	httpRequestsInFlight = nil
	initOnce = sync.Once{}
}

// HTTPMetrics returns a Gin middleware that collects HTTP metrics. Unmatched
// routes share one "unmatched" path label to bound cardinality, and the
// "authenticated" label tells owner-scoped traffic apart from public reads.
func HTTPMetrics(ctx context.Context, meter metric.Meter) gin.HandlerFunc {
	initMetrics(ctx, meter)
	return func(c *gin.Context) {
		if httpRequestsTotal == nil || httpRequestDuration == nil || httpRequestsInFlight == nil {
			c.Next()
			return
		}
		start := time.Now()
		reqCtx := c.Request.Context()
		httpRequestsInFlight.Add(reqCtx, 1)
		defer httpRequestsInFlight.Add(reqCtx, -1)
		c.Next()
		recordMetrics(c, start)
	}
}

func recordMetrics(c *gin.Context, start time.Time) {
	duration := time.Since(start).Seconds()
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	attrs := metric.WithAttributes(
		attribute.String("method", c.Request.Method),
		attribute.String("path", path),
		attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		attribute.Bool("authenticated", authenticated(c)),
	)
	httpRequestsTotal.Add(c.Request.Context(), 1, attrs)
	httpRequestDuration.Record(c.Request.Context(), duration, attrs)
}

// authenticated reads the caller from the request context the auth
// middleware left behind after the handler chain ran.
func authenticated(c *gin.Context) bool {
	_, ok := userctx.UserIDFromContext(c.Request.Context())
	return ok
}
