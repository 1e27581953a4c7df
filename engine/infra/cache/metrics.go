package cache

import (
	"context"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

var (
	lookupsTotal   metric.Int64Counter
	lookupDuration metric.Float64Histogram
	metricsOnce    sync.Once
	metricsMu      sync.RWMutex
)

// InitMetrics registers the cache instruments on meter. A nil meter keeps
// recording disabled.
func InitMetrics(meter metric.Meter) error {
	if meter == nil {
		return nil
	}
	var err error
	metricsOnce.Do(func() {
		metricsMu.Lock()
		defer metricsMu.Unlock()
		lookupsTotal, err = meter.Int64Counter(
			metrics.MetricNameWithSubsystem("cache", "lookups_total"),
			metric.WithDescription("Post cache lookups by result"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return
		}
		lookupDuration, err = meter.Float64Histogram(
			metrics.MetricNameWithSubsystem("cache", "lookup_duration_seconds"),
			metric.WithDescription("Post cache lookup latency"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(metrics.CacheDurationBuckets...),
		)
	})
	return err
}

// ResetMetricsForTesting clears the registered instruments.
func ResetMetricsForTesting() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	lookupsTotal = nil
	lookupDuration = nil
	metricsOnce = sync.Once{}
}

func recordLookup(ctx context.Context, driver, result string, elapsed time.Duration) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	attrs := metric.WithAttributes(
		attribute.String("driver", driver),
		attribute.String("result", result),
	)
	if lookupsTotal != nil {
		lookupsTotal.Add(ctx, 1, attrs)
	}
	if lookupDuration != nil {
		lookupDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
