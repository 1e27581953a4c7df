package ratelimit

import (
	"context"
	"sync"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeLimited      = "limited"
	outcomeStoreFailure = "store_failure"
)

var (
	rejectedRequests metric.Int64Counter
	metricsOnce      sync.Once
)

// InitMetrics registers the rejection counter on meter. A nil meter leaves
// recording disabled.
func InitMetrics(meter metric.Meter) error {
	if meter == nil {
		return nil
	}
	var err error
	metricsOnce.Do(func() {
		rejectedRequests, err = meter.Int64Counter(
			metrics.MetricName("rate_limit_rejections_total"),
			metric.WithDescription("Requests rejected by the rate limiter, by route and outcome"),
			metric.WithUnit("1"),
		)
	})
	return err
}

func recordRejection(ctx context.Context, route, outcome string) {
	if rejectedRequests == nil {
		return
	}
	rejectedRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("outcome", outcome),
	))
}

// ResetMetricsForTesting drops the registered counter so a test can install a fresh meter.
func ResetMetricsForTesting() {
	rejectedRequests = nil
	metricsOnce = sync.Once{}
}
