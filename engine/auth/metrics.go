package auth

import (
	"context"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	AuthOutcomeSuccess = "success"
	AuthOutcomeFailure = "failure"
)

const (
	ReasonNone               = "none"
	ReasonMissingHeader      = "missing_header"
	ReasonInvalidHeader      = "invalid_header"
	ReasonMalformed          = "malformed"
	ReasonExpired            = "expired"
	ReasonBadSignature       = "bad_signature"
	ReasonMissingSubject     = "missing_subject"
	ReasonInvalidSubject     = "invalid_subject"
	ReasonInvalidCredentials = "invalid_credentials"
)

var (
	authAttemptsTotal  metric.Int64Counter
	authLatencySeconds metric.Float64Histogram
	metricsOnce        sync.Once
	metricsMu          sync.RWMutex
)

// InitMetrics registers the auth instruments once. A nil meter leaves
// recording disabled.
func InitMetrics(meter metric.Meter) error {
	if meter == nil {
		return nil
	}
	var err error
	metricsOnce.Do(func() {
		metricsMu.Lock()
		defer metricsMu.Unlock()
		authAttemptsTotal, err = meter.Int64Counter(
			metrics.MetricNameWithSubsystem("auth", "attempts_total"),
			metric.WithDescription("Bearer token verifications by outcome"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return
		}
		authLatencySeconds, err = meter.Float64Histogram(
			metrics.MetricNameWithSubsystem("auth", "latency_seconds"),
			metric.WithDescription("Time spent verifying bearer tokens"),
			metric.WithUnit("s"),
		)
	})
	return err
}

// ResetMetricsForTesting clears the registered instruments.
func ResetMetricsForTesting() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	authAttemptsTotal = nil
	authLatencySeconds = nil
	metricsOnce = sync.Once{}
}

// RecordAuthAttempt is a no-op until InitMetrics succeeded.
func RecordAuthAttempt(ctx context.Context, outcome, reason string, duration time.Duration) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("reason", reason),
	)
	if authAttemptsTotal != nil {
		authAttemptsTotal.Add(ctx, 1, attrs)
	}
	if authLatencySeconds != nil {
		authLatencySeconds.Record(ctx, duration.Seconds(), attrs)
	}
}
