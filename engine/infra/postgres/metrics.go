package postgres

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultPoolLabel = "default"

var (
	metricsOnce   sync.Once
	metricsMu     sync.RWMutex
	queryDuration metric.Float64Histogram
	callback      metric.Registration
	trackedPools  sync.Map
)

// InitMetrics registers pool gauges and the query latency histogram on meter.
// A nil meter keeps recording disabled.
func InitMetrics(meter metric.Meter) error {
	if meter == nil {
		return nil
	}
	var err error
	metricsOnce.Do(func() {
		metricsMu.Lock()
		defer metricsMu.Unlock()
		queryDuration, err = meter.Float64Histogram(
			metrics.MetricNameWithSubsystem("postgres", "query_duration_seconds"),
			metric.WithDescription("Post store statement latency"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(metrics.DatabaseDurationBuckets...),
		)
		if err != nil {
			return
		}
		callback, err = registerPoolGauges(meter)
	})
	return err
}

func registerPoolGauges(meter metric.Meter) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge(
		metrics.MetricNameWithSubsystem("postgres", "connections_open"),
		metric.WithDescription("Open connections in the pool"),
	)
	if err != nil {
		return nil, err
	}
	inUse, err := meter.Int64ObservableGauge(
		metrics.MetricNameWithSubsystem("postgres", "connections_in_use"),
		metric.WithDescription("Connections currently acquired"),
	)
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge(
		metrics.MetricNameWithSubsystem("postgres", "max_open_connections"),
		metric.WithDescription("Configured pool size"),
	)
	if err != nil {
		return nil, err
	}
	waited, err := meter.Float64ObservableCounter(
		metrics.MetricNameWithSubsystem("postgres", "acquire_wait_seconds_total"),
		metric.WithDescription("Time spent waiting on an exhausted pool"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		trackedPools.Range(func(key, _ any) bool {
			pm, ok := key.(*poolMetrics)
			if !ok {
				return true
			}
			pool := pm.pool.Load()
			if pool == nil {
				return true
			}
			stats := pool.Stat()
			attrs := metric.WithAttributes(attribute.String("pool", pm.label))
			o.ObserveInt64(open, int64(stats.TotalConns()), attrs)
			o.ObserveInt64(inUse, int64(stats.AcquiredConns()), attrs)
			o.ObserveInt64(maxOpen, int64(stats.MaxConns()), attrs)
			o.ObserveFloat64(waited, stats.EmptyAcquireWaitTime().Seconds(), attrs)
			return true
		})
		return nil
	}, open, inUse, maxOpen, waited)
}

// ResetMetricsForTesting drops the registered instruments and tracked pools.
func ResetMetricsForTesting() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if callback != nil {
		_ = callback.Unregister()
	}
	callback = nil
	queryDuration = nil
	trackedPools.Clear()
	metricsOnce = sync.Once{}
}

// poolMetrics exposes one pool to the gauge callback.
type poolMetrics struct {
	label string
	pool  atomic.Pointer[pgxpool.Pool]
}

func newPoolMetrics(cfg *Config) *poolMetrics {
	return &poolMetrics{label: poolLabel(cfg)}
}

func (p *poolMetrics) track(pool *pgxpool.Pool) {
	p.pool.Store(pool)
	trackedPools.Store(p, struct{}{})
}

func (p *poolMetrics) untrack() {
	trackedPools.Delete(p)
	p.pool.Store(nil)
}

func poolLabel(cfg *Config) string {
	if cfg == nil {
		return defaultPoolLabel
	}
	parts := make([]string, 0, 2)
	for _, raw := range []string{cfg.Host, cfg.DBName} {
		if s := sanitizeLabel(raw); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return defaultPoolLabel
	}
	return strings.Join(parts, "-")
}

func sanitizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, s), "_")
}

type queryStartKey struct{}

type queryStart struct {
	at        time.Time
	statement string
}

// queryTracer records statement latency by SQL verb.
type queryTracer struct{}

func (queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), statement: statementVerb(data.SQL)})
}

func (queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	if queryDuration == nil {
		return
	}
	outcome := "ok"
	if data.Err != nil {
		outcome = "error"
	}
	queryDuration.Record(ctx, time.Since(start.at).Seconds(), metric.WithAttributes(
		attribute.String("statement", start.statement),
		attribute.String("outcome", outcome),
	))
}

func statementVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
