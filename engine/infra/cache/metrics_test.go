package cache

import (
	"context"
	"testing"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/posttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordLookup(t *testing.T) {
	t.Run("Should count hits and misses by driver", func(t *testing.T) {
		ResetMetricsForTesting()
		t.Cleanup(ResetMetricsForTesting)
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		require.NoError(t, InitMetrics(provider.Meter("test")))

		repo := NewPostRepository(posttest.NewMemoryRepository(), newMemoryKV(t), &Config{Driver: "memory", TTL: time.Minute})
		ctx := context.Background()
		created, err := repo.Create(ctx, "counted", 1)
		require.NoError(t, err)
		for range 2 {
			_, err = repo.Get(ctx, created.ID)
			require.NoError(t, err)
		}
		_, err = repo.Get(ctx, 404)
		require.ErrorIs(t, err, post.ErrNotFound)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		counts := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok {
					continue
				}
				for _, dp := range sum.DataPoints {
					result, _ := dp.Attributes.Value("result")
					counts[result.AsString()] += dp.Value
				}
			}
		}
		assert.Equal(t, int64(1), counts[resultHit])
		assert.Equal(t, int64(2), counts[resultMiss])
	})

	t.Run("Should ignore a nil meter", func(t *testing.T) {
		ResetMetricsForTesting()
		assert.NoError(t, InitMetrics(nil))
		assert.NotPanics(t, func() {
			recordLookup(context.Background(), "memory", resultHit, time.Millisecond)
		})
	})
}
