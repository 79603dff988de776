package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/contribplot/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.RunMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	run, err := observability.NewRunMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return run, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()

	require.NotNil(t, m)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestRunMetrics_RecordWindow(t *testing.T) {
	t.Parallel()

	run, reader := setupTestMeter(t)
	ctx := context.Background()

	run.RecordWindow(ctx, observability.WindowStats{Window: "last_month", Commits: 4, Skipped: 1, Charts: 2, Duration: time.Second})
	run.RecordWindow(ctx, observability.WindowStats{Window: "last_two_weeks", Commits: 2, Charts: 1, Duration: time.Second})

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(6), sumValue(t, findMetric(rm, "contribplot.commits.read")))
	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "contribplot.commits.skipped")))
	assert.Equal(t, int64(3), sumValue(t, findMetric(rm, "contribplot.charts.written")))

	duration := findMetric(rm, "contribplot.window.duration.seconds")
	require.NotNil(t, duration)

	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)
}

func TestRunMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var run *observability.RunMetrics

	assert.NotPanics(t, func() {
		run.RecordWindow(context.Background(), observability.WindowStats{Window: "x"})
	})
}

func TestNewRunMetrics_WithNoopMeter(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	run, err := observability.NewRunMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotNil(t, run)

	run.RecordWindow(context.Background(), observability.WindowStats{Window: "last_year", Duration: time.Millisecond})
}
