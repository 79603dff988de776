package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCommitsRead    = "contribplot.commits.read"
	metricCommitsSkipped = "contribplot.commits.skipped"
	metricChartsWritten  = "contribplot.charts.written"
	metricWindowDuration = "contribplot.window.duration.seconds"

	attrWindow = "window"
)

// durationBucketBoundaries covers 10ms to 10min per window.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// RunMetrics holds the OTel instruments recorded for each processed window.
type RunMetrics struct {
	commitsRead    metric.Int64Counter
	commitsSkipped metric.Int64Counter
	chartsWritten  metric.Int64Counter
	windowDuration metric.Float64Histogram
}

// WindowStats is what one window contributed to a run.
type WindowStats struct {
	Window   string
	Commits  int
	Skipped  int
	Charts   int
	Duration time.Duration
}

// NewRunMetrics creates the run instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	read, err := mt.Int64Counter(metricCommitsRead,
		metric.WithDescription("Commits aggregated per window"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsRead, err)
	}

	skipped, err := mt.Int64Counter(metricCommitsSkipped,
		metric.WithDescription("Commits skipped because their stats could not be read"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsSkipped, err)
	}

	charts, err := mt.Int64Counter(metricChartsWritten,
		metric.WithDescription("Chart files written per window"),
		metric.WithUnit("{chart}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricChartsWritten, err)
	}

	duration, err := mt.Float64Histogram(metricWindowDuration,
		metric.WithDescription("Time spent reading, aggregating and rendering one window"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricWindowDuration, err)
	}

	return &RunMetrics{
		commitsRead:    read,
		commitsSkipped: skipped,
		chartsWritten:  charts,
		windowDuration: duration,
	}, nil
}

// RecordWindow records the statistics of one processed window.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordWindow(ctx context.Context, stats WindowStats) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrWindow, stats.Window))

	rm.commitsRead.Add(ctx, int64(stats.Commits), attrs)
	rm.commitsSkipped.Add(ctx, int64(stats.Skipped), attrs)
	rm.chartsWritten.Add(ctx, int64(stats.Charts), attrs)
	rm.windowDuration.Record(ctx, stats.Duration.Seconds(), attrs)
}
