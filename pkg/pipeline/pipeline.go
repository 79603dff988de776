// Package pipeline runs one contribplot report end to end: output cleanup,
// per-window commit collection, aggregation and chart rendering, then report
// assembly from the HTML templates.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/contribplot/pkg/chart"
	"github.com/Sumatoshi-tech/contribplot/pkg/config"
	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
	"github.com/Sumatoshi-tech/contribplot/pkg/gitlib"
	"github.com/Sumatoshi-tech/contribplot/pkg/observability"
	"github.com/Sumatoshi-tech/contribplot/pkg/outdir"
	"github.com/Sumatoshi-tech/contribplot/pkg/overview"
	"github.com/Sumatoshi-tech/contribplot/pkg/report"
	"github.com/Sumatoshi-tech/contribplot/pkg/summary"
)

// ErrRepositoryLoad indicates a failure to open the git repository.
var ErrRepositoryLoad = errors.New("failed to load repository")

const tracerName = "contribplot/pipeline"

// Deps carries the collaborators of a run. Zero values are replaced by
// no-op or default implementations.
type Deps struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.RunMetrics

	// Source overrides the commit source. Nil opens cfg.Repository with libgit2.
	Source contrib.Source
}

// Result describes what a run wrote.
type Result struct {
	Cleanup      outdir.CleanResult
	Windows      []report.WindowCharts
	Summary      *summary.Summary
	IndexPath    string
	SummaryPath  string
	OverviewPath string
}

// Run produces the full report for cfg as of today. Charts already written
// stay on disk when a later step fails.
func Run(ctx context.Context, cfg *config.Config, today time.Time, deps Deps) (*Result, error) {
	deps = deps.withDefaults()

	ctx, span := deps.Tracer.Start(ctx, "contribplot.run",
		trace.WithAttributes(
			attribute.String("repository", cfg.Repository),
			attribute.String("output.dir", cfg.Output.Dir),
		))
	defer span.End()

	result, err := run(ctx, cfg, today, deps)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}

func run(ctx context.Context, cfg *config.Config, today time.Time, deps Deps) (*Result, error) {
	logger := deps.Logger
	result := &Result{Summary: summary.New(cfg.Repository, today)}

	cleanup, err := outdir.Clean(ctx, cfg.Output.Dir, logger)
	if err != nil {
		return result, err
	}

	result.Cleanup = cleanup

	source := deps.Source
	if source == nil {
		repo, openErr := gitlib.OpenRepository(cfg.Repository)
		if openErr != nil {
			return result, fmt.Errorf("%w: %w", ErrRepositoryLoad, openErr)
		}
		defer repo.Free()

		source = contrib.NewGitSource(repo)
	}

	renderer := chart.NewRenderer(cfg.Output.Dir, logger)
	renderer.Size = chart.SizeInches(cfg.Chart.WidthInches, cfg.Chart.HeightInches)

	for _, window := range cfg.Windows {
		records, windowErr := runWindow(ctx, window, today, source, renderer, deps, result.Summary)
		if windowErr != nil {
			return result, fmt.Errorf("window %s: %w", window.Name, windowErr)
		}

		result.Windows = append(result.Windows, report.WindowCharts{Window: window, Charts: records})
	}

	tpl, err := report.LoadTemplates(cfg.Templates.Index, cfg.Templates.Tab)
	if err != nil {
		return result, err
	}

	result.IndexPath, err = report.WriteIndex(cfg.Output.Dir, report.Build(tpl, result.Windows))
	if err != nil {
		return result, err
	}

	logger.InfoContext(ctx, "report written", "path", result.IndexPath)

	return result, writeExtras(ctx, cfg, result, logger)
}

func runWindow(
	ctx context.Context,
	window contrib.Window,
	today time.Time,
	source contrib.Source,
	renderer *chart.Renderer,
	deps Deps,
	sum *summary.Summary,
) ([]chart.Record, error) {
	ctx, span := deps.Tracer.Start(ctx, "contribplot.window",
		trace.WithAttributes(attribute.String("window", window.Name)))
	defer span.End()

	started := time.Now()
	start, end := window.Span(today)

	deps.Logger.InfoContext(ctx, "processing window",
		"window", window.Name, "start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly))

	results, err := source.Commits(ctx, window, today)
	if err != nil {
		return nil, err
	}

	deps.Logger.InfoContext(ctx, "found commits", "window", window.Name, "commits", len(results))

	agg := contrib.Aggregate(ctx, results, deps.Logger)

	records, err := renderer.RenderWindow(ctx, window, today, agg.Stats)
	if err != nil {
		return records, err
	}

	sum.AddWindow(window, today, agg, records)

	deps.Metrics.RecordWindow(ctx, observability.WindowStats{
		Window:   window.Name,
		Commits:  agg.Commits,
		Skipped:  agg.Skipped,
		Charts:   len(records),
		Duration: time.Since(started),
	})

	span.SetAttributes(
		attribute.Int("commits", agg.Commits),
		attribute.Int("skipped", agg.Skipped),
		attribute.Int("charts", len(records)),
	)

	return records, nil
}

func writeExtras(ctx context.Context, cfg *config.Config, result *Result, logger *slog.Logger) error {
	if cfg.Output.Summary {
		path, err := summary.WriteYAML(cfg.Output.Dir, result.Summary)
		if err != nil {
			return err
		}

		result.SummaryPath = path
		logger.InfoContext(ctx, "summary written", "path", path)
	}

	if cfg.Output.Overview {
		path, err := overview.Write(cfg.Output.Dir, result.Summary)
		if err != nil {
			return err
		}

		result.OverviewPath = path
		logger.InfoContext(ctx, "overview written", "path", path)
	}

	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	if d.Tracer == nil {
		d.Tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}

	return d
}
