package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/contribplot/pkg/chart"
	"github.com/Sumatoshi-tech/contribplot/pkg/config"
	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
	"github.com/Sumatoshi-tech/contribplot/pkg/gitlib"
	"github.com/Sumatoshi-tech/contribplot/pkg/pipeline"
	"github.com/Sumatoshi-tech/contribplot/pkg/report"
	"github.com/Sumatoshi-tech/contribplot/pkg/summary"
)

var today = time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)

var twoWeeks = contrib.Window{Name: "last_two_weeks", Days: 14}

type fakeSource struct {
	commits []contrib.CommitResult
	err     error
}

func (f *fakeSource) Commits(_ context.Context, window contrib.Window, now time.Time) ([]contrib.CommitResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []contrib.CommitResult

	for _, c := range f.commits {
		if window.Contains(now, c.Commit.When) {
			out = append(out, c)
		}
	}

	return out, nil
}

func commit(author string, added, removed int, when time.Time) contrib.CommitResult {
	return contrib.CommitResult{Commit: contrib.Commit{
		Hash:       author + when.String(),
		Author:     author,
		When:       when,
		Insertions: added,
		Deletions:  removed,
	}}
}

func scenarioSource() *fakeSource {
	return &fakeSource{commits: []contrib.CommitResult{
		commit("a@x.com", 6, 1, today.AddDate(0, 0, -2)),
		commit("a@x.com", 4, 1, today.AddDate(0, 0, -5)),
		commit("b@y.com", 0, 0, today.AddDate(0, 0, -1)),
		commit("c@z.com", 100, 0, today.AddDate(0, 0, -30)),
	}}
}

func newConfig(t *testing.T, windows ...contrib.Window) *config.Config {
	t.Helper()

	tplDir := filepath.Join(t.TempDir(), "templates")

	_, err := report.WriteDefaultTemplates(tplDir, false)
	require.NoError(t, err)

	return &config.Config{
		Repository: ".",
		Output:     config.OutputConfig{Dir: filepath.Join(t.TempDir(), "out")},
		Templates: config.TemplatesConfig{
			Index: filepath.Join(tplDir, report.IndexTemplateName),
			Tab:   filepath.Join(tplDir, report.TabTemplateName),
		},
		Windows: windows,
		Chart: config.ChartConfig{
			WidthInches:  config.DefaultChartWidthInches,
			HeightInches: config.DefaultChartHeightInches,
		},
	}
}

func svgFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	require.NoError(t, err)

	return matches
}

func TestRun_LastTwoWeeksScenario(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, twoWeeks)

	result, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)

	files := svgFiles(t, cfg.Output.Dir)
	require.Len(t, files, 1)
	assert.Equal(t, chart.FileName("a@x.com", twoWeeks), filepath.Base(files[0]))

	require.Len(t, result.Windows, 1)
	require.Len(t, result.Windows[0].Charts, 1)
	assert.Equal(t, "a@x.com", result.Windows[0].Charts[0].Author)

	index, err := os.ReadFile(result.IndexPath)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(index), "class=\"contributor-item\""))
	assert.NotContains(t, string(index), "b@y.com")

	win := result.Summary.Windows[0]
	require.Len(t, win.Authors, 1)
	assert.Equal(t, 10, win.Authors[0].Added)
	assert.Equal(t, 2, win.Authors[0].Removed)
	assert.Equal(t, 3, win.Commits)
}

func TestRun_MissingTemplateKeepsCharts(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, twoWeeks)
	cfg.Templates.Tab = filepath.Join(t.TempDir(), "missing.tpl.html")

	_, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.ErrorIs(t, err, report.ErrTemplateNotFound)

	assert.Len(t, svgFiles(t, cfg.Output.Dir), 1)
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, report.IndexFileName))
}

func TestRun_DeterministicIndex(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, contrib.DefaultWindows()...)

	first, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)

	firstIndex, err := os.ReadFile(first.IndexPath)
	require.NoError(t, err)

	second, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)

	secondIndex, err := os.ReadFile(second.IndexPath)
	require.NoError(t, err)

	assert.Equal(t, string(firstIndex), string(secondIndex))
}

func TestRun_OrderAndWindows(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, contrib.DefaultWindows()...)

	result, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)
	require.Len(t, result.Windows, len(contrib.DefaultWindows()))

	lastMonth := result.Windows[2]
	require.Equal(t, "last_month", lastMonth.Window.Name)
	require.Len(t, lastMonth.Charts, 2)
	assert.Equal(t, "c@z.com", lastMonth.Charts[0].Author)
	assert.Equal(t, "a@x.com", lastMonth.Charts[1].Author)
}

func TestRun_CleansPreviousOutput(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, twoWeeks)
	require.NoError(t, os.MkdirAll(cfg.Output.Dir, 0o750))

	stale := filepath.Join(cfg.Output.Dir, "stale.svg")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	result, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.Equal(t, 1, result.Cleanup.Removed)
}

func TestRun_Extras(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, twoWeeks)
	cfg.Output.Summary = true
	cfg.Output.Overview = true

	result, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: scenarioSource()})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Output.Dir, summary.FileName), result.SummaryPath)
	assert.FileExists(t, result.SummaryPath)
	assert.FileExists(t, result.OverviewPath)
}

func TestRun_SourceError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	cfg := newConfig(t, twoWeeks)

	_, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{Source: &fakeSource{err: errBoom}})
	require.ErrorIs(t, err, errBoom)
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, report.IndexFileName))
}

func TestRun_RepositoryNotFound(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, twoWeeks)
	cfg.Repository = filepath.Join(t.TempDir(), "nope")

	_, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{})
	require.ErrorIs(t, err, pipeline.ErrRepositoryLoad)
}

func TestRun_GitRepository(t *testing.T) {
	t.Parallel()

	tr := gitlib.NewTestRepo(t)

	tr.WriteFile("main.go", "package main\n\nfunc main() {}\n")
	tr.Commit(gitlib.TestSignature("Alice", "alice@example.com", today.AddDate(0, 0, -3)), "init")

	tr.WriteFile("README", "hello\n")
	tr.Commit(gitlib.TestSignature("Bob", "bob@example.com", today.AddDate(0, 0, -1)), "docs")

	cfg := newConfig(t, twoWeeks)
	cfg.Repository = tr.Path

	result, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{})
	require.NoError(t, err)

	require.Len(t, result.Windows[0].Charts, 2)
	assert.Equal(t, "alice@example.com", result.Windows[0].Charts[0].Author)
	assert.Equal(t, "bob@example.com", result.Windows[0].Charts[1].Author)
	assert.Len(t, svgFiles(t, cfg.Output.Dir), 2)
}

func TestRun_RecordsSpans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	cfg := newConfig(t, contrib.DefaultWindows()...)

	_, err := pipeline.Run(context.Background(), cfg, today, pipeline.Deps{
		Source: scenarioSource(),
		Tracer: tp.Tracer("test"),
	})
	require.NoError(t, err)

	var runSpans, windowSpans int

	for _, span := range recorder.Ended() {
		switch span.Name() {
		case "contribplot.run":
			runSpans++
		case "contribplot.window":
			windowSpans++
		}
	}

	assert.Equal(t, 1, runSpans)
	assert.Equal(t, len(cfg.Windows), windowSpans)
}
