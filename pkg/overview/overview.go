// Package overview renders an interactive HTML page with one stacked bar
// chart of added and removed lines per author for every window.
package overview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/contribplot/pkg/summary"
)

// FileName is the name of the overview page inside the output directory.
const FileName = "overview.html"

const (
	filePerm     = 0o644
	chartWidth   = "100%"
	chartHeight  = "480px"
	stackName    = "lines"
	colorAdded   = "#2ca02c"
	colorRemoved = "#d62728"
	labelRotate  = 30
	pageID       = "contribplot_overview"
)

// Render writes the overview page. Chart IDs derive from the window position
// so identical input renders identical HTML.
func Render(w io.Writer, s *summary.Summary) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Contributions: %s", s.Repository)
	page.ChartID = pageID
	page.SetLayout(components.PageFlexLayout)

	for idx, win := range s.Windows {
		page.AddCharts(windowChart(idx, win))
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render overview: %w", err)
	}

	return nil
}

func windowChart(idx int, win summary.Window) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: fmt.Sprintf("window_%d", idx),
			Width:   chartWidth,
			Height:  chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    win.Name,
			Subtitle: fmt.Sprintf("%s .. %s, %d commits", win.Start, win.End, win.Commits),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "8%"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: labelRotate}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines of Code"}),
	)

	authors := make([]string, len(win.Authors))
	added := make([]opts.BarData, len(win.Authors))
	removed := make([]opts.BarData, len(win.Authors))

	for i, author := range win.Authors {
		authors[i] = author.Author
		added[i] = opts.BarData{Value: author.Added}
		removed[i] = opts.BarData{Value: author.Removed}
	}

	bar.SetXAxis(authors)
	bar.AddSeries("Added", added,
		charts.WithBarChartOpts(opts.BarChart{Stack: stackName}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorAdded}),
	)
	bar.AddSeries("Removed", removed,
		charts.WithBarChartOpts(opts.BarChart{Stack: stackName}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorRemoved}),
	)

	return bar
}

// Write renders the overview into outputDir/overview.html and returns the path.
func Write(outputDir string, s *summary.Summary) (string, error) {
	var buf bytes.Buffer

	renderErr := Render(&buf, s)
	if renderErr != nil {
		return "", renderErr
	}

	path := filepath.Join(outputDir, FileName)

	writeErr := os.WriteFile(path, buf.Bytes(), filePerm)
	if writeErr != nil {
		return "", fmt.Errorf("write %s: %w", path, writeErr)
	}

	return path, nil
}
