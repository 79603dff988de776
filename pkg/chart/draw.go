// Package chart renders per-author contribution charts as SVG images.
package chart

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

const (
	labelAdded      = "Added"
	labelRemoved    = "Removed"
	labelLines      = "Lines of Code"
	labelChangeType = "Change Type"
	labelCommits    = "Commits"

	titleFontSize = 14
	axisFontSize  = 12
	barWidth      = 1.5 * vg.Inch

	// Panel heights as a share of the whole image; the bar chart gets the rest.
	stripShare    = 0.2
	colorBarShare = 0.35
	colorBarSteps = 64
)

// Size is the image size of one chart.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize mirrors an 8x12 inch figure.
func DefaultSize() Size {
	return Size{Width: 8 * vg.Inch, Height: 12 * vg.Inch}
}

// SizeInches builds a Size from inch dimensions.
func SizeInches(width, height float64) Size {
	return Size{Width: vg.Length(width) * vg.Inch, Height: vg.Length(height) * vg.Inch}
}

// Data is everything needed to draw one author's chart.
type Data struct {
	Author string
	Window contrib.Window
	Today  time.Time
	Stats  *contrib.AuthorStats
}

// Draw writes the two-panel chart of data as SVG: the added/removed bar
// chart on top, the daily contribution strip and its colour scale below.
func Draw(w io.Writer, data Data, size Size) error {
	bars, err := barPlot(data)
	if err != nil {
		return err
	}

	heat, err := heatPalette()
	if err != nil {
		return err
	}

	grid := contributionGrid(data.Stats, data.Window, data.Today)
	scaleMax := max(maxValue(grid), 1)
	strip := stripPlot(grid, heat, data.Window, data.Today, scaleMax)
	scale := colorBarPlot(heat, scaleMax)

	img := vgsvg.New(size.Width, size.Height)
	canvas := draw.New(img)

	stripHeight := size.Height * stripShare
	colorBarHeight := stripHeight * colorBarShare

	bars.Draw(draw.Crop(canvas, 0, 0, stripHeight, 0))
	strip.Draw(draw.Crop(canvas, 0, 0, colorBarHeight, stripHeight-size.Height))
	scale.Draw(draw.Crop(canvas, 0, 0, 0, colorBarHeight-size.Height))

	_, err = img.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	return nil
}

func barPlot(data Data) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s\nTotal: %d added, %d removed",
		data.Author, data.Window.Name, data.Stats.Added, data.Stats.Removed)
	p.Title.TextStyle.Font.Size = titleFontSize
	p.Y.Label.Text = labelLines
	p.Y.Label.TextStyle.Font.Size = axisFontSize
	p.X.Label.Text = labelChangeType
	p.X.Label.TextStyle.Font.Size = axisFontSize

	added, err := plotter.NewBarChart(plotter.Values{float64(data.Stats.Added)}, barWidth)
	if err != nil {
		return nil, fmt.Errorf("added bar: %w", err)
	}

	added.Color = colorAdded
	added.LineStyle.Width = 0

	removed, err := plotter.NewBarChart(plotter.Values{float64(data.Stats.Removed)}, barWidth)
	if err != nil {
		return nil, fmt.Errorf("removed bar: %w", err)
	}

	removed.Color = colorRemoved
	removed.LineStyle.Width = 0
	removed.XMin = 1

	p.Add(added, removed)
	p.NominalX(labelAdded, labelRemoved)

	return p, nil
}

func stripPlot(grid dayGrid, pal palette.Palette, window contrib.Window, today time.Time, scaleMax float64) *plot.Plot {
	heat := plotter.NewHeatMap(grid, pal)
	heat.Min = 0
	heat.Max = scaleMax

	start, _ := window.Span(today)

	p := plot.New()
	p.Add(heat)
	p.X.Tick.Marker = dateTicks(start, len(grid))
	p.Y.Tick.Marker = plot.ConstantTicks{{Value: 0, Label: labelCommits}}

	return p
}

// colorBarPlot draws the heat scale as a horizontal strip from 0 to scaleMax.
// plotter.ColorBar needs a continuous palette.ColorMap, so the discrete
// scheme is drawn as a heat map of evenly spaced steps instead.
func colorBarPlot(pal palette.Palette, scaleMax float64) *plot.Plot {
	steps := make(dayGrid, colorBarSteps)
	for i := range steps {
		steps[i] = scaleMax * float64(i) / float64(colorBarSteps-1)
	}

	heat := plotter.NewHeatMap(steps, pal)
	heat.Min = 0
	heat.Max = scaleMax

	p := plot.New()
	p.Add(heat)
	p.HideY()
	p.X.Label.Text = labelCommits
	p.X.Tick.Marker = plot.ConstantTicks{
		{Value: 0, Label: "0"},
		{Value: colorBarSteps - 1, Label: fmt.Sprintf("%.0f", scaleMax)},
	}

	return p
}
