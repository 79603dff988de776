package chart

import (
	"time"

	"gonum.org/v1/plot"

	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

const (
	numDateTicks   = 7
	dateTickFormat = "Jan 02"
)

// dayGrid is a single-row plotter.GridXYZ with one column per day.
type dayGrid []float64

func (g dayGrid) Dims() (c, r int)   { return len(g), 1 }
func (g dayGrid) Z(c, _ int) float64 { return g[c] }
func (g dayGrid) X(c int) float64    { return float64(c) }
func (g dayGrid) Y(_ int) float64    { return 0 }

// contributionGrid counts commits for every calendar day of the window,
// starting at the window's first day.
func contributionGrid(stats *contrib.AuthorStats, window contrib.Window, today time.Time) dayGrid {
	start, _ := window.Span(today)
	perDay := stats.CommitsPerDay()

	grid := make(dayGrid, window.NumDays())
	for i := range grid {
		grid[i] = float64(perDay[start.AddDate(0, 0, i)])
	}

	return grid
}

// tickPositions spreads count ticks evenly over [0, cells-1], truncating to
// whole cells. Duplicate positions of very short windows are dropped.
func tickPositions(cells, count int) []int {
	if cells <= 0 || count <= 0 {
		return nil
	}

	if count == 1 || cells == 1 {
		return []int{0}
	}

	positions := make([]int, 0, count)
	last := -1

	for i := range count {
		pos := i * (cells - 1) / (count - 1)
		if pos == last {
			continue
		}

		positions = append(positions, pos)
		last = pos
	}

	return positions
}

// dateTicks labels the tick positions with their calendar dates.
func dateTicks(start time.Time, cells int) plot.ConstantTicks {
	positions := tickPositions(cells, numDateTicks)
	ticks := make(plot.ConstantTicks, 0, len(positions))

	for _, pos := range positions {
		ticks = append(ticks, plot.Tick{
			Value: float64(pos),
			Label: start.AddDate(0, 0, pos).Format(dateTickFormat),
		})
	}

	return ticks
}

func maxValue(grid dayGrid) float64 {
	highest := 0.0

	for _, v := range grid {
		highest = max(highest, v)
	}

	return highest
}
