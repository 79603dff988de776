package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

const (
	heatScheme = "YlGnBu"
	heatSteps  = 9
)

var (
	colorAdded   = color.RGBA{G: 0x80, A: 0xff}
	colorRemoved = color.RGBA{R: 0xff, A: 0xff}
)

// heatPalette returns the ColorBrewer sequential scheme used by the
// contribution strip and its colour scale.
func heatPalette() (palette.Palette, error) {
	p, err := brewer.GetPalette(brewer.TypeSequential, heatScheme, heatSteps)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", heatScheme, err)
	}

	return p, nil
}
