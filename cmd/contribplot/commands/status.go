package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// statusPrinter writes short coloured status lines for the user.
type statusPrinter struct {
	w     io.Writer
	ok    *color.Color
	label *color.Color
}

func newStatusPrinter(w io.Writer, noColor bool) *statusPrinter {
	ok := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgCyan)

	if noColor {
		ok.DisableColor()
		label.DisableColor()
	}

	return &statusPrinter{w: w, ok: ok, label: label}
}

// Done prints a success line followed by a path.
func (p *statusPrinter) Done(what, path string) {
	p.ok.Fprint(p.w, "✓ ")
	fmt.Fprintf(p.w, "%s ", what)
	p.label.Fprintln(p.w, path)
}
