// Package diagram renders result arrays and envelopes as terminal charts and
// image files.
package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobeam/internal/envelope"
)

// ChartOptions sizes a terminal chart.
type ChartOptions struct {
	Width   int
	Height  int
	Caption string
}

func (o ChartOptions) graphOptions() []asciigraph.Option {
	width, height := o.Width, o.Height
	if width <= 0 {
		width = 70
	}
	if height <= 0 {
		height = 15
	}
	return []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(o.Caption),
		asciigraph.Precision(2),
	}
}

// ASCIIEnvelope charts the max (red) and min (blue) curves of an envelope.
func ASCIIEnvelope(env *envelope.Envelope, opts ChartOptions) string {
	if len(env.X) == 0 {
		return ""
	}
	if opts.Caption == "" {
		opts.Caption = "envelope: max (red), min (blue)"
	}
	graphOpts := append(opts.graphOptions(), asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue))
	return asciigraph.PlotMany([][]float64{env.Max, env.Min}, graphOpts...)
}

// ASCIICombo charts a single combination.
func ASCIICombo(c envelope.Combo, opts ChartOptions) string {
	if len(c.Y) == 0 {
		return ""
	}
	if opts.Caption == "" {
		opts.Caption = c.Name
	}
	return asciigraph.Plot(c.Y, opts.graphOptions()...)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := len([]rune(title))
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	width += 4

	border := strings.Repeat("═", width)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(title, width-4))
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(line, width-4))
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if r := n - len([]rune(s)); r > 0 {
		return s + strings.Repeat(" ", r)
	}
	return s
}
