package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/gobeam/internal/envelope"
)

// PlotOptions labels an exported diagram.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	// Width and Height default to 8 by 5 inches.
	Width  vg.Length
	Height vg.Length
}

func (o PlotOptions) newPlot() *plot.Plot {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = "Position along beam (mm)"
	}
	p.Y.Label.Text = o.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

var (
	maxColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	minColor = color.RGBA{R: 30, G: 60, B: 200, A: 255}
)

// ExportEnvelope draws the max and min curves of an envelope with a zero
// reference line.
func ExportEnvelope(env *envelope.Envelope, opts PlotOptions, filename string) error {
	p := opts.newPlot()

	maxLine, err := plotter.NewLine(xys(env.X, env.Max))
	if err != nil {
		return err
	}
	maxLine.LineStyle.Width = vg.Points(1.5)
	maxLine.LineStyle.Color = maxColor

	minLine, err := plotter.NewLine(xys(env.X, env.Min))
	if err != nil {
		return err
	}
	minLine.LineStyle.Width = vg.Points(1.5)
	minLine.LineStyle.Color = minColor

	if err := addZeroLine(p, env.X); err != nil {
		return err
	}
	p.Add(maxLine, minLine)
	p.Legend.Add("Max", maxLine)
	p.Legend.Add("Min", minLine)

	return save(p, opts, filename)
}

// ExportCombos draws one curve per combination.
func ExportCombos(combos []envelope.Combo, opts PlotOptions, filename string) error {
	if len(combos) == 0 {
		return envelope.ErrNoCombinations
	}
	p := opts.newPlot()
	if err := addZeroLine(p, combos[0].X); err != nil {
		return err
	}
	for i, c := range combos {
		l, err := plotter.NewLine(xys(c.X, c.Y))
		if err != nil {
			return fmt.Errorf("combination %q: %w", c.Name, err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		p.Add(l)
		p.Legend.Add(c.Name, l)
	}
	return save(p, opts, filename)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

func addZeroLine(p *plot.Plot, x []float64) error {
	if len(x) == 0 {
		return nil
	}
	zero, err := plotter.NewLine(plotter.XYs{
		{X: x[0], Y: 0},
		{X: x[len(x)-1], Y: 0},
	})
	if err != nil {
		return err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)
	return nil
}

// OutputPath returns the file an export to filename is written to: the name
// itself when it ends in .png, .svg or .pdf, otherwise filename + ".png".
func OutputPath(filename string) string {
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return filename
	}
	return filename + ".png"
}

// save writes the plot in the format named by OutputPath.
func save(p *plot.Plot, opts PlotOptions, filename string) error {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 8 * vg.Inch
	}
	if height == 0 {
		height = 5 * vg.Inch
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(width, height, OutputPath(filename))
}
