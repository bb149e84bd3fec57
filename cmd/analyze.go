package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/spf13/cobra"
)

var (
	analyzeFlags modelFlags

	analyzeResult string
	analyzeDir    string
	analyzeCombo  string
	analyzeChart  bool
	analyzePlot   string
	analyzeCurves string
	analyzeXLSX   string
	analyzePDF    string

	analyzeReactions bool

	// Steel capacity check
	analyzeSx    float64
	analyzeFy    float64
	analyzeGamma float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a beam file under every load combination",
	Long: `Build a finite element model of the beam, solve it for every load
combination of the selected table and envelope the results.

Without --result the governing values of every quantity are summarized.
With --result (shear, moment, deflection, axial, torque) and --dir the
envelope of that quantity is reported in detail.

Load cases in the beam file are matched to the table's load components:
D, Cs, Cw, Wp, Ws, L and S, or their aliases (Dead, Live, Snow, ...).

Examples:
  # Summary with the Eurocode table
  gobeam analyze beam.txt

  # Moment envelope about z with a terminal chart and a plot
  gobeam analyze beam.txt --result moment --dir Mz --chart --plot moment.png

  # NSCP combinations, Excel and PDF reports
  gobeam analyze beam.txt -t nscp --xlsx beam.xlsx --pdf beam.pdf

  # Steel check: Sx = 1.2e6 mm³, fy = 355 MPa
  gobeam analyze beam.txt --sx 1.2e6 --fy 355

  # Support reactions of every combination
  gobeam analyze beam.txt --reactions`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeFlags.register(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeResult, "result", "r", "", "Quantity to envelope: shear, moment, deflection, axial, torque")
	analyzeCmd.Flags().StringVarP(&analyzeDir, "dir", "d", "", "Direction of the quantity (Fy, Fz, Mz, My, dx, dy, dz)")
	analyzeCmd.Flags().StringVar(&analyzeCombo, "combo", "", "Report a single combination instead of the envelope")
	analyzeCmd.Flags().BoolVar(&analyzeChart, "chart", false, "Draw a terminal chart of the result")
	analyzeCmd.Flags().StringVar(&analyzePlot, "plot", "", "Save the envelope diagram (.png, .svg or .pdf)")
	analyzeCmd.Flags().StringVar(&analyzeCurves, "plot-combos", "", "Save every combination curve in one diagram")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write an Excel report")
	analyzeCmd.Flags().StringVar(&analyzePDF, "pdf", "", "Write a PDF report")
	analyzeCmd.Flags().BoolVar(&analyzeReactions, "reactions", false, "Report the support reactions of every combination")

	analyzeCmd.Flags().Float64Var(&analyzeSx, "sx", 0, "Elastic section modulus for a steel moment check (mm³)")
	analyzeCmd.Flags().Float64Var(&analyzeFy, "fy", 355, "Steel yield strength (MPa)")
	analyzeCmd.Flags().Float64Var(&analyzeGamma, "gamma", capacity.DefaultGammaM, "Partial factor γM0")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	q, dir := fe.Moment, fe.Moment.DefaultDirection()
	if analyzeResult != "" {
		var err error
		q, dir, err = fe.ParseQuantity(analyzeResult, analyzeDir)
		if err != nil {
			return err
		}
	}

	m, err := analyzeFlags.load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	printBanner(out, "BEAM ANALYSIS: "+m.Beam.Name)
	printModel(out, m)

	if analyzeCombo != "" {
		return printSingleCombo(out, m, q, dir, analyzeCombo)
	}

	env, combos, err := m.Envelope(q, dir)
	if err != nil {
		return err
	}

	if analyzeResult == "" {
		summary, err := m.Summarize()
		if err != nil {
			return err
		}
		printSummary(out, summary)
	} else {
		printEnvelopePeaks(out, q, dir, env)
	}

	if analyzeChart {
		printHeading(out, fmt.Sprintf("%s %s ENVELOPE (%s):", strings.ToUpper(string(q)), dir, q.Unit()))
		fmt.Fprintln(out, diagram.ASCIIEnvelope(env, diagram.ChartOptions{Caption: "max (red) / min (blue)"}))
		fmt.Fprintln(out)
	}

	plotOpts := diagram.PlotOptions{
		Title:  fmt.Sprintf("%s: %s %s envelope", m.Beam.Name, q, dir),
		YLabel: fmt.Sprintf("%s %s (%s)", q, dir, q.Unit()),
	}
	var image string
	if analyzePlot != "" {
		if err := diagram.ExportEnvelope(env, plotOpts, analyzePlot); err != nil {
			return fmt.Errorf("saving plot: %w", err)
		}
		image = diagram.OutputPath(analyzePlot)
		fmt.Fprintf(out, "  Envelope diagram saved to %s\n", image)
	}
	if analyzeCurves != "" {
		plotOpts.Title = fmt.Sprintf("%s: %s %s by combination", m.Beam.Name, q, dir)
		if err := diagram.ExportCombos(combos, plotOpts, analyzeCurves); err != nil {
			return fmt.Errorf("saving plot: %w", err)
		}
		fmt.Fprintf(out, "  Combination diagram saved to %s\n", diagram.OutputPath(analyzeCurves))
	}

	if analyzeReactions {
		all, err := m.Reactions()
		if err != nil {
			return err
		}
		printReactions(out, all)
	}

	var check *capacity.Check
	if cmd.Flags().Changed("sx") {
		check, err = steelCheck(m)
		if err != nil {
			return err
		}
		printCheck(out, *check)
	}

	if analyzeXLSX != "" || analyzePDF != "" {
		r, err := report.FromModel(m)
		if err != nil {
			return err
		}
		r.Capacity = check
		r.Image = image
		if analyzeXLSX != "" {
			if err := report.WriteWorkbook(r, analyzeXLSX); err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}
			fmt.Fprintf(out, "  Excel report saved to %s\n", analyzeXLSX)
		}
		if analyzePDF != "" {
			if err := report.WritePDF(r, analyzePDF); err != nil {
				return fmt.Errorf("writing PDF: %w", err)
			}
			fmt.Fprintf(out, "  PDF report saved to %s\n", analyzePDF)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printModel(out io.Writer, m *analysis.Model) {
	printHeading(out, "MODEL:")
	w := newTable(out)
	fmt.Fprintf(w, "  Length:\t%g mm\n", m.Beam.L)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(m.Nodes))
	fmt.Fprintf(w, "  Supports:\t%d\n", len(m.Beam.Supports))
	fmt.Fprintf(w, "  Loads:\t%d in cases %v\n", len(m.Beam.Loads), m.Beam.Cases())
	if m.Table != nil {
		fmt.Fprintf(w, "  Combination table:\t%s (%d combinations)\n", m.Table.Name, len(m.Table.Combinations))
	} else {
		fmt.Fprintf(w, "  Combination table:\tnone (%s only)\n", fe.ServiceCombo)
	}
	if len(m.Beam.Defaulted) > 0 {
		fmt.Fprintf(w, "  Defaulted properties:\t%v ⚠\n", m.Beam.Defaulted)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printSummary(out io.Writer, summary []analysis.Summary) {
	lines := make([]string, 0, 2*len(summary))
	for _, s := range summary {
		label := fmt.Sprintf("%-10s %-2s", s.Quantity, s.Direction)
		lines = append(lines,
			fmt.Sprintf("%s  max %12.4g %-5s at x = %-8.6g %s", label, s.Max.Value, s.Unit, s.Max.X, s.Max.Combination),
			fmt.Sprintf("%s  min %12.4g %-5s at x = %-8.6g %s", label, s.Min.Value, s.Unit, s.Min.X, s.Min.Combination),
		)
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("GOVERNING VALUES", lines))
	fmt.Fprintln(out)
}

func printEnvelopePeaks(out io.Writer, q fe.Quantity, dir string, env *envelope.Envelope) {
	maxExt, minExt := env.Peaks()
	printHeading(out, fmt.Sprintf("%s %s ENVELOPE:", strings.ToUpper(string(q)), dir))
	w := newTable(out)
	fmt.Fprintln(w, "  \tValue\tx (mm)\tCombination")
	fmt.Fprintln(w, "  \t─────\t──────\t───────────")
	fmt.Fprintf(w, "  Maximum:\t%.4g %s\t%g\t%s\n", maxExt.Value, q.Unit(), maxExt.X, maxExt.Combination)
	fmt.Fprintf(w, "  Minimum:\t%.4g %s\t%g\t%s\n", minExt.Value, q.Unit(), minExt.X, minExt.Combination)
	w.Flush()
	fmt.Fprintln(out)

	abs := env.AbsPeak()
	fmt.Fprint(out, diagram.DrawSummaryBox("GOVERNING "+strings.ToUpper(string(q)), []string{
		fmt.Sprintf("%s = %.4g %s", dir, abs.Value, q.Unit()),
		fmt.Sprintf("at x = %g mm, combination %s", abs.X, abs.Combination),
	}))
	fmt.Fprintln(out)
}

func printSingleCombo(out io.Writer, m *analysis.Model, q fe.Quantity, dir, name string) error {
	combos, err := m.Combos(q, dir)
	if err != nil {
		return err
	}
	for _, c := range combos {
		if c.Name != name {
			continue
		}
		hi, lo := 0, 0
		for i, y := range c.Y {
			if y > c.Y[hi] {
				hi = i
			}
			if y < c.Y[lo] {
				lo = i
			}
		}
		printHeading(out, fmt.Sprintf("%s %s, COMBINATION %s:", strings.ToUpper(string(q)), dir, name))
		w := newTable(out)
		fmt.Fprintf(w, "  Maximum:\t%.4g %s\tat x = %g\n", c.Y[hi], q.Unit(), c.X[hi])
		fmt.Fprintf(w, "  Minimum:\t%.4g %s\tat x = %g\n", c.Y[lo], q.Unit(), c.X[lo])
		w.Flush()
		fmt.Fprintln(out)
		if analyzeChart {
			fmt.Fprintln(out, diagram.ASCIICombo(c, diagram.ChartOptions{}))
			fmt.Fprintln(out)
		}
		return nil
	}
	return fmt.Errorf("no combination %q in the model (have %v)", name, m.Engine.LoadCombos())
}

func printReactions(out io.Writer, all []analysis.ComboReactions) {
	printHeading(out, "SUPPORT REACTIONS (N, N·mm):")
	w := newTable(out)
	fmt.Fprintln(w, "  Combination\tNode\tx (mm)\tFx\tFy\tFz\tMz")
	fmt.Fprintln(w, "  ───────────\t────\t──────\t──\t──\t──\t──")
	for _, c := range all {
		for _, r := range c.Reactions {
			fmt.Fprintf(w, "  %s\t%s\t%g\t%.4g\t%.4g\t%.4g\t%.4g\n",
				c.Combination, r.Node, r.X, r.Forces[0], r.Forces[1], r.Forces[2], r.Forces[5])
		}
	}
	w.Flush()
	fmt.Fprintln(out)
}

// steelCheck checks the Mz moment envelope against Sx·fy/γM0.
func steelCheck(m *analysis.Model) (*capacity.Check, error) {
	resistance, err := capacity.SteelMomentResistance(analyzeSx, analyzeFy, analyzeGamma)
	if err != nil {
		return nil, err
	}
	env, _, err := m.Envelope(fe.Moment, fe.Moment.DefaultDirection())
	if err != nil {
		return nil, err
	}
	c, err := capacity.CheckEnvelope(env, resistance)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func printCheck(out io.Writer, c capacity.Check) {
	printHeading(out, "MOMENT CAPACITY CHECK:")
	w := newTable(out)
	fmt.Fprintf(w, "  Resistance (Mc,Rd):\t%.4g N·mm\n", c.Resistance)
	fmt.Fprintf(w, "  Demand (|M|max):\t%.4g N·mm\tat x = %g (%s)\n", math.Abs(c.Demand.Value), c.Demand.X, c.Demand.Combination)
	fmt.Fprintf(w, "  Utilization:\t%.3f\n", c.Utilization)
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", verdict(c.Adequate))
}

func verdict(ok bool) string {
	if ok {
		return "✓ Section is ADEQUATE"
	}
	return "✗ Section is NOT ADEQUATE"
}
