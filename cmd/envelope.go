package cmd

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/spf13/cobra"
)

var (
	envelopeFlags modelFlags

	envelopeResult string
	envelopeDir    string
	envelopeEvery  int
	envelopeCSV    bool
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope FILE",
	Short: "Print the envelope of one quantity station by station",
	Long: `Solve a beam file and print, at each station along the beam, the maximum
and minimum of one quantity over all load combinations together with the
combination that governs each.

Examples:
  gobeam envelope beam.txt --result shear --dir Fy --every 10
  gobeam envelope beam.txt -r deflection -d dy --csv > dy.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeFlags.register(envelopeCmd)

	envelopeCmd.Flags().StringVarP(&envelopeResult, "result", "r", string(fe.Moment), "Quantity to envelope: shear, moment, deflection, axial, torque")
	envelopeCmd.Flags().StringVarP(&envelopeDir, "dir", "d", "", "Direction of the quantity (default per quantity)")
	envelopeCmd.Flags().IntVar(&envelopeEvery, "every", 1, "Print every n-th station")
	envelopeCmd.Flags().BoolVar(&envelopeCSV, "csv", false, "Write CSV instead of a table")
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	q, dir, err := fe.ParseQuantity(envelopeResult, envelopeDir)
	if err != nil {
		return err
	}
	m, err := envelopeFlags.load(args[0])
	if err != nil {
		return err
	}
	env, _, err := m.Envelope(q, dir)
	if err != nil {
		return err
	}

	every := max(envelopeEvery, 1)
	last := len(env.X) - 1
	include := func(i int) bool { return i%every == 0 || i == last }

	out := cmd.OutOrStdout()
	if envelopeCSV {
		w := csv.NewWriter(out)
		if err := w.Write([]string{"x", "max", "max_combo", "min", "min_combo"}); err != nil {
			return err
		}
		for i := range env.X {
			if !include(i) {
				continue
			}
			if err := w.Write([]string{
				strconv.FormatFloat(env.X[i], 'g', -1, 64),
				strconv.FormatFloat(env.Max[i], 'g', -1, 64), env.MaxCombo[i],
				strconv.FormatFloat(env.Min[i], 'g', -1, 64), env.MinCombo[i],
			}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	title := strings.ToUpper(string(q))
	if dir != "" {
		title += " " + dir
	}
	printBanner(out, title+" ENVELOPE: "+m.Beam.Name)
	printHeading(out, fmt.Sprintf("STATIONS (%s):", q.Unit()))
	w := newTable(out)
	fmt.Fprintln(w, "  x\tMax\tCombination\tMin\tCombination")
	fmt.Fprintln(w, "  ─\t───\t───────────\t───\t───────────")
	for i := range env.X {
		if !include(i) {
			continue
		}
		fmt.Fprintf(w, "  %.6g\t%.4g\t%s\t%.4g\t%s\n", env.X[i], env.Max[i], env.MaxCombo[i], env.Min[i], env.MinCombo[i])
	}
	w.Flush()
	fmt.Fprintln(out)
	return nil
}
