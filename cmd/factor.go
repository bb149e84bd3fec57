package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/alexiusacademia/gobeam/internal/loadcombo"
	"github.com/spf13/cobra"
)

var (
	factorLoads  map[string]string
	factorTable  string
	factorCombos string
	factorAll    bool
)

var factorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Factor unfactored component loads with a combination table",
	Long: `Compute the factored load (or moment, or any load effect) for every
combination of a table and report the governing maximum and minimum.

Components not named in the table count as zero. The Eurocode table
recognises D, Cs, Cw, Wp, Ws, L and S; the NSCP tables D, L, Lr, W, E
and R. Aliases such as Dead or Live are accepted.

Examples:
  # Gravity loads with the Eurocode table
  gobeam factor --load D=50 --load L=30

  # NSCP with wind, every combination listed
  gobeam factor -t nscp --load D=50,L=30,W=20 --all`,
	Args: cobra.NoArgs,
	RunE: runFactor,
}

func init() {
	rootCmd.AddCommand(factorCmd)

	factorCmd.Flags().StringToStringVarP(&factorLoads, "load", "l", nil, "Unfactored component load as KEY=VALUE (repeatable)")
	factorCmd.Flags().StringVarP(&factorTable, "table", "t", loadcombo.DefaultTableName, "Built-in combination table")
	factorCmd.Flags().StringVar(&factorCombos, "combos", "", "TOML load combination table (overrides --table)")
	factorCmd.Flags().BoolVarP(&factorAll, "all", "a", false, "Show all load combination results")

	factorCmd.MarkFlagRequired("load")
}

func runFactor(cmd *cobra.Command, args []string) error {
	table, err := loadTable(factorCombos, factorTable)
	if err != nil {
		return err
	}

	loads := make(loadcombo.Loads, len(factorLoads))
	for k, v := range factorLoads {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("load %s: %q is not a number", k, v)
		}
		loads[table.Canonical(k)] += x
	}

	maxF, err := table.MaxFactoredLoad(loads)
	if err != nil {
		return err
	}
	minF, err := table.MinFactoredLoad(loads)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBanner(out, "FACTORED LOAD: "+table.Name)

	printHeading(out, "UNFACTORED LOADS:")
	recognised := make(map[string]bool)
	for _, c := range table.RecognisedComponents() {
		recognised[c] = true
	}
	keys := make([]string, 0, len(loads))
	for k := range loads {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w := newTable(out)
	for _, k := range keys {
		note := ""
		if !recognised[k] {
			note = "  ⚠ not a component of this table, ignored"
		}
		fmt.Fprintf(w, "  %s:\t%.2f%s\n", k, loads[k], note)
	}
	w.Flush()
	fmt.Fprintln(out)

	if factorAll {
		printHeading(out, "LOAD COMBINATIONS:")
		w = newTable(out)
		fmt.Fprintln(w, "  #\tCombination\tFactored")
		fmt.Fprintln(w, "  ─\t───────────\t────────")
		for _, f := range table.FactorAll(loads) {
			marker := ""
			switch f.Combination.Name {
			case maxF.Combination.Name:
				marker = " ← GOVERNS (max)"
			case minF.Combination.Name:
				marker = " ← GOVERNS (min)"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", f.Combination.Name, f.Combination.Describe(), f.Value, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	printHeading(out, "RESULT:")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", maxF.Combination.Name, maxF.Combination.Describe())
	fmt.Fprintf(out, "  Minimum: %.2f from %s (%s)\n", minF.Value, minF.Combination.Name, minF.Combination.Describe())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ╔═══════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  FACTORED LOAD = %.2f\n", maxF.Value)
	fmt.Fprintf(out, "  ╚═══════════════════════════════════╝\n")
	fmt.Fprintln(out)
	return nil
}
