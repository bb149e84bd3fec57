package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/spf13/cobra"
)

var (
	parseStrict bool
	parseJSON   bool
	parseSheet  string
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse and validate a beam file",
	Long: `Read a beam file and print the structured beam it describes.

A beam file has a name line, a property line, a support line and any number
of load lines:

  Balcony transfer
  4800, 24500, 1200000000
  1000:P, 3800:R
  POINT:Fy, -10000, 4800, case:Live
  DIST:Fy, -30, -30, 0, 4800, case:Dead

Properties are positional: L, E, Iz, Iy, A, J, nu, rho. The first three are
required; missing ones default to 1 unless --strict is given.
Supports are location:code with P (pinned), F (fixed) or R (roller).

Files ending in .xlsx are read from the first worksheet, one line per row.

Examples:
  gobeam parse beam.txt
  gobeam parse beam.xlsx --sheet Beams
  gobeam parse beam.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "Reject partially specified property lines")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the beam as JSON")
	parseCmd.Flags().StringVar(&parseSheet, "sheet", "", "Worksheet to read from an .xlsx file (default first)")
}

func runParse(cmd *cobra.Command, args []string) error {
	b, err := beamfile.Parse(args[0], beamfile.Options{Strict: parseStrict, Sheet: parseSheet})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	printBanner(out, "BEAM FILE: "+b.Name)
	printBeam(out, b)
	fmt.Fprintf(out, "  Load cases: %v\n\n", b.Cases())
	return nil
}
