package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/spf13/cobra"
)

var (
	steelSx    float64
	steelFy    float64
	steelGamma float64
	steelMu    float64
)

var capacitySteelCmd = &cobra.Command{
	Use:   "steel",
	Short: "Elastic moment resistance of a steel section",
	Long: `Calculate the elastic moment resistance Mc,Rd = Sx·fy/γM0 of a steel
section. With --mu the utilization of a design moment is checked.

Examples:
  gobeam capacity steel --sx 1.2e6 --fy 355
  gobeam capacity steel --sx 1.2e6 --fy 275 --gamma 1.0 --mu 2.5e8`,
	Args: cobra.NoArgs,
	RunE: runCapacitySteel,
}

func init() {
	capacityCmd.AddCommand(capacitySteelCmd)

	capacitySteelCmd.Flags().Float64Var(&steelSx, "sx", 0, "Elastic section modulus (mm³) [required]")
	capacitySteelCmd.Flags().Float64Var(&steelFy, "fy", 355, "Yield strength (MPa)")
	capacitySteelCmd.Flags().Float64Var(&steelGamma, "gamma", capacity.DefaultGammaM, "Partial factor γM0")
	capacitySteelCmd.Flags().Float64Var(&steelMu, "mu", 0, "Design moment to check (N·mm)")

	capacitySteelCmd.MarkFlagRequired("sx")
}

func runCapacitySteel(cmd *cobra.Command, args []string) error {
	mc, err := capacity.SteelMomentResistance(steelSx, steelFy, steelGamma)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBanner(out, "STEEL MOMENT RESISTANCE")
	printHeading(out, "INPUT DATA:")
	w := newTable(out)
	fmt.Fprintf(w, "  Section modulus (Sx):\t%.4g mm³\n", steelSx)
	fmt.Fprintf(w, "  Yield strength (fy):\t%.1f MPa\n", steelFy)
	fmt.Fprintf(w, "  γM0:\t%.2f\n", steelGamma)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  Mc,Rd = %.4g N·mm (%.2f kN-m)\n", mc, mc/1e6)
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)

	if steelMu != 0 {
		printMomentCheck(out, steelMu, mc)
	}
	return nil
}
