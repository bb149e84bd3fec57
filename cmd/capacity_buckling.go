package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/spf13/cobra"
)

var (
	bucklingLength float64
	bucklingE      float64
	bucklingI      float64
	bucklingK      float64
	bucklingP      float64
)

var capacityBucklingCmd = &cobra.Command{
	Use:   "buckling",
	Short: "Euler buckling load of a column",
	Long: `Calculate the elastic critical load Pcr = π²EI/(kL)². With --p an axial
compression is checked against it.

Effective length factors: 1.0 pinned-pinned, 0.7 fixed-pinned,
0.5 fixed-fixed, 2.0 fixed-free.

Examples:
  gobeam capacity buckling --length 3000 --e 200000 --i 8e6
  gobeam capacity buckling --length 3000 --e 200000 --i 8e6 --k 2 --p 150000`,
	Args: cobra.NoArgs,
	RunE: runCapacityBuckling,
}

func init() {
	capacityCmd.AddCommand(capacityBucklingCmd)

	capacityBucklingCmd.Flags().Float64VarP(&bucklingLength, "length", "l", 0, "Column length (mm) [required]")
	capacityBucklingCmd.Flags().Float64Var(&bucklingE, "e", 200000, "Elastic modulus (MPa)")
	capacityBucklingCmd.Flags().Float64Var(&bucklingI, "i", 0, "Second moment of area about the buckling axis (mm⁴) [required]")
	capacityBucklingCmd.Flags().Float64Var(&bucklingK, "k", 1, "Effective length factor")
	capacityBucklingCmd.Flags().Float64Var(&bucklingP, "p", 0, "Axial compression to check (N)")

	capacityBucklingCmd.MarkFlagRequired("length")
	capacityBucklingCmd.MarkFlagRequired("i")
}

func runCapacityBuckling(cmd *cobra.Command, args []string) error {
	pcr, err := capacity.EulerBucklingLoad(bucklingLength, bucklingE, bucklingI, bucklingK)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBanner(out, "EULER BUCKLING LOAD")
	printHeading(out, "INPUT DATA:")
	w := newTable(out)
	fmt.Fprintf(w, "  Length (L):\t%g mm\n", bucklingLength)
	fmt.Fprintf(w, "  Effective length (kL):\t%g mm\n", bucklingK*bucklingLength)
	fmt.Fprintf(w, "  E:\t%g MPa\n", bucklingE)
	fmt.Fprintf(w, "  I:\t%.4g mm⁴\n", bucklingI)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  Pcr = %.4g N (%.2f kN)\n", pcr, pcr/1e3)
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)

	if bucklingP != 0 {
		printHeading(out, "DESIGN CHECK:")
		fmt.Fprintf(out, "  P / Pcr = %.3f\n", bucklingP/pcr)
		fmt.Fprintf(out, "  %s\n\n", verdict(bucklingP <= pcr))
	}
	return nil
}
