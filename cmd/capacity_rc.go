package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/spf13/cobra"
)

var (
	rcWidth  float64
	rcHeight float64
	rcCover  float64
	rcFc     float64
	rcFy     float64
	rcAs     float64
	rcMu     float64
	rcDesign bool
)

var capacityRCCmd = &cobra.Command{
	Use:   "rc",
	Short: "Moment capacity of a singly reinforced concrete beam",
	Long: `Calculate the design moment capacity (φMn) of a singly reinforced
rectangular beam given the tension reinforcement area (As).

The analysis follows NSCP 2015 provisions:
  - Section 409.3.2: Strength reduction factors
  - Section 409.6.1.2: Minimum reinforcement check
  - Section 410.2.7.3: Equivalent rectangular stress block

Examples:
  # 300x500mm beam with 3-20mm bars (As = 942 mm²)
  gobeam capacity rc --width 300 --height 500 --cover 65 --fc 28 --fy 415 --as 942

  # Check against the governing moment from 'gobeam analyze'
  gobeam capacity rc -b 300 --height 500 -a 942 --mu 1.1e8

  # Steel area required for a moment
  gobeam capacity rc -b 300 --height 500 --mu 1.1e8 --design`,
	Args: cobra.NoArgs,
	RunE: runCapacityRC,
}

func init() {
	capacityCmd.AddCommand(capacityRCCmd)

	capacityRCCmd.Flags().Float64VarP(&rcWidth, "width", "b", 0, "Beam width (mm) [required]")
	capacityRCCmd.Flags().Float64Var(&rcHeight, "height", 0, "Beam total depth (mm) [required]")
	capacityRCCmd.Flags().Float64VarP(&rcCover, "cover", "c", 65, "Effective cover to steel centroid (mm)")
	capacityRCCmd.Flags().Float64Var(&rcFc, "fc", 28, "Concrete compressive strength f'c (MPa)")
	capacityRCCmd.Flags().Float64Var(&rcFy, "fy", 415, "Steel yield strength fy (MPa)")
	capacityRCCmd.Flags().Float64VarP(&rcAs, "as", "a", 0, "Tension reinforcement area As (mm²)")
	capacityRCCmd.Flags().Float64Var(&rcMu, "mu", 0, "Factored moment to check (N·mm)")
	capacityRCCmd.Flags().BoolVar(&rcDesign, "design", false, "Find the steel area required for --mu instead of checking --as")

	capacityRCCmd.MarkFlagRequired("width")
	capacityRCCmd.MarkFlagRequired("height")
}

func runCapacityRC(cmd *cobra.Command, args []string) error {
	s := capacity.RCSection{Width: rcWidth, Height: rcHeight, Cover: rcCover, Fc: rcFc, Fy: rcFy, As: rcAs}
	if rcDesign {
		if rcMu == 0 {
			return fmt.Errorf("--design needs a factored moment (--mu)")
		}
		return printRCDesign(cmd.OutOrStdout(), s, rcMu)
	}
	if rcAs <= 0 {
		return fmt.Errorf("--as is required unless --design is given")
	}
	result, err := s.Analyze()
	if err != nil {
		return err
	}
	d := s.EffectiveDepth()

	out := cmd.OutOrStdout()
	printBanner(out, "SINGLY REINFORCED BEAM CAPACITY - NSCP 2015")

	printHeading(out, "INPUT DATA:")
	w := newTable(out)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", s.Width)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", s.Height)
	fmt.Fprintf(w, "  Effective Depth (d):\t%.0f mm\n", d)
	fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", s.Fc)
	fmt.Fprintf(w, "  fy:\t%.1f MPa\n", s.Fy)
	fmt.Fprintf(w, "  Reinforcement (As):\t%.2f mm²\n", s.As)
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "REINFORCEMENT RATIOS:")
	w = newTable(out)
	fmt.Fprintf(w, "  ρ_min:\t%.6f\n", result.RhoMin)
	fmt.Fprintf(w, "  ρ_max (tension-controlled):\t%.6f\n", result.RhoMax)
	fmt.Fprintf(w, "  ρ_bal:\t%.6f\n", result.RhoBalanced)
	status := " ✓"
	if !result.MeetsMinReinf {
		status = " ⚠ (< ρ_min)"
	} else if !result.MeetsMaxReinf {
		status = " ⚠ (> ρ_max)"
	}
	fmt.Fprintf(w, "  ρ_actual:\t%.6f%s\n", result.Rho, status)
	fmt.Fprintf(w, "  As,min:\t%.2f mm²\n", result.RhoMin*s.Width*d)
	fmt.Fprintf(w, "  As,max:\t%.2f mm²\n", result.RhoMax*s.Width*d)
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "SECTION PROPERTIES:")
	w = newTable(out)
	fmt.Fprintf(w, "  β₁:\t%.4f\n", result.Beta1)
	fmt.Fprintf(w, "  Compression block depth (a):\t%.2f mm\n", result.A)
	fmt.Fprintf(w, "  Neutral axis depth (c):\t%.2f mm\n", result.C)
	fmt.Fprintf(w, "  c/d ratio:\t%.4f\n", result.C/d)
	fmt.Fprintf(w, "  Tensile strain (εt):\t%.6f\n", result.EpsilonT)
	fmt.Fprintf(w, "  Strength reduction factor (φ):\t%.2f\n", result.Phi)
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "MOMENT CAPACITY:")
	fmt.Fprintf(out, "  Nominal Moment (Mn): %.4g N·mm\n\n", result.Mn)
	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  DESIGN CAPACITY φMn = %.4g N·mm (%.2f kN-m)\n", result.PhiMn, result.PhiMn/1e6)
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)

	printHeading(out, "STATUS:")
	control := fmt.Sprintf("Tension-controlled (φ = %.2f)", capacity.PhiFlexure)
	if !result.TensionControlled {
		if result.EpsilonT >= s.Fy/capacity.Es {
			control = fmt.Sprintf("Transition zone (φ = %.2f)", result.Phi)
		} else {
			control = fmt.Sprintf("Compression-controlled (φ = %.2f)", capacity.PhiCompression)
		}
	}
	fmt.Fprintf(out, "  Section: %s\n", control)
	fmt.Fprintf(out, "  %s\n\n", result.Message)

	if rcMu != 0 {
		printMomentCheck(out, rcMu, result.PhiMn)
	}
	return nil
}

func printRCDesign(out io.Writer, s capacity.RCSection, mu float64) error {
	design, err := s.Design(mu)
	if err != nil {
		return err
	}
	printBanner(out, "SINGLY REINFORCED BEAM DESIGN - NSCP 2015")

	printHeading(out, "DESIGN DATA:")
	w := newTable(out)
	fmt.Fprintf(w, "  b × h:\t%.0f × %.0f mm\n", s.Width, s.Height)
	fmt.Fprintf(w, "  Effective Depth (d):\t%.0f mm\n", s.EffectiveDepth())
	fmt.Fprintf(w, "  f'c / fy:\t%.1f / %.1f MPa\n", s.Fc, s.Fy)
	fmt.Fprintf(w, "  Mu:\t%.4g N·mm\n", design.Mu)
	fmt.Fprintf(w, "  φMn,max (singly):\t%.4g N·mm\n", design.PhiMnMax)
	w.Flush()
	fmt.Fprintln(out)

	if design.Result == nil {
		fmt.Fprintf(out, "  ✗ %s\n\n", design.Message)
		return nil
	}

	printHeading(out, "REQUIRED REINFORCEMENT:")
	w = newTable(out)
	fmt.Fprintf(w, "  ρ_required:\t%.6f\n", design.RhoRequired)
	fmt.Fprintf(w, "  As,min:\t%.2f mm²\n", design.AsMin)
	fmt.Fprintf(w, "  As,max:\t%.2f mm²\n", design.AsMax)
	fmt.Fprintf(w, "  εt:\t%.6f\n", design.Result.EpsilonT)
	fmt.Fprintf(w, "  φ:\t%.2f\n", design.Result.Phi)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  As,required = %.2f mm²\n", design.AsRequired)
	fmt.Fprintf(out, "  ║  φMn = %.4g N·mm\n", design.Result.PhiMn)
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", design.Message)
	return nil
}

func printMomentCheck(out io.Writer, mu, resistance float64) {
	ratio := math.Abs(mu) / resistance
	printHeading(out, "DESIGN CHECK:")
	w := newTable(out)
	fmt.Fprintf(w, "  Demand |Mu|:\t%.4g N·mm\n", math.Abs(mu))
	fmt.Fprintf(w, "  Capacity:\t%.4g N·mm\n", resistance)
	fmt.Fprintf(w, "  Utilization:\t%.3f\n", ratio)
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", verdict(ratio <= 1))
}
