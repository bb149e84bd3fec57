package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/mesh"
	"github.com/spf13/cobra"
)

var (
	nodesTolerance float64
	nodesStrict    bool
	nodesSheet     string
)

var nodesCmd = &cobra.Command{
	Use:   "nodes FILE",
	Short: "List the analysis nodes of a beam file",
	Long: `Place the finite element nodes of a beam: one at every support and one at
each end of the beam. Coordinates closer than --tolerance share a node.
Nodes are named N0, N1, ... from left to right.

Examples:
  gobeam nodes beam.txt
  gobeam nodes beam.txt --tolerance 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)

	nodesCmd.Flags().Float64Var(&nodesTolerance, "tolerance", mesh.DefaultTolerance, "Node coincidence tolerance")
	nodesCmd.Flags().BoolVar(&nodesStrict, "strict", false, "Reject partially specified property lines")
	nodesCmd.Flags().StringVar(&nodesSheet, "sheet", "", "Worksheet to read from an .xlsx file (default first)")
}

func runNodes(cmd *cobra.Command, args []string) error {
	b, err := beamfile.Parse(args[0], beamfile.Options{Strict: nodesStrict, Sheet: nodesSheet})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	nodes := mesh.Resolve(b.SupportLocations(), b.L, nodesTolerance)

	out := cmd.OutOrStdout()
	printBanner(out, "ANALYSIS NODES: "+b.Name)
	printHeading(out, fmt.Sprintf("NODES (L = %g):", b.L))
	w := newTable(out)
	fmt.Fprintln(w, "  Node\tx\tSupport")
	fmt.Fprintln(w, "  ────\t─\t───────")
	for _, n := range nodes {
		support := "free"
		if sup, ok := b.SupportAt(n.X, nodesTolerance); ok {
			support = fmt.Sprintf("%s  %s", sup.Kind, restraintCodes(sup.Kind.Restraints()))
		}
		fmt.Fprintf(w, "  %s\t%g\t%s\n", n.Name, n.X, support)
	}
	w.Flush()
	fmt.Fprintln(out)
	return nil
}

// restraintCodes renders e.g. "DX DY DZ RX" for the restrained DOFs.
func restraintCodes(r beam.Restraints) string {
	codes := [6]string{"DX", "DY", "DZ", "RX", "RY", "RZ"}
	var on []string
	for i, fixed := range r {
		if fixed {
			on = append(on, codes[i])
		}
	}
	return "[" + strings.Join(on, " ") + "]"
}
