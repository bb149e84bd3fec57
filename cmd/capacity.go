package cmd

import (
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Section and member capacity",
	Long: `Compute the design capacity of a section or member, optionally compared
with a factored action.

Available subcommands:
  steel    - Elastic moment resistance Sx·fy/γM0
  rc       - Singly reinforced rectangular concrete section (NSCP 2015)
  buckling - Euler critical load of a column`,
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
