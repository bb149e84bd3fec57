package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobeam",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gobeam v%s\n", version.Version)
		if verbose {
			fmt.Fprintf(out, "commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
		fmt.Fprintln(out, "Beam analysis with load combination envelopes")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
