package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam analysis from plain-text beam files",
	Long: `gobeam - Go Beam Analyzer

A CLI tool that reads a beam described in a plain-text (or .xlsx) beam file,
analyzes it with a finite element model under every load combination of a
design code table, and reports the envelope of the results.

This tool helps structural engineers:
  - Parse and validate beam files
  - Place analysis nodes at supports and beam ends
  - Factor load cases with Eurocode or NSCP combination tables
  - Envelope shear, moment, deflection, axial force and torque
  - Check section capacity against the governing moment

Beam files use N and mm; moments are reported in N·mm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gobeam v%-48s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Beam Analyzer                                        ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Beam file parsing (text and .xlsx)")
		fmt.Fprintln(out, "    • Linear elastic finite element analysis")
		fmt.Fprintln(out, "    • Eurocode and NSCP load combinations, or your own TOML table")
		fmt.Fprintln(out, "    • Result envelopes with plots, Excel and PDF reports")
		fmt.Fprintln(out, "    • Steel and reinforced concrete moment capacity")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gobeam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")
}
