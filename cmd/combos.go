package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/loadcombo"
	"github.com/spf13/cobra"
)

var combosFile string

var combosCmd = &cobra.Command{
	Use:   "combos [TABLE]",
	Short: "List load combination tables and their factors",
	Long: `Without arguments, list the built-in combination tables. With a table
name (or --file), print every combination of that table.

Examples:
  gobeam combos
  gobeam combos nscp
  gobeam combos --file mycode.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringVarP(&combosFile, "file", "f", "", "TOML load combination table")
}

func runCombos(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 && combosFile == "" {
		printBanner(out, "LOAD COMBINATION TABLES")
		w := newTable(out)
		fmt.Fprintln(w, "  Table\tCombinations\tComponents")
		fmt.Fprintln(w, "  ─────\t────────────\t──────────")
		for _, name := range loadcombo.BuiltinNames() {
			t, err := loadcombo.Builtin(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s\t%d\t%s\n", name, len(t.Combinations), strings.Join(t.RecognisedComponents(), " "))
		}
		w.Flush()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Default: %s. Use 'gobeam combos TABLE' for the factors.\n\n", loadcombo.DefaultTableName)
		return nil
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	t, err := loadcombo.Resolve(combosFile, name)
	if err != nil {
		return err
	}

	printBanner(out, "LOAD COMBINATIONS: "+t.Name)
	w := newTable(out)
	fmt.Fprintln(w, "  #\tCombination")
	fmt.Fprintln(w, "  ─\t───────────")
	for _, c := range t.Combinations {
		fmt.Fprintf(w, "  %s\t%s\n", c.Name, c.Describe())
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(t.Aliases) > 0 {
		printHeading(out, "LOAD CASE ALIASES:")
		aliases := make([]string, 0, len(t.Aliases))
		for a := range t.Aliases {
			aliases = append(aliases, a)
		}
		sort.Strings(aliases)
		w = newTable(out)
		for _, a := range aliases {
			fmt.Fprintf(w, "  %s\t→ %s\n", a, t.Aliases[a])
		}
		w.Flush()
		fmt.Fprintln(out)
	}
	return nil
}
