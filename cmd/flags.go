package cmd

import (
	"log/slog"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/loadcombo"
	"github.com/spf13/cobra"
)

// modelFlags are shared by the commands that solve a beam file.
type modelFlags struct {
	combos    string
	table     string
	sheet     string
	strict    bool
	tolerance float64
	points    int
	workers   int
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.combos, "combos", "", "TOML load combination table (overrides --table)")
	cmd.Flags().StringVarP(&f.table, "table", "t", loadcombo.DefaultTableName, "Built-in combination table: eurocode, nscp, nscp-gravity")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read from an .xlsx beam file (default first)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject partially specified property lines")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "Node coincidence tolerance (default 1e-6)")
	cmd.Flags().IntVarP(&f.points, "points", "n", fe.DefaultPoints, "Stations per result array")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 1, "Goroutines used to reduce the envelope")
}

func (f *modelFlags) options() analysis.Options {
	return analysis.Options{
		Strict:    f.strict,
		Sheet:     f.sheet,
		Tolerance: f.tolerance,
		Points:    f.points,
		Workers:   f.workers,
		Logger:    slog.Default(),
	}
}

// load reads, builds and solves the beam file at path.
func (f *modelFlags) load(path string) (*analysis.Model, error) {
	table, err := loadTable(f.combos, f.table)
	if err != nil {
		return nil, err
	}
	m, err := analysis.LoadModel(path, table, f.options())
	if err != nil {
		return nil, err
	}
	if err := m.Analyze(); err != nil {
		return nil, err
	}
	return m, nil
}
