package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/loadcombo"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

func printBanner(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, heavyRule)
	pad := (len([]rune(heavyRule)) - len([]rune(title))) / 2
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", max(pad, 0)), title)
	fmt.Fprintln(out, heavyRule)
	fmt.Fprintln(out)
}

func printHeading(out io.Writer, title string) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, lightRule)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// loadTable resolves the --combos file or the --table built-in name.
func loadTable(file, name string) (*loadcombo.Table, error) {
	return loadcombo.Resolve(file, name)
}

func printBeam(out io.Writer, b *beam.Beam) {
	printHeading(out, "PROPERTIES:")
	w := newTable(out)
	defaulted := make(map[string]bool, len(b.Defaulted))
	for _, k := range b.Defaulted {
		defaulted[k] = true
	}
	for _, k := range beam.PropertyKeys {
		v, _ := b.Get(k)
		mark := ""
		if defaulted[k] {
			mark = "  (default)"
		}
		fmt.Fprintf(w, "  %s:\t%g%s\n", k, v, mark)
	}
	fmt.Fprintf(w, "  G:\t%g\n", b.G())
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "SUPPORTS:")
	w = newTable(out)
	if len(b.Supports) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, s := range b.Supports {
		fmt.Fprintf(w, "  %g\t%s (%s)\n", s.Location, s.Kind, s.Kind.Code())
	}
	w.Flush()
	fmt.Fprintln(out)

	printHeading(out, "LOADS:")
	w = newTable(out)
	fmt.Fprintln(w, "  Type\tDir\tMagnitude\tLocation\tCase")
	fmt.Fprintln(w, "  ────\t───\t─────────\t────────\t────")
	for _, l := range b.Loads {
		switch load := l.(type) {
		case beam.PointLoad:
			fmt.Fprintf(w, "  %s\t%s\t%g\t%g\t%s\n", load.Type(), load.Direction, load.Magnitude, load.Location, load.Case)
		case beam.DistLoad:
			fmt.Fprintf(w, "  %s\t%s\t%g .. %g\t%g .. %g\t%s\n", load.Type(), load.Direction,
				load.StartMagnitude, load.EndMagnitude, load.StartLocation, load.EndLocation, load.Case)
		}
	}
	w.Flush()
	fmt.Fprintln(out)
}
