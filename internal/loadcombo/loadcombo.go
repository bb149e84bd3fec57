// Package loadcombo provides factored load combination tables and the
// factoring of unfactored component loads against them.
package loadcombo

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCombination is returned when a combination name is not in a table.
	ErrUnknownCombination = errors.New("unknown load combination")

	// ErrEmptyTable is returned when an operation needs at least one combination.
	ErrEmptyTable = errors.New("load combination table is empty")
)

// DefaultComponents are the component keys recognised when a table does not
// name its own: dead, crane (service), crane (wind), wind pressure, wind
// suction, live and snow.
var DefaultComponents = []string{"D", "Cs", "Cw", "Wp", "Ws", "L", "S"}

// Combination is one named set of load factors keyed by load case.
type Combination struct {
	Name        string             `toml:"name"`
	Description string             `toml:"description,omitempty"`
	Factors     map[string]float64 `toml:"factors"`
}

// Describe returns the description, or one built from the factors when none is set.
func (c Combination) Describe() string {
	if c.Description != "" {
		return c.Description
	}
	keys := make([]string, 0, len(c.Factors))
	for k := range c.Factors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strconv.FormatFloat(c.Factors[k], 'g', -1, 64)+k)
	}
	return strings.Join(parts, " + ")
}

// Loads holds unfactored component loads keyed by component (D, L, S, ...).
// Missing components count as zero.
type Loads map[string]float64

// FactorLoad returns Σ load × factor over the default components. Keys
// outside DefaultComponents are ignored in both arguments.
func FactorLoad(loads Loads, factors map[string]float64) float64 {
	return factor(loads, factors, DefaultComponents)
}

func factor(loads Loads, factors map[string]float64, components []string) float64 {
	var total float64
	for _, k := range components {
		total += loads[k] * factors[k]
	}
	return total
}

// Table is an ordered list of combinations. Order is declaration order and
// decides ties when searching for extremes.
type Table struct {
	Name         string            `toml:"name"`
	Components   []string          `toml:"components,omitempty"`
	Aliases      map[string]string `toml:"aliases,omitempty"`
	Combinations []Combination     `toml:"combination"`
}

// Validate checks that every combination has a unique, non-empty name.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Combinations))
	for i, c := range t.Combinations {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("table %q: combination %d has no name", t.Name, i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("table %q: duplicate combination %q", t.Name, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// RecognisedComponents returns the component keys used when factoring.
func (t *Table) RecognisedComponents() []string {
	if len(t.Components) == 0 {
		return DefaultComponents
	}
	return t.Components
}

// Canonical maps a load case name through the table's aliases.
func (t *Table) Canonical(loadCase string) string {
	if k, ok := t.Aliases[loadCase]; ok {
		return k
	}
	return loadCase
}

// Get returns the named combination.
func (t *Table) Get(name string) (Combination, error) {
	for _, c := range t.Combinations {
		if c.Name == name {
			return c, nil
		}
	}
	return Combination{}, fmt.Errorf("%w: %q in table %q", ErrUnknownCombination, name, t.Name)
}

// Factor returns the factored load for one combination of the table.
func (t *Table) Factor(loads Loads, c Combination) float64 {
	return factor(loads, c.Factors, t.RecognisedComponents())
}

// Factored is the factored load produced by one combination.
type Factored struct {
	Combination Combination
	Value       float64
}

// FactorAll factors the loads against every combination, in table order.
func (t *Table) FactorAll(loads Loads) []Factored {
	out := make([]Factored, len(t.Combinations))
	for i, c := range t.Combinations {
		out[i] = Factored{Combination: c, Value: t.Factor(loads, c)}
	}
	return out
}

// MaxFactoredLoad returns the largest factored load and the combination that
// produced it. The first combination in table order wins a tie.
func (t *Table) MaxFactoredLoad(loads Loads) (Factored, error) {
	return t.extreme(loads, func(v, best float64) bool { return v > best })
}

// MinFactoredLoad returns the smallest factored load and the combination that
// produced it. The first combination in table order wins a tie.
func (t *Table) MinFactoredLoad(loads Loads) (Factored, error) {
	return t.extreme(loads, func(v, best float64) bool { return v < best })
}

func (t *Table) extreme(loads Loads, better func(v, best float64) bool) (Factored, error) {
	all := t.FactorAll(loads)
	if len(all) == 0 {
		return Factored{}, ErrEmptyTable
	}
	best := all[0]
	for _, f := range all[1:] {
		if better(f.Value, best.Value) {
			best = f
		}
	}
	return best, nil
}

// FactorMap returns the factors of every combination, keyed by combination
// name, with load case keys left as declared.
func (t *Table) FactorMap() map[string]map[string]float64 {
	m := make(map[string]map[string]float64, len(t.Combinations))
	for _, c := range t.Combinations {
		f := make(map[string]float64, len(c.Factors))
		for k, v := range c.Factors {
			f[k] = v
		}
		m[c.Name] = f
	}
	return m
}
