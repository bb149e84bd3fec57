// Package analysis runs the beam pipeline end to end: beam file, node
// placement, model construction, solve, per-combination result arrays and
// the envelope across combinations.
package analysis

import (
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/fe/linear"
	"github.com/alexiusacademia/gobeam/internal/loadcombo"
	"github.com/alexiusacademia/gobeam/internal/mesh"
)

// Options configures a pipeline run.
type Options struct {
	// Strict rejects partially specified property lines.
	Strict bool
	// Sheet selects the worksheet of an .xlsx beam file.
	Sheet string
	// Tolerance de-duplicates node coordinates. Zero uses mesh.DefaultTolerance.
	Tolerance float64
	// Points is the number of stations per result array. Zero uses
	// fe.DefaultPoints.
	Points int
	// Workers splits the envelope reduction; one or less reduces sequentially.
	Workers int
	// NewEngine creates the FE engine. Nil uses the in-process linear engine.
	NewEngine func() fe.Engine
	Logger    *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) points() int {
	if o.Points < 2 {
		return fe.DefaultPoints
	}
	return o.Points
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return mesh.DefaultTolerance
	}
	return o.Tolerance
}

// Model is a beam mapped onto an engine with its combinations registered.
type Model struct {
	Beam   *beam.Beam
	Nodes  mesh.NodeSet
	Table  *loadcombo.Table
	Engine fe.Engine

	opts     Options
	analyzed bool
}

// LoadModel reads and assembles a beam file and builds it into a new engine.
func LoadModel(path string, table *loadcombo.Table, opts Options) (*Model, error) {
	log := opts.logger()
	b, err := beamfile.Parse(path, beamfile.Options{Strict: opts.Strict, Sheet: opts.Sheet})
	if err != nil {
		return nil, err
	}
	log.Debug("parsed beam", "file", path, "name", b.Name, "length", b.L,
		"supports", len(b.Supports), "loads", len(b.Loads))
	if len(b.Defaulted) > 0 {
		log.Warn("section properties defaulted", "beam", b.Name, "properties", b.Defaulted, "value", beam.DefaultProperty)
	}
	return NewModel(b, table, opts)
}

// NewModel resolves the nodes of b and builds it into a new engine.
func NewModel(b *beam.Beam, table *loadcombo.Table, opts Options) (*Model, error) {
	log := opts.logger()
	nodes := mesh.Resolve(b.SupportLocations(), b.L, opts.tolerance())
	log.Debug("resolved nodes", "beam", b.Name, "count", len(nodes))

	var e fe.Engine
	if opts.NewEngine != nil {
		e = opts.NewEngine()
	} else {
		e = linear.New()
	}
	if err := fe.Build(e, b, nodes, table, fe.BuildOptions{Tolerance: opts.tolerance()}); err != nil {
		return nil, fmt.Errorf("building model for %q: %w", b.Name, err)
	}
	log.Debug("model built", "beam", b.Name, "combinations", len(e.LoadCombos()))

	return &Model{Beam: b, Nodes: nodes, Table: table, Engine: e, opts: opts}, nil
}

// Analyze solves the model. It is a no-op after the first success.
func (m *Model) Analyze() error {
	if m.analyzed {
		return nil
	}
	if err := m.Engine.Analyze(); err != nil {
		return fmt.Errorf("analyzing %q: %w", m.Beam.Name, err)
	}
	m.analyzed = true
	m.opts.logger().Debug("analysis complete", "beam", m.Beam.Name)
	return nil
}

// Combos returns the result arrays of every combination for one quantity.
func (m *Model) Combos(q fe.Quantity, dir string) ([]envelope.Combo, error) {
	if err := m.Analyze(); err != nil {
		return nil, err
	}
	return fe.ExtractAllCombos(m.Engine, m.Beam.Name, q, dir, m.opts.points())
}

// Envelope returns the envelope of one quantity together with the arrays it
// was reduced from.
func (m *Model) Envelope(q fe.Quantity, dir string) (*envelope.Envelope, []envelope.Combo, error) {
	combos, err := m.Combos(q, dir)
	if err != nil {
		return nil, nil, err
	}
	var env *envelope.Envelope
	if m.opts.Workers > 1 {
		env, err = envelope.ComputeParallel(combos, m.opts.Workers)
	} else {
		env, err = envelope.Compute(combos)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s envelope of %q: %w", q, m.Beam.Name, err)
	}
	return env, combos, nil
}

// ComboReactions are the support reactions of one combination.
type ComboReactions struct {
	Combination string        `json:"combination"`
	Reactions   []fe.Reaction `json:"reactions"`
}

// Reactions returns the support reactions of every combination in
// registration order. The engine must implement fe.ReactionReporter.
func (m *Model) Reactions() ([]ComboReactions, error) {
	rr, ok := m.Engine.(fe.ReactionReporter)
	if !ok {
		return nil, fmt.Errorf("%w: engine does not report reactions", fe.ErrInvalidResult)
	}
	if err := m.Analyze(); err != nil {
		return nil, err
	}
	combos := m.Engine.LoadCombos()
	out := make([]ComboReactions, 0, len(combos))
	for _, c := range combos {
		r, err := rr.Reactions(c)
		if err != nil {
			return nil, fmt.Errorf("reactions of %q: %w", c, err)
		}
		out = append(out, ComboReactions{Combination: c, Reactions: r})
	}
	return out, nil
}

// Summary is the governing envelope extremes of one quantity.
type Summary struct {
	Quantity  fe.Quantity      `json:"quantity"`
	Direction string           `json:"direction,omitempty"`
	Unit      string           `json:"unit"`
	Max       envelope.Extreme `json:"max"`
	Min       envelope.Extreme `json:"min"`
}

// Summarize returns the envelope extremes of every quantity in its default
// direction.
func (m *Model) Summarize() ([]Summary, error) {
	out := make([]Summary, 0, len(fe.Quantities))
	for _, q := range fe.Quantities {
		dir := q.DefaultDirection()
		env, _, err := m.Envelope(q, dir)
		if err != nil {
			return nil, err
		}
		maxExt, minExt := env.Peaks()
		out = append(out, Summary{Quantity: q, Direction: dir, Unit: q.Unit(), Max: maxExt, Min: minExt})
	}
	return out, nil
}

// Result is the outcome of Run.
type Result struct {
	Model    *Model
	Quantity fe.Quantity
	Dir      string
	Combos   []envelope.Combo
	Envelope *envelope.Envelope
}

// Run loads a beam file, solves it and envelopes one quantity.
func Run(path string, table *loadcombo.Table, q fe.Quantity, dir string, opts Options) (*Result, error) {
	q, dir, err := fe.ParseQuantity(string(q), dir)
	if err != nil {
		return nil, err
	}
	m, err := LoadModel(path, table, opts)
	if err != nil {
		return nil, err
	}
	env, combos, err := m.Envelope(q, dir)
	if err != nil {
		return nil, err
	}
	return &Result{Model: m, Quantity: q, Dir: dir, Combos: combos, Envelope: env}, nil
}
