// Package report exports analysis results as an Excel workbook or a PDF
// summary.
package report

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/capacity"
	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/mesh"
)

// Section is one enveloped quantity.
type Section struct {
	Quantity  fe.Quantity
	Direction string
	Envelope  *envelope.Envelope
	Combos    []envelope.Combo
}

// Title is e.g. "Moment Mz".
func (s Section) Title() string {
	t := strings.ToUpper(string(s.Quantity[:1])) + string(s.Quantity[1:])
	if s.Direction != "" {
		t += " " + s.Direction
	}
	return t
}

// Report gathers what is written out.
type Report struct {
	Beam      *beam.Beam
	Nodes     mesh.NodeSet
	TableName string
	Summary   []analysis.Summary
	Sections  []Section
	// Capacity is optional.
	Capacity *capacity.Check
	// Image is an optional diagram file embedded in the PDF.
	Image string
}

// FromModel envelopes the requested quantities of an analyzed model. An
// empty list reports every quantity in its default direction.
func FromModel(m *analysis.Model, quantities ...fe.Quantity) (*Report, error) {
	summary, err := m.Summarize()
	if err != nil {
		return nil, err
	}
	if len(quantities) == 0 {
		quantities = fe.Quantities
	}
	r := &Report{Beam: m.Beam, Nodes: m.Nodes, Summary: summary}
	if m.Table != nil {
		r.TableName = m.Table.Name
	}
	for _, q := range quantities {
		dir := q.DefaultDirection()
		env, combos, err := m.Envelope(q, dir)
		if err != nil {
			return nil, err
		}
		r.Sections = append(r.Sections, Section{Quantity: q, Direction: dir, Envelope: env, Combos: combos})
	}
	return r, nil
}

func propertyRows(p beam.Properties) [][2]string {
	rows := make([][2]string, 0, len(beam.PropertyKeys))
	for _, k := range beam.PropertyKeys {
		v, _ := p.Get(k)
		rows = append(rows, [2]string{k, fmt.Sprintf("%g", v)})
	}
	return rows
}

func describeLoad(l beam.Load) string {
	switch load := l.(type) {
	case beam.PointLoad:
		return fmt.Sprintf("Point %s %g at %g (%s)", load.Direction, load.Magnitude, load.Location, load.Case)
	case beam.DistLoad:
		return fmt.Sprintf("Dist %s %g..%g from %g to %g (%s)", load.Direction,
			load.StartMagnitude, load.EndMagnitude, load.StartLocation, load.EndLocation, load.Case)
	}
	return fmt.Sprintf("%v", l)
}
