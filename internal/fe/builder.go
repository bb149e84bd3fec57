package fe

import (
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/loadcombo"
	"github.com/alexiusacademia/gobeam/internal/mesh"
)

// DefaultMaterialName is the name under which the beam material is registered.
const DefaultMaterialName = "BeamMaterial"

// ServiceCombo is registered when no combination table applies.
const ServiceCombo = "Service"

// BuildOptions tunes model construction.
type BuildOptions struct {
	// Tolerance matches node coordinates to support locations.
	Tolerance float64
	// Material overrides DefaultMaterialName.
	Material string
}

// Build populates the engine with the beam's nodes, supports, material,
// member, loads and load combinations, in that order. Load cases are passed
// through the table's aliases. With a nil or empty table a single Service
// combination with unit factors on every load case is registered.
//
// Engine errors are returned unchanged; stability is left for Analyze.
func Build(e Engine, b *beam.Beam, nodes mesh.NodeSet, table *loadcombo.Table, opts BuildOptions) error {
	if opts.Tolerance == 0 {
		opts.Tolerance = mesh.DefaultTolerance
	}
	material := opts.Material
	if material == "" {
		material = DefaultMaterialName
	}

	for _, n := range nodes {
		if err := e.AddNode(n.Name, n.X, 0, 0); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		s, ok := b.SupportAt(n.X, opts.Tolerance)
		if !ok {
			continue
		}
		r := s.Kind.Restraints()
		if err := e.DefineSupport(n.Name, r[0], r[1], r[2], r[3], r[4], r[5]); err != nil {
			return err
		}
	}

	if err := e.AddMaterial(material, b.E, b.G(), b.Nu, b.Rho); err != nil {
		return err
	}
	if len(nodes) > 0 {
		if err := e.AddMember(b.Name, nodes.First().Name, nodes.Last().Name, material, b.Iy, b.Iz, b.J, b.A); err != nil {
			return err
		}
	}

	canonical := func(c string) string {
		if table == nil {
			return c
		}
		return table.Canonical(c)
	}
	for _, l := range b.Loads {
		var err error
		switch load := l.(type) {
		case beam.PointLoad:
			err = e.AddMemberPointLoad(b.Name, load.Direction, load.Magnitude, load.Location, canonical(load.Case))
		case beam.DistLoad:
			err = e.AddMemberDistLoad(b.Name, load.Direction, load.StartMagnitude, load.EndMagnitude,
				load.StartLocation, load.EndLocation, canonical(load.Case))
		}
		if err != nil {
			return err
		}
	}

	if table == nil || len(table.Combinations) == 0 {
		factors := make(map[string]float64)
		for _, c := range b.Cases() {
			factors[canonical(c)] = 1.0
		}
		return e.AddLoadCombo(ServiceCombo, factors)
	}
	for _, c := range table.Combinations {
		if err := e.AddLoadCombo(c.Name, c.Factors); err != nil {
			return err
		}
	}
	return nil
}
