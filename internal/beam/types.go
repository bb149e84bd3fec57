// Package beam holds the structured description of a single straight beam:
// section and material properties, supports and tagged loads.
package beam

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidBeam is returned by Validate when a beam violates its geometric
// invariants.
var ErrInvalidBeam = errors.New("invalid beam")

// SupportKind is the restraint condition applied at a support location.
type SupportKind int

const (
	Pinned SupportKind = iota + 1
	Fixed
	Roller
)

// ParseSupportCode maps the single-letter file code (P, F, R) to a SupportKind.
func ParseSupportCode(code string) (SupportKind, error) {
	switch strings.TrimSpace(code) {
	case "P":
		return Pinned, nil
	case "F":
		return Fixed, nil
	case "R":
		return Roller, nil
	}
	return 0, fmt.Errorf("unknown support code %q (want P, F or R)", code)
}

func (k SupportKind) String() string {
	switch k {
	case Pinned:
		return "Pinned"
	case Fixed:
		return "Fixed"
	case Roller:
		return "Roller"
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// Code returns the single-letter file code of the support kind.
func (k SupportKind) Code() string {
	switch k {
	case Pinned:
		return "P"
	case Fixed:
		return "F"
	case Roller:
		return "R"
	}
	return "?"
}

// Restraints lists which degrees of freedom a support fixes, in the order
// DX, DY, DZ, RX, RY, RZ.
type Restraints [6]bool

// Restraints returns the fixed degrees of freedom for the support kind.
// A pin leaves rotation about the beam's strong axis (RZ) free; a roller
// only resists vertical translation.
func (k SupportKind) Restraints() Restraints {
	switch k {
	case Pinned:
		return Restraints{true, true, true, true, true, false}
	case Fixed:
		return Restraints{true, true, true, true, true, true}
	case Roller:
		return Restraints{false, true, false, false, false, false}
	}
	return Restraints{}
}

// Support is one support condition along the beam axis.
type Support struct {
	Location float64     `json:"location"` // mm from the left end
	Kind     SupportKind `json:"kind"`
}

// Direction is one of the six degrees of freedom a load can act along.
type Direction string

const (
	Fx Direction = "Fx"
	Fy Direction = "Fy"
	Fz Direction = "Fz"
	Mx Direction = "Mx"
	My Direction = "My"
	Mz Direction = "Mz"
)

// ParseDirection normalises a direction token ("fy", "FY", "Fy") to a Direction.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return "", fmt.Errorf("unknown load direction %q", s)
	}
	d := Direction(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
	switch d {
	case Fx, Fy, Fz, Mx, My, Mz:
		return d, nil
	}
	return "", fmt.Errorf("unknown load direction %q", s)
}

// IsForce reports whether the direction is a translational force.
func (d Direction) IsForce() bool {
	return d == Fx || d == Fy || d == Fz
}

// LoadType discriminates the two load variants.
type LoadType string

const (
	PointType LoadType = "Point"
	DistType  LoadType = "Dist"
)

// Load is a load applied to the beam, tagged with its load case.
// The concrete types are PointLoad and DistLoad.
type Load interface {
	Type() LoadType
	LoadCase() string
	LoadDirection() Direction
	// Span returns the start and end location of the load (equal for point loads).
	Span() (float64, float64)
}

// PointLoad is a concentrated force or moment.
type PointLoad struct {
	Direction Direction `json:"direction"`
	Magnitude float64   `json:"magnitude"` // N or N·mm
	Location  float64   `json:"location"`  // mm
	Case      string    `json:"case"`
}

func (p PointLoad) Type() LoadType           { return PointType }
func (p PointLoad) LoadCase() string         { return p.Case }
func (p PointLoad) LoadDirection() Direction { return p.Direction }
func (p PointLoad) Span() (float64, float64) { return p.Location, p.Location }

// DistLoad is a linearly varying distributed force between two locations.
type DistLoad struct {
	Direction      Direction `json:"direction"`
	StartMagnitude float64   `json:"start_magnitude"` // N/mm
	EndMagnitude   float64   `json:"end_magnitude"`   // N/mm
	StartLocation  float64   `json:"start_location"`  // mm
	EndLocation    float64   `json:"end_location"`    // mm
	Case           string    `json:"case"`
}

func (d DistLoad) Type() LoadType           { return DistType }
func (d DistLoad) LoadCase() string         { return d.Case }
func (d DistLoad) LoadDirection() Direction { return d.Direction }
func (d DistLoad) Span() (float64, float64) { return d.StartLocation, d.EndLocation }

// Beam is the structured record assembled from one beam file.
type Beam struct {
	Name string `json:"name"`
	Properties
	Supports []Support `json:"supports"`
	Loads    []Load    `json:"loads"`
}

// SupportLocations returns the support locations in file order.
func (b *Beam) SupportLocations() []float64 {
	locs := make([]float64, len(b.Supports))
	for i, s := range b.Supports {
		locs[i] = s.Location
	}
	return locs
}

// SupportAt returns the support whose location is within tol of x.
func (b *Beam) SupportAt(x, tol float64) (Support, bool) {
	for _, s := range b.Supports {
		if s.Location-x <= tol && x-s.Location <= tol {
			return s, true
		}
	}
	return Support{}, false
}

// Cases returns the distinct load case names in order of first appearance.
func (b *Beam) Cases() []string {
	var cases []string
	seen := make(map[string]bool)
	for _, l := range b.Loads {
		if !seen[l.LoadCase()] {
			seen[l.LoadCase()] = true
			cases = append(cases, l.LoadCase())
		}
	}
	return cases
}

// Validate checks the geometric invariants of the beam: positive length and
// stiffness, every support and load inside [0, L], and ordered load spans.
// Support count and stability are not checked here.
func (b *Beam) Validate() error {
	if !(b.L > 0) || math.IsInf(b.L, 0) {
		return fmt.Errorf("%w: length must be positive and finite, got %g", ErrInvalidBeam, b.L)
	}
	for _, k := range PropertyKeys {
		if v, _ := b.Get(k); math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: property %s is not finite (%g)", ErrInvalidBeam, k, v)
		}
	}
	if !(b.E > 0) || !(b.Iz > 0) {
		return fmt.Errorf("%w: E and Iz must be positive (E=%g, Iz=%g)", ErrInvalidBeam, b.E, b.Iz)
	}
	for _, s := range b.Supports {
		if !(s.Location >= 0 && s.Location <= b.L) {
			return fmt.Errorf("%w: support at %g is outside [0, %g]", ErrInvalidBeam, s.Location, b.L)
		}
	}
	for i, l := range b.Loads {
		if !loadFinite(l) {
			return fmt.Errorf("%w: load %d has a non-finite value", ErrInvalidBeam, i+1)
		}
		start, end := l.Span()
		if start > end {
			return fmt.Errorf("%w: load %d starts at %g after it ends at %g", ErrInvalidBeam, i+1, start, end)
		}
		if start < 0 || end > b.L {
			return fmt.Errorf("%w: load %d spans [%g, %g] outside [0, %g]", ErrInvalidBeam, i+1, start, end, b.L)
		}
	}
	return nil
}

func loadFinite(l Load) bool {
	var vals []float64
	switch v := l.(type) {
	case PointLoad:
		vals = []float64{v.Magnitude, v.Location}
	case DistLoad:
		vals = []float64{v.StartMagnitude, v.EndMagnitude, v.StartLocation, v.EndLocation}
	}
	for _, x := range vals {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
