package fe

import (
	"github.com/alexiusacademia/gobeam/internal/beam"
)

// OverhangReactions returns the closed-form reactions of a beam on a pin at
// x = 0 and a roller at x = b, overhanging by a, under a uniform load w over
// its whole length b + a. r1 is at the roller and r2 at the pin. Upward is
// positive, so a downward (negative) w gives positive reactions.
//
//	          w
//	||||||||||||||||||||||||||
//	--------------------------
//	^                  ^
//	r2                 r1
//	|--------b---------|--a--|
func OverhangReactions(w, b, a float64) (r1, r2 float64) {
	r1 = -(w * (a + b) * (a + b) / (2 * b))
	r2 = -(w / (2 * b) * (b*b - a*a))
	return r1, r2
}

// OverhangBeam describes the beam of OverhangReactions as a beam record with
// the load in case "D". Properties other than L are taken from p.
func OverhangBeam(w, b, a float64, p beam.Properties) *beam.Beam {
	p.L = b + a
	return &beam.Beam{
		Name:       "Overhang",
		Properties: p,
		Supports: []beam.Support{
			{Location: 0, Kind: beam.Pinned},
			{Location: b, Kind: beam.Roller},
		},
		Loads: []beam.Load{
			beam.DistLoad{Direction: beam.Fy, StartMagnitude: w, EndMagnitude: w, StartLocation: 0, EndLocation: b + a, Case: "D"},
		},
	}
}
