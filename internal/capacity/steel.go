// Package capacity computes flexural resistances of beam sections and checks
// them against an envelope of factored moments. Forces are in N and lengths
// in mm throughout, so moments are in N·mm.
package capacity

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/envelope"
)

// DefaultGammaM is the partial safety factor on steel resistance.
const DefaultGammaM = 1.1

// ErrInvalidSection is returned for non-positive section or material input.
var ErrInvalidSection = errors.New("invalid section")

// SteelMomentResistance returns Mr = Sx·Fy/γM for an elastic section
// modulus sx (mm³) and yield strength fy (MPa). A zero gamma uses
// DefaultGammaM.
func SteelMomentResistance(sx, fy, gamma float64) (float64, error) {
	if gamma == 0 {
		gamma = DefaultGammaM
	}
	if sx <= 0 || fy <= 0 || gamma <= 0 {
		return 0, fmt.Errorf("%w: Sx=%g, Fy=%g, γM=%g", ErrInvalidSection, sx, fy, gamma)
	}
	return sx * fy / gamma, nil
}

// Check compares a moment envelope with a resistance.
type Check struct {
	Resistance float64 `json:"resistance"`
	// Demand is the envelope extreme with the largest magnitude.
	Demand      envelope.Extreme `json:"demand"`
	Utilization float64          `json:"utilization"`
	Adequate    bool             `json:"adequate"`
}

// CheckEnvelope checks the governing moment of env against resistance. The
// same resistance is assumed for sagging and hogging.
func CheckEnvelope(env *envelope.Envelope, resistance float64) (Check, error) {
	if resistance <= 0 {
		return Check{}, fmt.Errorf("%w: resistance %g", ErrInvalidSection, resistance)
	}
	if env == nil || len(env.X) == 0 {
		return Check{}, envelope.ErrNoCombinations
	}
	demand := env.AbsPeak()
	u := math.Abs(demand.Value) / resistance
	return Check{
		Resistance:  resistance,
		Demand:      demand,
		Utilization: u,
		Adequate:    u <= 1,
	}, nil
}
