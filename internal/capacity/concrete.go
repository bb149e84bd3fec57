package capacity

import (
	"fmt"
	"math"
)

// Concrete design constants, NSCP 2015.
const (
	Beta1Max = 0.85 // f'c <= 28 MPa
	Beta1Min = 0.65

	EpsilonCU = 0.003 // ultimate concrete strain

	PhiFlexure     = 0.90 // tension-controlled
	PhiCompression = 0.65 // compression-controlled, tied

	Es = 200000.0 // MPa
)

// Beta1 is the equivalent rectangular stress block factor (410.2.7.3).
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	return math.Max(Beta1Max-0.05*(fc-28)/7, Beta1Min)
}

// Phi is the strength reduction factor for a tensile strain (409.3.2).
func Phi(epsilonT, fy float64) float64 {
	epsilonTY := fy / Es
	switch {
	case epsilonT >= epsilonTY+0.003:
		return PhiFlexure
	case epsilonT <= epsilonTY:
		return PhiCompression
	}
	return PhiCompression + (PhiFlexure-PhiCompression)*(epsilonT-epsilonTY)/0.003
}

// RhoMin is the minimum flexural reinforcement ratio (409.6.1.2).
func RhoMin(fc, fy float64) float64 {
	return math.Max(math.Sqrt(fc)/(4*fy), 1.4/fy)
}

// RhoMax is the reinforcement ratio at which εt reaches 0.005.
func RhoMax(fc, fy float64) float64 {
	return 0.85 * Beta1(fc) * (fc / fy) * (EpsilonCU / (EpsilonCU + 0.005))
}

// RhoBalanced is the reinforcement ratio at balanced strain.
func RhoBalanced(fc, fy float64) float64 {
	cb := EpsilonCU / (EpsilonCU + fy/Es)
	return 0.85 * Beta1(fc) * (fc / fy) * cb
}

// RCSection is a singly reinforced rectangular concrete section.
type RCSection struct {
	Width  float64 // b (mm)
	Height float64 // h (mm)
	Cover  float64 // to centroid of tension steel (mm)
	Fc     float64 // f'c (MPa)
	Fy     float64 // fy (MPa)
	As     float64 // tension steel (mm²)
}

// EffectiveDepth is d = h - cover.
func (s RCSection) EffectiveDepth() float64 {
	return s.Height - s.Cover
}

// RCResult is the flexural capacity of an RCSection.
type RCResult struct {
	A        float64 // compression block depth (mm)
	C        float64 // neutral axis depth (mm)
	Beta1    float64
	EpsilonT float64
	Phi      float64

	Rho         float64
	RhoMin      float64
	RhoMax      float64
	RhoBalanced float64

	Mn    float64 // N·mm
	PhiMn float64 // N·mm

	TensionControlled bool
	MeetsMinReinf     bool
	MeetsMaxReinf     bool
	Message           string
}

// Analyze returns the design moment capacity φMn of the section.
func (s RCSection) Analyze() (*RCResult, error) {
	d := s.EffectiveDepth()
	if s.Width <= 0 || d <= 0 {
		return nil, fmt.Errorf("%w: width=%.2f, d=%.2f", ErrInvalidSection, s.Width, d)
	}
	if s.Fc <= 0 || s.Fy <= 0 {
		return nil, fmt.Errorf("%w: f'c=%.2f, fy=%.2f", ErrInvalidSection, s.Fc, s.Fy)
	}
	if s.As <= 0 {
		return nil, fmt.Errorf("%w: As=%.2f", ErrInvalidSection, s.As)
	}

	r := &RCResult{
		Beta1:       Beta1(s.Fc),
		RhoMin:      RhoMin(s.Fc, s.Fy),
		RhoMax:      RhoMax(s.Fc, s.Fy),
		RhoBalanced: RhoBalanced(s.Fc, s.Fy),
		Rho:         s.As / (s.Width * d),
	}
	r.MeetsMinReinf = r.Rho >= r.RhoMin
	r.MeetsMaxReinf = r.Rho <= r.RhoMax

	// As·fy = 0.85·f'c·b·a
	r.A = s.As * s.Fy / (0.85 * s.Fc * s.Width)
	r.C = r.A / r.Beta1
	r.EpsilonT = EpsilonCU * (d - r.C) / r.C
	r.Phi = Phi(r.EpsilonT, s.Fy)
	r.TensionControlled = r.EpsilonT >= 0.005

	r.Mn = s.As * s.Fy * (d - r.A/2)
	r.PhiMn = r.Phi * r.Mn

	switch {
	case r.TensionControlled:
		r.Message = "Section is tension-controlled (εt ≥ 0.005)"
	case r.EpsilonT >= s.Fy/Es:
		r.Message = "Section is in transition zone"
	default:
		r.Message = "Section is compression-controlled (εt < εy)"
	}
	if !r.MeetsMinReinf {
		r.Message += " | WARNING: Below minimum reinforcement"
	}
	if !r.MeetsMaxReinf {
		r.Message += " | WARNING: Exceeds maximum reinforcement"
	}
	return r, nil
}

// RCDesign is the tension steel required for a factored moment.
type RCDesign struct {
	Mu          float64 // N·mm
	RhoRequired float64 // before the ρ_min floor
	AsRequired  float64 // mm²
	AsMin       float64
	AsMax       float64

	// PhiMnMax is the capacity at ρ_max, the most a singly reinforced
	// tension-controlled section can give.
	PhiMnMax float64

	// Capacity of the section with AsRequired. Nil when inadequate.
	Result   *RCResult
	Adequate bool
	Message  string
}

// Design returns the tension steel the section needs to carry mu (N·mm).
// s.As is ignored. A moment beyond φMn at ρ_max is reported as inadequate
// rather than as an error.
func (s RCSection) Design(mu float64) (*RCDesign, error) {
	d := s.EffectiveDepth()
	if s.Width <= 0 || d <= 0 {
		return nil, fmt.Errorf("%w: width=%.2f, d=%.2f", ErrInvalidSection, s.Width, d)
	}
	if s.Fc <= 0 || s.Fy <= 0 {
		return nil, fmt.Errorf("%w: f'c=%.2f, fy=%.2f", ErrInvalidSection, s.Fc, s.Fy)
	}
	mu = math.Abs(mu)

	rhoMin, rhoMax := RhoMin(s.Fc, s.Fy), RhoMax(s.Fc, s.Fy)
	out := &RCDesign{
		Mu:    mu,
		AsMin: rhoMin * s.Width * d,
		AsMax: rhoMax * s.Width * d,
	}
	aMax := out.AsMax * s.Fy / (0.85 * s.Fc * s.Width)
	out.PhiMnMax = PhiFlexure * out.AsMax * s.Fy * (d - aMax/2)

	if mu > out.PhiMnMax {
		out.Message = fmt.Sprintf("Mu = %.4g N·mm exceeds φMn,max = %.4g N·mm; enlarge the section or add compression steel", mu, out.PhiMnMax)
		return out, nil
	}

	// Rn = Mu / (φ b d²), ρ = 0.85 f'c/fy (1 - √(1 - 2Rn/0.85f'c))
	rn := mu / (PhiFlexure * s.Width * d * d)
	out.RhoRequired = 0.85 * s.Fc / s.Fy * (1 - math.Sqrt(1-2*rn/(0.85*s.Fc)))
	out.AsRequired = math.Max(out.RhoRequired, rhoMin) * s.Width * d

	s.As = out.AsRequired
	r, err := s.Analyze()
	if err != nil {
		return nil, err
	}
	out.Result = r
	out.Adequate = r.PhiMn >= mu
	if out.Adequate {
		out.Message = "Design OK"
	} else {
		out.Message = fmt.Sprintf("φMn = %.4g N·mm < Mu with the required steel", r.PhiMn)
	}
	return out, nil
}
