package beam

import "fmt"

// DefaultProperty is the placeholder used for optional properties that a
// beam file does not supply. It is not a physically meaningful value.
const DefaultProperty = 1.0

// PropertyKeys is the positional order of the property line in a beam file.
var PropertyKeys = []string{"L", "E", "Iz", "Iy", "A", "J", "nu", "rho"}

// RequiredProperties is the number of leading keys a property line must supply.
const RequiredProperties = 3

// Properties holds the geometry and material values of a beam.
type Properties struct {
	L   float64 `json:"L"`   // length (mm)
	E   float64 `json:"E"`   // elastic modulus (MPa)
	Iz  float64 `json:"Iz"`  // strong-axis second moment of area (mm⁴)
	Iy  float64 `json:"Iy"`  // weak-axis second moment of area (mm⁴)
	A   float64 `json:"A"`   // cross-sectional area (mm²)
	J   float64 `json:"J"`   // torsional constant (mm⁴)
	Nu  float64 `json:"nu"`  // Poisson's ratio
	Rho float64 `json:"rho"` // density

	// Defaulted lists the keys that were filled with DefaultProperty.
	Defaulted []string `json:"defaulted,omitempty"`
}

// DefaultProperties returns properties with every optional value set to
// DefaultProperty and the required values left at zero.
func DefaultProperties() Properties {
	return Properties{
		Iy:  DefaultProperty,
		A:   DefaultProperty,
		J:   DefaultProperty,
		Nu:  DefaultProperty,
		Rho: DefaultProperty,
	}
}

// Set assigns the value of the named key.
func (p *Properties) Set(key string, v float64) error {
	switch key {
	case "L":
		p.L = v
	case "E":
		p.E = v
	case "Iz":
		p.Iz = v
	case "Iy":
		p.Iy = v
	case "A":
		p.A = v
	case "J":
		p.J = v
	case "nu":
		p.Nu = v
	case "rho":
		p.Rho = v
	default:
		return fmt.Errorf("unknown beam property %q", key)
	}
	return nil
}

// Get returns the value of the named key.
func (p Properties) Get(key string) (float64, bool) {
	switch key {
	case "L":
		return p.L, true
	case "E":
		return p.E, true
	case "Iz":
		return p.Iz, true
	case "Iy":
		return p.Iy, true
	case "A":
		return p.A, true
	case "J":
		return p.J, true
	case "nu":
		return p.Nu, true
	case "rho":
		return p.Rho, true
	}
	return 0, false
}

// G returns the shear modulus derived from E and nu.
func (p Properties) G() float64 {
	return ShearModulus(p.E, p.Nu)
}

// ShearModulus returns G = E / (2(1+nu)).
func ShearModulus(e, nu float64) float64 {
	return e / (2 * (1 + nu))
}

// MarshalText renders the support kind by name.
func (k SupportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts a support kind name or its file code.
func (k *SupportKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Pinned", "P":
		*k = Pinned
	case "Fixed", "F":
		*k = Fixed
	case "Roller", "R":
		*k = Roller
	default:
		return fmt.Errorf("unknown support kind %q", string(text))
	}
	return nil
}
