package fe

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/envelope"
)

// DefaultPoints is the number of stations sampled along a member.
const DefaultPoints = 200

// ResultArray returns one quantity along a member for one combination.
func ResultArray(e Engine, member string, q Quantity, dir string, n int, combo string) (envelope.ResultArray, error) {
	switch q {
	case Shear:
		return e.ShearArray(member, dir, n, combo)
	case Moment:
		return e.MomentArray(member, dir, n, combo)
	case Deflection:
		return e.DeflectionArray(member, dir, n, combo)
	case Axial:
		return e.AxialArray(member, n, combo)
	case Torque:
		return e.TorqueArray(member, n, combo)
	}
	return envelope.ResultArray{}, fmt.Errorf("%w: unknown result type %q", ErrInvalidResult, q)
}

// ExtractAllCombos returns the result arrays of every registered combination,
// in registration order, for an analyzed engine.
func ExtractAllCombos(e Engine, member string, q Quantity, dir string, n int) ([]envelope.Combo, error) {
	q, dir, err := ParseQuantity(string(q), dir)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		n = DefaultPoints
	}

	names := e.LoadCombos()
	combos := make([]envelope.Combo, 0, len(names))
	for _, name := range names {
		arr, err := ResultArray(e, member, q, dir, n, name)
		if err != nil {
			return nil, fmt.Errorf("extracting %s for combination %q: %w", q, name, err)
		}
		combos = append(combos, envelope.Combo{Name: name, ResultArray: arr})
	}
	return combos, nil
}
