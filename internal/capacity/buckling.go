package capacity

import (
	"fmt"
	"math"
)

// EulerBucklingLoad returns the elastic critical load Pcr = π²EI/(kL)² of a
// column of length l with effective length factor k.
func EulerBucklingLoad(l, e, i, k float64) (float64, error) {
	if !(l > 0) || !(e > 0) || !(i > 0) || !(k > 0) {
		return 0, fmt.Errorf("%w: L=%g, E=%g, I=%g, k=%g", ErrInvalidSection, l, e, i, k)
	}
	kl := k * l
	return math.Pi * math.Pi * e * i / (kl * kl), nil
}
