// Package envelope reduces per-combination response arrays to the pointwise
// maximum and minimum across all combinations.
package envelope

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
)

var (
	// ErrDimensionMismatch is returned when combination arrays differ in length.
	ErrDimensionMismatch = errors.New("result arrays differ in length")

	// ErrNoCombinations is returned when there is nothing to reduce.
	ErrNoCombinations = errors.New("no load combinations to envelope")
)

// ResultArray is a response quantity sampled along the member for one
// combination. X and Y have equal length.
type ResultArray struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Combo is the result array of one named load combination.
type Combo struct {
	Name string
	ResultArray
}

// FromMap orders a name → array mapping by combination name.
func FromMap(m map[string]ResultArray) []Combo {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	combos := make([]Combo, len(names))
	for i, name := range names {
		combos[i] = Combo{Name: name, ResultArray: m[name]}
	}
	return combos
}

// Envelope holds, for each station, the extreme values across combinations
// and the combination that produced them.
type Envelope struct {
	X        []float64 `json:"x"`
	Max      []float64 `json:"max"`
	Min      []float64 `json:"min"`
	MaxCombo []string  `json:"max_combo"`
	MinCombo []string  `json:"min_combo"`
}

// Compute reduces the combinations sequentially. The x locations of the first
// combination are used for the envelope; all arrays must share its length.
// When two combinations tie at a station the earlier one governs.
func Compute(combos []Combo) (*Envelope, error) {
	env, err := prepare(combos)
	if err != nil {
		return nil, err
	}
	reduce(env, combos, 0, len(env.X))
	return env, nil
}

// ComputeParallel is Compute with the stations split across workers.
// A non-positive workers count uses GOMAXPROCS.
func ComputeParallel(combos []Combo, workers int) (*Envelope, error) {
	env, err := prepare(combos)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(env.X)
	chunk := (n + workers - 1) / workers
	if chunk == 0 {
		return env, nil
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			reduce(env, combos, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return env, nil
}

func prepare(combos []Combo) (*Envelope, error) {
	if len(combos) == 0 {
		return nil, ErrNoCombinations
	}
	first := combos[0]
	n := len(first.X)
	for _, c := range combos {
		if len(c.X) != len(c.Y) {
			return nil, fmt.Errorf("%w: combination %q has %d x values and %d y values",
				ErrDimensionMismatch, c.Name, len(c.X), len(c.Y))
		}
		if len(c.Y) != n {
			return nil, fmt.Errorf("%w: combination %q has %d values, %q has %d",
				ErrDimensionMismatch, c.Name, len(c.Y), first.Name, n)
		}
	}

	x := make([]float64, n)
	copy(x, first.X)
	return &Envelope{
		X:        x,
		Max:      make([]float64, n),
		Min:      make([]float64, n),
		MaxCombo: make([]string, n),
		MinCombo: make([]string, n),
	}, nil
}

// reduce fills stations [lo, hi) of env.
func reduce(env *Envelope, combos []Combo, lo, hi int) {
	for i := lo; i < hi; i++ {
		env.Max[i], env.Min[i] = combos[0].Y[i], combos[0].Y[i]
		env.MaxCombo[i], env.MinCombo[i] = combos[0].Name, combos[0].Name
		for _, c := range combos[1:] {
			y := c.Y[i]
			if y > env.Max[i] {
				env.Max[i], env.MaxCombo[i] = y, c.Name
			}
			if y < env.Min[i] {
				env.Min[i], env.MinCombo[i] = y, c.Name
			}
		}
	}
}

// Extreme is a single governing value on the envelope.
type Extreme struct {
	Value       float64 `json:"value"`
	X           float64 `json:"x"`
	Combination string  `json:"combination"`
}

// Peaks returns the largest value of the max curve and the smallest value of
// the min curve, with their location and governing combination.
func (e *Envelope) Peaks() (max, min Extreme) {
	for i := range e.X {
		if i == 0 || e.Max[i] > max.Value {
			max = Extreme{Value: e.Max[i], X: e.X[i], Combination: e.MaxCombo[i]}
		}
		if i == 0 || e.Min[i] < min.Value {
			min = Extreme{Value: e.Min[i], X: e.X[i], Combination: e.MinCombo[i]}
		}
	}
	return max, min
}

// AbsPeak returns whichever of the two peaks has the larger magnitude.
func (e *Envelope) AbsPeak() Extreme {
	max, min := e.Peaks()
	if -min.Value > max.Value {
		return min
	}
	return max
}
