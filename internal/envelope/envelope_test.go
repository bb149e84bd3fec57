package envelope

import (
	"errors"
	"reflect"
	"testing"
)

func twoCombos() []Combo {
	return []Combo{
		{Name: "LC1", ResultArray: ResultArray{X: []float64{0, 1, 2}, Y: []float64{1, -2, 3}}},
		{Name: "LC2", ResultArray: ResultArray{X: []float64{0, 1, 2}, Y: []float64{-1, 5, 0}}},
	}
}

func TestComputePointwise(t *testing.T) {
	env, err := Compute(twoCombos())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if want := []float64{1, 5, 3}; !reflect.DeepEqual(env.Max, want) {
		t.Errorf("Max = %v, want %v", env.Max, want)
	}
	if want := []float64{-1, -2, 0}; !reflect.DeepEqual(env.Min, want) {
		t.Errorf("Min = %v, want %v", env.Min, want)
	}
	if want := []string{"LC1", "LC2", "LC1"}; !reflect.DeepEqual(env.MaxCombo, want) {
		t.Errorf("MaxCombo = %v, want %v", env.MaxCombo, want)
	}
	if want := []string{"LC2", "LC1", "LC2"}; !reflect.DeepEqual(env.MinCombo, want) {
		t.Errorf("MinCombo = %v, want %v", env.MinCombo, want)
	}
	if want := []float64{0, 1, 2}; !reflect.DeepEqual(env.X, want) {
		t.Errorf("X = %v, want %v", env.X, want)
	}
}

func TestComputeSingleCombo(t *testing.T) {
	combos := twoCombos()[:1]
	env, err := Compute(combos)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !reflect.DeepEqual(env.Max, combos[0].Y) || !reflect.DeepEqual(env.Min, combos[0].Y) {
		t.Errorf("single combination envelope = %v / %v, want both %v", env.Max, env.Min, combos[0].Y)
	}
}

func TestComputeTiesKeepFirst(t *testing.T) {
	combos := []Combo{
		{Name: "B", ResultArray: ResultArray{X: []float64{0}, Y: []float64{2}}},
		{Name: "A", ResultArray: ResultArray{X: []float64{0}, Y: []float64{2}}},
	}
	env, _ := Compute(combos)
	if env.MaxCombo[0] != "B" || env.MinCombo[0] != "B" {
		t.Errorf("tie governed by %s/%s, want B/B", env.MaxCombo[0], env.MinCombo[0])
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(nil); !errors.Is(err, ErrNoCombinations) {
		t.Errorf("Compute(nil) = %v, want ErrNoCombinations", err)
	}

	short := twoCombos()
	short[1].X = short[1].X[:2]
	short[1].Y = short[1].Y[:2]
	if _, err := Compute(short); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Compute(short) = %v, want ErrDimensionMismatch", err)
	}

	ragged := twoCombos()
	ragged[0].Y = ragged[0].Y[:1]
	if _, err := Compute(ragged); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Compute(ragged) = %v, want ErrDimensionMismatch", err)
	}
}

func TestComputeParallelMatchesSequential(t *testing.T) {
	n := 1001
	var combos []Combo
	for c := 0; c < 5; c++ {
		arr := ResultArray{X: make([]float64, n), Y: make([]float64, n)}
		for i := 0; i < n; i++ {
			arr.X[i] = float64(i)
			arr.Y[i] = float64((i*(c+3))%17) - 8
		}
		combos = append(combos, Combo{Name: string(rune('A' + c)), ResultArray: arr})
	}

	seq, err := Compute(combos)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for _, workers := range []int{0, 1, 3, 8, 2000} {
		par, err := ComputeParallel(combos, workers)
		if err != nil {
			t.Fatalf("ComputeParallel(%d) error: %v", workers, err)
		}
		if !reflect.DeepEqual(seq, par) {
			t.Errorf("ComputeParallel(%d) differs from Compute", workers)
		}
	}
}

func TestFromMapOrdersByName(t *testing.T) {
	m := map[string]ResultArray{
		"LC2": {X: []float64{0}, Y: []float64{1}},
		"LC1": {X: []float64{0}, Y: []float64{2}},
	}
	combos := FromMap(m)
	if combos[0].Name != "LC1" || combos[1].Name != "LC2" {
		t.Errorf("FromMap() order = %s, %s", combos[0].Name, combos[1].Name)
	}
}

func TestPeaks(t *testing.T) {
	env, _ := Compute(twoCombos())
	max, min := env.Peaks()
	if max.Value != 5 || max.X != 1 || max.Combination != "LC2" {
		t.Errorf("max peak = %+v", max)
	}
	if min.Value != -2 || min.X != 1 || min.Combination != "LC1" {
		t.Errorf("min peak = %+v", min)
	}
	if abs := env.AbsPeak(); abs.Value != 5 {
		t.Errorf("AbsPeak() = %+v, want 5", abs)
	}
}
