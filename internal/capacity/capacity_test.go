package capacity

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/envelope"
)

func TestSteelMomentResistance(t *testing.T) {
	tests := []struct {
		name          string
		sx, fy, gamma float64
		want          float64
		wantErr       bool
	}{
		{"default gamma", 1.1e6, 350, 0, 350e6, false},
		{"explicit gamma", 1e6, 300, 1.0, 300e6, false},
		{"zero modulus", 0, 350, 0, 0, true},
		{"negative gamma", 1e6, 350, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SteelMomentResistance(tt.sx, tt.fy, tt.gamma)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSection) {
					t.Errorf("err = %v, want ErrInvalidSection", err)
				}
				return
			}
			if err != nil || math.Abs(got-tt.want) > 1e-6*tt.want {
				t.Errorf("SteelMomentResistance() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

func TestCheckEnvelope(t *testing.T) {
	env, err := envelope.Compute([]envelope.Combo{
		{Name: "LC1", ResultArray: envelope.ResultArray{X: []float64{0, 1, 2}, Y: []float64{0, 40, 0}}},
		{Name: "LC2", ResultArray: envelope.ResultArray{X: []float64{0, 1, 2}, Y: []float64{-60, 10, 0}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	c, err := CheckEnvelope(env, 100)
	if err != nil {
		t.Fatal(err)
	}
	if c.Demand.Value != -60 || c.Demand.Combination != "LC2" {
		t.Errorf("demand = %+v, want -60 from LC2", c.Demand)
	}
	if c.Utilization != 0.6 || !c.Adequate {
		t.Errorf("utilization = %v, adequate = %v", c.Utilization, c.Adequate)
	}

	c, _ = CheckEnvelope(env, 50)
	if c.Adequate {
		t.Errorf("resistance 50 against demand 60 reported adequate")
	}

	if _, err := CheckEnvelope(env, 0); !errors.Is(err, ErrInvalidSection) {
		t.Errorf("zero resistance: err = %v", err)
	}
}

func TestBeta1(t *testing.T) {
	tests := []struct {
		fc, want float64
	}{
		{21, 0.85},
		{28, 0.85},
		{35, 0.80},
		{70, 0.65},
	}
	for _, tt := range tests {
		if got := Beta1(tt.fc); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Beta1(%v) = %v, want %v", tt.fc, got, tt.want)
		}
	}
}

func TestPhi(t *testing.T) {
	fy := 415.0
	if got := Phi(0.006, fy); got != PhiFlexure {
		t.Errorf("Phi(0.006) = %v, want %v", got, PhiFlexure)
	}
	if got := Phi(0.001, fy); got != PhiCompression {
		t.Errorf("Phi(0.001) = %v, want %v", got, PhiCompression)
	}
	mid := Phi(fy/Es+0.0015, fy)
	if math.Abs(mid-(PhiCompression+PhiFlexure)/2) > 1e-9 {
		t.Errorf("Phi in transition = %v, want midpoint", mid)
	}
}

func TestRCSectionAnalyze(t *testing.T) {
	// 300x500 beam, 3-20mm bars.
	s := RCSection{Width: 300, Height: 500, Cover: 65, Fc: 28, Fy: 415, As: 942}
	r, err := s.Analyze()
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	wantA := 942 * 415 / (0.85 * 28 * 300)
	if math.Abs(r.A-wantA) > 1e-9 {
		t.Errorf("a = %v, want %v", r.A, wantA)
	}
	wantMn := 942 * 415 * (435 - wantA/2)
	if math.Abs(r.Mn-wantMn) > 1e-6 {
		t.Errorf("Mn = %v, want %v", r.Mn, wantMn)
	}
	if !r.TensionControlled || r.Phi != PhiFlexure {
		t.Errorf("expected tension-controlled section, got εt = %v, φ = %v", r.EpsilonT, r.Phi)
	}
	if math.Abs(r.PhiMn-0.9*wantMn) > 1e-6 {
		t.Errorf("φMn = %v, want %v", r.PhiMn, 0.9*wantMn)
	}
	if !r.MeetsMinReinf || !r.MeetsMaxReinf {
		t.Errorf("reinforcement limits: min %v, max %v", r.MeetsMinReinf, r.MeetsMaxReinf)
	}
}

func TestRCSectionInvalid(t *testing.T) {
	tests := []RCSection{
		{Width: 0, Height: 500, Cover: 65, Fc: 28, Fy: 415, As: 942},
		{Width: 300, Height: 60, Cover: 65, Fc: 28, Fy: 415, As: 942},
		{Width: 300, Height: 500, Cover: 65, Fc: 0, Fy: 415, As: 942},
		{Width: 300, Height: 500, Cover: 65, Fc: 28, Fy: 415, As: 0},
	}
	for _, s := range tests {
		if _, err := s.Analyze(); !errors.Is(err, ErrInvalidSection) {
			t.Errorf("Analyze(%+v) = %v, want ErrInvalidSection", s, err)
		}
	}
}

func TestRCSectionDesign(t *testing.T) {
	s := RCSection{Width: 300, Height: 500, Cover: 65, Fc: 28, Fy: 415}

	// The moment a 942 mm² section carries needs 942 mm² back.
	given := s
	given.As = 942
	r, err := given.Analyze()
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	tests := []struct {
		name     string
		mu       float64
		wantAs   float64
		adequate bool
	}{
		{"round trip", r.PhiMn, 942, true},
		{"hogging uses magnitude", -r.PhiMn, 942, true},
		{"minimum steel governs", 1e6, RhoMin(28, 415) * 300 * 435, true},
		{"too large", 1e10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := s.Design(tt.mu)
			if err != nil {
				t.Fatalf("Design() error: %v", err)
			}
			if d.Adequate != tt.adequate {
				t.Fatalf("Adequate = %v, want %v (%s)", d.Adequate, tt.adequate, d.Message)
			}
			if math.Abs(d.AsRequired-tt.wantAs) > 1e-6 {
				t.Errorf("AsRequired = %v, want %v", d.AsRequired, tt.wantAs)
			}
		})
	}
}

func TestEulerBucklingLoad(t *testing.T) {
	tests := []struct {
		name       string
		l, e, i, k float64
		want       float64
	}{
		{"pinned", 3000, 200000, 8e6, 1, math.Pi * math.Pi * 200000 * 8e6 / 9e6},
		{"fixed-free doubles length", 3000, 200000, 8e6, 2, math.Pi * math.Pi * 200000 * 8e6 / 36e6},
		{"unit", 1, 1, 1, 1, math.Pi * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EulerBucklingLoad(tt.l, tt.e, tt.i, tt.k)
			if err != nil {
				t.Fatalf("EulerBucklingLoad() error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("EulerBucklingLoad() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range [][4]float64{{0, 1, 1, 1}, {1, -1, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, 0}, {math.NaN(), 1, 1, 1}} {
		if _, err := EulerBucklingLoad(bad[0], bad[1], bad[2], bad[3]); !errors.Is(err, ErrInvalidSection) {
			t.Errorf("EulerBucklingLoad(%v) = %v, want ErrInvalidSection", bad, err)
		}
	}
}
