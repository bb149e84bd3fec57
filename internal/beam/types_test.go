package beam

import (
	"errors"
	"math"
	"testing"
)

func TestParseSupportCode(t *testing.T) {
	tests := []struct {
		code    string
		want    SupportKind
		wantErr bool
	}{
		{"P", Pinned, false},
		{"F", Fixed, false},
		{"R", Roller, false},
		{" R ", Roller, false},
		{"X", 0, true},
		{"p", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseSupportCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSupportCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSupportCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestSupportRestraints(t *testing.T) {
	tests := []struct {
		kind SupportKind
		want Restraints
	}{
		{Pinned, Restraints{true, true, true, true, true, false}},
		{Fixed, Restraints{true, true, true, true, true, true}},
		{Roller, Restraints{false, true, false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Restraints(); got != tt.want {
				t.Errorf("Restraints() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"Fy", "FY", "fy", " fY "} {
		got, err := ParseDirection(in)
		if err != nil {
			t.Fatalf("ParseDirection(%q) error: %v", in, err)
		}
		if got != Fy {
			t.Errorf("ParseDirection(%q) = %q, want %q", in, got, Fy)
		}
	}
	for _, in := range []string{"Fw", "F", "Force"} {
		if _, err := ParseDirection(in); err == nil {
			t.Errorf("ParseDirection(%q) succeeded, want error", in)
		}
	}
}

func TestShearModulusPositive(t *testing.T) {
	for _, e := range []float64{1, 24500, 200e3} {
		for _, nu := range []float64{-0.99, 0, 0.3, 0.5, 1} {
			g := ShearModulus(e, nu)
			if g <= 0 {
				t.Errorf("ShearModulus(%g, %g) = %g, want > 0", e, nu, g)
			}
		}
	}
	if g := ShearModulus(200e3, 0.3); math.Abs(g-76923.0769) > 1e-3 {
		t.Errorf("ShearModulus(200e3, 0.3) = %g, want 76923.08", g)
	}
}

func TestBeamValidate(t *testing.T) {
	valid := func() *Beam {
		return &Beam{
			Name:       "Balcony transfer",
			Properties: Properties{L: 4800, E: 24500, Iz: 1.2e9, Iy: 1, A: 1, J: 1, Nu: 1, Rho: 1},
			Supports:   []Support{{1000, Pinned}, {3800, Roller}},
			Loads: []Load{
				PointLoad{Direction: Fy, Magnitude: -10000, Location: 4800, Case: "Live"},
				DistLoad{Direction: Fy, StartMagnitude: 30, EndMagnitude: 30, StartLocation: 0, EndLocation: 4800, Case: "Dead"},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid beam: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(b *Beam)
	}{
		{"zero length", func(b *Beam) { b.L = 0 }},
		{"zero E", func(b *Beam) { b.E = 0 }},
		{"support past end", func(b *Beam) { b.Supports[1].Location = 5000 }},
		{"negative support", func(b *Beam) { b.Supports[0].Location = -1 }},
		{"point load past end", func(b *Beam) {
			b.Loads[0] = PointLoad{Direction: Fy, Magnitude: -1, Location: 4801, Case: "Live"}
		}},
		{"reversed dist load", func(b *Beam) {
			b.Loads[1] = DistLoad{Direction: Fy, StartLocation: 3000, EndLocation: 1000, Case: "Dead"}
		}},
		{"NaN length", func(b *Beam) { b.L = math.NaN() }},
		{"infinite length", func(b *Beam) { b.L = math.Inf(1) }},
		{"negative infinite length", func(b *Beam) { b.L = math.Inf(-1) }},
		{"NaN E", func(b *Beam) { b.E = math.NaN() }},
		{"NaN Iz", func(b *Beam) { b.Iz = math.NaN() }},
		{"infinite Iy", func(b *Beam) { b.Iy = math.Inf(1) }},
		{"NaN support", func(b *Beam) { b.Supports[0].Location = math.NaN() }},
		{"NaN point magnitude", func(b *Beam) {
			b.Loads[0] = PointLoad{Direction: Fy, Magnitude: math.NaN(), Location: 100, Case: "Live"}
		}},
		{"infinite dist magnitude", func(b *Beam) {
			b.Loads[1] = DistLoad{Direction: Fy, StartMagnitude: math.Inf(-1), EndLocation: 1000, Case: "Dead"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			err := b.Validate()
			if !errors.Is(err, ErrInvalidBeam) {
				t.Errorf("Validate() = %v, want ErrInvalidBeam", err)
			}
		})
	}
}

func TestBeamCases(t *testing.T) {
	b := &Beam{Loads: []Load{
		PointLoad{Case: "Live"},
		DistLoad{Case: "Dead"},
		PointLoad{Case: "Live"},
		PointLoad{Case: "Snow"},
	}}
	got := b.Cases()
	want := []string{"Live", "Dead", "Snow"}
	if len(got) != len(want) {
		t.Fatalf("Cases() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
