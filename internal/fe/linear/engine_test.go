package linear

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/fe"
	"github.com/alexiusacademia/gobeam/internal/mesh"
)

const (
	span = 10.0
	modE = 1000.0
	momI = 100.0
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// model returns an engine with a member M from N0 at 0 to N1 at span, the
// given restraints on N0 and N1, and a unit combination "C" on case "D".
func model(t *testing.T, start, end beam.Restraints) *Engine {
	t.Helper()
	e := New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(e.AddNode("N0", 0, 0, 0))
	must(e.AddNode("N1", span, 0, 0))
	if start != (beam.Restraints{}) {
		must(e.DefineSupport("N0", start[0], start[1], start[2], start[3], start[4], start[5]))
	}
	if end != (beam.Restraints{}) {
		must(e.DefineSupport("N1", end[0], end[1], end[2], end[3], end[4], end[5]))
	}
	must(e.AddMaterial("Mat", modE, modE/2.6, 0.3, 0))
	must(e.AddMember("M", "N0", "N1", "Mat", momI, momI, 50, 10))
	must(e.AddLoadCombo("C", map[string]float64{"D": 1}))
	return e
}

func at(t *testing.T, arr envelope.ResultArray, x float64) float64 {
	t.Helper()
	for i, xi := range arr.X {
		if near(xi, x) {
			return arr.Y[i]
		}
	}
	t.Fatalf("no station at x = %v", x)
	return 0
}

func TestSimplySupportedUniformLoad(t *testing.T) {
	e := model(t, beam.Pinned.Restraints(), beam.Roller.Restraints())
	w := -2.0
	if err := e.AddMemberDistLoad("M", beam.Fy, w, w, 0, span, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.Analyze(); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	moment, err := e.MomentArray("M", "Mz", 201, "C")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := at(t, moment, span/2), -w*span*span/8; !near(got, want) {
		t.Errorf("midspan moment = %v, want %v", got, want)
	}
	if got := at(t, moment, 0); !near(got, 0) {
		t.Errorf("moment at pin = %v, want 0", got)
	}
	if got := at(t, moment, span); !near(got, 0) {
		t.Errorf("moment at roller = %v, want 0", got)
	}

	shear, _ := e.ShearArray("M", "Fy", 201, "C")
	if got, want := at(t, shear, 0), -w*span/2; !near(got, want) {
		t.Errorf("shear at pin = %v, want %v", got, want)
	}
	if got, want := at(t, shear, span), w*span/2; !near(got, want) {
		t.Errorf("shear left of roller = %v, want %v", got, want)
	}

	defl, _ := e.DeflectionArray("M", "dy", 201, "C")
	if got, want := at(t, defl, span/2), 5*w*math.Pow(span, 4)/(384*modE*momI); !near(got, want) {
		t.Errorf("midspan deflection = %v, want %v", got, want)
	}

	reactions, err := e.Reactions("C")
	if err != nil {
		t.Fatal(err)
	}
	if len(reactions) != 2 {
		t.Fatalf("got %d reactions, want 2", len(reactions))
	}
	for _, r := range reactions {
		if !near(r.Forces[1], -w*span/2) {
			t.Errorf("reaction at %s = %v, want %v", r.Node, r.Forces[1], -w*span/2)
		}
	}
}

func TestCantileverTipLoad(t *testing.T) {
	e := model(t, beam.Fixed.Restraints(), beam.Restraints{})
	p := -5.0
	if err := e.AddMemberPointLoad("M", beam.Fy, p, span, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddMemberPointLoad("M", beam.Fx, 3, span, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddMemberPointLoad("M", beam.Mx, 7, span/2, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.Analyze(); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	moment, _ := e.MomentArray("M", "Mz", 11, "C")
	if got, want := at(t, moment, 0), p*span; !near(got, want) {
		t.Errorf("fixed-end moment = %v, want %v", got, want)
	}
	if got, want := at(t, moment, 4), p*(span-4); !near(got, want) {
		t.Errorf("moment at 4 = %v, want %v", got, want)
	}

	defl, _ := e.DeflectionArray("M", "dy", 11, "C")
	if got, want := at(t, defl, span), p*math.Pow(span, 3)/(3*modE*momI); !near(got, want) {
		t.Errorf("tip deflection = %v, want %v", got, want)
	}

	axial, _ := e.AxialArray("M", 11, "C")
	if got := at(t, axial, 3); !near(got, 3) {
		t.Errorf("axial force = %v, want 3 (tension)", got)
	}
	stretch, _ := e.DeflectionArray("M", "dx", 11, "C")
	if got, want := at(t, stretch, span), 3*span/(modE*10); !near(got, want) {
		t.Errorf("axial extension = %v, want %v", got, want)
	}

	torque, _ := e.TorqueArray("M", 11, "C")
	if got := at(t, torque, 2); !near(got, 7) {
		t.Errorf("torque before the applied moment = %v, want 7", got)
	}
	if got := at(t, torque, 8); !near(got, 0) {
		t.Errorf("torque after the applied moment = %v, want 0", got)
	}
}

func TestOutOfPlaneLoad(t *testing.T) {
	e := model(t, beam.Fixed.Restraints(), beam.Restraints{})
	if err := e.AddMemberPointLoad("M", beam.Fz, -5, span, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.Analyze(); err != nil {
		t.Fatal(err)
	}
	defl, _ := e.DeflectionArray("M", "dz", 3, "C")
	if got, want := at(t, defl, span), -5*math.Pow(span, 3)/(3*modE*momI); !near(got, want) {
		t.Errorf("tip dz = %v, want %v", got, want)
	}
	shear, _ := e.ShearArray("M", "Fz", 3, "C")
	if got := at(t, shear, span/2); !near(got, 5) {
		t.Errorf("shear Fz = %v, want 5", got)
	}
	moment, _ := e.MomentArray("M", "My", 3, "C")
	if got := at(t, moment, 0); !near(got, 5*span) {
		t.Errorf("My at support = %v, want %v", got, 5*span)
	}
}

func TestCombinationsSuperpose(t *testing.T) {
	e := model(t, beam.Pinned.Restraints(), beam.Roller.Restraints())
	if err := e.AddMemberDistLoad("M", beam.Fy, -1, -3, 2, 8, "D"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddMemberPointLoad("M", beam.Fy, -4, 5, "L"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddLoadCombo("1.35D + 1.5L", map[string]float64{"D": 1.35, "L": 1.5}); err != nil {
		t.Fatal(err)
	}
	if err := e.AddLoadCombo("L", map[string]float64{"L": 1}); err != nil {
		t.Fatal(err)
	}
	if err := e.Analyze(); err != nil {
		t.Fatal(err)
	}

	d, _ := e.MomentArray("M", "Mz", 41, "C")
	l, _ := e.MomentArray("M", "Mz", 41, "L")
	both, _ := e.MomentArray("M", "Mz", 41, "1.35D + 1.5L")
	for i := range both.Y {
		if want := 1.35*d.Y[i] + 1.5*l.Y[i]; !near(both.Y[i], want) {
			t.Fatalf("moment at %v = %v, want %v", both.X[i], both.Y[i], want)
		}
	}
	if got := at(t, l, 5); !near(got, 10) {
		t.Errorf("point load midspan moment = %v, want 10", got)
	}
}

func TestUnstableSupports(t *testing.T) {
	e := model(t, beam.Roller.Restraints(), beam.Roller.Restraints())
	if err := e.AddMemberPointLoad("M", beam.Fy, -1, span/2, "D"); err != nil {
		t.Fatal(err)
	}
	err := e.Analyze()
	if !errors.Is(err, ErrUnstable) || !errors.Is(err, fe.ErrModelConstruction) {
		t.Errorf("Analyze() = %v, want ErrUnstable wrapped in ErrModelConstruction", err)
	}
}

func TestConstructionErrors(t *testing.T) {
	e := model(t, beam.Fixed.Restraints(), beam.Restraints{})
	tests := []struct {
		name string
		err  error
	}{
		{"duplicate node", e.AddNode("N0", 1, 0, 0)},
		{"unknown support node", e.DefineSupport("N9", true, true, true, true, true, true)},
		{"duplicate material", e.AddMaterial("Mat", 1, 1, 0, 0)},
		{"second member", e.AddMember("M2", "N0", "N1", "Mat", 1, 1, 1, 1)},
		{"load outside member", e.AddMemberPointLoad("M", beam.Fy, 1, span+1, "D")},
		{"unknown member", e.AddMemberPointLoad("X", beam.Fy, 1, 1, "D")},
		{"moment dist load", e.AddMemberDistLoad("M", beam.Mz, 1, 1, 0, 1, "D")},
		{"reversed dist load", e.AddMemberDistLoad("M", beam.Fy, 1, 1, 5, 1, "D")},
		{"duplicate combo", e.AddLoadCombo("C", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, fe.ErrModelConstruction) {
				t.Errorf("err = %v, want ErrModelConstruction", tt.err)
			}
		})
	}
}

func TestResultErrors(t *testing.T) {
	e := model(t, beam.Fixed.Restraints(), beam.Restraints{})
	if _, err := e.MomentArray("M", "Mz", 10, "C"); !errors.Is(err, fe.ErrNotAnalyzed) {
		t.Errorf("before Analyze: err = %v, want ErrNotAnalyzed", err)
	}
	if err := e.Analyze(); err != nil {
		t.Fatal(err)
	}
	if _, err := e.MomentArray("M", "Mz", 10, "nope"); !errors.Is(err, fe.ErrInvalidResult) {
		t.Errorf("unknown combo: err = %v, want ErrInvalidResult", err)
	}
	if _, err := e.MomentArray("M", "Fy", 10, "C"); !errors.Is(err, fe.ErrInvalidResult) {
		t.Errorf("bad direction: err = %v, want ErrInvalidResult", err)
	}
	if _, err := e.ShearArray("X", "Fy", 10, "C"); !errors.Is(err, fe.ErrInvalidResult) {
		t.Errorf("unknown member: err = %v, want ErrInvalidResult", err)
	}

	// A combination without loads reports zeros.
	arr, err := e.DeflectionArray("M", "dy", 5, "C")
	if err != nil {
		t.Fatal(err)
	}
	for _, y := range arr.Y {
		if y != 0 {
			t.Fatalf("unloaded deflection = %v, want 0", arr.Y)
		}
	}
}

func TestOverhangMatchesClosedForm(t *testing.T) {
	tests := []struct {
		name    string
		w, b, a float64
	}{
		{"short overhang", -2, 8, 2},
		{"long overhang", -1.5, 6, 4},
		{"no overhang", -3, 10, 0},
		{"uplift", 0.5, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := beam.DefaultProperties()
			props.E, props.Iz = 200, 1000
			b := fe.OverhangBeam(tt.w, tt.b, tt.a, props)
			e := New()
			if err := fe.Build(e, b, mesh.Resolve(b.SupportLocations(), b.L, mesh.DefaultTolerance), nil, fe.BuildOptions{}); err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if err := e.Analyze(); err != nil {
				t.Fatalf("Analyze() error: %v", err)
			}
			reactions, err := e.Reactions(fe.ServiceCombo)
			if err != nil {
				t.Fatal(err)
			}
			if len(reactions) != 2 {
				t.Fatalf("got %d reactions, want 2", len(reactions))
			}
			r1, r2 := fe.OverhangReactions(tt.w, tt.b, tt.a)
			if got := reactions[0].Fy(); !near(got, r2) {
				t.Errorf("pin reaction = %v, want %v", got, r2)
			}
			if got := reactions[1].Fy(); !near(got, r1) {
				t.Errorf("roller reaction = %v, want %v", got, r1)
			}
			if total := reactions[0].Fy() + reactions[1].Fy(); !near(total, -tt.w*(tt.b+tt.a)) {
				t.Errorf("reactions sum to %v, want %v", total, -tt.w*(tt.b+tt.a))
			}
		})
	}
}
