package linear

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/fe"
)

// sectionForces are the internal actions on the face of the left free body
// at a cut. Positive Mz is sagging under downward Fy loads.
type sectionForces struct {
	axial  float64
	shearY float64
	shearZ float64
	torque float64
	momY   float64
	momZ   float64
}

func (e *Engine) checkResult(name string, n int, comboName string) (*combo, error) {
	if e.sol == nil {
		return nil, fe.ErrNotAnalyzed
	}
	if e.member == nil || e.member.name != name {
		return nil, fmt.Errorf("%w: unknown member %q", fe.ErrInvalidResult, name)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", fe.ErrInvalidResult, n)
	}
	for i := range e.combos {
		if e.combos[i].name == comboName {
			return &e.combos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown load combination %q", fe.ErrInvalidResult, comboName)
}

// sample evaluates f at n evenly spaced points along the member.
func (e *Engine) sample(n int, f func(x float64) float64) envelope.ResultArray {
	arr := envelope.ResultArray{X: make([]float64, n), Y: make([]float64, n)}
	length := e.member.length
	for i := 0; i < n; i++ {
		x := length * float64(i) / float64(n-1)
		if i == n-1 {
			x = length
		}
		arr.X[i] = x
		arr.Y[i] = f(x)
	}
	return arr
}

func (e *Engine) forceArray(name string, n int, comboName string, pick func(sectionForces) float64) (envelope.ResultArray, error) {
	c, err := e.checkResult(name, n, comboName)
	if err != nil {
		return envelope.ResultArray{}, err
	}
	return e.sample(n, func(x float64) float64 {
		return pick(e.sectionAt(c, x))
	}), nil
}

func (e *Engine) ShearArray(name, dir string, n int, comboName string) (envelope.ResultArray, error) {
	switch dir {
	case "Fy":
		return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.shearY })
	case "Fz":
		return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.shearZ })
	}
	return envelope.ResultArray{}, fmt.Errorf("%w: shear direction %q", fe.ErrInvalidResult, dir)
}

func (e *Engine) MomentArray(name, dir string, n int, comboName string) (envelope.ResultArray, error) {
	switch dir {
	case "Mz":
		return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.momZ })
	case "My":
		return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.momY })
	}
	return envelope.ResultArray{}, fmt.Errorf("%w: moment direction %q", fe.ErrInvalidResult, dir)
}

func (e *Engine) AxialArray(name string, n int, comboName string) (envelope.ResultArray, error) {
	return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.axial })
}

func (e *Engine) TorqueArray(name string, n int, comboName string) (envelope.ResultArray, error) {
	return e.forceArray(name, n, comboName, func(s sectionForces) float64 { return s.torque })
}

// DeflectionArray interpolates the solved displacements: cubic Hermite
// shape functions for dy and dz, linear for dx.
func (e *Engine) DeflectionArray(name, dir string, n int, comboName string) (envelope.ResultArray, error) {
	var dof int
	switch dir {
	case "dx":
		dof = 0
	case "dy":
		dof = 1
	case "dz":
		dof = 2
	default:
		return envelope.ResultArray{}, fmt.Errorf("%w: deflection direction %q", fe.ErrInvalidResult, dir)
	}
	c, err := e.checkResult(name, n, comboName)
	if err != nil {
		return envelope.ResultArray{}, err
	}
	u := e.combined(c)
	return e.sample(n, func(x float64) float64 {
		return deflection(e.sol.stations, u, dof, x)
	}), nil
}

// Reactions returns the support reactions of a combination in node order.
func (e *Engine) Reactions(comboName string) ([]fe.Reaction, error) {
	if e.sol == nil {
		return nil, fe.ErrNotAnalyzed
	}
	var c *combo
	for i := range e.combos {
		if e.combos[i].name == comboName {
			c = &e.combos[i]
		}
	}
	if c == nil {
		return nil, fmt.Errorf("%w: unknown load combination %q", fe.ErrInvalidResult, comboName)
	}
	out := make([]fe.Reaction, len(e.sol.supports))
	for i, s := range e.sol.supports {
		out[i] = fe.Reaction{Node: s.node, X: e.sol.stations[s.station]}
		for _, lc := range e.sol.cases {
			f := c.factors[lc]
			for d, r := range e.sol.reactions[lc][i] {
				out[i].Forces[d] += f * r
			}
		}
	}
	return out, nil
}

// combined superposes the displacement vectors of every load case.
func (e *Engine) combined(c *combo) []float64 {
	u := make([]float64, 6*len(e.sol.stations))
	for _, lc := range e.sol.cases {
		f := c.factors[lc]
		if f == 0 {
			continue
		}
		for i, v := range e.sol.disp[lc] {
			u[i] += f * v
		}
	}
	return u
}

func deflection(stations, u []float64, dof int, x float64) float64 {
	s := sort.SearchFloat64s(stations, x) - 1
	if s < 0 {
		s = 0
	}
	if s > len(stations)-2 {
		s = len(stations) - 2
	}
	h := stations[s+1] - stations[s]
	xi := (x - stations[s]) / h
	a, b := 6*s, 6*(s+1)

	if dof == 0 {
		return (1-xi)*u[a] + xi*u[b]
	}
	n1 := 1 - 3*xi*xi + 2*xi*xi*xi
	n2 := h * (xi - 2*xi*xi + xi*xi*xi)
	n3 := 3*xi*xi - 2*xi*xi*xi
	n4 := h * (-xi*xi + xi*xi*xi)
	if dof == 1 {
		return n1*u[a+1] + n2*u[a+5] + n3*u[b+1] + n4*u[b+5]
	}
	// The slope dz/dx is the negative of the rotation about y.
	return n1*u[a+2] - n2*u[a+4] + n3*u[b+2] - n4*u[b+4]
}

// sectionAt sums the actions left of x, applied loads and reactions alike.
// A concentrated action exactly at x is excluded except at the start of the
// member, so interior values are those just left of the cut.
func (e *Engine) sectionAt(c *combo, x float64) sectionForces {
	m := e.member
	tol := relTol * m.length
	include := func(xi float64) bool {
		return xi <= tol || xi < x-tol
	}

	var fx, fy, fz, mx, my, mz float64
	concentrated := func(xi float64, a [6]float64) {
		if !include(xi) {
			return
		}
		fx += a[0]
		fy += a[1]
		fz += a[2]
		mx += a[3]
		my += -(x-xi)*a[2] - a[4]
		mz += (x-xi)*a[1] - a[5]
	}

	for _, lc := range e.sol.cases {
		f := c.factors[lc]
		if f == 0 {
			continue
		}
		for i, s := range e.sol.supports {
			var a [6]float64
			for d, r := range e.sol.reactions[lc][i] {
				a[d] = f * r
			}
			concentrated(e.sol.stations[s.station], a)
		}
	}
	for _, p := range m.points {
		f := c.factors[p.loadCase]
		if f == 0 {
			continue
		}
		var a [6]float64
		a[p.dof] = f * p.p
		concentrated(p.x, a)
	}
	for _, d := range m.dists {
		f := c.factors[d.loadCase]
		if f == 0 || x <= d.x1 {
			continue
		}
		end := min(d.x2, x)
		h, arm := end-d.x1, x-d.x1
		w1 := f * d.w1
		k := 0.0
		if d.x2 > d.x1 {
			k = f * (d.w2 - d.w1) / (d.x2 - d.x1)
		}
		force := w1*h + k*h*h/2
		moment := w1*arm*h - w1*h*h/2 + k*arm*h*h/2 - k*h*h*h/3
		switch d.dof {
		case 0:
			fx += force
		case 1:
			fy += force
			mz += moment
		case 2:
			fz += force
			my -= moment
		}
	}

	return sectionForces{
		axial:  -fx,
		shearY: fy,
		shearZ: fz,
		torque: -mx,
		momY:   my,
		momZ:   mz,
	}
}
