package linear

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// maxCondition bounds the condition estimate of the diagonally scaled free
// stiffness matrix. Anything larger is treated as a mechanism.
const maxCondition = 1e12

// solution holds the solved state of every load case.
type solution struct {
	stations []float64
	// supports lists the restrained station indices with their node names.
	supports []support
	cases    []string
	// disp holds six displacements per station for each load case.
	disp map[string][]float64
	// reactions holds six reaction components per support for each case.
	reactions map[string][][6]float64
}

type support struct {
	node       string
	station    int
	restraints [6]bool
}

// Analyze discretises the member, solves every load case and keeps the
// results for superposition by the result accessors.
func (e *Engine) Analyze() error {
	m := e.member
	if m == nil {
		return constructionErr("no member defined")
	}
	ni := e.nodes[m.i]
	props := e.materials[m.material]
	tol := relTol * m.length

	// Every node must sit on the member; a detached node is a mechanism.
	local := make(map[string]float64, len(e.nodeOrder))
	for _, name := range e.nodeOrder {
		n := e.nodes[name]
		x := n.x - ni.x
		if math.Abs(n.y-ni.y) > tol || math.Abs(n.z-ni.z) > tol || x < -tol || x > m.length+tol {
			return unstableErr("node %q is not connected to member %q", name, m.name)
		}
		local[name] = clamp(x, m.length)
	}

	stations := e.stations(m, local, tol)
	sol := &solution{
		stations:  stations,
		disp:      make(map[string][]float64),
		reactions: make(map[string][][6]float64),
	}

	ndof := 6 * len(stations)
	restrained := make([]bool, ndof)
	for _, name := range e.nodeOrder {
		n := e.nodes[name]
		if n.restraints == ([6]bool{}) {
			continue
		}
		s := stationIndex(stations, local[name], tol)
		for d, r := range n.restraints {
			if r {
				restrained[6*s+d] = true
			}
		}
		sol.supports = append(sol.supports, support{node: name, station: s, restraints: n.restraints})
	}

	k := assemble(m, props, stations)
	sol.cases = m.cases()

	free := make([]int, 0, ndof)
	for d := 0; d < ndof; d++ {
		if !restrained[d] {
			free = append(free, d)
		}
	}

	var chol *mat.Cholesky
	var scale []float64
	if len(free) > 0 {
		var err error
		chol, scale, err = factorize(k, free)
		if err != nil {
			return unstableErr("member %q: %v", m.name, err)
		}
	}

	for _, c := range sol.cases {
		f := loadVector(m, c, stations, tol)
		u := make([]float64, ndof)
		if chol != nil {
			rhs := mat.NewVecDense(len(free), nil)
			for a, p := range free {
				rhs.SetVec(a, f[p]*scale[a])
			}
			var y mat.VecDense
			if err := chol.SolveVecTo(&y, rhs); err != nil {
				return unstableErr("load case %q: %v", c, err)
			}
			for a, p := range free {
				u[p] = y.AtVec(a) * scale[a]
			}
		}
		sol.disp[c] = u

		reactions := make([][6]float64, len(sol.supports))
		for i, s := range sol.supports {
			for d := 0; d < 6; d++ {
				if !s.restraints[d] {
					continue
				}
				p := 6*s.station + d
				var r float64
				for q := 0; q < ndof; q++ {
					r += k.At(p, q) * u[q]
				}
				reactions[i][d] = r - f[p]
			}
		}
		sol.reactions[c] = reactions
	}

	e.sol = sol
	return nil
}

// stations returns the sorted element boundaries: the uniform subdivision,
// every node and every load position.
func (e *Engine) stations(m *member, local map[string]float64, tol float64) []float64 {
	sub := e.Subdivisions
	if sub < 1 {
		sub = 1
	}
	xs := make([]float64, 0, sub+1+len(local)+len(m.points)+2*len(m.dists))
	for i := 0; i <= sub; i++ {
		xs = append(xs, m.length*float64(i)/float64(sub))
	}
	for _, x := range local {
		xs = append(xs, x)
	}
	for _, p := range m.points {
		xs = append(xs, p.x)
	}
	for _, d := range m.dists {
		xs = append(xs, d.x1, d.x2)
	}
	sort.Float64s(xs)

	out := xs[:1]
	for _, x := range xs[1:] {
		if x-out[len(out)-1] > tol {
			out = append(out, x)
		}
	}
	out[len(out)-1] = m.length
	return out
}

// stationIndex returns the index of the station at x.
func stationIndex(stations []float64, x, tol float64) int {
	i := sort.SearchFloat64s(stations, x-tol)
	if i == len(stations) {
		return i - 1
	}
	return i
}

func (m *member) cases() []string {
	var cases []string
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			cases = append(cases, c)
		}
	}
	for _, p := range m.points {
		add(p.loadCase)
	}
	for _, d := range m.dists {
		add(d.loadCase)
	}
	return cases
}

// frameStiffness returns the 12x12 stiffness of a frame element of length h
// aligned with the global X axis. Degrees of freedom are ordered
// ux, uy, uz, rx, ry, rz at each end.
func frameStiffness(h float64, props material, m *member) (k [12][12]float64) {
	set := func(i, j int, v float64) {
		k[i][j], k[j][i] = v, v
	}
	bar := func(a, b int, s float64) {
		set(a, a, s)
		set(b, b, s)
		set(a, b, -s)
	}
	bar(0, 6, props.e*m.area/h)
	bar(3, 9, props.g*m.torsion/h)

	// sign flips the rotation coupling in the xz plane, where a positive
	// rotation about y lowers the slope dz/dx.
	bend := func(v1, r1, v2, r2 int, ei, sign float64) {
		c := ei / (h * h * h)
		set(v1, v1, 12*c)
		set(v2, v2, 12*c)
		set(v1, v2, -12*c)
		set(r1, r1, 4*h*h*c)
		set(r2, r2, 4*h*h*c)
		set(r1, r2, 2*h*h*c)
		set(v1, r1, sign*6*h*c)
		set(v1, r2, sign*6*h*c)
		set(v2, r1, -sign*6*h*c)
		set(v2, r2, -sign*6*h*c)
	}
	bend(1, 5, 7, 11, props.e*m.iz, 1)
	bend(2, 4, 8, 10, props.e*m.iy, -1)
	return k
}

func assemble(m *member, props material, stations []float64) *mat.SymDense {
	ndof := 6 * len(stations)
	k := mat.NewSymDense(ndof, nil)
	for s := 0; s+1 < len(stations); s++ {
		ke := frameStiffness(stations[s+1]-stations[s], props, m)
		base := 6 * s
		for i := 0; i < 12; i++ {
			for j := i; j < 12; j++ {
				if ke[i][j] != 0 {
					k.SetSym(base+i, base+j, k.At(base+i, base+j)+ke[i][j])
				}
			}
		}
	}
	return k
}

// factorize scales the free block of k to a unit diagonal and factors it.
// The returned scale maps solutions of the scaled system back to
// displacements.
func factorize(k *mat.SymDense, free []int) (*mat.Cholesky, []float64, error) {
	n := len(free)
	scale := make([]float64, n)
	for a, p := range free {
		d := k.At(p, p)
		if d <= 0 {
			return nil, nil, fmt.Errorf("degree of freedom %d has no stiffness", p)
		}
		scale[a] = 1 / math.Sqrt(d)
	}
	kff := mat.NewSymDense(n, nil)
	for a, p := range free {
		for b := a; b < n; b++ {
			if v := k.At(p, free[b]); v != 0 {
				kff.SetSym(a, b, v*scale[a]*scale[b])
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(kff); !ok {
		return nil, nil, errors.New("stiffness matrix is not positive definite")
	}
	if c := chol.Cond(); c > maxCondition || math.IsInf(c, 1) || math.IsNaN(c) {
		return nil, nil, fmt.Errorf("stiffness matrix is singular (condition %.3g)", c)
	}
	return &chol, scale, nil
}

// loadVector returns the global nodal loads of one case. Distributed loads
// are replaced by their work-equivalent nodal forces and moments.
func loadVector(m *member, loadCase string, stations []float64, tol float64) []float64 {
	f := make([]float64, 6*len(stations))
	for _, p := range m.points {
		if p.loadCase != loadCase {
			continue
		}
		f[6*stationIndex(stations, p.x, tol)+p.dof] += p.p
	}
	for _, d := range m.dists {
		if d.loadCase != loadCase || d.x2-d.x1 <= tol {
			continue
		}
		for s := stationIndex(stations, d.x1, tol); s+1 < len(stations) && stations[s] < d.x2-tol; s++ {
			a, b := stations[s], stations[s+1]
			ends := consistentLoads(d.dof, d.at(a), d.at(b), b-a)
			for i, v := range ends {
				f[6*s+i] += v
			}
		}
	}
	return f
}

// consistentLoads returns the end actions of a linearly varying load q1..q2
// acting on an element of length h in the given force direction.
func consistentLoads(dof int, q1, q2, h float64) (f [12]float64) {
	switch dof {
	case 0:
		f[0] = h * (2*q1 + q2) / 6
		f[6] = h * (q1 + 2*q2) / 6
	case 1:
		f[1] = h * (7*q1 + 3*q2) / 20
		f[7] = h * (3*q1 + 7*q2) / 20
		f[5] = h * h * (3*q1 + 2*q2) / 60
		f[11] = -h * h * (2*q1 + 3*q2) / 60
	case 2:
		f[2] = h * (7*q1 + 3*q2) / 20
		f[8] = h * (3*q1 + 7*q2) / 20
		f[4] = -h * h * (3*q1 + 2*q2) / 60
		f[10] = h * h * (2*q1 + 3*q2) / 60
	}
	return f
}
