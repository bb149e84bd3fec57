// Package linear is an in-process linear elastic engine for a single straight
// member lying along the global X axis. The member is discretised into
// Euler-Bernoulli frame elements with six degrees of freedom per station and
// every load case is solved once; combinations are superposed afterwards.
package linear

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fe"
)

// DefaultSubdivisions is the minimum number of elements along the member.
const DefaultSubdivisions = 40

// relTol is the coordinate tolerance relative to the member length.
const relTol = 1e-9

// ErrUnstable is returned by Analyze when the supports leave a rigid body
// mode unrestrained.
var ErrUnstable = errors.New("structure is unstable")

type node struct {
	x, y, z    float64
	restraints [6]bool
}

type material struct {
	e, g, nu, rho float64
}

type pointLoad struct {
	dof      int
	p, x     float64
	loadCase string
}

type distLoad struct {
	dof      int
	w1, w2   float64
	x1, x2   float64
	loadCase string
}

// at returns the load intensity at local coordinate x inside the span.
func (d distLoad) at(x float64) float64 {
	if d.x2 <= d.x1 {
		return d.w1
	}
	return d.w1 + (d.w2-d.w1)*(x-d.x1)/(d.x2-d.x1)
}

type member struct {
	name     string
	i, j     string
	material string
	iy, iz   float64
	torsion  float64
	area     float64
	length   float64
	points   []pointLoad
	dists    []distLoad
}

type combo struct {
	name    string
	factors map[string]float64
}

// Engine implements fe.Engine. The zero value is not usable; call New.
type Engine struct {
	// Subdivisions is the minimum number of elements the member is split
	// into. Load positions and nodes add further element boundaries.
	Subdivisions int

	nodes     map[string]*node
	nodeOrder []string
	materials map[string]material
	member    *member
	combos    []combo

	sol *solution
}

var (
	_ fe.Engine           = (*Engine)(nil)
	_ fe.ReactionReporter = (*Engine)(nil)
)

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		Subdivisions: DefaultSubdivisions,
		nodes:        make(map[string]*node),
		materials:    make(map[string]material),
	}
}

func constructionErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", fe.ErrModelConstruction, fmt.Sprintf(format, args...))
}

func unstableErr(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", fe.ErrModelConstruction, ErrUnstable, fmt.Sprintf(format, args...))
}

// AddNode defines a node in global coordinates.
func (e *Engine) AddNode(name string, x, y, z float64) error {
	if _, ok := e.nodes[name]; ok {
		return constructionErr("duplicate node %q", name)
	}
	e.nodes[name] = &node{x: x, y: y, z: z}
	e.nodeOrder = append(e.nodeOrder, name)
	e.sol = nil
	return nil
}

func (e *Engine) DefineSupport(name string, dx, dy, dz, rx, ry, rz bool) error {
	n, ok := e.nodes[name]
	if !ok {
		return constructionErr("support on unknown node %q", name)
	}
	n.restraints = [6]bool{dx, dy, dz, rx, ry, rz}
	e.sol = nil
	return nil
}

func (e *Engine) AddMaterial(name string, modulus, g, nu, rho float64) error {
	if _, ok := e.materials[name]; ok {
		return constructionErr("duplicate material %q", name)
	}
	if modulus <= 0 || g <= 0 {
		return constructionErr("material %q: moduli must be positive (E=%g, G=%g)", name, modulus, g)
	}
	e.materials[name] = material{e: modulus, g: g, nu: nu, rho: rho}
	return nil
}

// AddMember defines the single member of the model. Both end nodes must share
// their y and z coordinates and the j node must lie at a larger x.
func (e *Engine) AddMember(name, iNode, jNode, mat string, iy, iz, j, a float64) error {
	if e.member != nil {
		return constructionErr("member %q: only one member is supported, %q already defined", name, e.member.name)
	}
	ni, ok := e.nodes[iNode]
	if !ok {
		return constructionErr("member %q: unknown node %q", name, iNode)
	}
	nj, ok := e.nodes[jNode]
	if !ok {
		return constructionErr("member %q: unknown node %q", name, jNode)
	}
	if _, ok := e.materials[mat]; !ok {
		return constructionErr("member %q: unknown material %q", name, mat)
	}
	length := nj.x - ni.x
	if length <= 0 {
		return constructionErr("member %q: node %q must lie beyond node %q along X", name, jNode, iNode)
	}
	tol := relTol * length
	if math.Abs(nj.y-ni.y) > tol || math.Abs(nj.z-ni.z) > tol {
		return constructionErr("member %q: only members parallel to the global X axis are supported", name)
	}
	for _, v := range []float64{iy, iz, j, a} {
		if v <= 0 {
			return constructionErr("member %q: section properties must be positive", name)
		}
	}
	e.member = &member{
		name: name, i: iNode, j: jNode, material: mat,
		iy: iy, iz: iz, torsion: j, area: a,
		length: length,
	}
	e.sol = nil
	return nil
}

func (e *Engine) loadTarget(name string, x ...float64) (*member, error) {
	m := e.member
	if m == nil || m.name != name {
		return nil, constructionErr("load on unknown member %q", name)
	}
	tol := relTol * m.length
	for _, v := range x {
		if v < -tol || v > m.length+tol {
			return nil, constructionErr("member %q: load location %g outside [0, %g]", name, v, m.length)
		}
	}
	return m, nil
}

func clamp(x, length float64) float64 {
	return math.Min(math.Max(x, 0), length)
}

func (e *Engine) AddMemberPointLoad(name string, dir beam.Direction, p, x float64, loadCase string) error {
	dof, ok := dofIndex[dir]
	if !ok {
		return constructionErr("member %q: unknown load direction %q", name, dir)
	}
	m, err := e.loadTarget(name, x)
	if err != nil {
		return err
	}
	m.points = append(m.points, pointLoad{dof: dof, p: p, x: clamp(x, m.length), loadCase: loadCase})
	e.sol = nil
	return nil
}

func (e *Engine) AddMemberDistLoad(name string, dir beam.Direction, w1, w2, x1, x2 float64, loadCase string) error {
	dof, ok := dofIndex[dir]
	if !ok || !dir.IsForce() {
		return constructionErr("member %q: distributed loads must act in Fx, Fy or Fz, got %q", name, dir)
	}
	if x2 < x1 {
		return constructionErr("member %q: distributed load starts at %g after it ends at %g", name, x1, x2)
	}
	m, err := e.loadTarget(name, x1, x2)
	if err != nil {
		return err
	}
	m.dists = append(m.dists, distLoad{
		dof: dof, w1: w1, w2: w2,
		x1: clamp(x1, m.length), x2: clamp(x2, m.length),
		loadCase: loadCase,
	})
	e.sol = nil
	return nil
}

func (e *Engine) AddLoadCombo(name string, factors map[string]float64) error {
	for _, c := range e.combos {
		if c.name == name {
			return constructionErr("duplicate load combination %q", name)
		}
	}
	f := make(map[string]float64, len(factors))
	for k, v := range factors {
		f[k] = v
	}
	e.combos = append(e.combos, combo{name: name, factors: f})
	e.sol = nil
	return nil
}

func (e *Engine) LoadCombos() []string {
	names := make([]string, len(e.combos))
	for i, c := range e.combos {
		names[i] = c.name
	}
	return names
}

// dofIndex maps a load direction to its position within a station's six
// degrees of freedom.
var dofIndex = map[beam.Direction]int{
	beam.Fx: 0, beam.Fy: 1, beam.Fz: 2,
	beam.Mx: 3, beam.My: 4, beam.Mz: 5,
}
