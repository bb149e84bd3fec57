// Package fe maps a structured beam onto a finite element engine and pulls
// per-combination result arrays back out of it.
package fe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/envelope"
)

var (
	// ErrModelConstruction is wrapped by engines for any inconsistency in the
	// model they are given: duplicate or unknown names, unstable supports.
	ErrModelConstruction = errors.New("model construction failed")

	// ErrInvalidResult is returned for an unknown result type or a direction
	// that does not belong to it.
	ErrInvalidResult = errors.New("invalid result request")

	// ErrNotAnalyzed is returned by result accessors called before Analyze.
	ErrNotAnalyzed = errors.New("model has not been analyzed")
)

// Engine is the finite element capability the model builder needs. Node,
// support and material definitions must precede the member that uses them.
type Engine interface {
	AddNode(name string, x, y, z float64) error
	// DefineSupport fixes the flagged degrees of freedom of a node.
	DefineSupport(node string, dx, dy, dz, rx, ry, rz bool) error
	AddMaterial(name string, e, g, nu, rho float64) error
	AddMember(name, iNode, jNode, material string, iy, iz, j, a float64) error
	AddMemberPointLoad(member string, dir beam.Direction, p, x float64, loadCase string) error
	AddMemberDistLoad(member string, dir beam.Direction, w1, w2, x1, x2 float64, loadCase string) error
	AddLoadCombo(name string, factors map[string]float64) error

	// Analyze solves every load combination.
	Analyze() error

	// LoadCombos lists the registered combinations in registration order.
	LoadCombos() []string

	ShearArray(member, dir string, n int, combo string) (envelope.ResultArray, error)
	MomentArray(member, dir string, n int, combo string) (envelope.ResultArray, error)
	DeflectionArray(member, dir string, n int, combo string) (envelope.ResultArray, error)
	AxialArray(member string, n int, combo string) (envelope.ResultArray, error)
	TorqueArray(member string, n int, combo string) (envelope.ResultArray, error)
}

// Reaction is the force a support exerts on the member for one combination,
// ordered Fx, Fy, Fz, Mx, My, Mz.
type Reaction struct {
	Node   string     `json:"node"`
	X      float64    `json:"x"`
	Forces [6]float64 `json:"forces"`
}

// Fy is the vertical reaction.
func (r Reaction) Fy() float64 { return r.Forces[1] }

// ReactionReporter is implemented by engines that report support reactions.
type ReactionReporter interface {
	Reactions(combo string) ([]Reaction, error)
}

// Quantity is a response quantity reported along a member.
type Quantity string

const (
	Shear      Quantity = "shear"
	Moment     Quantity = "moment"
	Deflection Quantity = "deflection"
	Axial      Quantity = "axial"
	Torque     Quantity = "torque"
)

// Quantities lists every response quantity.
var Quantities = []Quantity{Shear, Moment, Deflection, Axial, Torque}

// Directions returns the directions valid for the quantity. Axial force and
// torque have none.
func (q Quantity) Directions() []string {
	switch q {
	case Shear:
		return []string{"Fy", "Fz"}
	case Moment:
		return []string{"Mz", "My"}
	case Deflection:
		return []string{"dy", "dx", "dz"}
	}
	return nil
}

// DefaultDirection is the in-plane direction of a gravity-loaded beam.
func (q Quantity) DefaultDirection() string {
	if dirs := q.Directions(); len(dirs) > 0 {
		return dirs[0]
	}
	return ""
}

// Unit is the display unit of the quantity for a beam in N and mm.
func (q Quantity) Unit() string {
	switch q {
	case Shear, Axial:
		return "N"
	case Moment, Torque:
		return "N·mm"
	case Deflection:
		return "mm"
	}
	return ""
}

// ParseQuantity validates a result type and its direction. The direction is
// ignored for axial and torque and defaults when empty.
func ParseQuantity(name, dir string) (Quantity, string, error) {
	q := Quantity(strings.ToLower(strings.TrimSpace(name)))
	switch q {
	case Axial, Torque:
		return q, "", nil
	case Shear, Moment, Deflection:
	default:
		return "", "", fmt.Errorf("%w: unknown result type %q (want one of shear, moment, deflection, axial, torque)", ErrInvalidResult, name)
	}
	if dir == "" {
		return q, q.DefaultDirection(), nil
	}
	for _, d := range q.Directions() {
		if strings.EqualFold(d, dir) {
			return q, d, nil
		}
	}
	return "", "", fmt.Errorf("%w: direction %q is not valid for %s (want %s)",
		ErrInvalidResult, dir, q, strings.Join(q.Directions(), ", "))
}
