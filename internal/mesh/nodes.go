// Package mesh places the finite element nodes of a straight beam.
package mesh

import (
	"fmt"
	"math"
	"sort"
)

// DefaultTolerance is the distance (in beam length units) below which two
// node coordinates are treated as the same node.
const DefaultTolerance = 1e-6

// Node is a named point on the beam axis.
type Node struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
}

// NodeSet is an ordered set of nodes with strictly increasing coordinates.
// The first node is at 0 and the last at the beam length.
type NodeSet []Node

// NodeName returns the synthetic name of the i-th node.
func NodeName(i int) string {
	return fmt.Sprintf("N%d", i)
}

// Resolve returns the nodes needed for a beam of the given length with
// supports at the given locations. Ends are added when no support sits on
// them, coordinates closer than tol collapse into one node, and names run
// N0..N(n-1) from left to right regardless of input order.
func Resolve(supports []float64, length, tol float64) NodeSet {
	if tol < 0 {
		tol = 0
	}
	xs := make([]float64, 0, len(supports)+2)
	xs = append(xs, supports...)
	xs = append(xs, 0, length)
	sort.Float64s(xs)

	var nodes NodeSet
	for _, x := range xs {
		if n := len(nodes); n > 0 && x-nodes[n-1].X <= tol {
			// prefer the exact end coordinates over a near-coincident support
			if x == 0 || x == length {
				nodes[n-1].X = x
			}
			continue
		}
		nodes = append(nodes, Node{Name: NodeName(len(nodes)), X: x})
	}
	return nodes
}

// Find returns the node within tol of x.
func (ns NodeSet) Find(x, tol float64) (Node, bool) {
	i := sort.Search(len(ns), func(i int) bool { return ns[i].X >= x-tol })
	if i < len(ns) && math.Abs(ns[i].X-x) <= tol {
		return ns[i], true
	}
	return Node{}, false
}

// First returns the left end node.
func (ns NodeSet) First() Node { return ns[0] }

// Last returns the right end node.
func (ns NodeSet) Last() Node { return ns[len(ns)-1] }

// Map returns the node set as name → coordinate.
func (ns NodeSet) Map() map[string]float64 {
	m := make(map[string]float64, len(ns))
	for _, n := range ns {
		m[n.Name] = n.X
	}
	return m
}
