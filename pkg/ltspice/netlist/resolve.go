package netlist

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"
)

// ErrInternal marks lookups that break the resolver's totality guarantee.
// It means a point was queried that never went through BuildGraph, which
// is a programming error rather than a schematic problem.
var ErrInternal = errors.New("netlist: internal consistency error")

// MultipleGroundsError reports ground flags on disjoint nets while strict
// single-ground mode is active. Grounds holds one flag location per
// offending net, in declaration order.
type MultipleGroundsError struct {
	Grounds []asc.Point
}

func (e *MultipleGroundsError) Error() string {
	keys := make([]string, len(e.Grounds))
	for i, p := range e.Grounds {
		keys[i] = p.Key()
	}
	return fmt.Sprintf("netlist: %d disjoint nets carry a ground flag (at %s)",
		len(e.Grounds), strings.Join(keys, ", "))
}

// NodeMap is a completed point to node-name assignment for one schematic.
type NodeMap struct {
	graph   *Graph
	names   map[int]string
	grounds []asc.Point
}

// Name resolves the node name at p. Every point registered in the graph
// resolves to a name; anything else fails with ErrInternal.
func (m *NodeMap) Name(p asc.Point) (string, error) {
	root, ok := m.graph.Root(p)
	if !ok {
		return "", fmt.Errorf("%w: no node at %s", ErrInternal, p.Key())
	}
	name, ok := m.names[root]
	if !ok {
		return "", fmt.Errorf("%w: unresolved net at %s", ErrInternal, p.Key())
	}
	return name, nil
}

// Grounds returns the flag locations bound to the ground identity, one per
// grounded net, in flag declaration order.
func (m *NodeMap) Grounds() []asc.Point {
	return m.grounds
}

// PointNode pairs a grid point with its resolved node name.
type PointNode struct {
	At   asc.Point
	Name string
}

// Points lists every registered point with its node name, ordered by
// coordinates for stable display.
func (m *NodeMap) Points() []PointNode {
	out := make([]PointNode, 0, m.graph.Len())
	for _, p := range m.graph.Points() {
		root, _ := m.graph.Root(p)
		out = append(out, PointNode{At: p, Name: m.names[root]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.X != out[j].At.X {
			return out[i].At.X < out[j].At.X
		}
		return out[i].At.Y < out[j].At.Y
	})
	return out
}

// ResolveNodes assigns a node name to every net in the graph.
//
// Nets carrying a flag labeled "0" take the ground identity: a lone
// grounded net is named 0, and disjoint grounded nets are named 0_1, 0_2,
// ... in flag order. With opts.SingleGround the disjoint case fails with
// *MultipleGroundsError instead. Disjoint nets are never merged.
//
// Remaining nets are numbered from 1 following the graph's registration
// order, which puts component pins (instances in declaration order, pins
// in family order) ahead of wire-only nets. With opts.NamedNodes a net's
// first non-ground flag label replaces its number; a ground flag always
// beats a label on the same net.
func ResolveNodes(g *Graph, flags []asc.Flag, opts Options) (*NodeMap, error) {
	names := make(map[int]string)

	var groundRoots []int
	var groundAt []asc.Point
	seen := make(map[int]bool)
	for _, f := range flags {
		if !f.IsGround() {
			continue
		}
		root, ok := g.Root(f.At)
		if !ok || seen[root] {
			continue
		}
		seen[root] = true
		groundRoots = append(groundRoots, root)
		groundAt = append(groundAt, f.At)
	}

	switch {
	case len(groundRoots) > 1 && opts.SingleGround:
		return nil, &MultipleGroundsError{Grounds: groundAt}
	case len(groundRoots) == 1:
		names[groundRoots[0]] = asc.GroundLabel
	default:
		for i, root := range groundRoots {
			names[root] = fmt.Sprintf("0_%d", i+1)
		}
	}

	if opts.NamedNodes {
		for _, f := range flags {
			if f.IsGround() {
				continue
			}
			root, ok := g.Root(f.At)
			if !ok {
				continue
			}
			if _, taken := names[root]; !taken {
				names[root] = cleanName(f.Label)
			}
		}
	}

	next := 1
	for _, p := range g.Points() {
		root, _ := g.Root(p)
		if _, taken := names[root]; taken {
			continue
		}
		names[root] = strconv.Itoa(next)
		next++
	}

	return &NodeMap{graph: g, names: names, grounds: groundAt}, nil
}

// cleanName keeps the first underscore in a name and strips any others,
// matching what the downstream circuit tools accept.
func cleanName(s string) string {
	i := strings.IndexByte(s, '_')
	if i < 0 {
		return s
	}
	return s[:i+1] + strings.ReplaceAll(s[i+1:], "_", "")
}
