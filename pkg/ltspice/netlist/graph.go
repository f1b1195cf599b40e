package netlist

import "github.com/OpenTraceLab/ltnet/pkg/ltspice/asc"

// unionFind is a disjoint-set forest with path compression and union by
// rank. Merging thousands of wire endpoints stays near linear.
type unionFind struct {
	parent []int
	rank   []byte
}

func (u *unionFind) add() int {
	n := len(u.parent)
	u.parent = append(u.parent, n)
	u.rank = append(u.rank, 0)
	return n
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// Graph is the connectivity graph over schematic grid points. Vertices are
// distinct points and edges are wire segments, so two pins belong to the
// same electrical net exactly when their points share a connected
// component. Connection is coincidence at identical integer coordinates,
// never proximity.
type Graph struct {
	uf     unionFind
	index  map[asc.Point]int
	points []asc.Point
}

// NewGraph returns an empty connectivity graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[asc.Point]int)}
}

// Add registers p as a vertex and returns its index. Adding a point twice
// is a no-op. Registration order is preserved and later drives node
// numbering.
func (g *Graph) Add(p asc.Point) int {
	if i, ok := g.index[p]; ok {
		return i
	}
	i := g.uf.add()
	g.index[p] = i
	g.points = append(g.points, p)
	return i
}

// Connect joins a and b into one net, registering them as needed.
func (g *Graph) Connect(a, b asc.Point) {
	g.uf.union(g.Add(a), g.Add(b))
}

// Root returns the canonical vertex index of the net containing p, or
// false for a point that was never registered.
func (g *Graph) Root(p asc.Point) (int, bool) {
	i, ok := g.index[p]
	if !ok {
		return 0, false
	}
	return g.uf.find(i), true
}

// SameNet reports whether a and b are electrically connected.
// Unregistered points are on no net.
func (g *Graph) SameNet(a, b asc.Point) bool {
	ra, aok := g.Root(a)
	rb, bok := g.Root(b)
	return aok && bok && ra == rb
}

// Points returns the registered points in registration order.
func (g *Graph) Points() []asc.Point {
	return g.points
}

// Len returns the number of distinct registered points.
func (g *Graph) Len() int {
	return len(g.points)
}

// BuildGraph assembles the connectivity graph for one schematic. Projected
// component pins are registered first, then wires union their endpoints,
// then flag and port locations are registered so that every labeled point
// resolves to a net. A pin that touches no wire stays in a singleton
// component; that is a valid unconnected pin, not an error.
func BuildGraph(sch *asc.Schematic, placements []Placement) *Graph {
	g := NewGraph()
	for _, pl := range placements {
		for _, pin := range pl.Pins {
			g.Add(pin.At)
		}
	}
	for _, w := range sch.Wires {
		g.Connect(w.P1, w.P2)
	}
	for _, f := range sch.Flags {
		g.Add(f.At)
	}
	for _, io := range sch.IOPins {
		g.Add(io.At)
	}
	return g
}
