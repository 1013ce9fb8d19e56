package thrackle

import (
	"slices"

	"github.com/matzehuels/thrackle/pkg/geom"
)

// crossingPoints returns the crossings between e1 and e2 with legality set
// but multiplicity unset. For e1 == e2 only non-adjacent subedge pairs are
// tested, since consecutive pieces of a polyline always meet at their
// shared bend.
func crossingPoints(e1, e2 *Edge) []Crossing {
	subs1 := e1.SubEdges()
	var out []Crossing
	if e1 == e2 {
		for i := range subs1 {
			for j := i + 2; j < len(subs1); j++ {
				if c, ok := crossingOf(subs1[i], subs1[j]); ok {
					out = append(out, c)
				}
			}
		}
		return classify(out, e1, e2)
	}
	subs2 := e2.SubEdges()
	for _, s1 := range subs1 {
		for _, s2 := range subs2 {
			if c, ok := crossingOf(s1, s2); ok {
				out = append(out, c)
			}
		}
	}
	return classify(out, e1, e2)
}

func crossingOf(s1, s2 Subedge) (Crossing, bool) {
	p, ok := geom.Intersect(s1.Segment, s2.Segment)
	if !ok {
		return Crossing{}, false
	}
	return Crossing{
		ID:    s1.ID() + "." + s2.ID(),
		At:    p,
		Edges: [2]string{s1.EdgeID, s2.EdgeID},
	}, true
}

// classify applies the legality rule: self-crossings and crossings between
// edges with a common endpoint vertex are illegal, all others legal.
func classify(cs []Crossing, e1, e2 *Edge) []Crossing {
	self := e1 == e2
	adjacent := e1.SharesEndpoint(e2)
	for i := range cs {
		cs[i].SelfCrossing = self
		cs[i].Legal = !self && !adjacent
	}
	return cs
}

type edgePair [2]string

func pairOf(c Crossing) edgePair {
	if c.Edges[0] <= c.Edges[1] {
		return edgePair{c.Edges[0], c.Edges[1]}
	}
	return edgePair{c.Edges[1], c.Edges[0]}
}

// markMultiplicity sets MoreThanOnce on every crossing whose unordered edge
// pair occurs more than once in cs.
func markMultiplicity(cs []Crossing) {
	counts := make(map[edgePair]int, len(cs))
	for _, c := range cs {
		counts[pairOf(c)]++
	}
	for i := range cs {
		cs[i].MoreThanOnce = counts[pairOf(cs[i])] > 1
	}
}

// UpdateCrossings discards the crossing set and recomputes it over every
// unordered pair of edges, self-pairs included.
func (g *Graph) UpdateCrossings() {
	var cs []Crossing
	for i, e1 := range g.edges {
		for _, e2 := range g.edges[i:] {
			cs = append(cs, crossingPoints(e1, e2)...)
		}
	}
	markMultiplicity(cs)
	g.crossings = cs
}

// UpdateCrossingsByEdge recomputes the crossings of e against every edge,
// itself included, and splices them into the crossing set in place of the
// crossings that referenced e.
//
// Multiplicity only needs local re-derivation: every crossing whose flag can
// change involves e, so all of them are in the fresh set.
func (g *Graph) UpdateCrossingsByEdge(e *Edge) {
	idx := g.edgeIndexOf(e)
	if idx < 0 {
		g.misuse("crossing update for edge outside graph")
		return
	}
	var local []Crossing
	for j, o := range g.edges {
		if j < idx {
			local = append(local, crossingPoints(o, e)...)
		} else {
			local = append(local, crossingPoints(e, o)...)
		}
	}
	markMultiplicity(local)
	g.dropCrossings(e.ID())
	g.crossings = append(g.crossings, local...)
}

// UpdateCrossingsByVertex refreshes every edge incident to v.
func (g *Graph) UpdateCrossingsByVertex(v *Vertex) {
	if v == nil || g.vertices[v.id] != v {
		g.misuse("crossing update for vertex outside graph")
		return
	}
	for _, e := range g.incident(v.id) {
		g.UpdateCrossingsByEdge(e)
	}
}

// UpdateCrossingsByBend refreshes the edge owning b.
func (g *Graph) UpdateCrossingsByBend(b *Bend) {
	if b == nil {
		g.misuse("crossing update for nil bend")
		return
	}
	e := g.edgeIndex[b.edgeID]
	if e == nil {
		g.misuse("crossing update for orphaned bend", "bend", b.id)
		return
	}
	g.UpdateCrossingsByEdge(e)
}

func (g *Graph) dropCrossings(edgeID string) {
	g.crossings = slices.DeleteFunc(g.crossings, func(c Crossing) bool { return c.Involves(edgeID) })
}

// ThrackleNumber returns the number of pairs of independent edges, the most
// legal crossings any drawing of the current graph can have. It does not
// depend on coordinates.
//
// On graphs without self-loops or parallel edges this is
// (|E|·(|E|+1) − Σ deg(v)²) / 2. A self-loop is adjacent to every edge at its
// vertex, and parallel edges are adjacent to each other, so the count is
// taken over edge pairs with the same predicate that makes a crossing
// illegal.
func (g *Graph) ThrackleNumber() int {
	n := 0
	for i, e := range g.edges {
		for _, f := range g.edges[i+1:] {
			if !e.SharesEndpoint(f) {
				n++
			}
		}
	}
	return n
}

// Categories counts crossings by classification. A crossing can be counted
// in Multiple as well as in one of the other three.
type Categories struct {
	Self     int `json:"self"`
	Neighbor int `json:"neighbor"`
	Multiple int `json:"multiple"`
	Legal    int `json:"legal"`
}

// CrossingsCategories classifies the current crossing set.
func (g *Graph) CrossingsCategories() Categories {
	var c Categories
	for _, x := range g.crossings {
		switch {
		case x.SelfCrossing:
			c.Self++
		case !x.Legal:
			c.Neighbor++
		default:
			c.Legal++
		}
		if x.MoreThanOnce {
			c.Multiple++
		}
	}
	return c
}
