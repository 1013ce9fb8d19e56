package thrackle

import (
	"slices"
	"strconv"

	"github.com/matzehuels/thrackle/pkg/geom"
)

// Vertex returns the vertex with the given id, or nil.
func (g *Graph) Vertex(id string) *Vertex { return g.vertices[id] }

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex { return slices.Clone(g.order) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// Crossings returns a copy of the crossing set.
func (g *Graph) Crossings() []Crossing { return slices.Clone(g.crossings) }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CurveComplexity returns the largest number of bends on any edge.
func (g *Graph) CurveComplexity() int { return g.curveComplexity }

// Degree returns the number of edges incident to the vertex, counting a
// self-loop twice.
func (g *Graph) Degree(id string) int {
	d := 0
	for _, e := range g.edges {
		if e.v1.id == id {
			d++
		}
		if e.v2.id == id {
			d++
		}
	}
	return d
}

// Bends returns every bend of every edge, edge by edge.
func (g *Graph) Bends() []*Bend {
	var out []*Bend
	for _, e := range g.edges {
		out = append(out, e.bends...)
	}
	return out
}

// MaxVertexID returns the largest vertex id that parses as an integer, or
// -1 when there is none.
func (g *Graph) MaxVertexID() int {
	best := -1
	for id := range g.vertices {
		if n, err := strconv.Atoi(id); err == nil && n > best {
			best = n
		}
	}
	return best
}

// VertexAt returns the vertex whose hit circle contains (x, y). When several
// do, the closest wins. Temporary vertices are never hit.
func (g *Graph) VertexAt(x, y float64) *Vertex {
	p := geom.Pt(x, y)
	var hit *Vertex
	best := 0.0
	for _, v := range g.order {
		if v.Temporary {
			continue
		}
		d := v.pos.Distance(p)
		if d < v.Size && (hit == nil || d < best) {
			hit, best = v, d
		}
	}
	return hit
}

// BendAt returns the bend whose hit circle contains (x, y), closest first.
func (g *Graph) BendAt(x, y float64) *Bend {
	p := geom.Pt(x, y)
	var hit *Bend
	best := 0.0
	for _, e := range g.edges {
		for _, b := range e.bends {
			d := b.pos.Distance(p)
			if d < b.Size && (hit == nil || d < best) {
				hit, best = b, d
			}
		}
	}
	return hit
}

// IsNearEdge returns the first edge with a subedge strictly closer than dist
// to (x, y), or nil.
func (g *Graph) IsNearEdge(x, y, dist float64) *Edge {
	p := geom.Pt(x, y)
	for _, e := range g.edges {
		for _, s := range e.SubEdges() {
			if s.Segment.IsNear(p, dist) {
				return e
			}
		}
	}
	return nil
}

// IsNearVertex returns the first vertex strictly closer than dist to (x, y),
// or nil.
func (g *Graph) IsNearVertex(x, y, dist float64) *Vertex {
	p := geom.Pt(x, y)
	for _, v := range g.order {
		if v.pos.Distance(p) < dist {
			return v
		}
	}
	return nil
}

// =============================================================================
// Bulk helpers
// =============================================================================

func (g *Graph) subset(ids []string) []*Vertex {
	if ids == nil {
		return slices.Clone(g.order)
	}
	out := make([]*Vertex, 0, len(ids))
	for _, id := range ids {
		if v, ok := g.vertices[id]; ok {
			out = append(out, v)
		} else {
			g.misuse("unknown vertex in subset", "vertex", id)
		}
	}
	return out
}

// MakeCircle spaces the given vertices (all when ids is nil) evenly on a
// circle, in order, starting at the top.
func (g *Graph) MakeCircle(cx, cy, r float64, ids []string) {
	vs := g.subset(ids)
	for i, v := range vs {
		v.pos = geom.OnCircle(geom.Pt(cx, cy), r, i, len(vs))
	}
	g.UpdateCrossings()
}

// StraightLine places the given vertices (all when ids is nil) on the
// horizontal line at y, spacing apart, starting at x = spacing.
func (g *Graph) StraightLine(spacing, y float64, ids []string) {
	for i, v := range g.subset(ids) {
		v.pos = geom.Pt(spacing*float64(i+1), y)
	}
	g.UpdateCrossings()
}

// AddAllEdges connects every pair of the given vertices (all when ids is
// nil) that is not connected yet. It returns the number of edges added.
func (g *Graph) AddAllEdges(ids []string, color string) int {
	vs := g.subset(ids)
	added := 0
	for i, a := range vs {
		for _, b := range vs[i+1:] {
			if g.Edge(a.id, b.id) != nil || g.Edge(b.id, a.id) != nil {
				continue
			}
			e := g.insertEdge(a, b)
			e.Color = color
			added++
		}
	}
	g.UpdateCrossings()
	return added
}

// RemoveEdges deletes every edge.
func (g *Graph) RemoveEdges() {
	g.edges = nil
	g.edgeIndex = make(map[string]*Edge)
	for _, v := range g.order {
		v.neighbors = nil
	}
	g.crossings = nil
	g.curveComplexity = 0
}

// RemoveBends straightens every edge.
func (g *Graph) RemoveBends() {
	for _, e := range g.edges {
		e.bends = nil
	}
	g.curveComplexity = 0
	g.UpdateCrossings()
}
