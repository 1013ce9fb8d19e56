package thrackle

import (
	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/geom"
)

// Clone returns a deep copy of g. Vertices, edges and bends are fresh
// objects with the same ids and attributes, and the crossing set is
// recomputed. The clone shares the advisor and logger.
func (g *Graph) Clone() *Graph {
	c := New(g.Options())
	for _, v := range g.order {
		nv := *v
		nv.neighbors = nil
		c.vertices[nv.id] = &nv
		c.order = append(c.order, &nv)
	}
	for _, e := range g.edges {
		ne := c.insertEdge(c.vertices[e.v1.id], c.vertices[e.v2.id])
		ne.Color, ne.Dashed, ne.Thickness, ne.Label = e.Color, e.Dashed, e.Thickness, e.Label
		for _, b := range e.bends {
			nb := *b
			ne.bends = append(ne.bends, &nb)
		}
	}
	for _, v := range g.order {
		c.vertices[v.id].neighbors = v.Neighbors()
	}
	c.updateCurveComplexity()
	c.UpdateCrossings()
	return c
}

// Replace adopts the state of other in place. Handles obtained from g before
// the call no longer belong to it. other is copied, so later changes to it do
// not leak into g.
func (g *Graph) Replace(other *Graph) {
	if other == nil || other == g {
		return
	}
	*g = *other.Clone()
}

// Layout is a complete placement computed ahead of time.
type Layout struct {
	// Positions assigns new coordinates by vertex id. Unlisted vertices stay.
	Positions map[string]geom.Point
	// Bends gives the new bend polyline of each edge by edge id, in order
	// from V1 to V2. Edges without an entry lose their bends.
	Bends map[string][]geom.Point
}

// ApplyLayout commits l in one step and recomputes all crossings. Every id
// is checked before anything changes, so a failing layout leaves g as it was.
func (g *Graph) ApplyLayout(l Layout) error {
	for id, p := range l.Positions {
		if _, ok := g.vertices[id]; !ok {
			g.misuse("layout names unknown vertex", "vertex", id)
			return errors.New(errors.ErrCodeUnknownEntity, "layout names unknown vertex %q", id)
		}
		if err := errors.ValidateCoordinate(p.X, p.Y); err != nil {
			return err
		}
	}
	for id, pts := range l.Bends {
		if _, ok := g.edgeIndex[id]; !ok {
			g.misuse("layout names unknown edge", "edge", id)
			return errors.New(errors.ErrCodeUnknownEntity, "layout names unknown edge %q", id)
		}
		for _, p := range pts {
			if err := errors.ValidateCoordinate(p.X, p.Y); err != nil {
				return err
			}
		}
	}

	for id, p := range l.Positions {
		g.vertices[id].pos = p
	}
	for _, e := range g.edges {
		e.bends = nil
		for _, p := range l.Bends[e.ID()] {
			e.bends = append(e.bends, newBend(e.ID(), p))
		}
	}
	g.updateCurveComplexity()
	g.UpdateCrossings()
	return nil
}
