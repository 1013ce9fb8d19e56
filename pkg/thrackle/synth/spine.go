package synth

import (
	"math"
	"slices"

	"github.com/matzehuels/thrackle/pkg/geom"
)

// A spine drawing places vertices and auxiliary spine points on a
// horizontal line and draws every edge as a chain of arcs that alternate
// between the two half-planes, switching sides at each spine point it
// passes through. Each arc is a single bend at its apex.
//
// Two arcs on the same side cross exactly once when their ends interleave
// along the line and never otherwise. Arc depth grows slightly faster than
// linearly with span, so arcs that share an end leave it at distinct angles
// and never overlap.

const (
	below = 1  // Arc under the line (larger y)
	above = -1 // Arc over the line
)

// item is one slot on the spine: a vertex (by sequence index) or a spine
// point (by caller-chosen id).
type item struct {
	point bool
	id    int
}

func vertexItem(v int) item { return item{id: v} }
func pointItem(p int) item  { return item{point: true, id: p} }

// route describes how one edge travels along the spine.
type route struct {
	from  int   // Sequence index of the vertex the polyline starts at
	to    int   // Sequence index of the other endpoint
	via   []int // Spine point ids crossed, in order
	first int   // Side of the first arc
}

type spine struct {
	spacing float64
	origin  geom.Point
	x       map[item]float64
	length  float64
}

func newSpine(items []item, spacing float64, origin geom.Point) spine {
	s := spine{
		spacing: spacing,
		origin:  origin,
		x:       make(map[item]float64, len(items)),
		length:  float64(len(items)-1) * spacing,
	}
	for i, it := range items {
		s.x[it] = origin.X + float64(i)*spacing
	}
	return s
}

// vertex returns the position of vertex v.
func (s spine) vertex(v int) geom.Point {
	return geom.Pt(s.x[vertexItem(v)], s.origin.Y)
}

// apex returns the bend of the arc between x1 and x2 on the given side.
func (s spine) apex(x1, x2 float64, side int) geom.Point {
	w := math.Abs(x2 - x1)
	slope := 0.5 * (1 + w*s.spacing/(2*s.length*s.length))
	depth := w / 2 * slope
	return geom.Pt((x1+x2)/2, s.origin.Y+float64(side)*depth)
}

// bends returns the polyline interior of r from r.from to r.to.
func (s spine) bends(r route) []geom.Point {
	xs := []float64{s.x[vertexItem(r.from)]}
	for _, p := range r.via {
		xs = append(xs, s.x[pointItem(p)])
	}
	xs = append(xs, s.x[vertexItem(r.to)])

	var out []geom.Point
	side := r.first
	for j := 0; j+1 < len(xs); j++ {
		out = append(out, s.apex(xs[j], xs[j+1], side))
		if j+2 < len(xs) {
			out = append(out, geom.Pt(xs[j+1], s.origin.Y))
		}
		side = -side
	}
	return out
}

// reversed returns pts in reverse order.
func reversed(pts []geom.Point) []geom.Point {
	out := slices.Clone(pts)
	slices.Reverse(out)
	return out
}

// vertexItems lists the vertices of order as spine items.
func vertexItems(order []int) []item {
	items := make([]item, len(order))
	for i, v := range order {
		items[i] = vertexItem(v)
	}
	return items
}
