// Package geom provides the planar primitives shared by every drawing entity:
// points, straight segments, projection, and segment intersection.
//
// All coordinates are float64 values in an abstract plane with no implied
// units. Intersection tests use two tolerances: [ParallelTolerance] for the
// determinant of the 2×2 system, and [Epsilon] to exclude hits that fall
// within a hair of either segment's end. Near-endpoint touches are not
// crossings; they are handled by the adjacency rules of the crossing engine.
package geom

import (
	"fmt"
	"math"
)

const (
	// Epsilon bounds the segment parameters: a hit counts only when both
	// parameters lie strictly inside (Epsilon, 1-Epsilon).
	Epsilon = 1e-5

	// ParallelTolerance is the determinant magnitude below which two
	// segments are treated as parallel and never intersect.
	ParallelTolerance = 1e-10
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Equals reports whether p and q lie within Epsilon of each other on both axes.
func (p Point) Equals(q Point) bool {
	return math.Abs(p.X-q.X) < Epsilon && math.Abs(p.Y-q.Y) < Epsilon
}

// Interpolate returns the point at parameter t along p→q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Segment is the straight line segment from Start to End.
type Segment struct {
	Start Point
	End   Point
}

// Seg is shorthand for Segment{Start: a, End: b}.
func Seg(a, b Point) Segment { return Segment{Start: a, End: b} }

// Length returns the segment's Euclidean length.
func (s Segment) Length() float64 { return s.Start.Distance(s.End) }

// Projection returns the point on s closest to p. The parameter along the
// segment is clamped to [0, 1], so the result never leaves the segment.
// Degenerate segments project every point onto Start.
func (s Segment) Projection(p Point) Point {
	dx, dy := s.End.X-s.Start.X, s.End.Y-s.Start.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return s.Start
	}
	t := ((p.X-s.Start.X)*dx + (p.Y-s.Start.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return s.Start.Interpolate(s.End, t)
}

// DistanceFromPoint returns the distance from p to its projection on s.
func (s Segment) DistanceFromPoint(p Point) float64 {
	return p.Distance(s.Projection(p))
}

// IsNear reports whether p is strictly closer than dist to s.
func (s Segment) IsNear(p Point, dist float64) bool {
	return s.DistanceFromPoint(p) < dist
}

// Intersect returns the interior crossing point of a and b, if any.
//
// The segments are written as a.Start + α·(a.End−a.Start) and
// b.Start + β·(b.End−b.Start). They cross only when the system is not
// degenerate and both α and β lie strictly inside (Epsilon, 1−Epsilon).
func Intersect(a, b Segment) (Point, bool) {
	rx, ry := a.End.X-a.Start.X, a.End.Y-a.Start.Y
	sx, sy := b.End.X-b.Start.X, b.End.Y-b.Start.Y
	det := rx*sy - ry*sx
	if math.Abs(det) < ParallelTolerance {
		return Point{}, false
	}
	qx, qy := b.Start.X-a.Start.X, b.Start.Y-a.Start.Y
	alpha := (qx*sy - qy*sx) / det
	beta := (qx*ry - qy*rx) / det
	if !inside(alpha) || !inside(beta) {
		return Point{}, false
	}
	return a.Start.Interpolate(a.End, alpha), true
}

func inside(t float64) bool {
	return t > Epsilon && t < 1-Epsilon
}

// OnCircle returns the i-th of n points evenly spaced on the circle with the
// given center and radius. Slot 0 sits at the top and slots advance clockwise
// in screen coordinates.
func OnCircle(center Point, radius float64, i, n int) Point {
	a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	return Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
}
