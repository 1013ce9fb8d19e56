package thrackle

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/thrackle/pkg/geom"
)

const (
	// DefaultVertexSize is the hit radius given to vertices created without one.
	DefaultVertexSize = 8.0
	// DefaultBendSize is the hit radius given to new bends.
	DefaultBendSize = 5.0
)

// Label is display text attached to a vertex, bend or edge. It never takes
// part in crossing geometry.
type Label struct {
	Content  string  `json:"content"`
	Visible  bool    `json:"visible"`
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// Point is a draggable position owned by a graph: either a *Vertex or a *Bend.
// The set of implementations is closed; crossings are not points.
type Point interface {
	ID() string
	Pos() geom.Point
	point()
}

// Vertex is a graph vertex with a mutable position.
//
// Positions are changed through [Graph.MoveVertex] so the crossing set stays
// consistent. The cosmetic fields may be edited freely.
type Vertex struct {
	id        string
	pos       geom.Point
	neighbors []string

	Size  float64 // Hit radius
	Color string
	Shape string
	Label Label

	// Temporary marks the free endpoint of an edge that is still being drawn.
	Temporary bool
}

func (v *Vertex) point() {}

// ID returns the vertex identifier.
func (v *Vertex) ID() string { return v.id }

// Pos returns the current position.
func (v *Vertex) Pos() geom.Point { return v.pos }

// Neighbors returns the ids of adjacent vertices in edge-creation order.
func (v *Vertex) Neighbors() []string { return slices.Clone(v.neighbors) }

// Degree returns the number of distinct neighbors.
func (v *Vertex) Degree() int { return len(v.neighbors) }

func (v *Vertex) addNeighbor(id string) {
	if !slices.Contains(v.neighbors, id) {
		v.neighbors = append(v.neighbors, id)
	}
}

func (v *Vertex) deleteNeighbor(id string) {
	v.neighbors = slices.DeleteFunc(v.neighbors, func(n string) bool { return n == id })
}

// Bend is an intermediate point of an edge's polyline.
type Bend struct {
	id     string
	edgeID string
	pos    geom.Point

	Size  float64
	Color string
	Label Label
}

func (b *Bend) point() {}

// ID returns the bend identifier, unique within the graph.
func (b *Bend) ID() string { return b.id }

// EdgeID returns the id of the owning edge.
func (b *Bend) EdgeID() string { return b.edgeID }

// Pos returns the current position.
func (b *Bend) Pos() geom.Point { return b.pos }

func newBend(edgeID string, p geom.Point) *Bend {
	return &Bend{
		id:     edgeID + "/bend/" + uuid.NewString()[:8],
		edgeID: edgeID,
		pos:    p,
		Size:   DefaultBendSize,
	}
}

// Edge connects two vertices through an ordered sequence of bends.
type Edge struct {
	v1, v2 *Vertex
	bends  []*Bend

	Color     string
	Dashed    bool
	Thickness float64
	Label     Label
}

// EdgeID returns the id of the edge from v1 to v2.
func EdgeID(v1, v2 string) string { return v1 + "-" + v2 }

// ID returns v1.ID() + "-" + v2.ID().
func (e *Edge) ID() string { return EdgeID(e.v1.id, e.v2.id) }

// V1 returns the first endpoint.
func (e *Edge) V1() *Vertex { return e.v1 }

// V2 returns the second endpoint.
func (e *Edge) V2() *Vertex { return e.v2 }

// Bends returns the bends in polyline order.
func (e *Edge) Bends() []*Bend { return slices.Clone(e.bends) }

// Segment returns the straight chord between the endpoints, ignoring bends.
func (e *Edge) Segment() geom.Segment { return geom.Seg(e.v1.pos, e.v2.pos) }

// Has reports whether v is one of the endpoints.
func (e *Edge) Has(id string) bool { return e.v1.id == id || e.v2.id == id }

// Other returns the endpoint opposite id, or nil if id is not an endpoint.
func (e *Edge) Other(id string) *Vertex {
	switch id {
	case e.v1.id:
		return e.v2
	case e.v2.id:
		return e.v1
	}
	return nil
}

// SharesEndpoint reports whether e and o have an endpoint vertex in common.
func (e *Edge) SharesEndpoint(o *Edge) bool {
	return e.Has(o.v1.id) || e.Has(o.v2.id)
}

// Points returns the polyline: v1, the bends in order, v2.
func (e *Edge) Points() []geom.Point {
	pts := make([]geom.Point, 0, len(e.bends)+2)
	pts = append(pts, e.v1.pos)
	for _, b := range e.bends {
		pts = append(pts, b.pos)
	}
	return append(pts, e.v2.pos)
}

// SubEdges returns the straight pieces of the polyline in order. An edge
// without bends has a single subedge from v1 to v2.
func (e *Edge) SubEdges() []Subedge {
	ids := make([]string, 0, len(e.bends)+2)
	ids = append(ids, e.v1.id)
	for _, b := range e.bends {
		ids = append(ids, b.id)
	}
	ids = append(ids, e.v2.id)
	pts := e.Points()

	subs := make([]Subedge, len(pts)-1)
	for i := range subs {
		subs[i] = Subedge{
			EdgeID:  e.ID(),
			Index:   i,
			From:    ids[i],
			To:      ids[i+1],
			Segment: geom.Seg(pts[i], pts[i+1]),
		}
	}
	return subs
}

// addBend adds a bend at (x, y). Without onEdge the bend is appended to the
// sequence. With onEdge the point is projected onto the nearest subedge and
// the bend is inserted there; ties go to the first subedge found.
func (e *Edge) addBend(p geom.Point, onEdge bool) *Bend {
	if !onEdge {
		b := newBend(e.ID(), p)
		e.bends = append(e.bends, b)
		return b
	}
	best, bestDist := 0, 0.0
	subs := e.SubEdges()
	for i, s := range subs {
		if d := s.Segment.DistanceFromPoint(p); i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	b := newBend(e.ID(), subs[best].Segment.Projection(p))
	e.bends = slices.Insert(e.bends, best, b)
	return b
}

func (e *Edge) removeBend(id string) bool {
	n := len(e.bends)
	e.bends = slices.DeleteFunc(e.bends, func(b *Bend) bool { return b.id == id })
	return len(e.bends) != n
}

// Subedge is one straight piece of an edge's polyline. Subedges are derived
// on demand and never stored.
type Subedge struct {
	EdgeID  string
	Index   int    // Position within the edge's polyline
	From    string // Id of the vertex or bend at the start
	To      string // Id of the vertex or bend at the end
	Segment geom.Segment
}

// ID identifies the subedge by its edge and index.
func (s Subedge) ID() string { return fmt.Sprintf("%s[%d]", s.EdgeID, s.Index) }

// CommonEndpoint reports whether s and o share an end point. Points are
// compared by identity, not by coordinates.
func (s Subedge) CommonEndpoint(o Subedge) bool {
	return s.From == o.From || s.From == o.To || s.To == o.From || s.To == o.To
}

// Crossing is an interior intersection of two subedges.
type Crossing struct {
	ID    string     // First subedge id + "." + second subedge id
	At    geom.Point // Intersection point
	Edges [2]string  // Ids of the two edges involved, equal for self-crossings

	Legal        bool // Independent edges crossing
	MoreThanOnce bool // The same pair of edges crosses elsewhere too
	SelfCrossing bool // Both subedges belong to the same edge
}

// Involves reports whether the crossing touches the edge with the given id.
func (c Crossing) Involves(edgeID string) bool {
	return c.Edges[0] == edgeID || c.Edges[1] == edgeID
}

func (c Crossing) samePair(o Crossing) bool {
	return (c.Edges[0] == o.Edges[0] && c.Edges[1] == o.Edges[1]) ||
		(c.Edges[0] == o.Edges[1] && c.Edges[1] == o.Edges[0])
}
