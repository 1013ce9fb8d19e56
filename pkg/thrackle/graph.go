package thrackle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/geom"
)

// DefaultThickness is the stroke width given to new edges.
const DefaultThickness = 2.0

// UpdateStrategy selects how the crossing set is maintained after a mutation.
type UpdateStrategy int

const (
	// Incremental recomputes only the crossings of the edges a mutation touched.
	Incremental UpdateStrategy = iota
	// Full discards and recomputes the whole crossing set after every mutation.
	Full
)

func (s UpdateStrategy) String() string {
	if s == Full {
		return "full"
	}
	return "incremental"
}

// ParseUpdateStrategy parses "full" or "incremental".
func ParseUpdateStrategy(s string) (UpdateStrategy, error) {
	switch strings.ToLower(s) {
	case "", "incremental":
		return Incremental, nil
	case "full":
		return Full, nil
	}
	return Incremental, errors.New(errors.ErrCodeInvalidInput, "unknown crossing update strategy %q", s)
}

// Options configures a Graph.
type Options struct {
	Directed  bool // Edges a-b and b-a are distinct
	SelfLoops bool // Allow edges from a vertex to itself
	Simple    bool // Reject parallel edges (either orientation when undirected)
	Strategy  UpdateStrategy

	// Advisor receives rejected operations. Nil discards them.
	Advisor Advisor
	// Logger receives diagnostics for programmer errors. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns an undirected simple graph without self-loops that
// updates crossings incrementally.
func DefaultOptions() Options {
	return Options{Simple: true}
}

// Graph owns a drawing: vertices, edges with their bends, and the derived
// crossing set and curve complexity.
//
// Every mutation leaves the crossing set equal to what a full recompute over
// the current edges would produce. The zero value is not usable; use [New].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	directed  bool
	selfLoops bool
	simple    bool
	strategy  UpdateStrategy
	advisor   Advisor
	logger    *log.Logger

	vertices  map[string]*Vertex
	order     []*Vertex
	edges     []*Edge
	edgeIndex map[string]*Edge

	crossings       []Crossing
	curveComplexity int
}

// New creates an empty graph.
func New(opts Options) *Graph {
	g := &Graph{
		directed:  opts.Directed,
		selfLoops: opts.SelfLoops,
		simple:    opts.Simple,
		strategy:  opts.Strategy,
		advisor:   opts.Advisor,
		logger:    opts.Logger,
		vertices:  make(map[string]*Vertex),
		edgeIndex: make(map[string]*Edge),
	}
	if g.advisor == nil {
		g.advisor = nopAdvisor{}
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

// Options returns the configuration the graph was created with.
func (g *Graph) Options() Options {
	return Options{
		Directed:  g.directed,
		SelfLoops: g.selfLoops,
		Simple:    g.simple,
		Strategy:  g.strategy,
		Advisor:   g.advisor,
		Logger:    g.logger,
	}
}

// SetStrategy changes the crossing update strategy.
func (g *Graph) SetStrategy(s UpdateStrategy) { g.strategy = s }

// SetAdvisor replaces the advisory channel. Nil discards advisories.
func (g *Graph) SetAdvisor(a Advisor) {
	if a == nil {
		a = nopAdvisor{}
	}
	g.advisor = a
}

func (g *Graph) reject(err *errors.Error) error {
	return Report(g.advisor, err)
}

func (g *Graph) misuse(msg string, keyvals ...any) {
	g.logger.Debug(msg, keyvals...)
}

// =============================================================================
// Vertices
// =============================================================================

// AddVertex adds a vertex at (x, y). Invalid or duplicate ids are rejected
// through the advisory channel and leave the graph unchanged.
func (g *Graph) AddVertex(id string, x, y float64) (*Vertex, error) {
	if err := errors.ValidateVertexID(id); err != nil {
		return nil, Report(g.advisor, err)
	}
	if err := errors.ValidateCoordinate(x, y); err != nil {
		return nil, Report(g.advisor, err)
	}
	if _, ok := g.vertices[id]; ok {
		return nil, g.reject(errors.New(errors.ErrCodeDuplicateVertex, "vertex %q already exists", id))
	}
	v := &Vertex{id: id, pos: geom.Pt(x, y), Size: DefaultVertexSize}
	g.vertices[id] = v
	g.order = append(g.order, v)
	return v, nil
}

// AddNewVertex adds a vertex at (x, y) named one past [Graph.MaxVertexID].
func (g *Graph) AddNewVertex(x, y float64) (*Vertex, error) {
	return g.AddVertex(fmt.Sprint(g.MaxVertexID()+1), x, y)
}

// DeleteVertex removes a vertex together with its incident edges, their
// bends and crossings. It returns false if the vertex is unknown.
func (g *Graph) DeleteVertex(id string) bool {
	v, ok := g.vertices[id]
	if !ok {
		g.misuse("delete of unknown vertex", "vertex", id)
		return false
	}
	for _, e := range g.incident(id) {
		g.deleteEdge(e)
	}
	delete(g.vertices, id)
	g.order = slices.DeleteFunc(g.order, func(o *Vertex) bool { return o == v })
	return true
}

// MoveVertex moves a vertex and refreshes the crossings of its edges.
func (g *Graph) MoveVertex(id string, x, y float64) bool {
	v, ok := g.vertices[id]
	if !ok {
		g.misuse("move of unknown vertex", "vertex", id)
		return false
	}
	if err := errors.ValidateCoordinate(x, y); err != nil {
		_ = Report(g.advisor, err)
		return false
	}
	v.pos = geom.Pt(x, y)
	g.refreshVertex(v)
	return true
}

// =============================================================================
// Edges
// =============================================================================

// AddEdge connects the vertices with the given ids.
//
// The edge is rejected through the advisory channel when an endpoint is
// missing, when it would be a disallowed self-loop, or when it duplicates an
// existing edge: same orientation always, reverse orientation as well for
// undirected simple graphs.
func (g *Graph) AddEdge(id1, id2 string) (*Edge, error) {
	a, ok := g.vertices[id1]
	if !ok {
		return nil, g.reject(errors.New(errors.ErrCodeMissingEndpoint, "vertex %q does not exist", id1))
	}
	b, ok := g.vertices[id2]
	if !ok {
		return nil, g.reject(errors.New(errors.ErrCodeMissingEndpoint, "vertex %q does not exist", id2))
	}
	if a == b && !g.selfLoops {
		return nil, g.reject(errors.New(errors.ErrCodeSelfLoop, "self-loop on %q is not allowed", id1))
	}
	if _, ok := g.edgeIndex[EdgeID(id1, id2)]; ok {
		return nil, g.reject(errors.New(errors.ErrCodeDuplicateEdge, "edge %s already exists", EdgeID(id1, id2)))
	}
	if !g.directed && g.simple {
		if _, ok := g.edgeIndex[EdgeID(id2, id1)]; ok {
			return nil, g.reject(errors.New(errors.ErrCodeDuplicateEdge, "edge %s already exists", EdgeID(id2, id1)))
		}
	}
	e := g.insertEdge(a, b)
	g.refreshEdges(e)
	return e, nil
}

// AddEdgeBetween is AddEdge for vertex handles. Nil handles are rejected as
// missing endpoints.
func (g *Graph) AddEdgeBetween(v1, v2 *Vertex) (*Edge, error) {
	if v1 == nil || v2 == nil {
		return nil, g.reject(errors.New(errors.ErrCodeMissingEndpoint, "edge endpoint is missing"))
	}
	return g.AddEdge(v1.id, v2.id)
}

func (g *Graph) insertEdge(a, b *Vertex) *Edge {
	e := &Edge{v1: a, v2: b, Thickness: DefaultThickness}
	g.edges = append(g.edges, e)
	g.edgeIndex[e.ID()] = e
	a.addNeighbor(b.id)
	b.addNeighbor(a.id)
	return e
}

// DeleteEdge removes the edge between two vertices along with its bends and
// crossings. Undirected graphs match either orientation.
func (g *Graph) DeleteEdge(id1, id2 string) bool {
	e := g.Edge(id1, id2)
	if e == nil {
		g.misuse("delete of unknown edge", "edge", EdgeID(id1, id2))
		return false
	}
	g.deleteEdge(e)
	return true
}

func (g *Graph) deleteEdge(e *Edge) {
	g.edges = slices.DeleteFunc(g.edges, func(o *Edge) bool { return o == e })
	delete(g.edgeIndex, e.ID())
	if g.Edge(e.v1.id, e.v2.id) == nil && g.Edge(e.v2.id, e.v1.id) == nil {
		e.v1.deleteNeighbor(e.v2.id)
		e.v2.deleteNeighbor(e.v1.id)
	}
	if g.strategy == Full {
		g.UpdateCrossings()
	} else {
		g.dropCrossings(e.ID())
	}
	g.updateCurveComplexity()
}

// Edge returns the edge from id1 to id2. Undirected graphs also match the
// reverse orientation. It returns nil if there is no such edge.
func (g *Graph) Edge(id1, id2 string) *Edge {
	if e, ok := g.edgeIndex[EdgeID(id1, id2)]; ok {
		return e
	}
	if !g.directed {
		return g.edgeIndex[EdgeID(id2, id1)]
	}
	return nil
}

// EdgeByID returns the edge with the given id, or nil.
func (g *Graph) EdgeByID(id string) *Edge { return g.edgeIndex[id] }

func (g *Graph) incident(id string) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.Has(id) {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) edgeIndexOf(e *Edge) int {
	return slices.Index(g.edges, e)
}

// =============================================================================
// Bends
// =============================================================================

// AddBend adds a bend to the edge between id1 and id2 (see [Edge] for the
// onEdge placement rule). It returns nil if there is no such edge.
func (g *Graph) AddBend(id1, id2 string, x, y float64, onEdge bool) *Bend {
	e := g.Edge(id1, id2)
	if e == nil {
		g.misuse("bend on unknown edge", "edge", EdgeID(id1, id2))
		return nil
	}
	return g.AddBendToEdge(e, x, y, onEdge)
}

// AddBendToEdge adds a bend to e. With onEdge the point is projected onto
// the nearest subedge and inserted there; otherwise it is appended.
func (g *Graph) AddBendToEdge(e *Edge, x, y float64, onEdge bool) *Bend {
	if e == nil || g.edgeIndex[e.ID()] != e {
		g.misuse("bend on edge outside graph")
		return nil
	}
	if err := errors.ValidateCoordinate(x, y); err != nil {
		_ = Report(g.advisor, err)
		return nil
	}
	b := e.addBend(geom.Pt(x, y), onEdge)
	g.updateCurveComplexity()
	g.refreshEdges(e)
	return b
}

// Bend returns the bend with the given id, or nil.
func (g *Graph) Bend(id string) *Bend {
	edgeID, _, ok := strings.Cut(id, "/bend/")
	if !ok {
		return nil
	}
	e := g.edgeIndex[edgeID]
	if e == nil {
		return nil
	}
	for _, b := range e.bends {
		if b.id == id {
			return b
		}
	}
	return nil
}

// RemoveBend removes a bend from its edge.
func (g *Graph) RemoveBend(id string) bool {
	b := g.Bend(id)
	if b == nil {
		g.misuse("removal of unknown bend", "bend", id)
		return false
	}
	e := g.edgeIndex[b.edgeID]
	e.removeBend(id)
	g.updateCurveComplexity()
	g.refreshEdges(e)
	return true
}

// MoveBend moves a bend and refreshes the crossings of its edge.
func (g *Graph) MoveBend(id string, x, y float64) bool {
	b := g.Bend(id)
	if b == nil {
		g.misuse("move of unknown bend", "bend", id)
		return false
	}
	if err := errors.ValidateCoordinate(x, y); err != nil {
		_ = Report(g.advisor, err)
		return false
	}
	b.pos = geom.Pt(x, y)
	if g.strategy == Full {
		g.UpdateCrossings()
	} else {
		g.UpdateCrossingsByBend(b)
	}
	return true
}

// MovePoint moves a vertex or a bend.
func (g *Graph) MovePoint(p Point, x, y float64) bool {
	switch p := p.(type) {
	case *Vertex:
		return g.MoveVertex(p.id, x, y)
	case *Bend:
		return g.MoveBend(p.id, x, y)
	}
	g.misuse("move of unsupported point", "type", fmt.Sprintf("%T", p))
	return false
}

func (g *Graph) updateCurveComplexity() {
	g.curveComplexity = 0
	for _, e := range g.edges {
		g.curveComplexity = max(g.curveComplexity, len(e.bends))
	}
}

// =============================================================================
// Crossing refresh
// =============================================================================

func (g *Graph) refreshEdges(edges ...*Edge) {
	if g.strategy == Full {
		g.UpdateCrossings()
		return
	}
	for _, e := range edges {
		g.UpdateCrossingsByEdge(e)
	}
}

func (g *Graph) refreshVertex(v *Vertex) {
	if g.strategy == Full {
		g.UpdateCrossings()
		return
	}
	g.UpdateCrossingsByVertex(v)
}
