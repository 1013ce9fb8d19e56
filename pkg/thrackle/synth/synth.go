package synth

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/geom"
	"github.com/matzehuels/thrackle/pkg/observability"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// Default placement parameters.
const (
	DefaultSpacing = 40.0
	DefaultRadius  = 200.0
)

var (
	// DefaultOrigin is where the first spine slot sits.
	DefaultOrigin = geom.Pt(40, 200)
	// DefaultCenter is the center of circular placements.
	DefaultCenter = geom.Pt(300, 300)
)

// Options controls where drawings are placed.
type Options struct {
	Spacing float64    // Distance between consecutive spine slots
	Origin  geom.Point // First spine slot
	Center  geom.Point // Center of circular placements
	Radius  float64    // Radius of circular placements
	Logger  *log.Logger
}

// DefaultOptions returns the default placement parameters.
func DefaultOptions() Options {
	return Options{
		Spacing: DefaultSpacing,
		Origin:  DefaultOrigin,
		Center:  DefaultCenter,
		Radius:  DefaultRadius,
	}
}

// Synthesizer computes drawings with an exact number of crossings and
// commits them to a graph.
type Synthesizer struct {
	opts   Options
	logger *log.Logger
}

// New creates a Synthesizer. Non-positive spacing or radius fall back to
// the defaults.
func New(opts Options) *Synthesizer {
	if opts.Spacing <= 0 {
		opts.Spacing = DefaultSpacing
	}
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	s := &Synthesizer{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Options returns the effective placement parameters.
func (s *Synthesizer) Options() Options { return s.opts }

// plan is a complete placement computed before anything is committed.
type plan struct {
	strategy string
	ids      []string     // Vertex ids by sequence index
	pos      []geom.Point // Position by sequence index
	routes   []route      // One per edge of the sequence
	bends    [][]geom.Point
}

// layout converts p into a graph layout, orienting every bend list from the
// stored edge's first endpoint.
func (p plan) layout(g *thrackle.Graph) thrackle.Layout {
	l := thrackle.Layout{
		Positions: make(map[string]geom.Point, len(p.ids)),
		Bends:     make(map[string][]geom.Point, len(p.routes)),
	}
	for i, id := range p.ids {
		l.Positions[id] = p.pos[i]
	}
	for i, r := range p.routes {
		if len(p.bends[i]) == 0 {
			continue
		}
		from, to := p.ids[r.from], p.ids[r.to]
		e := g.Edge(from, to)
		if e == nil {
			e = g.Edge(to, from)
		}
		pts := p.bends[i]
		if e.V1().ID() != from {
			pts = reversed(pts)
		}
		l.Bends[e.ID()] = pts
	}
	return l
}

// spinePlan lays items out on the spine and draws every route as arcs.
// Without curved, all edges stay straight.
func (s *Synthesizer) spinePlan(strategy string, ids []string, items []item, routes []route, curved bool) plan {
	sp := newSpine(items, s.opts.Spacing, s.opts.Origin)
	p := plan{strategy: strategy, ids: ids, routes: routes, pos: make([]geom.Point, len(ids))}
	for v := range ids {
		p.pos[v] = sp.vertex(v)
	}
	p.bends = make([][]geom.Point, len(routes))
	if curved {
		for i, r := range routes {
			p.bends[i] = sp.bends(r)
		}
	}
	return p
}

// circlePlan puts vertex order[i] in slot i of the circle with straight edges.
func (s *Synthesizer) circlePlan(strategy string, ids []string, order []int, routes []route) plan {
	p := plan{strategy: strategy, ids: ids, routes: routes, pos: make([]geom.Point, len(ids))}
	for i, v := range order {
		p.pos[v] = geom.OnCircle(s.opts.Center, s.opts.Radius, i, len(order))
	}
	p.bends = make([][]geom.Point, len(routes))
	return p
}

// run builds a plan and commits it. Failures are published on the graph's
// advisory channel and leave the graph untouched.
func (s *Synthesizer) run(ctx context.Context, g *thrackle.Graph, name string, target int, build func() (plan, error)) error {
	hooks := observability.Synthesis()
	start := time.Now()
	hooks.OnSynthesisStart(ctx, name, g.VertexCount(), target)

	var p plan
	err := ctx.Err()
	if err == nil {
		p, err = build()
		if err == nil {
			err = ctx.Err()
		}
	}
	if err != nil && err == ctx.Err() {
		err = cancelled(err, name)
	}
	if err == nil {
		err = g.ApplyLayout(p.layout(g))
	}
	if err != nil {
		s.logger.Debug("synthesis rejected", "entry", name, "target", target, "err", err)
		hooks.OnSynthesisComplete(ctx, name, 0, time.Since(start), err)
		return thrackle.Report(g.Options().Advisor, err)
	}

	s.logger.Debug("synthesized drawing", "entry", name, "strategy", p.strategy,
		"vertices", len(p.ids), "crossings", len(g.Crossings()))
	hooks.OnSynthesisComplete(ctx, p.strategy, len(g.Crossings()), time.Since(start), nil)
	return nil
}

// cancelled wraps a context error so callers see both the TIMEOUT code and
// the context cause.
func cancelled(err error, name string) error {
	return errors.Wrap(errors.ErrCodeTimeout, err, "%s synthesis cancelled", name)
}

// pathRoutes draws every path edge i → i+1 as a single arc below the spine.
func pathRoutes(n int) []route {
	routes := make([]route, n-1)
	for i := range routes {
		routes[i] = route{from: i, to: i + 1, first: below}
	}
	return routes
}

// cycleRoutes is pathRoutes plus the closing edge n-1 → 0.
func cycleRoutes(n int, closing route) []route {
	return append(pathRoutes(n), closing)
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

var defaultSynthesizer = New(DefaultOptions())

// LinearPathDrawing calls [Synthesizer.LinearPathDrawing] with default options.
func LinearPathDrawing(g *thrackle.Graph, k int) (float64, error) {
	return defaultSynthesizer.LinearPathDrawing(context.Background(), g, k)
}

// CircularPathDrawing calls [Synthesizer.CircularPathDrawing] with default options.
func CircularPathDrawing(g *thrackle.Graph, k int) error {
	return defaultSynthesizer.CircularPathDrawing(context.Background(), g, k)
}

// CircleDrawing calls [Synthesizer.CircleDrawing] with default options.
func CircleDrawing(g *thrackle.Graph, k int) error {
	return defaultSynthesizer.CircleDrawing(context.Background(), g, k)
}

// StarDrawing calls [Synthesizer.StarDrawing] with default options.
func StarDrawing(g *thrackle.Graph) error {
	return defaultSynthesizer.StarDrawing(context.Background(), g)
}

// EvenCircleThrackle calls [Synthesizer.EvenCircleThrackle] with default options.
func EvenCircleThrackle(g *thrackle.Graph) error {
	return defaultSynthesizer.EvenCircleThrackle(context.Background(), g)
}

// MaxRectilinearCircle calls [Synthesizer.MaxRectilinearCircle] with default options.
func MaxRectilinearCircle(g *thrackle.Graph) error {
	return defaultSynthesizer.MaxRectilinearCircle(context.Background(), g)
}
