package synth

import (
	"context"
	"slices"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// cycleStrategy is one named construction for drawing the cycle 0..n-1
// with exactly k crossings. Strategies are tried in table order and the
// first whose applies reports true is used.
type cycleStrategy struct {
	name    string
	applies func(n, k int) bool
	build   func(s *Synthesizer, ids []string, k int) (plan, bool)
}

// cycleStrategies covers every k in [0, n(n-3)/2] except C4 with k = 2,
// which no drawing realizes.
//
//   - polygon: convex position in cycle order, 0 crossings.
//   - star: odd n, vertex i in circle slot i·(n-1)/2; every independent pair
//     crosses once, n(n-3)/2 crossings.
//   - evenThrackle: even n ≥ 6, fixed two-sided spine template with one spine
//     point per edge; n(n-3)/2 crossings.
//   - oddNearMax: odd n, n(n-3)/2 - 1 crossings; path edges on the optimal
//     zig-zag order and the closing edge passes the spine twice.
//   - outerEdge: k ≤ (n-2)(n-3)/2; the path is drawn with k crossings and the
//     closing edge goes above the spine, adding none.
//   - spineRoute: the path is drawn with the maximum (or one less) and the
//     closing edge passes the spine once, at a gap chosen so it crosses the
//     remaining number of path edges and neither edge adjacent to it.
var cycleStrategies = []cycleStrategy{
	{"polygon", func(n, k int) bool { return k == 0 }, buildPolygon},
	{"star", func(n, k int) bool { return n%2 == 1 && k == cycleBound(n) }, buildStar},
	{"evenThrackle", func(n, k int) bool { return n%2 == 0 && n >= 6 && k == cycleBound(n) }, buildEvenThrackle},
	{"oddNearMax", func(n, k int) bool { return n%2 == 1 && n >= 5 && k == cycleBound(n)-1 }, buildOddNearMax},
	{"outerEdge", func(n, k int) bool { return k <= pathBound(n) }, buildOuterEdge},
	{"spineRoute", func(n, k int) bool { return k < cycleBound(n) }, buildSpineRoute},
}

// CircleDrawing draws a cycle with exactly k crossings, all legal and no
// pair crossing twice.
func (s *Synthesizer) CircleDrawing(ctx context.Context, g *thrackle.Graph, k int) error {
	return s.run(ctx, g, "circle", k, func() (plan, error) {
		seq, err := cycleSequence(g)
		if err != nil {
			return plan{}, err
		}
		if err := errors.ValidateCrossingTarget(k, g.ThrackleNumber()); err != nil {
			return plan{}, err
		}
		return s.cyclePlan(seq, k)
	})
}

func (s *Synthesizer) cyclePlan(ids []string, k int) (plan, error) {
	n := len(ids)
	for _, st := range cycleStrategies {
		if !st.applies(n, k) {
			continue
		}
		if p, ok := st.build(s, ids, k); ok {
			return p, nil
		}
		break
	}
	return plan{}, errors.New(errors.ErrCodeUnrealizable,
		"a %d-cycle cannot be drawn with exactly %d crossings", n, k)
}

// StarDrawing draws a cycle with the maximum number of crossings. Odd
// cycles become star polygons; even cycles use the even thrackle template.
func (s *Synthesizer) StarDrawing(ctx context.Context, g *thrackle.Graph) error {
	return s.fixedCycle(ctx, g, "star", func(ids []string) (plan, bool) {
		if len(ids)%2 == 1 {
			return buildStar(s, ids, 0)
		}
		return buildEvenThrackle(s, ids, 0)
	})
}

// EvenCircleThrackle draws an even cycle of at least six vertices as a
// thrackle: every pair of independent edges crosses exactly once.
func (s *Synthesizer) EvenCircleThrackle(ctx context.Context, g *thrackle.Graph) error {
	return s.fixedCycle(ctx, g, "even-thrackle", func(ids []string) (plan, bool) {
		return buildEvenThrackle(s, ids, 0)
	})
}

// MaxRectilinearCircle places a cycle on a circle with straight edges so
// that it has the most crossings a straight-line drawing allows:
// n(n-3)/2 for odd n and n(n-4)/2 + 1 for even n.
func (s *Synthesizer) MaxRectilinearCircle(ctx context.Context, g *thrackle.Graph) error {
	return s.fixedCycle(ctx, g, "max-rectilinear", func(ids []string) (plan, bool) {
		n := len(ids)
		if n%2 == 1 {
			return buildStar(s, ids, 0)
		}
		return s.circlePlan("maxRectilinear", ids, rectilinearOrder(n), cycleRoutes(n, closingChord(n))), true
	})
}

func (s *Synthesizer) fixedCycle(ctx context.Context, g *thrackle.Graph, name string, build func([]string) (plan, bool)) error {
	return s.run(ctx, g, name, g.ThrackleNumber(), func() (plan, error) {
		seq, err := cycleSequence(g)
		if err != nil {
			return plan{}, err
		}
		p, ok := build(seq)
		if !ok {
			return plan{}, errors.New(errors.ErrCodeUnrealizable,
				"%s drawing needs an odd cycle or an even cycle of at least 6 vertices, got %d", name, len(seq))
		}
		return p, nil
	})
}

// =============================================================================
// Strategies
// =============================================================================

func closingChord(n int) route { return route{from: n - 1, to: 0} }

func buildPolygon(s *Synthesizer, ids []string, _ int) (plan, bool) {
	n := len(ids)
	return s.circlePlan("polygon", ids, identity(n), cycleRoutes(n, closingChord(n))), true
}

func buildStar(s *Synthesizer, ids []string, _ int) (plan, bool) {
	n := len(ids)
	if n%2 == 0 {
		return plan{}, false
	}
	step := (n - 1) / 2
	order := make([]int, n)
	for i := range n {
		order[(i*step)%n] = i
	}
	return s.circlePlan("star", ids, order, cycleRoutes(n, closingChord(n))), true
}

// rectilinearOrder places an even cycle of n = 2m vertices by stepping
// around the circle: m-1 steps of m-1 slots, one of m, m-1 of m+1, and a
// final step of m back to the start.
func rectilinearOrder(n int) []int {
	m := n / 2
	steps := make([]int, 0, n)
	for range m - 1 {
		steps = append(steps, m-1)
	}
	steps = append(steps, m)
	for range m - 1 {
		steps = append(steps, m+1)
	}
	order := make([]int, n)
	slot := 0
	for v := range n {
		order[slot] = v
		slot = (slot + steps[v%len(steps)]) % n
	}
	return order
}

// buildEvenThrackle lays out the template
//
//	V2 | P(n-3) P(n-5) … P5 | P(n-2) P(n-4) … P4 | V(n-1) V(n-3) … V5 |
//	P1 V0 V3 P2 P(n-1) | V4 V6 … V(n-2) | V1 P0 P3
//
// where Vv is vertex v and Pi is the spine point of edge i = (i, i+1). Edge
// i starts at its even endpoint, arcs above to Pi and below to its odd end.
func buildEvenThrackle(s *Synthesizer, ids []string, _ int) (plan, bool) {
	n := len(ids)
	if n%2 == 1 || n < 6 {
		return plan{}, false
	}
	items := []item{vertexItem(2)}
	for i := n - 3; i > 4; i -= 2 {
		items = append(items, pointItem(i))
	}
	for i := n - 2; i > 3; i -= 2 {
		items = append(items, pointItem(i))
	}
	for v := n - 1; v > 4; v -= 2 {
		items = append(items, vertexItem(v))
	}
	items = append(items, pointItem(1), vertexItem(0), vertexItem(3), pointItem(2), pointItem(n-1))
	for v := 4; v < n-1; v += 2 {
		items = append(items, vertexItem(v))
	}
	items = append(items, vertexItem(1), pointItem(0), pointItem(3))

	routes := make([]route, n)
	for i := range n {
		u, w := i, (i+1)%n
		if u%2 == 1 {
			u, w = w, u
		}
		routes[i] = route{from: u, to: w, via: []int{i}, first: above}
	}
	return s.spinePlan("evenThrackle", ids, items, routes, true), true
}

// buildOddNearMax orders the path as n-3, n-1, n-5, n-7, …, 0, n-2, n-4, …, 1
// with spine points a before everything and b after the second vertex. The
// path edges arc below. The closing edge runs 0 → b below, b → a above and
// a → n-1 below, ending one short of the maximum.
func buildOddNearMax(s *Synthesizer, ids []string, _ int) (plan, bool) {
	n := len(ids)
	const a, b = 0, 1
	order := []int{n - 3, n - 1}
	for v := n - 5; v >= 0; v -= 2 {
		order = append(order, v)
	}
	for v := n - 2; v > 0; v -= 2 {
		order = append(order, v)
	}
	items := []item{pointItem(a)}
	for i, v := range order {
		if i == 2 {
			items = append(items, pointItem(b))
		}
		items = append(items, vertexItem(v))
	}
	closing := route{from: 0, to: n - 1, via: []int{b, a}, first: below}
	return s.spinePlan("oddNearMax", ids, items, cycleRoutes(n, closing), true), true
}

func buildOuterEdge(s *Synthesizer, ids []string, k int) (plan, bool) {
	n := len(ids)
	order := pathOrder(n, k)
	if order == nil {
		return plan{}, false
	}
	closing := route{from: n - 1, to: 0, first: above}
	return s.spinePlan("outerEdge", ids, vertexItems(order), cycleRoutes(n, closing), true), true
}

func buildSpineRoute(s *Synthesizer, ids []string, k int) (plan, bool) {
	n := len(ids)
	const p = 0
	for d := range 2 {
		base := pathBound(n) - d
		need := k - base
		order := insertionOrder([]int{0, 1}, 2, n, base)
		if order == nil {
			continue
		}
		for _, from := range []int{0, n - 1} {
			for gap := 0; gap <= n; gap++ {
				crossed, adjacent := closingCrossings(order, from, gap)
				if adjacent > 0 || crossed != need {
					continue
				}
				items := slices.Insert(vertexItems(order), gap, pointItem(p))
				closing := route{from: from, to: n - 1 - from, via: []int{p}, first: above}
				return s.spinePlan("spineRoute", ids, items, cycleRoutes(n, closing), true), true
			}
		}
	}
	return plan{}, false
}

// closingCrossings counts the path arcs crossed by a closing edge that leaves
// from above the spine, passes it at gap and ends below at the other end of
// the path. Only the lower arc can meet path arcs; it crosses those with
// exactly one end strictly between the gap and its end vertex. crossed counts
// independent edges, adjacent those touching the closing edge.
func closingCrossings(order []int, from, gap int) (crossed, adjacent int) {
	n := len(order)
	to := n - 1 - from
	pos := make([]int, n)
	for i, v := range order {
		pos[v] = 2 * i
	}
	q := 2*gap - 1
	lo, hi := min(q, pos[to]), max(q, pos[to])
	for a := 0; a+1 < n; a++ {
		if a == to || a+1 == to {
			continue
		}
		in := 0
		if pos[a] > lo && pos[a] < hi {
			in++
		}
		if pos[a+1] > lo && pos[a+1] < hi {
			in++
		}
		if in != 1 {
			continue
		}
		if a == 0 || a+1 == n-1 {
			adjacent++
		} else {
			crossed++
		}
	}
	return crossed, adjacent
}
