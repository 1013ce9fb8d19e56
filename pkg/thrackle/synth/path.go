package synth

import (
	"context"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// LinearPathDrawing draws a path with exactly k crossings, all legal, and
// returns the spacing between consecutive vertices on the line.
//
// With k = 0 the vertices sit on a line in path order and edges are
// straight. Otherwise the vertices are permuted along the line and every edge
// becomes one arc below it; two arcs cross exactly when their ends interleave.
// On failure it returns -1 and an error that has also been published on the
// graph's advisory channel; the graph is unchanged.
func (s *Synthesizer) LinearPathDrawing(ctx context.Context, g *thrackle.Graph, k int) (float64, error) {
	err := s.run(ctx, g, "linear-path", k, func() (plan, error) {
		return s.linearPlan(g, k)
	})
	if err != nil {
		return -1, err
	}
	return s.opts.Spacing, nil
}

// CircularPathDrawing draws a path with exactly k crossings using straight
// chords only. The linear order is wrapped onto a circle; interleaving along
// the line becomes interleaving around the circle, so the crossing count is
// preserved without bends.
func (s *Synthesizer) CircularPathDrawing(ctx context.Context, g *thrackle.Graph, k int) error {
	return s.run(ctx, g, "circular-path", k, func() (plan, error) {
		seq, order, err := s.pathPrecheck(g, k)
		if err != nil {
			return plan{}, err
		}
		return s.circlePlan("circular-path", seq, order, pathRoutes(len(seq))), nil
	})
}

func (s *Synthesizer) linearPlan(g *thrackle.Graph, k int) (plan, error) {
	seq, order, err := s.pathPrecheck(g, k)
	if err != nil {
		return plan{}, err
	}
	return s.spinePlan("linear-path", seq, vertexItems(order), pathRoutes(len(seq)), k > 0), nil
}

// pathPrecheck validates the path and k and returns the walking sequence
// with the left-to-right order realizing k.
func (s *Synthesizer) pathPrecheck(g *thrackle.Graph, k int) ([]string, []int, error) {
	seq, err := pathSequence(g)
	if err != nil {
		return nil, nil, err
	}
	if err := errors.ValidateCrossingTarget(k, g.ThrackleNumber()); err != nil {
		return nil, nil, err
	}
	order := pathOrder(len(seq), k)
	if order == nil {
		return nil, nil, errors.New(errors.ErrCodeUnrealizable,
			"no order of a %d-vertex path yields %d crossings", len(seq), k)
	}
	return seq, order, nil
}
