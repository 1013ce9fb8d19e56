package synth

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// shape is the underlying structure of a graph as seen by the synthesizer.
type shape struct {
	ids      []string       // Vertex ids in insertion order
	index    map[string]int // id -> position in ids
	ug       *simple.UndirectedGraph
	simple   bool // No self-loops and no parallel edges in either orientation
	edges    int
	maxDeg   int
	minDeg   int
	connects bool
}

func inspect(g *thrackle.Graph) shape {
	vs := g.Vertices()
	s := shape{
		index:  make(map[string]int, len(vs)),
		ug:     simple.NewUndirectedGraph(),
		simple: true,
		edges:  g.EdgeCount(),
	}
	for i, v := range vs {
		s.ids = append(s.ids, v.ID())
		s.index[v.ID()] = i
		s.ug.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges() {
		a, b := int64(s.index[e.V1().ID()]), int64(s.index[e.V2().ID()])
		if a == b || s.ug.HasEdgeBetween(a, b) {
			s.simple = false
			continue
		}
		s.ug.SetEdge(s.ug.NewEdge(s.ug.Node(a), s.ug.Node(b)))
	}
	s.minDeg = -1
	for i := range vs {
		d := s.ug.From(int64(i)).Len()
		s.maxDeg = max(s.maxDeg, d)
		if s.minDeg < 0 || d < s.minDeg {
			s.minDeg = d
		}
	}
	s.connects = len(vs) > 0 && len(topo.ConnectedComponents(s.ug)) == 1
	return s
}

// walk follows the structure from start, first stepping to next, always
// leaving each vertex through the neighbor it did not arrive from.
func walk(g *thrackle.Graph, start, next string, n int) []string {
	seq := []string{start}
	prev, cur := start, next
	for len(seq) < n && cur != start {
		seq = append(seq, cur)
		nb := g.Vertex(cur).Neighbors()
		step := ""
		for _, id := range nb {
			if id != prev {
				step = id
				break
			}
		}
		prev, cur = cur, step
	}
	return seq
}

// pathSequence returns the vertex ids of a simple path in walking order,
// starting from the first degree-1 vertex in insertion order.
func pathSequence(g *thrackle.Graph) ([]string, error) {
	s := inspect(g)
	n := len(s.ids)
	if n < 2 || !s.simple || !s.connects || s.edges != n-1 || s.maxDeg > 2 {
		return nil, errors.New(errors.ErrCodeNotPath,
			"graph with %d vertices and %d edges is not a simple path", n, s.edges)
	}
	for _, id := range s.ids {
		v := g.Vertex(id)
		if v.Degree() == 1 {
			return walk(g, id, v.Neighbors()[0], n), nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotPath, "path has no endpoint")
}

// cycleSequence returns the vertex ids of a simple cycle in walking order,
// starting from the first vertex in insertion order towards its first
// neighbor.
func cycleSequence(g *thrackle.Graph) ([]string, error) {
	s := inspect(g)
	n := len(s.ids)
	if n < 3 || !s.simple || !s.connects || s.edges != n || s.maxDeg != 2 || s.minDeg != 2 {
		return nil, errors.New(errors.ErrCodeNotCycle,
			"graph with %d vertices and %d edges is not a simple cycle", n, s.edges)
	}
	first := g.Vertex(s.ids[0])
	return walk(g, first.ID(), first.Neighbors()[0], n), nil
}
