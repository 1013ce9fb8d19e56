package thrackle

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/thrackle/pkg/geom"
)

func crossingKeys(cs []Crossing) []string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = fmt.Sprintf("%s|%v|%v|%v", c.ID, c.Legal, c.MoreThanOnce, c.SelfCrossing)
	}
	slices.Sort(keys)
	return keys
}

func fullRecompute(g *Graph) []Crossing {
	c := g.Clone()
	c.UpdateCrossings()
	return c.Crossings()
}

func TestCrossingLegal(t *testing.T) {
	g, _ := newTestGraph(t)
	mustVertex(t, g, "a", 0, 0)
	mustVertex(t, g, "b", 10, 10)
	mustVertex(t, g, "c", 0, 10)
	mustVertex(t, g, "d", 10, 0)
	mustEdge(t, g, "a", "b")
	mustEdge(t, g, "c", "d")

	cs := g.Crossings()
	if len(cs) != 1 {
		t.Fatalf("Crossings() = %d, want 1", len(cs))
	}
	c := cs[0]
	if !c.Legal || c.SelfCrossing || c.MoreThanOnce {
		t.Errorf("crossing flags = %+v, want legal only", c)
	}
	if !c.At.Equals(geom.Pt(5, 5)) {
		t.Errorf("At = %v, want (5, 5)", c.At)
	}
	if c.Edges != [2]string{"a-b", "c-d"} {
		t.Errorf("Edges = %v, want [a-b c-d]", c.Edges)
	}
	if c.ID != "a-b[0].c-d[0]" {
		t.Errorf("ID = %s, want a-b[0].c-d[0]", c.ID)
	}
}

func TestAdjacentCrossingIsIllegal(t *testing.T) {
	g, _ := newTestGraph(t)
	mustVertex(t, g, "a", 0, 0)
	mustVertex(t, g, "b", 10, 0)
	mustVertex(t, g, "c", 10, 5)
	mustEdge(t, g, "a", "b")
	mustEdge(t, g, "a", "c")
	g.AddBend("a", "c", 5, -5, false)
	g.AddBend("a", "c", 5, 5, false)

	cs := g.Crossings()
	if len(cs) != 1 {
		t.Fatalf("Crossings() = %d, want 1", len(cs))
	}
	if cs[0].Legal || cs[0].SelfCrossing {
		t.Errorf("crossing flags = %+v, want illegal neighbor crossing", cs[0])
	}
	if got := g.CrossingsCategories(); got != (Categories{Neighbor: 1}) {
		t.Errorf("CrossingsCategories() = %+v, want one neighbor", got)
	}
}

func TestSelfCrossing(t *testing.T) {
	g, _ := newTestGraph(t)
	mustVertex(t, g, "a", 0, 0)
	mustVertex(t, g, "b", 20, 0)
	mustEdge(t, g, "a", "b")
	g.AddBend("a", "b", 10, 0, false)
	g.AddBend("a", "b", 10, 10, false)
	g.AddBend("a", "b", 5, -5, false)

	cs := g.Crossings()
	if len(cs) != 1 {
		t.Fatalf("Crossings() = %d, want 1", len(cs))
	}
	if !cs[0].SelfCrossing || cs[0].Legal {
		t.Errorf("crossing flags = %+v, want self-crossing", cs[0])
	}
	if cs[0].Edges != [2]string{"a-b", "a-b"} {
		t.Errorf("Edges = %v, want [a-b a-b]", cs[0].Edges)
	}
	if got := g.CrossingsCategories(); got != (Categories{Self: 1}) {
		t.Errorf("CrossingsCategories() = %+v, want one self", got)
	}
}

func TestMultipleCrossings(t *testing.T) {
	g, _ := newTestGraph(t)
	mustVertex(t, g, "a", 0, 0)
	mustVertex(t, g, "b", 30, 0)
	mustVertex(t, g, "c", 10, -10)
	mustVertex(t, g, "d", 20, -10)
	mustEdge(t, g, "a", "b")
	mustEdge(t, g, "c", "d")
	g.AddBend("c", "d", 15, 10, false)

	cs := g.Crossings()
	if len(cs) != 2 {
		t.Fatalf("Crossings() = %d, want 2", len(cs))
	}
	for _, c := range cs {
		if !c.Legal || !c.MoreThanOnce {
			t.Errorf("crossing flags = %+v, want legal and more than once", c)
		}
	}
	if got := g.CrossingsCategories(); got != (Categories{Legal: 2, Multiple: 2}) {
		t.Errorf("CrossingsCategories() = %+v", got)
	}

	// Pulling the bend below the line leaves no crossing and clears the flag
	// on both sides of the splice.
	b := g.Edge("c", "d").Bends()[0]
	g.MoveBend(b.ID(), 15, -5)
	if len(g.Crossings()) != 0 {
		t.Errorf("Crossings() after move = %d, want 0", len(g.Crossings()))
	}
}

func TestThrackleNumber(t *testing.T) {
	path := func(n int) *Graph {
		g := New(DefaultOptions())
		for i := range n {
			_, _ = g.AddVertex(fmt.Sprint(i), float64(i), 0)
			if i > 0 {
				_, _ = g.AddEdge(fmt.Sprint(i-1), fmt.Sprint(i))
			}
		}
		return g
	}
	for n := 2; n <= 9; n++ {
		want := 0
		if n >= 3 {
			want = (n - 2) * (n - 3) / 2
		}
		if got := path(n).ThrackleNumber(); got != want {
			t.Errorf("path(%d).ThrackleNumber() = %d, want %d", n, got, want)
		}
	}

	for n := 2; n <= 8; n++ {
		g := New(DefaultOptions())
		_, _ = g.AddVertex("c", 0, 0)
		for i := 1; i < n; i++ {
			_, _ = g.AddVertex(fmt.Sprint(i), float64(i), 1)
			_, _ = g.AddEdge("c", fmt.Sprint(i))
		}
		if got := g.ThrackleNumber(); got != 0 {
			t.Errorf("star(%d).ThrackleNumber() = %d, want 0", n, got)
		}
	}

	c5 := path(5)
	_, _ = c5.AddEdge("4", "0")
	if got := c5.ThrackleNumber(); got != 5 {
		t.Errorf("C5.ThrackleNumber() = %d, want 5", got)
	}

	k4 := path(4)
	k4.AddAllEdges(nil, "")
	if got := k4.ThrackleNumber(); got != 3 {
		t.Errorf("K4.ThrackleNumber() = %d, want 3", got)
	}
}

func TestThrackleNumberLoopsAndParallelEdges(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		edges [][2]string
		want  int
	}{
		{"self-loop", Options{SelfLoops: true, Simple: true}, [][2]string{{"a", "a"}, {"a", "b"}, {"c", "d"}}, 2},
		{"loop and its neighbor", Options{SelfLoops: true, Simple: true}, [][2]string{{"a", "a"}, {"a", "b"}}, 0},
		{"antiparallel", Options{Directed: true, Simple: true}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}}, 2},
		{"parallel", Options{}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.opts)
			for i, id := range []string{"a", "b", "c", "d"} {
				_, _ = g.AddVertex(id, float64(i), float64(i%2))
			}
			for _, e := range tt.edges {
				if _, err := g.AddEdge(e[0], e[1]); err != nil {
					t.Fatalf("AddEdge(%s, %s) error: %v", e[0], e[1], err)
				}
			}
			if got := g.ThrackleNumber(); got != tt.want {
				t.Errorf("ThrackleNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestIncrementalMatchesFull replays random edits under the incremental
// strategy and checks the crossing set against a full recompute after each.
func TestIncrementalMatchesFull(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 99))
			g := New(DefaultOptions())
			coord := func() float64 { return rng.Float64() * 200 }

			for i := range 8 {
				_, _ = g.AddVertex(fmt.Sprint(i), coord(), coord())
			}
			for step := range 300 {
				vs, es := g.Vertices(), g.Edges()
				switch op := rng.IntN(9); {
				case op == 0:
					_, _ = g.AddNewVertex(coord(), coord())
				case op <= 2 && len(vs) > 1:
					a, b := vs[rng.IntN(len(vs))], vs[rng.IntN(len(vs))]
					_, _ = g.AddEdge(a.ID(), b.ID())
				case op == 3 && len(es) > 0:
					e := es[rng.IntN(len(es))]
					g.AddBendToEdge(e, coord(), coord(), rng.IntN(2) == 0)
				case op == 4 && len(vs) > 0:
					v := vs[rng.IntN(len(vs))]
					g.MoveVertex(v.ID(), coord(), coord())
				case op == 5 && len(g.Bends()) > 0:
					bs := g.Bends()
					g.MovePoint(bs[rng.IntN(len(bs))], coord(), coord())
				case op == 6 && len(es) > 0 && rng.IntN(3) == 0:
					e := es[rng.IntN(len(es))]
					g.DeleteEdge(e.V1().ID(), e.V2().ID())
				case op == 7 && len(vs) > 4 && rng.IntN(4) == 0:
					g.DeleteVertex(vs[rng.IntN(len(vs))].ID())
				case op == 8 && len(g.Bends()) > 0:
					bs := g.Bends()
					g.RemoveBend(bs[rng.IntN(len(bs))].ID())
				}

				got, want := crossingKeys(g.Crossings()), crossingKeys(fullRecompute(g))
				if !slices.Equal(got, want) {
					t.Fatalf("step %d: incremental %d crossings, full %d", step, len(got), len(want))
				}
			}
		})
	}
}

func TestFullStrategy(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = Full
	g := New(opts)
	_, _ = g.AddVertex("a", 0, 0)
	_, _ = g.AddVertex("b", 10, 10)
	_, _ = g.AddVertex("c", 0, 10)
	_, _ = g.AddVertex("d", 10, 0)
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("c", "d")
	if len(g.Crossings()) != 1 {
		t.Fatalf("Crossings() = %d, want 1", len(g.Crossings()))
	}
	g.MoveVertex("d", 0, 20)
	if len(g.Crossings()) != 0 {
		t.Errorf("Crossings() after move = %d, want 0", len(g.Crossings()))
	}
	g.SetStrategy(Incremental)
	g.MoveVertex("d", 10, 0)
	if len(g.Crossings()) != 1 {
		t.Errorf("Crossings() after incremental move = %d, want 1", len(g.Crossings()))
	}
}
