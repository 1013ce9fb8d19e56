package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// Drawing is the persisted shape of a graph.
type Drawing struct {
	Mode     *Mode    `json:"mode,omitempty"`
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Mode records the graph flags a drawing was made under. Drawings without
// one are read with the caller's options.
type Mode struct {
	Directed  bool `json:"directed,omitempty"`
	SelfLoops bool `json:"self_loops,omitempty"`
	Simple    bool `json:"simple,omitempty"`
}

// Vertex is one persisted vertex.
type Vertex struct {
	ID    string          `json:"id"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Color string          `json:"color,omitempty"`
	Size  float64         `json:"size,omitempty"`
	Shape string          `json:"shape,omitempty"`
	Label *thrackle.Label `json:"label,omitempty"`
}

// Edge is one persisted edge with its bends in order from V1 to V2.
type Edge struct {
	V1        string          `json:"v1"`
	V2        string          `json:"v2"`
	Dashed    bool            `json:"dashed,omitempty"`
	Thickness float64         `json:"thickness,omitempty"`
	Color     string          `json:"color,omitempty"`
	Label     *thrackle.Label `json:"label,omitempty"`
	Bends     []Bend          `json:"bends,omitempty"`
}

// Bend is one persisted bend.
type Bend struct {
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Size  float64         `json:"size,omitempty"`
	Color string          `json:"color,omitempty"`
	Label *thrackle.Label `json:"label,omitempty"`
}

func labelOf(l thrackle.Label) *thrackle.Label {
	if l == (thrackle.Label{}) {
		return nil
	}
	return &l
}

// FromGraph converts g to its persisted shape.
func FromGraph(g *thrackle.Graph) Drawing {
	vs, es, opts := g.Vertices(), g.Edges(), g.Options()
	d := Drawing{
		Mode:     &Mode{Directed: opts.Directed, SelfLoops: opts.SelfLoops, Simple: opts.Simple},
		Vertices: make([]Vertex, len(vs)),
		Edges:    make([]Edge, len(es)),
	}
	for i, v := range vs {
		d.Vertices[i] = Vertex{
			ID:    v.ID(),
			X:     v.Pos().X,
			Y:     v.Pos().Y,
			Color: v.Color,
			Size:  v.Size,
			Shape: v.Shape,
			Label: labelOf(v.Label),
		}
	}
	for i, e := range es {
		out := Edge{
			V1:        e.V1().ID(),
			V2:        e.V2().ID(),
			Dashed:    e.Dashed,
			Thickness: e.Thickness,
			Color:     e.Color,
			Label:     labelOf(e.Label),
		}
		for _, b := range e.Bends() {
			out.Bends = append(out.Bends, Bend{
				X:     b.Pos().X,
				Y:     b.Pos().Y,
				Size:  b.Size,
				Color: b.Color,
				Label: labelOf(b.Label),
			})
		}
		d.Edges[i] = out
	}
	return d
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *thrackle.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *thrackle.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
