package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// ToGraph rebuilds a graph from d by replaying vertex, edge and bend
// insertions in order, then recomputing crossings once. A recorded Mode
// overrides the graph flags in opts; the strategy, advisor and logger always
// come from opts.
func (d Drawing) ToGraph(opts thrackle.Options) (*thrackle.Graph, error) {
	if m := d.Mode; m != nil {
		opts.Directed, opts.SelfLoops, opts.Simple = m.Directed, m.SelfLoops, m.Simple
	}
	g := thrackle.New(opts)

	for _, v := range d.Vertices {
		nv, err := g.AddVertex(v.ID, v.X, v.Y)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "vertex %s", v.ID)
		}
		if v.Size > 0 {
			nv.Size = v.Size
		}
		nv.Color, nv.Shape = v.Color, v.Shape
		if v.Label != nil {
			nv.Label = *v.Label
		}
	}
	for _, e := range d.Edges {
		ne, err := g.AddEdge(e.V1, e.V2)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s-%s", e.V1, e.V2)
		}
		ne.Dashed, ne.Color = e.Dashed, e.Color
		if e.Thickness > 0 {
			ne.Thickness = e.Thickness
		}
		if e.Label != nil {
			ne.Label = *e.Label
		}
		for i, b := range e.Bends {
			if err := errors.ValidateCoordinate(b.X, b.Y); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s bend %d", ne.ID(), i)
			}
			nb := g.AddBendToEdge(ne, b.X, b.Y, false)
			if b.Size > 0 {
				nb.Size = b.Size
			}
			nb.Color = b.Color
			if b.Label != nil {
				nb.Label = *b.Label
			}
		}
	}

	g.UpdateCrossings()
	return g, nil
}

// ReadJSON decodes a JSON drawing from r into a new graph configured by
// opts.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed or if
// the graph rejects a vertex, edge or bend; the error names the entry and
// wraps the graph's own error. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts thrackle.Options) (*thrackle.Graph, error) {
	var d Drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return d.ToGraph(opts)
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string, opts thrackle.Options) (*thrackle.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts)
}
