package synth

import (
	"context"
	"fmt"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// Shapes and their drawing variants.
const (
	ShapePath  = "path"
	ShapeCycle = "cycle"

	VariantLinear         = "linear"
	VariantCircular       = "circular"
	VariantCircle         = "circle"
	VariantStar           = "star"
	VariantEvenThrackle   = "even-thrackle"
	VariantMaxRectilinear = "max-rectilinear"
)

// Variants lists the drawing variants available for each shape. The first
// entry is the default.
var Variants = map[string][]string{
	ShapePath:  {VariantLinear, VariantCircular},
	ShapeCycle: {VariantCircle, VariantStar, VariantEvenThrackle, VariantMaxRectilinear},
}

var minVertices = map[string]int{ShapePath: 2, ShapeCycle: 3}

// BuildPath returns the path 0-1-…-(n-1) with vertices on a line.
func BuildPath(n int, opts thrackle.Options) (*thrackle.Graph, error) {
	if err := errors.ValidateVertexCount(ShapePath, n, minVertices[ShapePath]); err != nil {
		return nil, err
	}
	g := thrackle.New(opts)
	for i := range n {
		if _, err := g.AddVertex(fmt.Sprint(i), DefaultOrigin.X+float64(i)*DefaultSpacing, DefaultOrigin.Y); err != nil {
			return nil, err
		}
		if i > 0 {
			if _, err := g.AddEdge(fmt.Sprint(i-1), fmt.Sprint(i)); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// BuildCycle returns the cycle 0-1-…-(n-1)-0.
func BuildCycle(n int, opts thrackle.Options) (*thrackle.Graph, error) {
	if err := errors.ValidateVertexCount(ShapeCycle, n, minVertices[ShapeCycle]); err != nil {
		return nil, err
	}
	g, err := BuildPath(n, opts)
	if err != nil {
		return nil, err
	}
	if _, err := g.AddEdge(fmt.Sprint(n-1), "0"); err != nil {
		return nil, err
	}
	return g, nil
}

// Request names a shape, its size, a crossing target and a drawing variant.
// An empty variant selects the shape's default.
type Request struct {
	Shape   string `json:"shape" toml:"shape"`
	N       int    `json:"n" toml:"n"`
	K       int    `json:"k" toml:"k"`
	Variant string `json:"variant,omitempty" toml:"variant"`
}

// Normalize validates r and fills in the default variant.
func (r Request) Normalize() (Request, error) {
	if err := errors.ValidateShape(r.Shape); err != nil {
		return r, err
	}
	if err := errors.ValidateVertexCount(r.Shape, r.N, minVertices[r.Shape]); err != nil {
		return r, err
	}
	variants := Variants[r.Shape]
	if r.Variant == "" {
		r.Variant = variants[0]
	}
	for _, v := range variants {
		if v == r.Variant {
			return r, nil
		}
	}
	return r, errors.New(errors.ErrCodeInvalidInput, "unknown %s variant %q (want one of %v)", r.Shape, r.Variant, variants)
}

// Synthesize builds the requested shape and draws it. Fixed variants (star,
// even-thrackle, max-rectilinear) ignore K.
func (s *Synthesizer) Synthesize(ctx context.Context, r Request, opts thrackle.Options) (*thrackle.Graph, error) {
	r, err := r.Normalize()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err, r.Shape)
	}
	var g *thrackle.Graph
	if r.Shape == ShapePath {
		g, err = BuildPath(r.N, opts)
	} else {
		g, err = BuildCycle(r.N, opts)
	}
	if err != nil {
		return nil, err
	}

	switch r.Variant {
	case VariantLinear:
		_, err = s.LinearPathDrawing(ctx, g, r.K)
	case VariantCircular:
		err = s.CircularPathDrawing(ctx, g, r.K)
	case VariantCircle:
		err = s.CircleDrawing(ctx, g, r.K)
	case VariantStar:
		err = s.StarDrawing(ctx, g)
	case VariantEvenThrackle:
		err = s.EvenCircleThrackle(ctx, g)
	case VariantMaxRectilinear:
		err = s.MaxRectilinearCircle(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
