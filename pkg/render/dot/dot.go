package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/observability"
	"github.com/matzehuels/thrackle/pkg/render"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// Marker colors for crossings.
const (
	LegalColor   = "#2e7d32"
	IllegalColor = "#c62828"
)

// Options configures DOT generation.
type Options struct {
	// Labels shows vertex ids (or label content when visible) next to vertices.
	Labels bool
	// Crossings draws a marker at every crossing.
	Crossings bool
	// Scale multiplies all coordinates. Zero means 1.
	Scale float64
}

// ToDOT converts a drawing to Graphviz DOT with pinned positions.
func ToDOT(g *thrackle.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	pos := func(x, y float64) string {
		return fmt.Sprintf("pos=\"%s,%s!\"", num(x*scale), num(-y*scale))
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, fontsize=10];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := []string{pos(v.Pos().X, v.Pos().Y), fmt.Sprintf("width=%s", num(2*v.Size*scale/72))}
		attrs = append(attrs, fmt.Sprintf("label=%q", vertexLabel(v, opts.Labels)))
		if v.Color != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", v.Color))
		}
		if s := nodeShape(v.Shape); s != "" {
			attrs = append(attrs, "shape="+s)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		ids := []string{e.V1().ID()}
		for _, b := range e.Bends() {
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.03, label=\"\", %s];\n", b.ID(), pos(b.Pos().X, b.Pos().Y))
			ids = append(ids, b.ID())
		}
		ids = append(ids, e.V2().ID())

		attrs := edgeAttrs(e)
		for i := 0; i+1 < len(ids); i++ {
			fmt.Fprintf(&buf, "  %q -- %q%s;\n", ids[i], ids[i+1], attrs)
		}
	}

	if opts.Crossings {
		buf.WriteString("\n")
		for _, c := range g.Crossings() {
			color := LegalColor
			if !c.Legal {
				color = IllegalColor
			}
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, color=%q, %s];\n",
				"crossing:"+c.ID, color, pos(c.At.X, c.At.Y))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func num(f float64) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func vertexLabel(v *thrackle.Vertex, show bool) string {
	if !show {
		return ""
	}
	if v.Label.Visible && v.Label.Content != "" {
		return v.Label.Content
	}
	return v.ID()
}

func nodeShape(s string) string {
	switch s {
	case "square", "box":
		return "box"
	case "triangle":
		return "triangle"
	case "diamond":
		return "diamond"
	}
	return ""
}

func edgeAttrs(e *thrackle.Edge) string {
	var attrs []string
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
	}
	if e.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if e.Thickness > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%s", num(e.Thickness)))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) (out []byte, err error) {
	hooks := observability.Synthesis()
	start := time.Now()
	hooks.OnRenderStart(ctx, "svg")
	defer func() { hooks.OnRenderComplete(ctx, "svg", len(out), time.Since(start), err) }()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// Render produces the drawing in format: "dot", "svg", "pdf" or "png".
func Render(ctx context.Context, g *thrackle.Graph, format string, opts Options) ([]byte, error) {
	src := ToDOT(g, opts)
	switch format {
	case "dot":
		return []byte(src), nil
	case "svg":
		return RenderSVG(ctx, src)
	case "pdf":
		return RenderPDF(ctx, src)
	case "png":
		return RenderPNG(ctx, src, 2)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %v)", format, render.Formats)
}
