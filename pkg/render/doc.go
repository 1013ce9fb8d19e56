// Package render turns thrackle drawings into images.
//
// The [dot] subpackage writes a drawing as Graphviz DOT with every vertex
// pinned at its coordinates and renders it to SVG in-process. [ToPDF] and
// [ToPNG] convert that SVG with the external rsvg-convert tool (from
// librsvg):
//
//	src := dot.ToDOT(g, dot.Options{Crossings: true})
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := render.ToPDF(svg)
//
// [dot]: github.com/matzehuels/thrackle/pkg/render/dot
package render
