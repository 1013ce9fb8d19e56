// Package dot writes thrackle drawings as Graphviz DOT and renders them.
//
// Unlike a layered diagram, a drawing already fixes every coordinate. [ToDOT]
// therefore emits an undirected neato graph with each vertex pinned
// (pos="x,y!") and each bend as a point node, so edges run through their
// bends as straight segments. Crossings can be drawn as small markers:
// legal crossings in one color, illegal ones (adjacent edges, self-crossings)
// in another.
//
// Coordinates are taken as points with the y axis flipped, so a drawing
// looks the same as on screen.
//
//	src := dot.ToDOT(g, dot.Options{Labels: true, Crossings: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// [RenderSVG] uses [github.com/goccy/go-graphviz] in-process. [RenderPDF]
// and [RenderPNG] go through SVG and need librsvg.
package dot
