// Package pkg provides the libraries behind thrackle, a drawing engine for
// graphs whose crossings are counted and classified exactly.
//
// # Overview
//
// A thrackle is a drawing in which every pair of edges meets exactly once,
// either at a shared endpoint or at a proper crossing. For paths and cycles
// the number of independent edge pairs, the thrackle number, bounds how many
// crossings a good drawing can have. The packages here maintain drawings
// with bent edges, keep their crossing sets current under every edit, and
// synthesize drawings of paths and cycles with exactly k crossings.
//
// # Data Flow
//
//	synth.Request {shape, n, k, variant}
//	         ↓
//	    [thrackle/synth] (plan spine or circle placement, bends per edge)
//	         ↓
//	    [thrackle] Graph (vertices, edges, bends, crossing set)
//	         ↓
//	    [io] JSON drawings, [history] snapshots, [render/dot] DOT/SVG/PDF/PNG
//
// # Quick Start
//
//	g, _ := synth.BuildCycle(7, thrackle.DefaultOptions())
//	if err := synth.CircleDrawing(g, 12); err != nil {
//	    log.Fatal(err) // e.g. UNREALIZABLE for a 4-cycle with 2 crossings
//	}
//	fmt.Println(len(g.Crossings()), "of", g.ThrackleNumber())
//
//	svg, _ := dot.Render(ctx, g, "svg", dot.Options{Crossings: true})
//
// # Main Packages
//
// [thrackle] - The drawing model. Vertices, edges with ordered bends, and the
// derived crossing set, updated incrementally or by full recompute. Crossings
// between independent edges are legal; self-crossings and crossings between
// edges that share an endpoint are not.
//
// [thrackle/synth] - Exact-crossing synthesis for paths (linear, circular) and
// cycles (circle, star, even thrackle, maximum rectilinear).
//
// [geom] - Points, segments and the segment intersection test.
//
// [io] - The JSON drawing format.
//
// [render/dot] - Graphviz output with pinned coordinates and crossing markers.
//
// [history] - Undo/redo of drawings and snapshot stores (memory, file, MongoDB).
//
// [cache] - Drawing and render cache (file, Redis, null).
//
// [errors] - Error codes and their user-input, precondition or internal kind.
//
// [observability] - Hooks for synthesis, cache and HTTP metrics.
//
// [buildinfo] - Version information set at build time.
package pkg
