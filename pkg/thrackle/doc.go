// Package thrackle provides a mutable geometric graph whose pairwise edge
// crossings are tracked exactly.
//
// # Overview
//
// Edges are polylines: two endpoint vertices joined through an ordered
// sequence of bends. Each straight piece of a polyline is a [Subedge], and an
// interior intersection of two subedges is a [Crossing]. The [Graph] owns
// every vertex, edge and bend and keeps the crossing set and the curve
// complexity (the most bends on any edge) derived from them.
//
// A drawing is a thrackle when every pair of independent edges crosses
// exactly once and no adjacent pair crosses. [Graph.ThrackleNumber] gives
// the number of independent pairs, the upper bound on legal crossings.
//
// # Basic Usage
//
// Create a graph with [New], then add vertices and edges by id:
//
//	g := thrackle.New(thrackle.DefaultOptions())
//	g.AddVertex("a", 0, 0)
//	g.AddVertex("b", 100, 0)
//	g.AddEdge("a", "b")
//	g.AddBend("a", "b", 50, 40, false)
//
// Every mutation refreshes the crossing set before returning. Read it back
// with [Graph.Crossings] or summarised with [Graph.CrossingsCategories].
//
// # Crossing Classification
//
// Each crossing carries three flags:
//
//   - SelfCrossing: both subedges belong to the same edge (always illegal)
//   - Legal: the two edges have no endpoint vertex in common
//   - MoreThanOnce: the same pair of edges crosses somewhere else too
//
// Intersections within [geom.Epsilon] of a subedge end are not crossings.
// Touching at a shared vertex or bend is never reported.
//
// # Update Strategies
//
// [Full] recomputes all pairs after every mutation. [Incremental] recomputes
// only the edges a mutation touched and splices the result in. Both produce
// the same crossing set; incremental is the default.
//
// # Errors
//
// Rejected input (duplicate ids, missing endpoints, forbidden self-loops or
// parallel edges) returns an [errors.Error] and is also published to the
// graph's [Advisor]. The graph is left unchanged. Operations on entities that
// are not in the graph are logged at debug level and return nil or false.
//
// # Snapshots
//
// [Graph.Clone] produces an independent deep copy and [Graph.Replace] adopts
// another graph's state wholesale, which is all an undo stack needs.
// [Graph.ApplyLayout] commits a precomputed placement in a single step.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Callers serialise mutations.
package thrackle
