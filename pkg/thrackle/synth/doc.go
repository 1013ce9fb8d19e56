// Package synth draws paths and cycles with an exact, caller-chosen number
// of crossings.
//
// # Overview
//
// Every entry point checks that the graph is a simple path or cycle and
// that the target lies in [0, ThrackleNumber()]. It then computes a full
// placement and commits it with [thrackle.Graph.ApplyLayout], so the graph
// is either completely redrawn or left untouched. Rejections are returned
// and also published on the graph's advisory channel.
//
// # Paths
//
// [Synthesizer.LinearPathDrawing] permutes the vertices along a horizontal
// line and draws each edge as one arc below it. Two arcs cross exactly when
// their ends interleave, so the crossing count is a property of the order
// alone. The order is grown one vertex at a time over the shortest prefix
// of the path that can reach the target; later vertices are appended next to
// their predecessor, which adds nothing.
//
// [Synthesizer.CircularPathDrawing] wraps the same order onto a circle and
// drops the bends.
//
// # Cycles
//
// [Synthesizer.CircleDrawing] picks the first applicable construction from
// a fixed table (polygon, star, evenThrackle, oddNearMax, outerEdge,
// spineRoute). Each is documented with the count it produces. All crossings
// are legal and no two edges cross twice. The 4-cycle with two crossings is
// rejected as unrealizable.
//
// [Synthesizer.StarDrawing], [Synthesizer.EvenCircleThrackle] and
// [Synthesizer.MaxRectilinearCircle] are fixed constructions without search.
//
// # Requests
//
// [Synthesizer.Synthesize] builds a fresh path or cycle from a [Request] and
// draws it, which is what the CLI and HTTP API use.
package synth
