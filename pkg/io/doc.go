// Package io provides JSON import and export for thrackle drawings.
//
// # JSON Format
//
// A drawing is an object with two arrays and the graph mode it was made
// under. Vertices carry their position and
// cosmetic attributes; edges name their endpoints and list their bends in
// polyline order from v1 to v2:
//
//	{
//	  "mode": {"simple": true},
//	  "vertices": [
//	    {"id": "a", "x": 40, "y": 200, "size": 8},
//	    {"id": "b", "x": 120, "y": 200, "size": 8}
//	  ],
//	  "edges": [
//	    {"v1": "a", "v2": "b", "bends": [{"x": 80, "y": 230}]}
//	  ]
//	}
//
// The mode object holds the flags directed, self_loops and simple. When it
// is present it replaces the graph flags passed to the importer; files
// without one take the caller's flags. Missing sizes and thicknesses take
// the graph defaults.
//
// Optional vertex fields are color, size, shape and label. Optional edge
// fields are dashed, thickness, color and label; bends take size, color and
// label. A label is an object with content, visible, offsetX, offsetY, color
// and fontSize.
//
// Crossings are not stored. They are derived data and are recomputed once
// after import.
//
// # Import
//
// [ReadJSON] replays the file in order: every vertex is added, then every
// edge with its bends, then crossings are computed. Rejections from the
// graph (duplicate ids, missing endpoints, self-loops in a loop-free graph)
// abort the import and are returned with the offending entry named.
//
//	g, err := io.ImportJSON("drawing.json", thrackle.DefaultOptions())
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the same shape. Bend ids are not
// exported; each import assigns fresh ones.
package io
