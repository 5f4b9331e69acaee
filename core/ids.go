// Package core holds identifier types shared across the metric
// preprocessing layer, the set-cover solvers, and the walk verifier.
package core

// VertexID is a dense identifier for a point within a PointSet. It is
// strictly 32-bit, matching the adjacency-list encoding and keeping the
// hot-path structures (rank rows, adjacency lists, bitsets) compact.
type VertexID = uint32

// MaxVertexID is the maximum representable VertexID.
const MaxVertexID VertexID = ^VertexID(0)
