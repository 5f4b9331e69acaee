// Package distance provides the public squared-Euclidean distance primitive
// used throughout the metric preprocessing layer and the greedy walk
// verifier. The engine is metric-only: non-metric similarities (cosine,
// inner product) are out of scope, since the set-cover formulation in
// package setcover relies on the triangle inequality holding.
package distance

import "github.com/nnglabs/mng/internal/math32"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// equal-length vectors. Ordering under SquaredL2 is identical to ordering
// under true Euclidean distance, so it is used everywhere in place of the
// (more expensive) square root.
func SquaredL2(a, b []float32) float32 {
	return math32.SquaredL2(a, b)
}
