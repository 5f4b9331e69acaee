// Package point provides the PointSet data model: an ordered, immutable
// collection of fixed-dimensional float32 vectors with squared-Euclidean
// distance, backed by a single flat buffer for cache locality.
package point

import (
	"fmt"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/distance"
)

// ErrInvalidDimension is returned when a PointSet is constructed with a
// non-positive dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("point: invalid dimension %d", e.Dimension)
}

// ErrDimensionMismatch is returned when a vector's length does not match
// the PointSet's dimension.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point: vector %d has dimension %d, expected %d", e.Index, e.Actual, e.Expected)
}

// Set is an ordered, 0-indexed, immutable collection of n d-dimensional
// points. Vector storage is a single row-major []float32 buffer of length
// n*d, mirroring the reference vector store's contiguous layout.
type Set struct {
	dim  int
	data []float32
}

// New builds a PointSet from an in-memory slice of equal-length vectors.
// The vectors are copied; the caller's slices may be reused afterward.
func New(vectors [][]float32) (*Set, error) {
	if len(vectors) == 0 {
		return &Set{dim: 0, data: nil}, nil
	}

	dim := len(vectors[0])
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	data := make([]float32, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(v)}
		}
		copy(data[i*dim:(i+1)*dim], v)
	}

	return &Set{dim: dim, data: data}, nil
}

// Len returns the number of points, n.
func (s *Set) Len() int {
	if s.dim == 0 {
		return 0
	}
	return len(s.data) / s.dim
}

// Dim returns the point dimension, d.
func (s *Set) Dim() int {
	return s.dim
}

// At returns a read-only view of point i's coordinates. The id of a point
// is its index; callers must not retain the returned slice past the next
// mutation of s (Set is immutable after construction, so in practice the
// slice is valid for the PointSet's whole lifetime).
func (s *Set) At(i core.VertexID) []float32 {
	off := int(i) * s.dim
	return s.data[off : off+s.dim]
}

// Distance returns the squared-Euclidean distance between points i and j.
func (s *Set) Distance(i, j core.VertexID) float32 {
	if i == j {
		return 0
	}
	return distance.SquaredL2(s.At(i), s.At(j))
}
