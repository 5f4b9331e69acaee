// Package metricmatrix builds the three dense per-pair matrices the
// construction engine operates on: pairwise squared-Euclidean distances, the
// per-point permutation of every other point sorted by that distance, and
// the inverse permutation (rank) used to answer "how close is p to i,
// relative to everything else i knows about" in O(1).
//
// All three matrices are n*n and are built once, up front, in parallel over
// rows using internal/parallelfor; the construction engine below treats them
// as read-only afterward.
package metricmatrix

import (
	"context"
	"fmt"
	"sort"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/internal/parallelfor"
	"github.com/nnglabs/mng/point"
)

// ErrInvalidInput is returned when the input PointSet cannot back a matrix
// (currently: zero points).
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("metricmatrix: invalid input: %s", e.Reason)
}

// rowGrain is the number of matrix rows handed to a single parallelfor task.
// Each row costs O(n) (or O(n log n) for the sort passes), so a small grain
// keeps load reasonably balanced without dominating scheduling overhead.
const rowGrain = 4

// Distance is the dense n*n matrix of pairwise squared-Euclidean distances.
type Distance struct {
	n     int
	dists []float32
}

// BuildDistance computes the pairwise squared-Euclidean distance matrix for
// every point in the set. Row i, column j holds points.Distance(i, j);
// the diagonal is zero and the matrix is symmetric by construction.
func BuildDistance(points *point.Set) (*Distance, error) {
	n := points.Len()
	if n == 0 {
		return nil, &ErrInvalidInput{Reason: "empty point set"}
	}

	dists := make([]float32, n*n)
	d := &Distance{n: n, dists: dists}

	err := parallelfor.Do(context.Background(), n, rowGrain, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			row := dists[i*n : i*n+n]
			row[i] = 0
			for j := i + 1; j < n; j++ {
				dist := points.Distance(core.VertexID(i), core.VertexID(j))
				row[j] = dist
				dists[j*n+i] = dist
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("metricmatrix: build distance matrix: %w", err)
	}

	return d, nil
}

// Size returns n, the number of points the matrix was built over.
func (d *Distance) Size() int {
	return d.n
}

// At returns the squared-Euclidean distance between points i and j.
func (d *Distance) At(i, j core.VertexID) float32 {
	return d.dists[int(i)*d.n+int(j)]
}

// row returns the full distance row for point i, for use by BuildPermutation
// without repeated bounds arithmetic.
func (d *Distance) row(i int) []float32 {
	return d.dists[i*d.n : i*d.n+d.n]
}

// Permutation is the dense n*n matrix whose row i lists every point index,
// ordered by ascending distance from point i (ties broken by index, matching
// a stable sort over the natural 0..n-1 order).
type Permutation struct {
	n       int
	indices []uint32
}

// BuildPermutation sorts, for every point i, all n point indices (including
// i itself, which sorts to position 0) by ascending distance from i.
func BuildPermutation(d *Distance) (*Permutation, error) {
	n := d.Size()
	indices := make([]uint32, n*n)
	p := &Permutation{n: n, indices: indices}

	err := parallelfor.Do(context.Background(), n, rowGrain, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			row := indices[i*n : i*n+n]
			for j := 0; j < n; j++ {
				row[j] = uint32(j)
			}
			distances := d.row(i)
			sort.SliceStable(row, func(a, b int) bool {
				return distances[row[a]] < distances[row[b]]
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("metricmatrix: build permutation matrix: %w", err)
	}

	return p, nil
}

// Size returns n.
func (p *Permutation) Size() int {
	return p.n
}

// At returns the index of the point that ranks j-th nearest to point i
// (At(i, 0) == i).
func (p *Permutation) At(i core.VertexID, j int) core.VertexID {
	return p.indices[int(i)*p.n+j]
}

// Row returns the full ordered-by-distance index row for point i.
func (p *Permutation) Row(i core.VertexID) []uint32 {
	off := int(i) * p.n
	return p.indices[off : off+p.n]
}

// Rank is the dense n*n matrix that inverts Permutation: Rank.At(i, j) is
// the 0-based position at which point j appears in Permutation.Row(i), with
// exact distance ties collapsed to the lowest position of the tie, i.e. the
// number of points strictly closer to i than j is.
type Rank struct {
	n     int
	ranks []uint32
}

// BuildRank computes the inverse of perm row by row, then collapses ranks
// across exact distance ties between adjacent *sorted positions*: if
// perm.Row(i)[k] and perm.Row(i)[k-1] are equidistant from i, the point at
// sorted position k is assigned the rank of the point at sorted position
// k-1. Walking the permutation's sorted order (rather than raw point index
// order) is required for correctness: two points can be an exact distance
// tie while sitting far apart in raw index order, with other, strictly
// closer points' indices falling between them.
func BuildRank(d *Distance, perm *Permutation) (*Rank, error) {
	n := d.Size()
	if perm.Size() != n {
		return nil, &ErrInvalidInput{Reason: "distance and permutation matrix size mismatch"}
	}

	ranks := make([]uint32, n*n)
	r := &Rank{n: n, ranks: ranks}

	err := parallelfor.Do(context.Background(), n, rowGrain, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			row := ranks[i*n : i*n+n]
			order := perm.Row(core.VertexID(i))
			for k, idx := range order {
				row[idx] = uint32(k)
			}

			distances := d.row(i)
			for k := 1; k < n; k++ {
				if distances[order[k]] == distances[order[k-1]] {
					row[order[k]] = row[order[k-1]]
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("metricmatrix: build rank matrix: %w", err)
	}

	return r, nil
}

// Size returns n.
func (r *Rank) Size() int {
	return r.n
}

// At returns how close point j is to point i, relative to every other point
// (0 means nearest, i.e. j == i).
func (r *Rank) At(i, j core.VertexID) uint32 {
	return r.ranks[int(i)*r.n+int(j)]
}
