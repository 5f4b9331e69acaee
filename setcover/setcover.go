// Package setcover implements the per-vertex adjacency-list solvers that
// turn the metric preprocessing matrices into a candidate navigable graph.
//
// Every solver in this package answers the same question for a fixed origin
// vertex i: which other vertices, if added to i's adjacency list, let a
// greedy walk starting from i always make progress toward any query?
// Framed as a set cover instance, "point p is covered by set s" means
// s is closer to p than i is (s would be chosen over i by a greedy walk
// aimed at p). MinimumAdjacencyList is the production solver (a
// commit-and-retract voting heuristic with a logarithmic approximation
// guarantee); Greedy and Sampling are baseline solvers used for comparison
// and smaller instances.
package setcover

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/metricmatrix"
)

// covers reports whether s covers p in the set cover instance rooted at i:
// s is strictly closer to p than i is, so a greedy walk toward p would
// prefer s over i.
func covers(rank *metricmatrix.Rank, i, s, p core.VertexID) bool {
	return rank.At(p, s) < rank.At(p, i)
}

// setsOf returns the sets that cover p in the instance rooted at i: every
// point strictly closer to p than i is, ordered by ascending distance from
// p. This is exactly the prefix of p's permutation row up to p's rank of i.
func setsOf(perm *metricmatrix.Permutation, rank *metricmatrix.Rank, i, p core.VertexID) []uint32 {
	return perm.Row(p)[:rank.At(p, i)]
}

// logThreshold returns ceil(log2(n)), the number of votes a candidate set
// must collect before MinimumAdjacencyList commits to it.
func logThreshold(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(n))))
}

// MinimumAdjacencyList computes an approximate minimum set cover for vertex
// i's set cover instance using a commit-and-retract voting heuristic: each
// uncovered point casts a vote for every set that could cover it, in
// ascending order of distance from the point, stopping at (and committing)
// the first set that already holds logn-1 votes, so that the point would be
// its logn-th voter. Committing a set retracts
// its voters' other votes, since those points are now covered and their
// in-flight votes for uncommitted sets are stale.
//
// uncovered is consumed (emptied) by the call; adj is the adjacency list to
// append newly committed sets to (the caller may pre-seed it with existing
// edges, e.g. random seed edges from the degree-budget dispatcher).
//
// Fallback: if a point p is popped from uncovered and setsOf(i, p) is
// exhausted without any candidate set already holding logn-1 votes (as for
// the first point processed, when no votes have been cast yet), p is
// force-covered by committing perm.At(p, 0), the first entry of p's own
// permutation row. For distinct points that entry is p itself, at distance
// 0 from p, so it covers p whenever p != i. If perm.At(p, 0) is i, no edge
// is added.
func MinimumAdjacencyList(n int, i core.VertexID, uncovered []core.VertexID, adj []core.VertexID, perm *metricmatrix.Permutation, rank *metricmatrix.Rank) []core.VertexID {
	logn := uint64(logThreshold(n))
	voters := make([]*roaring.Bitmap, n)

	// retract removes every other vote v cast before committing set s,
	// since v is now covered by s and its votes for other candidate sets
	// are stale.
	retract := func(s core.VertexID) {
		if voters[s] == nil {
			return
		}
		it := voters[s].Iterator()
		for it.HasNext() {
			v := core.VertexID(it.Next())
			for _, vs := range setsOf(perm, rank, i, v) {
				if vs != s && voters[vs] != nil {
					voters[vs].Remove(uint32(v))
				}
			}
		}
		voters[s] = nil
	}

	for len(uncovered) > 0 {
		p := uncovered[len(uncovered)-1]
		uncovered = uncovered[:len(uncovered)-1]

		covered := false
		for _, s := range adj {
			if covers(rank, i, s, p) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		sets := setsOf(perm, rank, i, p)
		committed := false
		for _, s := range sets {
			if voters[s] != nil && voters[s].GetCardinality() >= logn-1 {
				adj = append(adj, s)
				committed = true
				retract(s)
				break
			}
			if voters[s] == nil {
				voters[s] = roaring.New()
			}
			voters[s].Add(uint32(p))
		}

		if !committed {
			// No candidate set reached the vote threshold. Force a cover via
			// the first entry of p's own permutation row, perm.At(p, 0): p
			// itself for distinct points, at distance 0 from p, so a valid
			// cover whenever it is not i.
			fallback := perm.At(p, 0)
			if fallback != i {
				adj = append(adj, fallback)
				retract(fallback)
			}
		}
	}

	return adj
}

// CoversAll reports whether adj is a valid set cover for vertex i's
// instance: every point in uncovered (p != i) has some s in adj with
// covers(rank, i, s, p). MinimumAdjacencyList's fallback step guarantees
// this holds for its own output, so callers use CoversAll as a defensive
// post-condition check rather than a normal control path.
func CoversAll(rank *metricmatrix.Rank, i core.VertexID, adj []core.VertexID, uncovered []core.VertexID) bool {
	for _, p := range uncovered {
		if p == i {
			continue
		}
		ok := false
		for _, s := range adj {
			if covers(rank, i, s, p) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
