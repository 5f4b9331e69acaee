package setcover

import (
	"context"
	"math/rand"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/internal/parallelfor"
	"github.com/nnglabs/mng/metricmatrix"
)

// Greedy computes an exact-greedy set cover for vertex v's instance: while
// any point remains uncovered, pick the candidate set that currently covers
// the most uncovered points, commit it, and decrement the uncovered counts
// of every set that also covered those points. This achieves the classical
// logn approximation ratio but costs O(n^2) per vertex, so it is used as a
// baseline for comparison against MinimumAdjacencyList rather than in the
// production dispatcher.
func Greedy(n int, v core.VertexID, perm *metricmatrix.Permutation, rank *metricmatrix.Rank) []core.VertexID {
	covered := make([]bool, n)
	covered[v] = true
	totalUncovered := n - 1

	// sets[s] is the set of points that s currently helps cover (every point
	// j such that s appears before v in j's permutation row).
	sets := make([][]core.VertexID, n)
	boundaries := make([]int, n)
	numUncovered := make([]int, n)

	for j := 0; j < n; j++ {
		row := perm.Row(core.VertexID(j))
		boundary := int(rank.At(core.VertexID(j), v))
		boundaries[j] = boundary
		for idx := 0; idx < boundary; idx++ {
			s := row[idx]
			sets[s] = append(sets[s], core.VertexID(j))
		}
	}
	for s := 0; s < n; s++ {
		numUncovered[s] = len(sets[s])
	}

	var adj []core.VertexID
	for totalUncovered > 0 {
		bestSet, bestCount := -1, 0
		for s, count := range numUncovered {
			if count > bestCount {
				bestCount = count
				bestSet = s
			}
		}
		if bestSet == -1 {
			// No remaining candidate covers anything; give up covering the
			// rest of this instance rather than looping forever.
			break
		}

		adj = append(adj, core.VertexID(bestSet))
		if bestCount == totalUncovered {
			break
		}
		totalUncovered -= bestCount

		for _, j := range sets[bestSet] {
			if covered[j] {
				continue
			}
			covered[j] = true
			row := perm.Row(j)
			for idx := 0; idx < boundaries[j]; idx++ {
				numUncovered[row[idx]]--
			}
		}
	}

	return adj
}

// BuildAllGreedy runs Greedy for every vertex in parallel, returning the
// full adjacency list set.
func BuildAllGreedy(n int, perm *metricmatrix.Permutation, rank *metricmatrix.Rank) ([][]core.VertexID, error) {
	adjlists := make([][]core.VertexID, n)
	err := parallelfor.Do(context.Background(), n, 1, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			adjlists[i] = Greedy(n, core.VertexID(i), perm, rank)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjlists, nil
}

// DefaultSampleSize is the number of uncovered points sampled each round of
// the Sampling baseline when the caller does not override it via
// BuildAllSampling's sampleSize parameter.
const DefaultSampleSize = 20

// Sampling computes a randomized approximate set cover for vertex v's
// instance: while points remain uncovered, sample sampleSize of them
// uniformly at random, tally votes for every set that covers a sampled
// point, and commit the set with the most votes. Cheaper per-round than
// Greedy (a constant number of rank lookups instead of a full rescan) at the
// cost of a weaker (expected logn) approximation guarantee.
func Sampling(n int, v core.VertexID, perm *metricmatrix.Permutation, rank *metricmatrix.Rank, rng *rand.Rand, sampleSize int) []core.VertexID {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	uncovered := make([]core.VertexID, 0, n-1)
	for i := 0; i < n; i++ {
		if core.VertexID(i) != v {
			uncovered = append(uncovered, core.VertexID(i))
		}
	}

	var adj []core.VertexID
	for len(uncovered) > 0 {
		votes := make(map[core.VertexID]int)
		for k := 0; k < sampleSize; k++ {
			sample := uncovered[rng.Intn(len(uncovered))]
			boundary := rank.At(sample, v)
			row := perm.Row(sample)
			for j := uint32(0); j < boundary; j++ {
				votes[row[j]]++
			}
		}

		bestSet, bestVotes := core.VertexID(0), 0
		for s, c := range votes {
			// Ties go to the lowest id so the result does not depend on map
			// iteration order.
			if c > bestVotes || (c == bestVotes && s < bestSet) {
				bestVotes = c
				bestSet = s
			}
		}
		if bestVotes == 0 {
			// No sampled point has any candidate covering set; give up
			// covering the remainder of this instance.
			break
		}
		adj = append(adj, bestSet)

		remaining := uncovered[:0]
		for _, j := range uncovered {
			if rank.At(j, bestSet) >= rank.At(j, v) {
				remaining = append(remaining, j)
			}
		}
		uncovered = remaining
	}

	return adj
}

// BuildAllSampling runs Sampling for every vertex in parallel, seeded
// deterministically from seed so a build is reproducible. sampleSize <= 0
// selects DefaultSampleSize.
func BuildAllSampling(n int, perm *metricmatrix.Permutation, rank *metricmatrix.Rank, seed int64, sampleSize int) ([][]core.VertexID, error) {
	adjlists := make([][]core.VertexID, n)
	err := parallelfor.Do(context.Background(), n, 1, func(lo, hi int) error {
		rng := rand.New(rand.NewSource(seed + int64(lo)))
		for i := lo; i < hi; i++ {
			adjlists[i] = Sampling(n, core.VertexID(i), perm, rank, rng, sampleSize)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjlists, nil
}
