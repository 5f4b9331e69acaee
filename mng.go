// Package mng builds minimum navigable graphs: adjacency lists over a point
// set such that a greedy first-improvement walk from any vertex reaches any
// other vertex exactly. It dispatches a per-vertex approximate set-cover
// solver (package setcover) over a degree budget found by exponential
// search, after precomputing the distance/permutation/rank matrices
// (package metricmatrix) the solver needs.
package mng

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/diagnostics"
	"github.com/nnglabs/mng/internal/parallelfor"
	"github.com/nnglabs/mng/metricmatrix"
	"github.com/nnglabs/mng/point"
	"github.com/nnglabs/mng/setcover"
)

// AdjacencyLists is the per-vertex neighbor list a Build call produces.
type AdjacencyLists = [][]core.VertexID

// Diagnostics reports statistics about a completed Build call.
type Diagnostics = diagnostics.Diagnostics

// Build computes a minimum navigable graph over points using exponential
// search over the per-vertex degree budget: it repeatedly calls solveOpt
// with a doubling target degree until an attempt stays within its total
// degree estimate, matching the reference construction's "avg_deg *= 2"
// retry loop.
func Build(ctx context.Context, points *point.Set, optFns ...Option) (AdjacencyLists, Diagnostics, error) {
	start := time.Now()
	n := points.Len()
	if n < 2 {
		return nil, Diagnostics{}, &ErrInvalidInput{Reason: "need at least 2 points to build a navigable graph"}
	}

	o := applyOptions(optFns, n)
	logger := o.logger

	dist, err := metricmatrix.BuildDistance(points)
	if err != nil {
		return nil, Diagnostics{}, &ErrAllocation{Reason: "distance matrix", cause: err}
	}
	logger.LogMatrixBuild("distance", n, time.Since(start).Seconds(), nil)

	perm, err := metricmatrix.BuildPermutation(dist)
	if err != nil {
		return nil, Diagnostics{}, &ErrAllocation{Reason: "permutation matrix", cause: err}
	}
	logger.LogMatrixBuild("permutation", n, time.Since(start).Seconds(), nil)

	rank, err := metricmatrix.BuildRank(dist, perm)
	if err != nil {
		return nil, Diagnostics{}, &ErrAllocation{Reason: "rank matrix", cause: err}
	}
	logger.LogMatrixBuild("rank", n, time.Since(start).Seconds(), nil)

	targetDeg := o.initialDegree
	if targetDeg <= 0 {
		targetDeg = 1
	}

	for attempt := 0; ; attempt++ {
		if o.maxAttempts > 0 && attempt >= o.maxAttempts {
			return nil, Diagnostics{}, fmt.Errorf("%w: after %d attempts at target degree %d", ErrBudgetSearchExhausted, attempt, targetDeg)
		}
		if err := ctx.Err(); err != nil {
			return nil, Diagnostics{}, err
		}

		adj, ok, err := solveOpt(ctx, n, targetDeg, perm, rank, o.seed)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		logger.WithAttempt(attempt).LogAttempt(attempt, targetDeg, ok)

		if ok {
			diag := diagnostics.FromAdjacencyLists(adj, start, attempt)
			logger.LogBuildComplete(n, diag.MaxOutDegree, diag.AvgOutDegree, diag.BudgetDoublings, diag.BuildDuration.Seconds(), nil)
			return adj, diag, nil
		}
		targetDeg *= 2
	}
}

// solveOpt attempts a single degree-budget pass: it seeds each vertex's
// adjacency list with targetDeg*ceil(log2 n) distinct random edges (capped
// at n-1), distributes every vertex into
// the uncovered-buckets of the instances it must help cover, and then runs
// setcover.MinimumAdjacencyList per vertex, giving up (returning ok=false)
// the instant the running total degree exceeds twice the estimated average
// degree times n.
func solveOpt(ctx context.Context, n int, targetDeg int, perm *metricmatrix.Permutation, rank *metricmatrix.Rank, seed int64) (AdjacencyLists, bool, error) {
	logn := int(math.Ceil(math.Log2(float64(n))))
	estAvgDeg := targetDeg * logn
	estTotDeg := 2 * estAvgDeg * n

	adj := make(AdjacencyLists, n)

	err := parallelfor.Do(ctx, n, 1, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			rng := vertexRand(seed, i)
			adj[i] = seedRandomEdges(i, n, estAvgDeg, rng)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	uncoveredPerInstance := n / targetDeg
	if uncoveredPerInstance < 1 {
		uncoveredPerInstance = 1
	}
	uncovered := make([][]core.VertexID, n)
	locks := make([]sync.Mutex, n)

	err = parallelfor.Do(ctx, n, 1, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			row := perm.Row(core.VertexID(i))
			for j := 1; j < uncoveredPerInstance && j < n; j++ {
				p := row[j]
				locks[p].Lock()
				uncovered[p] = append(uncovered[p], core.VertexID(i))
				locks[p].Unlock()
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	var totDeg atomic.Int64
	blockSize := n / 2 / parallelfor.Workers()
	if blockSize < 1 {
		blockSize = 1
	}
	numBlocks := (n + blockSize - 1) / blockSize

	err = parallelfor.Do(ctx, numBlocks, 1, func(bLo, bHi int) error {
		for b := bLo; b < bHi; b++ {
			start := b * blockSize
			end := start + blockSize
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				if int(totDeg.Load()) > estTotDeg {
					return errBudgetExceeded
				}
				// Bucket append order depends on goroutine scheduling; sort
				// first so the seeded shuffle is reproducible.
				sort.Slice(uncovered[i], func(a, b int) bool { return uncovered[i][a] < uncovered[i][b] })
				rng := vertexRand(seed, i)
				shuffle(uncovered[i], rng)
				before := uncovered[i]
				adj[i] = setcover.MinimumAdjacencyList(n, core.VertexID(i), uncovered[i], adj[i], perm, rank)
				if !setcover.CoversAll(rank, core.VertexID(i), adj[i], before) {
					return &ErrCoverInfeasible{Vertex: uint32(i)}
				}
				totDeg.Add(int64(len(adj[i])))
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errBudgetExceeded) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if int(totDeg.Load()) > estTotDeg {
		return nil, false, nil
	}
	return adj, true, nil
}

// seedRandomEdges picks up to count distinct random neighbors of vertex i
// (excluding i itself) to pre-populate its adjacency list, before the
// set-cover pass adds whatever edges are still needed for navigability.
func seedRandomEdges(i, n, count int, rng *rand.Rand) []core.VertexID {
	if count > n-1 {
		count = n - 1
	}
	chosen := make(map[core.VertexID]struct{}, count)
	edges := make([]core.VertexID, 0, count)
	for len(edges) < count {
		j := core.VertexID(rng.Intn(n))
		if int(j) == i {
			continue
		}
		if _, ok := chosen[j]; ok {
			continue
		}
		chosen[j] = struct{}{}
		edges = append(edges, j)
	}
	return edges
}

// vertexRand returns a deterministic random source for vertex i, derived
// from the build seed so repeated Build calls over the same input and seed
// are reproducible regardless of scheduling order.
func vertexRand(seed int64, i int) *rand.Rand {
	return rand.New(rand.NewSource(seed*1000003 + int64(i)))
}

func shuffle(s []core.VertexID, rng *rand.Rand) {
	rng.Shuffle(len(s), func(a, b int) {
		s[a], s[b] = s[b], s[a]
	})
}
