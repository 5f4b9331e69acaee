// Package walk implements the greedy first-improvement descent used both as
// a query primitive over a built graph and as the navigability verifier: a
// graph is navigable from a source vertex iff a greedy walk from that
// source reaches every other vertex exactly (distance 0) when used as the
// query.
package walk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/point"
)

// AdjacencyLists is the per-vertex neighbor list produced by a set-cover
// solver: AdjacencyLists[i] holds the neighbors a walk may step to from
// vertex i.
type AdjacencyLists [][]core.VertexID

// Run performs a greedy first-improvement walk starting at source, seeking
// query. At each step it visits the current vertex's unvisited neighbors;
// the first one strictly closer to query than the current vertex becomes
// the new current vertex and the scan restarts from its neighbors (earlier
// neighbors already scanned this step stay marked visited so they are never
// revisited), and the walk halts the
// instant it finds an exact match (distance 0). It terminates when no
// neighbor improves on the current vertex, returning that vertex as the
// result along with the number of distance computations performed.
func Run(adj AdjacencyLists, points *point.Set, source, query core.VertexID) (core.VertexID, int) {
	visited := bitset.New(uint(points.Len()))
	current := source
	currentDist := points.Distance(source, query)
	distComps := 1

	for !visited.Test(uint(current)) {
		visited.Set(uint(current))
		for _, neighbor := range adj[current] {
			if visited.Test(uint(neighbor)) {
				continue
			}
			dist := points.Distance(neighbor, query)
			distComps++
			if dist < currentDist {
				if dist == 0 {
					return neighbor, distComps
				}
				visited.Set(uint(current))
				current = neighbor
				currentDist = dist
				break
			} else {
				visited.Set(uint(neighbor))
			}
		}
	}

	return current, distComps
}

// ErrNotNavigable is returned by VerifyNavigable when a greedy walk from
// source, aimed at vertex i as its own query, fails to terminate exactly at
// i for some i.
type ErrNotNavigable struct {
	Source   core.VertexID
	Target   core.VertexID
	Terminal core.VertexID
}

func (e *ErrNotNavigable) Error() string {
	return fmt.Sprintf("walk: graph not navigable from %d: walk toward %d terminated at %d", e.Source, e.Target, e.Terminal)
}

// VerifyNavigable checks that adj is navigable from source: for every
// vertex i, a greedy walk from source with query = points.At(i) must
// terminate exactly at i. This is the ground-truth correctness property the
// construction engine is built to guarantee; callers typically run it over
// a sample of sources on graphs too large to check exhaustively.
func VerifyNavigable(adj AdjacencyLists, points *point.Set, source core.VertexID) error {
	n := points.Len()
	for i := 0; i < n; i++ {
		target := core.VertexID(i)
		terminal, _ := Run(adj, points, source, target)
		if terminal != target {
			return &ErrNotNavigable{Source: source, Target: target, Terminal: terminal}
		}
	}
	return nil
}
