package setcover

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/metricmatrix"
	"github.com/nnglabs/mng/point"
)

func buildMatrices(t *testing.T, vectors [][]float32) (*metricmatrix.Permutation, *metricmatrix.Rank) {
	t.Helper()
	s, err := point.New(vectors)
	require.NoError(t, err)
	d, err := metricmatrix.BuildDistance(s)
	require.NoError(t, err)
	p, err := metricmatrix.BuildPermutation(d)
	require.NoError(t, err)
	r, err := metricmatrix.BuildRank(d, p)
	require.NoError(t, err)
	return p, r
}

// assertCoversAll checks that for every point p != i, at least one vertex in
// adj covers p (is strictly closer to p than i is) -- i.e. adj is a valid
// set cover for i's instance.
func assertCoversAll(t *testing.T, n int, i core.VertexID, adj []core.VertexID, rank *metricmatrix.Rank) {
	t.Helper()
	for p := core.VertexID(0); int(p) < n; p++ {
		if p == i {
			continue
		}
		ok := false
		for _, s := range adj {
			if rank.At(p, s) < rank.At(p, i) {
				ok = true
				break
			}
		}
		assert.Truef(t, ok, "point %d not covered by adjacency list %v for origin %d", p, adj, i)
	}
}

func lineMatrices(t *testing.T) (*metricmatrix.Permutation, *metricmatrix.Rank) {
	return buildMatrices(t, [][]float32{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
}

func TestMinimumAdjacencyListCoversSquare(t *testing.T) {
	p, r := buildMatrices(t, [][]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	n := p.Size()

	for i := core.VertexID(0); int(i) < n; i++ {
		var uncovered []core.VertexID
		for j := 0; j < n; j++ {
			if core.VertexID(j) != i {
				uncovered = append(uncovered, core.VertexID(j))
			}
		}
		adj := MinimumAdjacencyList(n, i, uncovered, nil, p, r)
		assertCoversAll(t, n, i, adj, r)
	}
}

func TestMinimumAdjacencyListCoversLine(t *testing.T) {
	p, r := lineMatrices(t)
	n := p.Size()

	for i := core.VertexID(0); int(i) < n; i++ {
		var uncovered []core.VertexID
		for j := 0; j < n; j++ {
			if core.VertexID(j) != i {
				uncovered = append(uncovered, core.VertexID(j))
			}
		}
		adj := MinimumAdjacencyList(n, i, uncovered, nil, p, r)
		assertCoversAll(t, n, i, adj, r)
	}
}

func TestMinimumAdjacencyListPreservesSeedEdges(t *testing.T) {
	p, r := lineMatrices(t)
	n := p.Size()

	seed := []core.VertexID{2}
	adj := MinimumAdjacencyList(n, 0, []core.VertexID{1, 3}, seed, p, r)
	assert.Contains(t, adj, core.VertexID(2))
	assertCoversAll(t, n, 0, adj, r)
}

func TestGreedyCoversAll(t *testing.T) {
	p, r := buildMatrices(t, [][]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {5, 5}})
	n := p.Size()

	for i := core.VertexID(0); int(i) < n; i++ {
		adj := Greedy(n, i, p, r)
		assertCoversAll(t, n, i, adj, r)
	}
}

func TestBuildAllGreedyProducesOneListPerVertex(t *testing.T) {
	p, r := lineMatrices(t)
	adjlists, err := BuildAllGreedy(p.Size(), p, r)
	require.NoError(t, err)
	assert.Len(t, adjlists, p.Size())
	for i, adj := range adjlists {
		assertCoversAll(t, p.Size(), core.VertexID(i), adj, r)
	}
}

func TestSamplingCoversAll(t *testing.T) {
	p, r := buildMatrices(t, [][]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {5, 5}})
	n := p.Size()
	rng := rand.New(rand.NewSource(42))

	for i := core.VertexID(0); int(i) < n; i++ {
		adj := Sampling(n, i, p, r, rng, 0)
		assertCoversAll(t, n, i, adj, r)
	}
}

func TestBuildAllSamplingIsDeterministicForFixedSeed(t *testing.T) {
	p, r := lineMatrices(t)

	a, err := BuildAllSampling(p.Size(), p, r, 7, 0)
	require.NoError(t, err)
	b, err := BuildAllSampling(p.Size(), p, r, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
