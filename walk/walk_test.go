package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnglabs/mng/core"
	"github.com/nnglabs/mng/point"
)

func mustPoints(t *testing.T, vectors [][]float32) *point.Set {
	t.Helper()
	s, err := point.New(vectors)
	require.NoError(t, err)
	return s
}

func TestRunLineGraph(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
	adj := AdjacencyLists{
		{1},
		{0, 2},
		{1, 3},
		{2},
	}

	terminal, comps := Run(adj, points, 0, 3)
	assert.Equal(t, core.VertexID(3), terminal)
	assert.GreaterOrEqual(t, comps, 1)
}

func TestRunStopsExactlyAtQuery(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {2, 0}})
	adj := AdjacencyLists{
		{1, 2},
		{0, 2},
		{0, 1},
	}

	terminal, _ := Run(adj, points, 0, 1)
	assert.Equal(t, core.VertexID(1), terminal)
}

func TestVerifyNavigableTriangleFullyConnected(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {0, 1}})
	adj := AdjacencyLists{
		{1, 2},
		{0, 2},
		{0, 1},
	}

	for i := core.VertexID(0); i < 3; i++ {
		assert.NoError(t, VerifyNavigable(adj, points, i))
	}
}

func TestVerifyNavigableSquareRing(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	adj := AdjacencyLists{
		{1, 3},
		{0, 2},
		{1, 3},
		{0, 2},
	}

	assert.NoError(t, VerifyNavigable(adj, points, 0))
}

func TestVerifyNavigableDetectsDisconnectedGraph(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {10, 0}, {11, 0}})
	adj := AdjacencyLists{
		{1},
		{0},
		{3},
		{2},
	}

	err := VerifyNavigable(adj, points, 0)
	require.Error(t, err)
	var notNav *ErrNotNavigable
	assert.ErrorAs(t, err, &notNav)
}

func TestRunSingletonGraph(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}})
	adj := AdjacencyLists{{}}

	terminal, comps := Run(adj, points, 0, 0)
	assert.Equal(t, core.VertexID(0), terminal)
	assert.Equal(t, 1, comps)
}

func TestRunColinearDuplicatePoints(t *testing.T) {
	points := mustPoints(t, [][]float32{{0, 0}, {1, 0}, {1, 0}, {2, 0}})
	adj := AdjacencyLists{
		{1, 2},
		{0, 2, 3},
		{0, 1, 3},
		{1, 2},
	}

	terminal, _ := Run(adj, points, 0, 3)
	assert.Equal(t, core.VertexID(3), terminal)
}
