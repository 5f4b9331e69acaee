package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndAt(t *testing.T) {
	s, err := New([][]float32{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, []float32{1, 0}, s.At(1))
}

func TestNewEmpty(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestNewRejectsZeroDimension(t *testing.T) {
	_, err := New([][]float32{{}})
	require.Error(t, err)
	var dimErr *ErrInvalidDimension
	assert.ErrorAs(t, err, &dimErr)
}

func TestNewRejectsRaggedVectors(t *testing.T) {
	_, err := New([][]float32{{0, 0}, {1}})
	require.Error(t, err)
	var mismatch *ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Index)
}

func TestDistanceLine(t *testing.T) {
	s, err := New([][]float32{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
	require.NoError(t, err)

	assert.Equal(t, float32(1), s.Distance(0, 1))
	assert.Equal(t, float32(4), s.Distance(0, 2))
	assert.Equal(t, float32(9), s.Distance(0, 3))
	assert.Equal(t, float32(0), s.Distance(2, 2))
}

func TestDistanceSymmetric(t *testing.T) {
	s, err := New([][]float32{{0, 0}, {1, 2}, {3, -1}})
	require.NoError(t, err)

	for i := uint32(0); i < 3; i++ {
		for j := uint32(0); j < 3; j++ {
			assert.Equal(t, s.Distance(i, j), s.Distance(j, i))
		}
	}
}
