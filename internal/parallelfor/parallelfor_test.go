package parallelfor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoCoversEveryIndexExactlyOnce(t *testing.T) {
	const n = 997 // odd, prime-ish size to exercise uneven chunking
	var hits [n]int32

	err := Do(context.Background(), n, 7, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
		return nil
	})
	require.NoError(t, err)

	for i, h := range hits {
		assert.Equalf(t, int32(1), h, "index %d visited %d times", i, h)
	}
}

func TestDoZeroN(t *testing.T) {
	called := false
	err := Do(context.Background(), 0, 4, func(lo, hi int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDoPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	err := Do(context.Background(), 100, 10, func(lo, hi int) error {
		if lo == 0 {
			return sentinel
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestDoNonPositiveGrainTreatedAsOne(t *testing.T) {
	var count int32
	err := Do(context.Background(), 5, 0, func(lo, hi int) error {
		assert.Equal(t, hi-lo, 1)
		atomic.AddInt32(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(5), count)
}
