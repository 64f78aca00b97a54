package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsEveryIndex(t *testing.T) {
	const n = 500
	var seen int64
	err := Run(context.Background(), n, 8, func(ctx context.Context, i int) error {
		atomic.AddInt64(&seen, 1)
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, n, seen)
}

func TestRunPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 100, 4, func(ctx context.Context, i int) error {
		if i == 42 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestCollectGathersInOrder(t *testing.T) {
	out, err := Collect(context.Background(), 10, 3, func(ctx context.Context, i int) (int, error) {
		return i * i, nil
	})
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestRunZeroLengthNoop(t *testing.T) {
	err := Run(context.Background(), 0, 4, func(ctx context.Context, i int) error {
		t.Fatal("should not be called")
		return nil
	})
	require.NoError(t, err)
}
