package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-ledger/pkg/workerpool"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	wp := workerpool.New(context.Background(), 3, 10)

	const n = 25
	results := make(chan workerpool.Result, n)
	var ran atomic.Int32
	for i := 0; i < n; i++ {
		i := i
		require.NoError(t, wp.Submit(workerpool.Task{
			Fn: func(context.Context) (any, error) {
				ran.Add(1)
				return i * 2, nil
			},
			ResultC: results,
		}))
	}
	wp.Close()
	close(results)

	sum := 0
	for r := range results {
		require.NoError(t, r.Err)
		sum += r.Value.(int)
	}
	assert.Equal(t, int32(n), ran.Load())
	assert.Equal(t, n*(n-1), sum)
}

func TestWorkerPool_PropagatesTaskErrors(t *testing.T) {
	wp := workerpool.New(context.Background(), 1, 1)
	boom := errors.New("boom")

	results := make(chan workerpool.Result, 1)
	require.NoError(t, wp.Submit(workerpool.Task{
		Fn:      func(context.Context) (any, error) { return nil, boom },
		ResultC: results,
	}))
	wp.Close()

	r := <-results
	assert.ErrorIs(t, r.Err, boom)
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := workerpool.New(ctx, 2, 0)
	err := wp.Submit(workerpool.Task{Fn: func(context.Context) (any, error) { return nil, nil }})
	assert.ErrorIs(t, err, context.Canceled)
	wp.Close()
}
