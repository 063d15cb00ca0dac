package workerpool

import (
	"context"
	"sync"
)

// Task is a unit of work for the pool.
// Fn must be safe to run concurrently with other tasks.
// ResultC receives the outcome if non-nil; it should be buffered.
type Task struct {
	Fn      func(ctx context.Context) (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a pool with workerCount workers bound to ctx.
// Once ctx is cancelled, queued tasks are answered with ctx.Err() instead of running.
func New(ctx context.Context, workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	wp := &WorkerPool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		var res Result
		if err := wp.ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Value, res.Err = task.Fn(wp.ctx)
		}
		if task.ResultC != nil {
			task.ResultC <- res
		}
	}
}

// Submit queues a task. It blocks while the queue is full and gives up
// with the context error if the pool is cancelled first.
func (wp *WorkerPool) Submit(task Task) error {
	if err := wp.ctx.Err(); err != nil {
		return err
	}
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

// Close stops accepting tasks and waits for queued ones to drain.
// Submit must not be called after Close.
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
	wp.cancel()
}
