package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task represents a unit of work processed by the pool.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
	// Done is false when the task was never started because the run stopped early.
	Done bool
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
// Results are returned in input order regardless of completion order.
type Pool[T any, R any] struct {
	workers  int
	failFast bool
	process  ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// FailFast makes the pool stop handing out tasks after the first failure.
func (p *Pool[T, R]) FailFast() *Pool[T, R] {
	p.failFast = true
	return p
}

// Execute runs all inputs through the worker pool and returns results.
// Supports context cancellation.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Task[T, R], len(inputs))
	for i := range inputs {
		results[i].Input = inputs[i]
	}
	inputCh := make(chan int)

	var wg sync.WaitGroup

	// Start workers.
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				if ctx.Err() != nil {
					continue
				}
				result, err := p.process(ctx, inputs[idx])
				results[idx] = Task[T, R]{
					Input:  inputs[idx],
					Result: result,
					Err:    err,
					Done:   true,
				}
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
					if p.failFast {
						cancel()
					}
				}
			}
		}(w)
	}

	// Send inputs.
SEND:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break SEND
		case inputCh <- i:
		}
	}
	close(inputCh)

	// Wait for all workers to finish.
	wg.Wait()
	return results
}

// FirstError returns the error of the earliest failed task in input order, or
// ctx's error if some task never ran.
func FirstError[T any, R any](ctx context.Context, tasks []Task[T, R]) error {
	for _, t := range tasks {
		if t.Err != nil {
			return t.Err
		}
	}
	for _, t := range tasks {
		if !t.Done {
			if err := ctx.Err(); err != nil {
				return err
			}
			return context.Canceled
		}
	}
	return nil
}
