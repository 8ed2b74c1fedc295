package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteKeepsInputOrder(t *testing.T) {
	inputs := []int{5, 1, 4, 2, 3}
	pool := NewPool[int, int](3, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	tasks := pool.Execute(context.Background(), inputs)
	for i, task := range tasks {
		if !task.Done || task.Err != nil {
			t.Fatalf("task %d: done=%v err=%v", i, task.Done, task.Err)
		}
		if task.Input != inputs[i] || task.Result != inputs[i]*10 {
			t.Fatalf("task %d = %+v", i, task)
		}
	}
	if err := FirstError(context.Background(), tasks); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestExecuteFailFast(t *testing.T) {
	var ran atomic.Int32
	boom := errors.New("boom")
	pool := NewPool[int, int](1, func(_ context.Context, n int) (int, error) {
		ran.Add(1)
		if n == 2 {
			return 0, boom
		}
		return n, nil
	}).FailFast()

	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5, 6})
	if err := FirstError(context.Background(), tasks); !errors.Is(err, boom) {
		t.Fatalf("FirstError = %v, want boom", err)
	}
	if got := ran.Load(); got != 2 {
		t.Fatalf("ran %d tasks, want 2", got)
	}
	if tasks[5].Done {
		t.Fatal("task after failure should not run")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		return n, ctx.Err()
	})
	tasks := pool.Execute(ctx, []int{1, 2, 3})
	if err := FirstError(ctx, tasks); err == nil {
		t.Fatal("expected error from cancelled run")
	}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	pool := NewPool[int, int](0, func(_ context.Context, n int) (int, error) { return n, nil })
	if pool.workers != 1 {
		t.Fatalf("workers = %d", pool.workers)
	}
}
