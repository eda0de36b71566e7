package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3)
	if pool.Size() != 3 {
		t.Fatalf("expected 3 workers, have %d", pool.Size())
	}
	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if err := pool.Submit(context.Background(), func() {
			defer wg.Done()
			count.Add(1)
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	wg.Wait()
	pool.Shutdown()
	if count.Load() != 100 {
		t.Errorf("expected 100 tasks to run, %d did", count.Load())
	}
}

func TestWorkerPoolDefaultSize(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()
	if pool.Size() < 1 {
		t.Errorf("expected at least one worker, have %d", pool.Size())
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()
	pool.Shutdown()
	err := pool.Submit(context.Background(), func() {})
	if !errors.Is(err, ErrPoolShutdown) {
		t.Errorf("expected ErrPoolShutdown, got %v", err)
	}
}

func TestShutdownDrainsQueue(t *testing.T) {
	pool := NewWorkerPool(1)
	var count atomic.Int32
	for i := 0; i < 2; i++ {
		if err := pool.Submit(context.Background(), func() { count.Add(1) }); err != nil {
			t.Fatal(err)
		}
	}
	pool.Shutdown()
	if count.Load() != 2 {
		t.Errorf("expected queued tasks to finish before shutdown returns, %d ran", count.Load())
	}
}
