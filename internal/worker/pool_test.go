package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_ExecutesTasks(t *testing.T) {
	pool := NewPool(3, 16)
	pool.Start()

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		if err := pool.Submit(func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt64(&count); got != 10 {
		t.Errorf("expected 10 tasks executed, got %d", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	err := pool.Submit(func(ctx context.Context) {})
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_QueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	// Not started: nothing drains the queue.

	if err := pool.Submit(func(ctx context.Context) {}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	err := pool.Submit(func(ctx context.Context) {})
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestPool_ShutdownCancelsTaskContext(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()

	started := make(chan struct{})
	stopped := make(chan struct{})
	_ = pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(stopped)
	})

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("task context was not cancelled on shutdown")
	}
}
