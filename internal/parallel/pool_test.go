package parallel

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateNonPositiveWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll() error = %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_WritesByIndex(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	out := make([]int, 50)
	work := make([]func(), len(out))
	for i := range work {
		work[i] = func() { out[i] = i * i }
	}
	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll() error = %v", err)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if err := pool.ExecuteAll(nil); err != nil {
		t.Errorf("ExecuteAll(nil) error = %v", err)
	}
	if err := pool.ExecuteAll([]func(){}); err != nil {
		t.Errorf("ExecuteAll(empty) error = %v", err)
	}
}

func TestWorkerPool_ExecuteAll_Panic(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var ran atomic.Int64
	work := make([]func(), 12)
	for i := range work {
		work[i] = func() {
			ran.Add(1)
			if i == 5 || i == 9 {
				panic("bad tile")
			}
		}
	}

	err := pool.ExecuteAll(work)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("ExecuteAll() error = %v, want *PanicError", err)
	}
	if pe.Index != 5 {
		t.Errorf("PanicError.Index = %d, want 5", pe.Index)
	}
	if ran.Load() != 12 {
		t.Errorf("ran %d items, want all 12 before returning", ran.Load())
	}

	// the pool keeps working after a panic
	var ok atomic.Bool
	if err := pool.ExecuteAll([]func(){func() { ok.Store(true) }}); err != nil || !ok.Load() {
		t.Errorf("ExecuteAll() after panic: err = %v, executed = %v", err, ok.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
	if err := pool.ExecuteAll([]func(){func() {}}); !errors.Is(err, ErrClosed) {
		t.Errorf("ExecuteAll() after Close error = %v, want ErrClosed", err)
	}
}
