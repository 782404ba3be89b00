// Package parallel provides the worker pool that frames are computed on.
//
// A pool is created once and reused for every frame. Work is submitted as a
// batch with ExecuteAll, which returns only after every item has finished.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// PanicError wraps a value recovered from a panicking work item.
type PanicError struct {
	Index int
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: work item %d panicked: %v", e.Index, e.Value)
}

// WorkerPool is a fixed set of goroutines, each with its own queue.
// Idle workers steal from other queues so one slow item does not hold
// back the rest of the batch.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every item on the pool and waits for all of them.
// Items are assigned round-robin. A panicking item does not take the pool
// down: the panic is recovered and reported as a *PanicError once the whole
// batch has finished. When several items panic, the lowest index wins.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	if len(work) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr *PanicError
	)
	wg.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if firstErr == nil || i < firstErr.Index {
						firstErr = &PanicError{Index: i, Value: r}
					}
					mu.Unlock()
				}
			}()
			fn()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool is closing; the remaining items never run.
			for range len(work) - i {
				wg.Done()
			}
			wg.Wait()
			return ErrClosed
		}
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return nil
}

// Close stops accepting work, finishes what is queued and stops the workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
