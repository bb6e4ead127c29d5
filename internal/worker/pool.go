// Package worker holds the concurrency plumbing behind batch validation:
// a bounded job pool and a per-host request limiter.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a finished Job reports back.
type Result interface {
	GetError() error
}

// Pool fans jobs out to a fixed number of goroutines and gathers their
// results. Usage is Start, any number of Submit calls, then a single
// Wait; Submit after Wait is a programming error.
type Pool struct {
	size   int
	jobs   chan Job
	done   chan Result
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a pool with the given number of workers. Jobs run
// under a context derived from ctx, so cancelling it stops the batch.
// Sizes below one fall back to a single worker.
func NewPool(ctx context.Context, size int) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		size:   size,
		jobs:   make(chan Job, size*2),
		done:   make(chan Result, size*2),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.done <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution. It becomes a no-op once the pool
// has been cancelled.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, drains every outstanding result and returns
// them in completion order.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.done)
	}()

	var out []Result
	for res := range p.done {
		out = append(out, res)
	}
	p.cancel()
	return out
}
