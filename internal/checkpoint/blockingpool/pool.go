// Package blockingpool isolates CPU-bound work (serialize + diff) from the
// caller's goroutine so a large checkpoint never starves unrelated work
// scheduled on the same runtime. It is the Go analogue of offloading to a
// dedicated blocking executor: the caller still "awaits" (blocks on a
// channel receive), but the work itself always runs on a goroutine gated by
// a weighted semaphore, never inline.
package blockingpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many CPU-heavy jobs may run concurrently.
type Pool struct {
	sem *semaphore.Weighted
}

// New creates a pool allowing up to maxConcurrent jobs to run at once. A
// non-positive maxConcurrent defaults to 4.
func New(maxConcurrent int64) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Pool{sem: semaphore.NewWeighted(maxConcurrent)}
}

// Run executes fn on a dedicated goroutine once a pool slot is available,
// and blocks the caller until fn completes or ctx is done. If ctx is done
// first, Run returns ctx.Err() without waiting: fn keeps running on its
// goroutine, and its pool slot is released at once. Each diff creation or
// application in the differential checkpointer is one Run call.
func Run[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}
	defer p.sem.Release(1)

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.val, r.err
	}
}
