package quality

import (
	"context"
	"time"

	"github.com/joeycumines/go-utilpkg/catrate"
)

// CatrateLimiter adapts a github.com/joeycumines/go-utilpkg/catrate.Limiter,
// which is non-blocking, into the blocking RateLimiter a quality gate
// expects: Acquire polls Allow and sleeps until it's permitted or ctx is
// done.
type CatrateLimiter struct {
	limiter  *catrate.Limiter
	category any
}

// NewCatrateLimiter builds a limiter for the given per-window rates (e.g.
// {time.Second: 5} for 5 attempts/second), all judged attempts sharing one
// category.
func NewCatrateLimiter(rates map[time.Duration]int, category any) *CatrateLimiter {
	return &CatrateLimiter{limiter: catrate.NewLimiter(rates), category: category}
}

func (c *CatrateLimiter) Acquire(ctx context.Context) error {
	for {
		next, ok := c.limiter.Allow(c.category)
		if ok {
			return nil
		}
		wait := time.Until(next)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
