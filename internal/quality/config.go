package quality

import (
	"context"
	"errors"
	"fmt"
)

// ErrValidation covers Config values that would make the gate meaningless
// (an out-of-range threshold, a non-positive retry budget).
var ErrValidation = errors.New("quality: validation error")

// RetryStrategy tags how a failed attempt should be retried. It carries no
// behavior of its own here; it is surfaced in telemetry and left for the
// caller's generate function to interpret (e.g. regenerate from scratch vs.
// revise the previous attempt).
type RetryStrategy string

const (
	RetryFromScratch RetryStrategy = "from_scratch"
	RetryRevise      RetryStrategy = "revise"
)

// RateLimiter gates attempts before they run. Acquire blocks (respecting
// ctx) until an attempt is permitted, or returns an error if it never will
// be.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// Config configures a quality gate.
type Config struct {
	Threshold      float64
	MaxRetries     int
	Strategy       RetryStrategy
	Limiter        RateLimiter // optional; nil disables rate limiting
	EmitTelemetry  bool
}

// NewConfig validates and returns a Config, so callers can't construct a
// gate that would silently never pass or never stop retrying.
func NewConfig(threshold float64, maxRetries int, strategy RetryStrategy) (Config, error) {
	if threshold < 0 || threshold > 1 {
		return Config{}, fmt.Errorf("%w: threshold %v out of [0,1]", ErrValidation, threshold)
	}
	if maxRetries < 1 || maxRetries > 100 {
		return Config{}, fmt.Errorf("%w: max retries %d out of [1,100]", ErrValidation, maxRetries)
	}
	if strategy == "" {
		strategy = RetryFromScratch
	}
	return Config{Threshold: threshold, MaxRetries: maxRetries, Strategy: strategy}, nil
}
