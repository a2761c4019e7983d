package quality

import (
	"context"
	"fmt"

	"coreflow/internal/observability"
)

// Result is the outcome of CheckWithRetry: either the gate passed with a
// winning output and score, or it failed: every attempt exhausted the retry
// budget, or the rate limiter's Acquire returned an error (Attempts then
// counts the attempts started before it, and FailReason names the limiter).
type Result[T any] struct {
	Passed     bool
	Output     T
	Score      Score
	Attempts   int
	FailReason string
}

// Generate produces one candidate output for attempt number n (0-based).
type Generate[T any] func(ctx context.Context, attempt int) (T, error)

// Judge scores a candidate output.
type Judge[T any] func(ctx context.Context, output T) (Score, error)

// CheckWithRetry runs generate/judge in a loop, tracking the best-scoring
// attempt seen, until a score clears the configured threshold or the retry
// budget is exhausted. The rate limiter, if configured, is acquired inside
// the loop so each attempt is individually throttled.
func CheckWithRetry[T any](ctx context.Context, cfg Config, generate Generate[T], judge Judge[T]) Result[T] {
	logger := observability.LoggerWithTrace(ctx)

	var (
		best      T
		bestScore Score
		haveBest  bool
	)

	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		if cfg.Limiter != nil {
			if err := cfg.Limiter.Acquire(ctx); err != nil {
				return Result[T]{
					Passed:     false,
					Output:     best,
					Score:      bestScore,
					Attempts:   attempt,
					FailReason: fmt.Sprintf("rate limiter: %v", err),
				}
			}
		}

		output, err := generate(ctx, attempt)
		if err != nil {
			if cfg.EmitTelemetry {
				logger.Warn().Int("attempt", attempt).Err(err).Msg("quality gate: generate failed")
			}
			continue
		}

		score, err := judge(ctx, output)
		if err != nil {
			if cfg.EmitTelemetry {
				logger.Warn().Int("attempt", attempt).Err(err).Msg("quality gate: judge failed")
			}
			continue
		}
		score = score.sanitize()

		if cfg.EmitTelemetry {
			logger.Info().
				Int("attempt", attempt).
				Float64("score_avg", score.Average()).
				Float64("threshold", cfg.Threshold).
				Str("strategy", string(cfg.Strategy)).
				Msg("quality gate: attempt judged")
		}

		if !haveBest || score.Average() > bestScore.Average() {
			best, bestScore, haveBest = output, score, true
		}

		if score.MeetsThreshold(cfg.Threshold) {
			return Result[T]{Passed: true, Output: output, Score: score, Attempts: attempt + 1}
		}
	}

	reason := fmt.Sprintf("best score %.3f did not meet threshold %.3f after %d attempts", bestScore.Average(), cfg.Threshold, cfg.MaxRetries)
	if cfg.EmitTelemetry {
		logger.Warn().Str("reason", reason).Msg("quality gate: exhausted retries")
	}
	return Result[T]{
		Passed:     false,
		Output:     best,
		Score:      bestScore,
		Attempts:   cfg.MaxRetries,
		FailReason: reason,
	}
}
