package quality

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestCheckWithRetry_BestOfThree(t *testing.T) {
	ctx := context.Background()
	cfg, err := NewConfig(0.8, 3, RetryFromScratch)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	scores := []float64{0.3, 0.6, 0.9}
	attempts := 0
	generate := func(_ context.Context, attempt int) (string, error) {
		attempts++
		return "candidate", nil
	}
	judge := func(_ context.Context, _ string) (Score, error) {
		s := scores[attempts-1]
		return Score{Accuracy: s, Relevance: s, Completeness: s}, nil
	}

	result := CheckWithRetry(ctx, cfg, generate, judge)
	if !result.Passed {
		t.Fatalf("expected the third attempt to pass, got %+v", result)
	}
	if result.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", result.Attempts)
	}
	if math.Abs(result.Score.Average()-0.9) > 1e-9 {
		t.Fatalf("expected winning score 0.9, got %v", result.Score.Average())
	}
}

func TestCheckWithRetry_ExhaustsRetriesReturnsBest(t *testing.T) {
	ctx := context.Background()
	cfg, _ := NewConfig(0.95, 2, RetryFromScratch)

	scores := []float64{0.4, 0.7}
	attempts := 0
	generate := func(_ context.Context, _ int) (string, error) {
		attempts++
		return "candidate", nil
	}
	judge := func(_ context.Context, _ string) (Score, error) {
		s := scores[attempts-1]
		return Score{Accuracy: s, Relevance: s, Completeness: s}, nil
	}

	result := CheckWithRetry(ctx, cfg, generate, judge)
	if result.Passed {
		t.Fatalf("expected gate to fail, got %+v", result)
	}
	if result.Attempts != 2 {
		t.Fatalf("expected 2 attempts used, got %d", result.Attempts)
	}
	if math.Abs(result.Score.Average()-0.7) > 1e-9 {
		t.Fatalf("expected best score 0.7 retained, got %v", result.Score.Average())
	}
	if result.FailReason == "" {
		t.Fatalf("expected a non-empty fail reason")
	}
}

func TestCheckWithRetry_GenerateErrorsAreSkipped(t *testing.T) {
	ctx := context.Background()
	cfg, _ := NewConfig(0.5, 2, RetryFromScratch)

	generate := func(_ context.Context, attempt int) (string, error) {
		if attempt == 0 {
			return "", errors.New("boom")
		}
		return "ok", nil
	}
	judge := func(_ context.Context, _ string) (Score, error) {
		return Score{Accuracy: 1, Relevance: 1, Completeness: 1}, nil
	}

	result := CheckWithRetry(ctx, cfg, generate, judge)
	if !result.Passed {
		t.Fatalf("expected the second attempt to pass after the first errored, got %+v", result)
	}
}

func TestScore_SanitizesNaNAndClamps(t *testing.T) {
	s := Score{Accuracy: math.NaN(), Relevance: 2.0, Completeness: -1.0}
	avg := s.Average()
	want := (0.0 + 1.0 + 0.0) / 3
	if math.Abs(avg-want) > 1e-9 {
		t.Fatalf("Average() = %v, want %v", avg, want)
	}
}

func TestNewConfig_RejectsOutOfRangeValues(t *testing.T) {
	if _, err := NewConfig(1.5, 3, RetryFromScratch); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for threshold 1.5, got %v", err)
	}
	if _, err := NewConfig(0.5, 0, RetryFromScratch); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for max retries 0, got %v", err)
	}
	if _, err := NewConfig(0.5, 200, RetryFromScratch); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for max retries 200, got %v", err)
	}
}
