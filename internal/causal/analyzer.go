package causal

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Analyzer turns execution traces into causal chains using a fixed set of
// threshold-driven heuristics. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	cfg Config
}

// New builds an Analyzer from the given thresholds.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze attributes a single named Effect, dispatching to the
// effect-specific builder and then applying the reporting filters.
func (a *Analyzer) Analyze(trace ExecutionTrace, effect Effect) CausalChain {
	var causes []Cause
	switch effect.Kind {
	case EffectHighLatency:
		causes = a.buildHighLatency(trace)
	case EffectSlowNode:
		causes = a.buildSlowNode(trace, effect.Name)
	case EffectHighTokenUsage:
		causes = a.buildHighTokenUsage(trace)
	case EffectExecutionFailure:
		causes = a.buildExecutionFailure(trace)
	case EffectHighRetryRate:
		causes = a.buildHighRetryRate(trace)
	case EffectNodeFailure:
		causes = a.buildNodeFailure(trace, effect.Name)
	case EffectInfiniteLoop:
		causes = a.buildInfiniteLoop(trace)
	case EffectResourceExhaustion:
		causes = a.buildResourceExhaustion(trace)
	case EffectCustom:
		causes = a.buildCustom(trace)
	}

	causes = a.finalize(causes)
	return CausalChain{
		ID:         uuid.NewString(),
		Effect:     effect,
		Causes:     causes,
		Summary:    summarize(effect, causes),
		Confidence: overallConfidence(causes),
		Metadata:   map[string]string{},
	}
}

// AutoAnalyze inspects the trace for threshold breaches and returns one
// CausalChain per effect it detects. Detection itself is cheap and
// sequential (it only decides which effects apply); the resulting
// per-effect Analyze calls are independent and fanned out concurrently
// via errgroup, since a trace with several breaches (e.g. both high
// latency and a handful of slow nodes) shouldn't pay for them one at a
// time. Order in the returned slice matches detection order regardless of
// which goroutine finishes first.
func (a *Analyzer) AutoAnalyze(trace ExecutionTrace) []CausalChain {
	var effects []Effect

	if trace.TotalDurationMS > a.cfg.HighLatencyMS {
		effects = append(effects, HighLatency())
	}
	if len(trace.Errors) > 0 || !trace.Completed {
		effects = append(effects, ExecutionFailure())
	}

	aggs := aggregateByNode(trace.Nodes)
	avg := averageDuration(aggs)
	for _, agg := range aggs {
		if agg.count >= a.cfg.RepeatedExecutionCount {
			effects = append(effects, InfiniteLoop())
			break
		}
	}
	for _, agg := range aggs {
		if agg.count <= 1 && avg > 0 && agg.duration > avg*a.cfg.SlowNodeRatio {
			effects = append(effects, SlowNode(agg.name))
		}
	}

	chains := make([]CausalChain, len(effects))
	g, _ := errgroup.WithContext(context.Background())
	for i, effect := range effects {
		i, effect := i, effect
		g.Go(func() error {
			chains[i] = a.Analyze(trace, effect)
			return nil
		})
	}
	_ = g.Wait()

	return chains
}

// finalize applies the reporting filters, sorts by contribution descending,
// truncates to MaxCauses, and renormalizes so the kept causes sum to 1.
func (a *Analyzer) finalize(causes []Cause) []Cause {
	kept := make([]Cause, 0, len(causes))
	for _, c := range causes {
		if c.Contribution < a.cfg.MinContribution {
			continue
		}
		if c.Confidence > 0 && c.Confidence < a.cfg.MinConfidence {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Contribution > kept[j].Contribution
	})

	if a.cfg.MaxCauses > 0 && len(kept) > a.cfg.MaxCauses {
		kept = kept[:a.cfg.MaxCauses]
	}

	var sum float64
	for _, c := range kept {
		sum += c.Contribution
	}
	if sum > 0 {
		for i := range kept {
			kept[i].Contribution /= sum
		}
	}
	return kept
}

func averageDuration(aggs []nodeAgg) float64 {
	if len(aggs) == 0 {
		return 0
	}
	var total float64
	for _, a := range aggs {
		total += a.duration
	}
	return total / float64(len(aggs))
}

func overallConfidence(causes []Cause) float64 {
	if len(causes) == 0 {
		return 0
	}
	var sum float64
	for _, c := range causes {
		sum += c.Confidence
	}
	return sum / float64(len(causes))
}

func summarize(effect Effect, causes []Cause) string {
	if len(causes) == 0 {
		return "no attributable cause found for " + string(effect.Kind)
	}
	top := causes[0]
	return string(top.Factor) + " is the leading cause of " + string(effect.Kind)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
