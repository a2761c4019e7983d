package causal

import (
	"fmt"
	"strings"
)

func (a *Analyzer) buildHighLatency(trace ExecutionTrace) []Cause {
	aggs := aggregateByNode(trace.Nodes)
	avg := averageDuration(aggs)
	total := trace.TotalDurationMS
	var causes []Cause

	for _, agg := range aggs {
		if total <= 0 {
			continue
		}
		share := agg.duration / total
		if agg.count > 1 {
			causes = append(causes, Cause{
				Factor:       FactorRepeatedExecution,
				Node:         agg.name,
				Contribution: share,
				Evidence:     fmt.Sprintf("%q ran %d times totaling %.0fms", agg.name, agg.count, agg.duration),
				Confidence:   0.8,
				Remediation:  "deduplicate or cache repeated calls to " + agg.name,
			})
			continue
		}
		if avg > 0 && agg.duration > avg*a.cfg.SlowNodeRatio {
			causes = append(causes, Cause{
				Factor:       FactorNodeBottleneck,
				Node:         agg.name,
				Contribution: share,
				Evidence:     fmt.Sprintf("%q took %.0fms vs an average of %.0fms", agg.name, agg.duration, avg),
				Confidence:   0.75,
				Remediation:  "profile " + agg.name + " or move it off the critical path",
			})
		}
	}

	if trace.TotalTokens > a.cfg.LargeContextTokens {
		causes = append(causes, Cause{
			Factor:       FactorLargeContext,
			Contribution: minf(float64(trace.TotalTokens)/float64(a.cfg.LargeContextTokens), 1) * 0.3,
			Evidence:     fmt.Sprintf("used %d tokens, over the %d-token threshold", trace.TotalTokens, a.cfg.LargeContextTokens),
			Confidence:   0.6,
			Remediation:  "truncate or summarize context before this run",
		})
	}

	calls := totalToolCalls(trace.Nodes)
	if calls >= a.cfg.ManyToolCallsThreshold {
		causes = append(causes, Cause{
			Factor:       FactorManyToolCalls,
			Contribution: minf(float64(calls)/20, 0.4),
			Evidence:     fmt.Sprintf("made %d tool calls", calls),
			Confidence:   0.6,
			Remediation:  "batch or cache tool calls",
		})
	}

	return causes
}

func (a *Analyzer) buildSlowNode(trace ExecutionTrace, name string) []Cause {
	var count, tokens, calls int
	for _, ex := range trace.Nodes {
		if ex.Node != name {
			continue
		}
		count++
		tokens += ex.TokensUsed
		calls += ex.ToolsCalled
	}
	if count == 0 {
		return nil
	}

	var causes []Cause
	if count > 1 {
		causes = append(causes, Cause{
			Factor:       FactorRepeatedExecution,
			Node:         name,
			Contribution: 0.5,
			Evidence:     fmt.Sprintf("%q ran %d times", name, count),
			Confidence:   0.8,
			Remediation:  "deduplicate or cache repeated calls to " + name,
		})
	}
	if tokens > a.cfg.LargeContextTokens/2 {
		causes = append(causes, Cause{
			Factor:       FactorLargeContext,
			Node:         name,
			Contribution: 0.3,
			Evidence:     fmt.Sprintf("%q used %d tokens", name, tokens),
			Confidence:   0.6,
			Remediation:  "reduce the context passed to " + name,
		})
	}
	if calls > 0 {
		causes = append(causes, Cause{
			Factor:       FactorManyToolCalls,
			Node:         name,
			Contribution: minf(float64(calls)/10, 0.3),
			Evidence:     fmt.Sprintf("%q made %d tool calls", name, calls),
			Confidence:   0.6,
			Remediation:  "batch tool calls in " + name,
		})
	}

	if len(causes) == 0 {
		causes = append(causes, Cause{
			Factor:       FactorModelInference,
			Node:         name,
			Contribution: 1.0,
			Evidence:     fmt.Sprintf("%q is slow with no other attributable factor", name),
			Confidence:   0.5,
			Remediation:  "try a faster model or smaller prompt for " + name,
		})
	}
	return causes
}

func (a *Analyzer) buildHighTokenUsage(trace ExecutionTrace) []Cause {
	aggs := aggregateByNode(trace.Nodes)
	var causes []Cause
	if trace.TotalTokens <= 0 {
		return causes
	}
	for _, agg := range aggs {
		if agg.tokens <= 0 {
			continue
		}
		causes = append(causes, Cause{
			Factor:       FactorNodeBottleneck,
			Node:         agg.name,
			Contribution: float64(agg.tokens) / float64(trace.TotalTokens),
			Evidence:     fmt.Sprintf("%q used %d of %d tokens", agg.name, agg.tokens, trace.TotalTokens),
			Confidence:   0.7,
			Remediation:  "trim the context or output size for " + agg.name,
		})
	}
	return causes
}

func (a *Analyzer) buildExecutionFailure(trace ExecutionTrace) []Cause {
	byNode := map[string]int{}
	order := []string{}
	for _, e := range trace.Errors {
		if _, ok := byNode[e.Node]; !ok {
			order = append(order, e.Node)
		}
		byNode[e.Node]++
	}
	total := len(trace.Errors)
	var causes []Cause
	if total > 0 {
		for _, node := range order {
			causes = append(causes, Cause{
				Factor:       FactorCustom,
				Node:         node,
				Contribution: float64(byNode[node]) / float64(total),
				Evidence:     fmt.Sprintf("%d of %d errors came from %q", byNode[node], total, node),
				Confidence:   0.7,
				Remediation:  "add error handling or retries around " + node,
			})
		}
	}

	for _, ex := range trace.Nodes {
		if ex.Success {
			continue
		}
		if _, attributed := byNode[ex.Node]; attributed {
			continue
		}
		causes = append(causes, Cause{
			Factor:       FactorCustom,
			Node:         ex.Node,
			Contribution: 0.5,
			Evidence:     fmt.Sprintf("%q failed without an explicit error message", ex.Node),
			Confidence:   0.5,
			Remediation:  "surface an error message from " + ex.Node,
		})
	}
	return causes
}

func (a *Analyzer) buildHighRetryRate(trace ExecutionTrace) []Cause {
	aggs := aggregateByNode(trace.Nodes)
	total := len(trace.Nodes)
	var causes []Cause
	if total == 0 {
		return causes
	}
	for _, agg := range aggs {
		if agg.count <= 1 {
			continue
		}
		causes = append(causes, Cause{
			Factor:       FactorRepeatedExecution,
			Node:         agg.name,
			Contribution: float64(agg.count-1) / float64(total),
			Evidence:     fmt.Sprintf("%q retried %d extra times", agg.name, agg.count-1),
			Confidence:   0.75,
			Remediation:  "investigate why " + agg.name + " needs retries",
		})
	}
	if len(trace.Errors) > 0 {
		causes = append(causes, Cause{
			Factor:       FactorErrorRetries,
			Contribution: minf(float64(len(trace.Errors))/float64(total), 0.5),
			Evidence:     fmt.Sprintf("%d errors recorded across %d executions", len(trace.Errors), total),
			Confidence:   0.6,
			Remediation:  "address the underlying errors driving retries",
		})
	}
	return causes
}

func (a *Analyzer) buildNodeFailure(trace ExecutionTrace, name string) []Cause {
	var matching []ErrorEntry
	for _, e := range trace.Errors {
		if e.Node == name {
			matching = append(matching, e)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	share := 1.0 / float64(len(matching))
	causes := make([]Cause, 0, len(matching))
	for _, e := range matching {
		causes = append(causes, Cause{
			Factor:       classifyErrorFactor(e.Message),
			Node:         name,
			Contribution: share,
			Evidence:     e.Message,
			Confidence:   0.6,
			Remediation:  remediationFor(classifyErrorFactor(e.Message), name),
		})
	}
	return causes
}

func (a *Analyzer) buildInfiniteLoop(trace ExecutionTrace) []Cause {
	aggs := aggregateByNode(trace.Nodes)
	total := len(trace.Nodes)
	var causes []Cause
	if total == 0 {
		return causes
	}
	for _, agg := range aggs {
		if agg.count < a.cfg.RepeatedExecutionCount {
			continue
		}
		causes = append(causes, Cause{
			Factor:       FactorRepeatedExecution,
			Node:         agg.name,
			Contribution: float64(agg.count) / float64(total),
			Evidence:     fmt.Sprintf("%q ran %d times, at or above the repeat threshold of %d", agg.name, agg.count, a.cfg.RepeatedExecutionCount),
			Confidence:   0.85,
			Remediation:  "add a loop guard or max-iteration cap around " + agg.name,
		})
	}
	return causes
}

func (a *Analyzer) buildResourceExhaustion(trace ExecutionTrace) []Cause {
	var causes []Cause
	if trace.TotalTokens > 2*a.cfg.LargeContextTokens {
		causes = append(causes, Cause{
			Factor:       FactorLargeContext,
			Contribution: minf(float64(trace.TotalTokens)/float64(2*a.cfg.LargeContextTokens), 1),
			Evidence:     fmt.Sprintf("used %d tokens, over twice the %d-token threshold", trace.TotalTokens, a.cfg.LargeContextTokens),
			Confidence:   0.7,
			Remediation:  "reduce context size or split the run",
		})
	}
	if trace.TotalDurationMS > 2*a.cfg.HighLatencyMS {
		causes = append(causes, Cause{
			Factor:       FactorComplexComputation,
			Contribution: minf(trace.TotalDurationMS/(2*a.cfg.HighLatencyMS), 1),
			Evidence:     fmt.Sprintf("ran for %.0fms, over twice the %.0fms threshold", trace.TotalDurationMS, a.cfg.HighLatencyMS),
			Confidence:   0.6,
			Remediation:  "decompose the workload into smaller runs",
		})
	}
	return causes
}

func (a *Analyzer) buildCustom(trace ExecutionTrace) []Cause {
	if len(trace.Errors) == 0 {
		return nil
	}
	share := 1.0 / float64(len(trace.Errors))
	causes := make([]Cause, 0, len(trace.Errors))
	for _, e := range trace.Errors {
		causes = append(causes, Cause{
			Factor:       FactorCustom,
			Node:         e.Node,
			Contribution: share,
			Evidence:     e.Message,
			Confidence:   0.5,
			Remediation:  "investigate: " + e.Message,
		})
	}
	return causes
}

func classifyErrorFactor(message string) FactorKind {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "timeout"):
		return FactorNetworkLatency
	case strings.Contains(lower, "token") || strings.Contains(lower, "context"):
		return FactorLargeContext
	case strings.Contains(lower, "upstream") || strings.Contains(lower, "dependency"):
		return FactorUpstreamFailure
	default:
		return FactorCustom
	}
}

func remediationFor(factor FactorKind, node string) string {
	switch factor {
	case FactorNetworkLatency:
		return "increase the timeout or retry budget for " + node
	case FactorLargeContext:
		return "shrink the context passed to " + node
	case FactorUpstreamFailure:
		return "check the health of " + node + "'s upstream dependency"
	default:
		return "investigate the failure in " + node
	}
}
