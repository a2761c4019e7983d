// Package causal attributes observable execution effects (high latency,
// loops, failures) to weighted, evidence-carrying causes.
package causal

// EffectKind is the closed set of effects the analyzer can explain, plus an
// open-ended Custom escape hatch.
type EffectKind string

const (
	EffectHighLatency        EffectKind = "high_latency"
	EffectSlowNode           EffectKind = "slow_node"
	EffectHighTokenUsage     EffectKind = "high_token_usage"
	EffectExecutionFailure   EffectKind = "execution_failure"
	EffectHighRetryRate      EffectKind = "high_retry_rate"
	EffectNodeFailure        EffectKind = "node_failure"
	EffectInfiniteLoop       EffectKind = "infinite_loop"
	EffectResourceExhaustion EffectKind = "resource_exhaustion"
	EffectCustom             EffectKind = "custom"
)

// Effect names what happened. Name carries the node for SlowNode/
// NodeFailure; Text carries the free-form description for Custom.
type Effect struct {
	Kind EffectKind
	Name string
	Text string
}

func HighLatency() Effect                 { return Effect{Kind: EffectHighLatency} }
func SlowNode(name string) Effect         { return Effect{Kind: EffectSlowNode, Name: name} }
func HighTokenUsage() Effect              { return Effect{Kind: EffectHighTokenUsage} }
func ExecutionFailure() Effect            { return Effect{Kind: EffectExecutionFailure} }
func HighRetryRate() Effect               { return Effect{Kind: EffectHighRetryRate} }
func NodeFailure(name string) Effect      { return Effect{Kind: EffectNodeFailure, Name: name} }
func InfiniteLoop() Effect                { return Effect{Kind: EffectInfiniteLoop} }
func ResourceExhaustion() Effect          { return Effect{Kind: EffectResourceExhaustion} }
func CustomEffect(text string) Effect     { return Effect{Kind: EffectCustom, Text: text} }

// FactorKind is the closed set of contributing factors a Cause may carry.
type FactorKind string

const (
	FactorNodeBottleneck     FactorKind = "node_bottleneck"
	FactorRepeatedExecution  FactorKind = "repeated_execution"
	FactorLargeContext       FactorKind = "large_context"
	FactorManyToolCalls      FactorKind = "many_tool_calls"
	FactorModelInference     FactorKind = "model_inference"
	FactorErrorRetries       FactorKind = "error_retries"
	FactorNetworkLatency     FactorKind = "network_latency"
	FactorUpstreamFailure    FactorKind = "upstream_failure"
	FactorComplexComputation FactorKind = "complex_computation"
	FactorCustom             FactorKind = "custom"
)

// Cause is one weighted contributor to an Effect.
type Cause struct {
	Factor       FactorKind
	Node         string // populated when the factor is node-scoped
	Contribution float64
	Evidence     string
	Confidence   float64
	Remediation  string
	Details      map[string]string
}

// CausalChain is the full attribution for one Effect: causes ordered by
// contribution descending, normalized to sum to 1 when non-empty.
type CausalChain struct {
	ID         string
	Effect     Effect
	Causes     []Cause
	Summary    string
	Confidence float64
	Metadata   map[string]string
}
