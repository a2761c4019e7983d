package causal

// Config holds the thresholds the analyzer's builders compare evidence
// against, and the filters applied to the resulting chain before it is
// returned to a caller.
type Config struct {
	LargeContextTokens      int     // HighLatency/ResourceExhaustion context-size threshold
	ManyToolCallsThreshold  int     // minimum tool-call count to flag ManyToolCalls
	SlowNodeRatio           float64 // a node's time must exceed avg * ratio to be a bottleneck
	RepeatedExecutionCount  int     // execution count at/above which a node is "repeated"
	HighErrorRate           float64 // fraction of failed executions considered "high"
	HighLatencyMS           float64 // total duration considered "high latency"

	MinContribution float64 // causes below this contribution are dropped from the report
	MinConfidence   float64 // causes below this confidence are dropped from the report; a zero confidence counts as unset and is kept
	MaxCauses       int     // report is truncated to this many causes, highest contribution first
}

// DefaultConfig matches the thresholds production traces are tuned against.
func DefaultConfig() Config {
	return Config{
		LargeContextTokens:     8000,
		ManyToolCallsThreshold: 5,
		SlowNodeRatio:          2.0,
		RepeatedExecutionCount: 5,
		HighErrorRate:          0.1,
		HighLatencyMS:          10_000,

		MinContribution: 0.05,
		MinConfidence:   0.5,
		MaxCauses:       10,
	}
}
