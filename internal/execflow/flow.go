package execflow

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ExecutionFlow documents how a graph executes, in terms an LLM agent can
// use to reason about its own control flow: entry/exit points, decision
// points, loop structures, and the linear paths between them.
type ExecutionFlow struct {
	GraphID         string
	FlowDescription string
	EntryPoint      string
	ExitPoints      []string
	DecisionPoints  []DecisionPoint
	LoopStructures  []LoopStructure
	LinearPaths     []ExecutionPath
	Metadata        ExecutionFlowMetadata
}

// Builder accumulates an ExecutionFlow's pieces before Build freezes them.
type Builder struct {
	flow ExecutionFlow
}

// NewBuilder starts a Builder for the named graph.
func NewBuilder(graphID string) *Builder {
	return &Builder{flow: ExecutionFlow{GraphID: graphID}}
}

func (b *Builder) Description(desc string) *Builder {
	b.flow.FlowDescription = desc
	return b
}

func (b *Builder) EntryPoint(entry string) *Builder {
	b.flow.EntryPoint = entry
	return b
}

func (b *Builder) AddExitPoint(exit string) *Builder {
	b.flow.ExitPoints = append(b.flow.ExitPoints, exit)
	return b
}

func (b *Builder) AddDecisionPoint(dp DecisionPoint) *Builder {
	b.flow.DecisionPoints = append(b.flow.DecisionPoints, dp)
	return b
}

func (b *Builder) AddLoopStructure(ls LoopStructure) *Builder {
	b.flow.LoopStructures = append(b.flow.LoopStructures, ls)
	return b
}

func (b *Builder) AddLinearPath(p ExecutionPath) *Builder {
	b.flow.LinearPaths = append(b.flow.LinearPaths, p)
	return b
}

func (b *Builder) Metadata(m ExecutionFlowMetadata) *Builder {
	b.flow.Metadata = m
	return b
}

// Build freezes the accumulated flow, filling defaults for anything unset:
// "No description available" and entry point "start".
func (b *Builder) Build() ExecutionFlow {
	if b.flow.FlowDescription == "" {
		b.flow.FlowDescription = "No description available"
	}
	if b.flow.EntryPoint == "" {
		b.flow.EntryPoint = "start"
	}
	return b.flow
}

// ToJSON serializes the flow for an AI consumer.
func (f ExecutionFlow) ToJSON() (string, error) {
	out, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Summary is a one-line human-readable overview.
func (f ExecutionFlow) Summary() string {
	return fmt.Sprintf(
		"Graph '%s': %d paths, %d decisions, %d loops (entry: %s, exits: %v)",
		f.GraphID, len(f.LinearPaths), len(f.DecisionPoints), len(f.LoopStructures), f.EntryPoint, f.ExitPoints,
	)
}

// HasCycles reports whether the flow contains any loop structures.
func (f ExecutionFlow) HasCycles() bool { return len(f.LoopStructures) > 0 }

// HasBranching reports whether the flow contains any decision points.
func (f ExecutionFlow) HasBranching() bool { return len(f.DecisionPoints) > 0 }

// AllNodes returns every node name mentioned anywhere in the flow,
// deduplicated and sorted.
func (f ExecutionFlow) AllNodes() []string {
	var nodes []string
	nodes = append(nodes, f.EntryPoint)
	nodes = append(nodes, f.ExitPoints...)

	for _, dp := range f.DecisionPoints {
		nodes = append(nodes, dp.Node)
		for _, p := range dp.Paths {
			nodes = append(nodes, p.Target)
		}
	}
	for _, ls := range f.LoopStructures {
		nodes = append(nodes, ls.NodesInLoop...)
	}
	for _, p := range f.LinearPaths {
		nodes = append(nodes, p.Nodes...)
	}

	sort.Strings(nodes)
	return dedupeSorted(nodes)
}

func dedupeSorted(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

// FindDecision returns the decision point at the given node, if any.
func (f ExecutionFlow) FindDecision(node string) (DecisionPoint, bool) {
	for _, dp := range f.DecisionPoints {
		if dp.Node == node {
			return dp, true
		}
	}
	return DecisionPoint{}, false
}

// LoopsContaining returns every loop structure that includes node.
func (f ExecutionFlow) LoopsContaining(node string) []LoopStructure {
	var out []LoopStructure
	for _, ls := range f.LoopStructures {
		if ls.Contains(node) {
			out = append(out, ls)
		}
	}
	return out
}

// ComplexityScore is a weighted measure of the flow's structural
// complexity: decisions weigh more than paths, loops more than decisions.
func (f ExecutionFlow) ComplexityScore() uint32 {
	const base = 1
	decisions := uint32(len(f.DecisionPoints)) * 2
	loops := uint32(len(f.LoopStructures)) * 3
	paths := uint32(len(f.LinearPaths))
	return base + decisions + loops + paths
}

// ComplexityDescription buckets ComplexityScore into a human label.
func (f ExecutionFlow) ComplexityDescription() string {
	switch score := f.ComplexityScore(); {
	case score <= 3:
		return "Simple (linear flow)"
	case score <= 8:
		return "Moderate (some branching)"
	case score <= 15:
		return "Complex (multiple paths and loops)"
	default:
		return "Very Complex (highly branched with cycles)"
	}
}
