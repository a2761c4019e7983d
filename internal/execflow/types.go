// Package execflow models a graph/workflow's execution shape — entry and
// exit points, decision points, loop structures, and linear paths — and
// renders it into natural-language descriptions an LLM agent can use to
// reason about its own control flow.
package execflow

// DecisionType tags what kind of routing decision a DecisionPoint
// represents.
type DecisionType string

const (
	DecisionConditional  DecisionType = "conditional"
	DecisionToolSelection DecisionType = "tool_selection"
	DecisionLoopControl  DecisionType = "loop_control"
	DecisionErrorHandling DecisionType = "error_handling"
	DecisionHumanApproval DecisionType = "human_approval"
	DecisionParallel     DecisionType = "parallel"
)

func (d DecisionType) String() string {
	switch d {
	case DecisionConditional:
		return "Conditional"
	case DecisionToolSelection:
		return "Tool Selection"
	case DecisionLoopControl:
		return "Loop Control"
	case DecisionErrorHandling:
		return "Error Handling"
	case DecisionHumanApproval:
		return "Human Approval"
	case DecisionParallel:
		return "Parallel"
	default:
		return string(d)
	}
}

// DecisionPath is one outgoing branch from a DecisionPoint.
type DecisionPath struct {
	Target      string
	When        string
	Probability *float32
}

// NewDecisionPath builds a path with no probability set.
func NewDecisionPath(target, when string) DecisionPath {
	return DecisionPath{Target: target, When: when}
}

// WithProbability attaches a known branch probability.
func (p DecisionPath) WithProbability(prob float32) DecisionPath {
	p.Probability = &prob
	return p
}

// DecisionPoint is a conditional branch where the graph routes between
// possible next nodes.
type DecisionPoint struct {
	Node         string
	Condition    string
	Paths        []DecisionPath
	Explanation  string
	DecisionType DecisionType
}

// NewDecisionPoint builds a DecisionPoint defaulting to DecisionConditional.
func NewDecisionPoint(node, condition string) DecisionPoint {
	return DecisionPoint{Node: node, Condition: condition, DecisionType: DecisionConditional}
}

func (d DecisionPoint) WithPath(p DecisionPath) DecisionPoint {
	d.Paths = append(d.Paths, p)
	return d
}

func (d DecisionPoint) WithPaths(paths ...DecisionPath) DecisionPoint {
	d.Paths = append(d.Paths, paths...)
	return d
}

func (d DecisionPoint) WithExplanation(explanation string) DecisionPoint {
	d.Explanation = explanation
	return d
}

func (d DecisionPoint) WithType(t DecisionType) DecisionPoint {
	d.DecisionType = t
	return d
}

// PathCount returns the number of branches out of this decision point.
func (d DecisionPoint) PathCount() int { return len(d.Paths) }

// IsBinary reports whether this decision has exactly two branches.
func (d DecisionPoint) IsBinary() bool { return len(d.Paths) == 2 }

// LoopType tags what kind of iterative pattern a LoopStructure represents.
type LoopType string

const (
	LoopIterative   LoopType = "iterative"
	LoopAgentLoop   LoopType = "agent_loop"
	LoopRetryLoop   LoopType = "retry_loop"
	LoopRefinement  LoopType = "refinement_loop"
	LoopMapReduce   LoopType = "map_reduce"
)

func (l LoopType) String() string {
	switch l {
	case LoopIterative:
		return "Iterative"
	case LoopAgentLoop:
		return "Agent Loop"
	case LoopRetryLoop:
		return "Retry Loop"
	case LoopRefinement:
		return "Refinement Loop"
	case LoopMapReduce:
		return "Map-Reduce"
	default:
		return string(l)
	}
}

// LoopStructure is a cycle in the graph: a set of nodes that may re-execute
// until an exit condition is met.
type LoopStructure struct {
	Name          string
	NodesInLoop   []string
	EntryNode     string
	ExitCondition string
	Explanation   string
	MaxIterations *uint32
	LoopType      LoopType
}

// NewLoopStructure builds a LoopStructure defaulting to LoopIterative.
func NewLoopStructure(name, entryNode string) LoopStructure {
	return LoopStructure{Name: name, EntryNode: entryNode, LoopType: LoopIterative}
}

func (l LoopStructure) WithNodes(nodes ...string) LoopStructure {
	l.NodesInLoop = append(l.NodesInLoop, nodes...)
	return l
}

func (l LoopStructure) WithExitCondition(cond string) LoopStructure {
	l.ExitCondition = cond
	return l
}

func (l LoopStructure) WithExplanation(explanation string) LoopStructure {
	l.Explanation = explanation
	return l
}

func (l LoopStructure) WithMaxIterations(max uint32) LoopStructure {
	l.MaxIterations = &max
	return l
}

func (l LoopStructure) WithType(t LoopType) LoopStructure {
	l.LoopType = t
	return l
}

// Contains reports whether node is part of this loop.
func (l LoopStructure) Contains(node string) bool {
	for _, n := range l.NodesInLoop {
		if n == node {
			return true
		}
	}
	return false
}

// ExecutionPath is one linear, non-branching route through the graph.
type ExecutionPath struct {
	Name        string
	Nodes       []string
	Description string
	IsMainPath  bool
}

// NewExecutionPath builds an empty, non-main ExecutionPath.
func NewExecutionPath(name string) ExecutionPath {
	return ExecutionPath{Name: name}
}

func (p ExecutionPath) WithNodes(nodes ...string) ExecutionPath {
	p.Nodes = append(p.Nodes, nodes...)
	return p
}

func (p ExecutionPath) WithDescription(desc string) ExecutionPath {
	p.Description = desc
	return p
}

func (p ExecutionPath) MainPath() ExecutionPath {
	p.IsMainPath = true
	return p
}

func (p ExecutionPath) Len() int { return len(p.Nodes) }

func (p ExecutionPath) Empty() bool { return len(p.Nodes) == 0 }

// ExecutionFlowMetadata carries provenance about how the flow was derived.
type ExecutionFlowMetadata struct {
	Source     string
	AnalyzedAt string
	NodeCount  int
	EdgeCount  int
	Notes      []string
}

func NewExecutionFlowMetadata() ExecutionFlowMetadata {
	return ExecutionFlowMetadata{}
}

func (m ExecutionFlowMetadata) WithSource(source string) ExecutionFlowMetadata {
	m.Source = source
	return m
}

func (m ExecutionFlowMetadata) WithCounts(nodes, edges int) ExecutionFlowMetadata {
	m.NodeCount, m.EdgeCount = nodes, edges
	return m
}

func (m ExecutionFlowMetadata) WithNote(note string) ExecutionFlowMetadata {
	m.Notes = append(m.Notes, note)
	return m
}
