package execflow

import (
	"strings"
	"testing"
)

func buildSampleFlow() ExecutionFlow {
	dp := NewDecisionPoint("router", "task type").
		WithPaths(
			NewDecisionPath("code_path", "code-related"),
			NewDecisionPath("chat_path", "general chat"),
		).
		WithExplanation("routes based on detected task type").
		WithType(DecisionToolSelection)

	loop := NewLoopStructure("retry_loop", "call_tool").
		WithNodes("call_tool", "check_result").
		WithExitCondition("result is valid or max retries hit").
		WithExplanation("retries a failed tool call").
		WithType(LoopRetryLoop)

	path := NewExecutionPath("happy_path").
		WithNodes("start", "router", "code_path", "end").
		WithDescription("the common case").
		MainPath()

	return NewBuilder("demo-graph").
		Description("demo graph").
		EntryPoint("start").
		AddExitPoint("end").
		AddDecisionPoint(dp).
		AddLoopStructure(loop).
		AddLinearPath(path).
		Build()
}

func TestBuilder_DefaultsWhenUnset(t *testing.T) {
	flow := NewBuilder("bare").Build()
	if flow.EntryPoint != "start" {
		t.Errorf("EntryPoint = %q, want %q", flow.EntryPoint, "start")
	}
	if flow.FlowDescription != "No description available" {
		t.Errorf("FlowDescription = %q, want default", flow.FlowDescription)
	}
}

func TestExecutionFlow_DerivedQueries(t *testing.T) {
	flow := buildSampleFlow()

	if !flow.HasCycles() {
		t.Errorf("expected HasCycles true")
	}
	if !flow.HasBranching() {
		t.Errorf("expected HasBranching true")
	}

	dp, ok := flow.FindDecision("router")
	if !ok || dp.Node != "router" {
		t.Errorf("FindDecision(router) failed: %+v, %v", dp, ok)
	}
	if _, ok := flow.FindDecision("missing"); ok {
		t.Errorf("expected FindDecision to miss for an unknown node")
	}

	loops := flow.LoopsContaining("call_tool")
	if len(loops) != 1 {
		t.Errorf("expected 1 loop containing call_tool, got %d", len(loops))
	}

	nodes := flow.AllNodes()
	for i := 1; i < len(nodes); i++ {
		if nodes[i] <= nodes[i-1] {
			t.Fatalf("AllNodes() not sorted/deduped: %v", nodes)
		}
	}
}

func TestComplexityScore_MatchesWeightedFormula(t *testing.T) {
	flow := buildSampleFlow()
	// base 1 + 2*decisions(1) + 3*loops(1) + paths(1) = 1+2+3+1 = 7
	if got := flow.ComplexityScore(); got != 7 {
		t.Fatalf("ComplexityScore() = %d, want 7", got)
	}
	if desc := flow.ComplexityDescription(); desc != "Moderate (some branching)" {
		t.Fatalf("ComplexityDescription() = %q, want Moderate bucket", desc)
	}
}

func TestComplexityDescription_Buckets(t *testing.T) {
	cases := []struct {
		decisions, loops, paths int
		want                    string
	}{
		{0, 0, 0, "Simple (linear flow)"},
		{1, 0, 1, "Moderate (some branching)"},
		{2, 2, 3, "Complex (multiple paths and loops)"},
		{5, 5, 5, "Very Complex (highly branched with cycles)"},
	}
	for _, tc := range cases {
		b := NewBuilder("x")
		for i := 0; i < tc.decisions; i++ {
			b.AddDecisionPoint(NewDecisionPoint("n", "c"))
		}
		for i := 0; i < tc.loops; i++ {
			b.AddLoopStructure(NewLoopStructure("l", "n"))
		}
		for i := 0; i < tc.paths; i++ {
			b.AddLinearPath(NewExecutionPath("p"))
		}
		flow := b.Build()
		if got := flow.ComplexityDescription(); got != tc.want {
			t.Errorf("decisions=%d loops=%d paths=%d: got %q, want %q", tc.decisions, tc.loops, tc.paths, got, tc.want)
		}
	}
}

func TestGenerateFlowDescription_UsesUnicodeArrow(t *testing.T) {
	dp := NewDecisionPoint("router", "cond").
		WithPath(NewDecisionPath("a", "x")).
		WithExplanation("explains")
	desc := GenerateFlowDescription("start", []string{"start", "router", "a"}, []DecisionPoint{dp}, nil)

	if !strings.Contains(desc, "→ 'a' when x") {
		t.Fatalf("expected a proper unicode arrow in decision path description, got %q", desc)
	}
	if strings.Contains(desc, "â†’") {
		t.Fatalf("expected no mojibake arrow sequence, got %q", desc)
	}
	if !strings.Contains(desc, "branching execution") {
		t.Fatalf("expected branching-only pattern label, got %q", desc)
	}
}

func TestToJSON_ContainsFlowContent(t *testing.T) {
	flow := buildSampleFlow()
	out, err := flow.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(out, "demo-graph") || !strings.Contains(out, "retry_loop") {
		t.Fatalf("expected JSON to contain graph content, got %q", out)
	}
}
