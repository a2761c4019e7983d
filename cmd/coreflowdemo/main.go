// Command coreflowdemo wires coreflow's packages together end to end: load
// config, start logging, checkpoint some graph state, fit a message history
// to a model's context window, run a generate/judge quality gate, explain a
// slow run causally, and render both a markdown summary and an execution
// flow description of what happened.
package main

import (
	"context"
	"fmt"
	"os"

	"coreflow/internal/causal"
	"coreflow/internal/checkpoint"
	"coreflow/internal/checkpoint/blockingpool"
	"coreflow/internal/checkpoint/memorystore"
	"coreflow/internal/config"
	"coreflow/internal/contextwindow"
	"coreflow/internal/execflow"
	"coreflow/internal/observability"
	"coreflow/internal/quality"
	"coreflow/internal/tui/focus"
	"coreflow/internal/tui/markdown"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.LogPath, cfg.LogLevel)

	ctx := context.Background()
	log.Ctx(ctx).Info().Str("service", cfg.Obs.ServiceName).Msg("coreflowdemo starting")

	runCheckpointDemo(ctx, cfg)
	runContextWindowDemo(cfg)
	runQualityGateDemo(ctx)
	runCausalDemo()
	runFocusDemo()
	runMarkdownDemo()
	runExecFlowDemo()
}

func runCheckpointDemo(ctx context.Context, cfg config.Config) {
	store := memorystore.New()
	diffCfg := checkpoint.DifferentialConfig{
		BaseInterval:   cfg.Checkpoint.BaseInterval,
		MaxChainLength: cfg.Checkpoint.MaxChainLength,
		MinDiffSize:    cfg.Checkpoint.MinDiffSize,
	}
	pool := blockingpool.New(4)
	cp := checkpoint.New(store, diffCfg, pool)

	for i := 0; i < 3; i++ {
		state := []byte(fmt.Sprintf("state-iteration-%d", i))
		err := cp.Save(ctx, checkpoint.Checkpoint{
			ID:       fmt.Sprintf("ckpt-%d", i),
			ThreadID: "demo-thread",
			State:    state,
			Node:     "agent_loop",
		})
		if err != nil {
			log.Error().Err(err).Msg("checkpoint save failed")
			return
		}
	}

	latest, ok, err := cp.GetLatest(ctx, "demo-thread")
	if err != nil || !ok {
		log.Error().Err(err).Bool("found", ok).Msg("checkpoint lookup failed")
		return
	}
	log.Info().Str("id", latest.ID).Msg("latest checkpoint restored")
}

func runContextWindowDemo(cfg config.Config) {
	mgr := contextwindow.NewManager(contextwindow.Config{
		Model:                    cfg.ContextWindow.Model,
		ReservedTokens:           cfg.ContextWindow.ReservedTokens,
		TokensPerMessageOverhead: cfg.ContextWindow.TokensPerMessageOverhead,
	})

	msgs := []contextwindow.Message{
		{Role: contextwindow.RoleSystem, Text: "You are a helpful assistant."},
		{Role: contextwindow.RoleUser, Text: "What is the capital of France?"},
		{Role: contextwindow.RoleAssistant, Text: "Paris."},
	}
	result := mgr.Fit(context.Background(), msgs)
	log.Info().Int("kept", len(result.Messages)).Int("dropped", result.MessagesDropped).Msg("context window fit")
}

func runQualityGateDemo(ctx context.Context) {
	gateCfg, err := quality.NewConfig(0.8, 3, quality.RetryFromScratch)
	if err != nil {
		log.Error().Err(err).Msg("invalid quality config")
		return
	}
	gateCfg.EmitTelemetry = true

	scores := []float64{0.3, 0.6, 0.9}

	generate := func(ctx context.Context, attempt int) (string, error) {
		return fmt.Sprintf("attempt-%d", attempt), nil
	}
	judge := func(ctx context.Context, out string) (quality.Score, error) {
		idx := len(scores) - 1
		if _, err := fmt.Sscanf(out, "attempt-%d", &idx); err != nil {
			idx = len(scores) - 1
		}
		if idx < 0 || idx >= len(scores) {
			idx = len(scores) - 1
		}
		s := scores[idx]
		return quality.Score{Accuracy: s, Relevance: s, Completeness: s}, nil
	}

	result := quality.CheckWithRetry[string](ctx, gateCfg, generate, judge)
	log.Info().Bool("passed", result.Passed).Int("attempts", result.Attempts).Msg("quality gate result")
}

func runCausalDemo() {
	trace := causal.ExecutionTrace{
		TotalDurationMS: 15100,
		TotalTokens:     10100,
		Completed:       true,
		Nodes: []causal.NodeExecution{
			{Node: "slow_node", DurationMS: 15000, TokensUsed: 10000, Success: true},
			{Node: "fast_node", DurationMS: 100, TokensUsed: 100, Success: true},
		},
	}
	analyzer := causal.New(causal.DefaultConfig())
	chain := analyzer.Analyze(trace, causal.HighLatency())
	log.Info().Str("summary", chain.Summary).Int("causes", len(chain.Causes)).Msg("causal analysis")
}

func runFocusDemo() {
	mgr := focus.NewManager()
	a := focus.NewHandle(mgr)
	b := focus.NewHandle(mgr)
	a.Focus()
	mgr.FocusNext()
	log.Info().Bool("b_focused", b.IsFocused()).Msg("focus demo")
}

func runMarkdownDemo() {
	doc := markdown.NewDocument("# Report\n\nThe run took **15s** and used `10000` tokens.\n")
	root, err := doc.RenderForTier(markdown.Tier1ASCII)
	if err != nil {
		log.Error().Err(err).Msg("markdown render failed")
		return
	}
	_ = root
	log.Info().Msg("markdown rendered at tier1")
}

func runExecFlowDemo() {
	flow := execflow.NewBuilder("demo-graph").
		EntryPoint("start").
		AddExitPoint("end").
		AddDecisionPoint(execflow.NewDecisionPoint("router", "task type").
			WithPath(execflow.NewDecisionPath("code_path", "code-related")).
			WithExplanation("routes based on detected task type")).
		AddLoopStructure(execflow.NewLoopStructure("retry_loop", "call_tool").
			WithNodes("call_tool", "check_result").
			WithExitCondition("result is valid or max retries hit")).
		Build()

	log.Info().Str("summary", flow.Summary()).Uint32("complexity", flow.ComplexityScore()).Msg("execution flow")
}
