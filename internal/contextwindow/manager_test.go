package contextwindow

import (
	"context"
	"strings"
	"testing"
)

func TestManager_Fit_DropsMiddle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Config{
		LimitOverride:            50,
		ReservedTokens:           10,
		TokensPerMessageOverhead: 4,
		Strategy:                 DropOldest,
	})
	if got := m.Available(); got != 40 {
		t.Fatalf("Available() = %d, want 40", got)
	}

	longTurn := strings.Repeat("x", 40)
	msgs := []Message{
		{Role: RoleSystem, Text: "You are helpful"},
		{Role: RoleUser, Text: longTurn},
		{Role: RoleAssistant, Text: longTurn},
		{Role: RoleUser, Text: longTurn},
		{Role: RoleAssistant, Text: longTurn},
		{Role: RoleUser, Text: longTurn},
	}

	result := m.Fit(ctx, msgs)
	if len(result.Messages) == 0 || result.Messages[0].Role != RoleSystem {
		t.Fatalf("expected result to start with System, got %+v", result.Messages)
	}
	if result.TokenCount > 40 {
		t.Fatalf("TokenCount = %d, exceeds available budget 40", result.TokenCount)
	}
	if result.MessagesDropped <= 0 {
		t.Fatalf("expected some messages dropped, got %d", result.MessagesDropped)
	}
}

func TestManager_Fit_NoTruncationNeeded(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Config{LimitOverride: 1000, ReservedTokens: 0})
	msgs := []Message{{Role: RoleUser, Text: "hi"}}
	result := m.Fit(ctx, msgs)
	if result.MessagesDropped != 0 {
		t.Fatalf("expected no drops, got %d", result.MessagesDropped)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected all messages kept, got %d", len(result.Messages))
	}
}

func TestManager_Fit_KeepFirstAndLast(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Config{
		LimitOverride:            60,
		ReservedTokens:           10,
		TokensPerMessageOverhead: 4,
		Strategy:                 KeepFirstAndLast,
	})
	longTurn := strings.Repeat("y", 40)
	msgs := []Message{
		{Role: RoleUser, Text: "first"},
		{Role: RoleAssistant, Text: longTurn},
		{Role: RoleUser, Text: longTurn},
		{Role: RoleAssistant, Text: longTurn},
		{Role: RoleUser, Text: "last"},
	}

	result := m.Fit(ctx, msgs)
	if len(result.Messages) < 2 {
		t.Fatalf("expected at least first and last, got %d messages", len(result.Messages))
	}
	if result.Messages[0].Text != "first" {
		t.Fatalf("expected first message kept, got %q", result.Messages[0].Text)
	}
	if result.Messages[len(result.Messages)-1].Text != "last" {
		t.Fatalf("expected last message kept, got %q", result.Messages[len(result.Messages)-1].Text)
	}
}

func TestManager_Fit_KeepFirstAndLast_FallsBackForTwoMessages(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Config{LimitOverride: 1000, Strategy: KeepFirstAndLast})
	msgs := []Message{{Role: RoleUser, Text: "a"}, {Role: RoleAssistant, Text: "b"}}
	result := m.Fit(ctx, msgs)
	if len(result.Messages) != 2 {
		t.Fatalf("expected both messages kept via DropOldest fallback, got %d", len(result.Messages))
	}
}

func TestContextSize_Resolution(t *testing.T) {
	if n, ok := ContextSize("gpt-4o"); !ok || n != 128_000 {
		t.Fatalf("ContextSize(gpt-4o) = (%d, %v), want (128000, true)", n, ok)
	}
	if n, ok := ContextSize("some-claude-clone"); !ok || n == 0 {
		t.Fatalf("ContextSize(some-claude-clone) = (%d, %v), want a claude fallback", n, ok)
	}
	if n, ok := ContextSize("totally-unknown-model"); ok || n != genericContextWindow {
		t.Fatalf("ContextSize(unknown) = (%d, %v), want (%d, false)", n, ok, genericContextWindow)
	}
}
