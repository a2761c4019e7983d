package contextwindow

import "context"

// TruncationStrategy selects how Fit trims a message list that exceeds the
// available budget.
type TruncationStrategy int

const (
	// DropOldest keeps a leading System message unconditionally, then keeps
	// as many of the most recent remaining messages as fit.
	DropOldest TruncationStrategy = iota
	// SlidingWindow is an explicit alias of DropOldest; weighted-window
	// behavior is left as future work.
	SlidingWindow
	// KeepFirstAndLast always keeps the first and last message, filling the
	// middle with the most recent interior messages that fit.
	KeepFirstAndLast
)

// Config configures a Manager. All fields are optional; zero values select
// the documented defaults.
type Config struct {
	Model                    string
	LimitOverride            int // 0: resolve from Model
	ReservedTokens           int // 0: DefaultReservedTokens
	TokensPerMessageOverhead int // 0: DefaultTokensPerMessageOverhead
	Strategy                 TruncationStrategy
	Tokenizer                Tokenizer
}

const (
	DefaultReservedTokens           = 4000
	DefaultTokensPerMessageOverhead = 4
	genericContextWindow            = 8192
)

// Manager resolves a model's context window, then fits message lists to the
// resulting budget under a configured truncation strategy.
type Manager struct {
	cfg   Config
	limit int
}

// NewManager resolves cfg's model (or LimitOverride) to a context window and
// fills in documented defaults for any zero-valued fields.
func NewManager(cfg Config) *Manager {
	if cfg.ReservedTokens <= 0 {
		cfg.ReservedTokens = DefaultReservedTokens
	}
	if cfg.TokensPerMessageOverhead <= 0 {
		cfg.TokensPerMessageOverhead = DefaultTokensPerMessageOverhead
	}

	limit := cfg.LimitOverride
	if limit <= 0 {
		if n, ok := ContextSize(cfg.Model); ok {
			limit = n
		} else {
			limit = genericContextWindow
		}
	}

	return &Manager{cfg: cfg, limit: limit}
}

// Available is max(0, limit-reserved).
func (m *Manager) Available() int {
	if m.limit <= m.cfg.ReservedTokens {
		return 0
	}
	return m.limit - m.cfg.ReservedTokens
}

// FitResult is the outcome of Fit: the surviving messages, their total
// token count (including the +3 list overhead), how many messages were
// dropped, and how much budget remains.
type FitResult struct {
	Messages        []Message
	TokenCount      int
	MessagesDropped int
	TokensRemaining int
}

// Fit trims msgs to the manager's available budget if necessary, dispatching
// to the configured TruncationStrategy.
func (m *Manager) Fit(ctx context.Context, msgs []Message) FitResult {
	available := m.Available()
	total := CountMessagesTokens(ctx, m.cfg.Tokenizer, msgs, m.cfg.TokensPerMessageOverhead)
	if total <= available {
		return FitResult{Messages: msgs, TokenCount: total, MessagesDropped: 0, TokensRemaining: available - total}
	}

	var kept []Message
	switch m.cfg.Strategy {
	case KeepFirstAndLast:
		kept = m.keepFirstAndLast(ctx, msgs, available)
	default: // DropOldest, SlidingWindow
		kept = m.dropOldest(ctx, msgs, available)
	}

	finalCount := CountMessagesTokens(ctx, m.cfg.Tokenizer, kept, m.cfg.TokensPerMessageOverhead)
	return FitResult{
		Messages:        kept,
		TokenCount:      finalCount,
		MessagesDropped: len(msgs) - len(kept),
		TokensRemaining: available - finalCount,
	}
}

func (m *Manager) messageCost(ctx context.Context, msg Message) int {
	return countMessageTokens(ctx, m.cfg.Tokenizer, msg, m.cfg.TokensPerMessageOverhead)
}

// dropOldest always keeps a leading System message, then keeps as many of
// the most recent remaining messages as fit, in their original order.
func (m *Manager) dropOldest(ctx context.Context, msgs []Message, available int) []Message {
	if len(msgs) == 0 {
		return nil
	}

	rest := msgs
	var system *Message
	if msgs[0].Role == RoleSystem {
		s := msgs[0]
		system = &s
		rest = msgs[1:]
	}

	used := 0
	if system != nil {
		used = m.messageCost(ctx, *system)
	}

	var pending []Message
	for i := len(rest) - 1; i >= 0; i-- {
		cost := m.messageCost(ctx, rest[i])
		if used+cost > available {
			break
		}
		pending = append(pending, rest[i])
		used += cost
	}
	reverseMessages(pending)

	if system == nil {
		return pending
	}
	out := make([]Message, 0, len(pending)+1)
	out = append(out, *system)
	out = append(out, pending...)
	return out
}

// keepFirstAndLast always keeps the first and last message (falling back to
// DropOldest for inputs of 2 or fewer), filling the middle with the most
// recent interior messages that fit.
func (m *Manager) keepFirstAndLast(ctx context.Context, msgs []Message, available int) []Message {
	if len(msgs) <= 2 {
		return m.dropOldest(ctx, msgs, available)
	}

	first, last := msgs[0], msgs[len(msgs)-1]
	interior := msgs[1 : len(msgs)-1]
	used := m.messageCost(ctx, first) + m.messageCost(ctx, last)

	var mid []Message
	for i := len(interior) - 1; i >= 0; i-- {
		cost := m.messageCost(ctx, interior[i])
		if used+cost > available {
			break
		}
		mid = append(mid, interior[i])
		used += cost
	}
	reverseMessages(mid)

	out := make([]Message, 0, len(mid)+2)
	out = append(out, first)
	out = append(out, mid...)
	out = append(out, last)
	return out
}

func reverseMessages(xs []Message) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
