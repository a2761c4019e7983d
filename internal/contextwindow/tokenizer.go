package contextwindow

import "context"

// Tokenizer provides accurate token counting for a resolved model. The core
// never hard-codes a vendor's tokenizer; implementations adapt a provider's
// own BPE (e.g. tiktoken) behind this narrow seam.
type Tokenizer interface {
	// EncodeWithSpecialTokens tokenizes text, including any special tokens
	// the underlying scheme reserves (BOS/EOS and similar), and returns the
	// token count.
	EncodeWithSpecialTokens(ctx context.Context, text string) (int, error)
}

// EstimateTokens is the fallback estimator used when no Tokenizer is
// configured or the configured one errors: ceil(len/4).
func EstimateTokens(s string) int {
	if s == "" {
		return 0
	}
	return (len(s) + 3) / 4
}

// countText tokenizes text with tok if available, falling back to
// EstimateTokens on a nil tokenizer or a tokenizer error.
func countText(ctx context.Context, tok Tokenizer, text string) int {
	if tok != nil {
		if n, err := tok.EncodeWithSpecialTokens(ctx, text); err == nil {
			return n
		}
	}
	return EstimateTokens(text)
}

// countMessageTokens counts the content tokens for a single message (text
// or typed blocks) plus the per-message overhead. This is the building
// block both CountMessagesTokens and fit() are built from.
func countMessageTokens(ctx context.Context, tok Tokenizer, msg Message, overhead int) int {
	total := 0
	if len(msg.Blocks) > 0 {
		for _, b := range msg.Blocks {
			switch b.Type {
			case BlockImage:
				total += imageTokenCost
			case BlockToolUse:
				total += countText(ctx, tok, b.ToolName) + countText(ctx, tok, b.ToolInput)
			case BlockToolResult:
				total += countText(ctx, tok, b.ToolResultText)
			default: // BlockText, BlockReasoning, BlockThinking, BlockRedactedThinking
				total += countText(ctx, tok, b.Text)
			}
		}
	} else {
		total += countText(ctx, tok, msg.Text)
	}
	return total + overhead
}

// CountMessagesTokens sums per-message token counts (each including
// overhead) plus a flat 3-token array overhead for the list itself.
func CountMessagesTokens(ctx context.Context, tok Tokenizer, msgs []Message, overhead int) int {
	total := 0
	for _, m := range msgs {
		total += countMessageTokens(ctx, tok, m, overhead)
	}
	return total + 3
}
