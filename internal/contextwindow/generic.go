package contextwindow

import "context"

// GenericMessage is implemented by any caller-defined message type that
// exposes a role, content, and optional tool calls/tool-call id. It lets
// hosts with their own message structs reuse this package's counting
// formula without adopting the Message type.
type GenericMessage interface {
	MessageRole() string
	MessageContent() string
	MessageToolCalls() []ToolCallRef
	MessageToolCallID() string
}

// CountGenericMessageTokens mirrors countMessageTokens's formula for any
// GenericMessage: content tokens, plus tokens for each tool call's name and
// serialized arguments, plus the per-message overhead.
func CountGenericMessageTokens[T GenericMessage](ctx context.Context, tok Tokenizer, msg T, overhead int) int {
	total := countText(ctx, tok, msg.MessageContent())
	for _, tc := range msg.MessageToolCalls() {
		total += countText(ctx, tok, tc.Name)
		total += countText(ctx, tok, tc.Args)
	}
	return total + overhead
}
