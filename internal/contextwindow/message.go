package contextwindow

// Role identifies the speaker of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// BlockType discriminates the typed content a Message may carry.
type BlockType string

const (
	BlockText             BlockType = "text"
	BlockImage            BlockType = "image"
	BlockToolUse          BlockType = "tool_use"
	BlockToolResult       BlockType = "tool_result"
	BlockReasoning        BlockType = "reasoning"
	BlockThinking         BlockType = "thinking"
	BlockRedactedThinking BlockType = "redacted_thinking"
)

// imageTokenCost is the fixed per-image token charge; images are never
// tokenized by content, only counted at this flat rate.
const imageTokenCost = 765

// ContentBlock is one typed unit of message content. Only the fields
// relevant to Type are meaningful: Text for BlockText/BlockReasoning/
// BlockThinking/BlockRedactedThinking, ToolName/ToolInput for BlockToolUse,
// ToolResultText for BlockToolResult. BlockImage carries no payload here —
// its cost is fixed regardless of size.
type ContentBlock struct {
	Type          BlockType
	Text          string
	ToolName      string
	ToolInput     string
	ToolResultText string
}

// Message is a single turn in a conversation. Content is either a plain
// string (Text, the common case) or a sequence of typed Blocks; when Blocks
// is non-empty it takes precedence over Text.
type Message struct {
	Role      Role
	Text      string
	Blocks    []ContentBlock
	ToolID    string
	ToolCalls []ToolCallRef
}

// ToolCallRef names a tool invocation attached to an assistant message, for
// the generic tool-aware counting API in generic.go.
type ToolCallRef struct {
	Name string
	Args string // serialized arguments
}
