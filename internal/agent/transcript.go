package agent

// Conversation roles as they appear in persisted transcripts.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is the transcript record kept alongside the wire-format messages.
// The bridge and the history store work on this shape, not on the SDK types.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}
