package llm

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ImageSource holds image content attached to a user message, as either a
// URL or raw bytes.
type ImageSource struct {
	URL       string `json:"url,omitempty"`
	Data      []byte `json:"data,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

// ToolCall is a structured request emitted by the model asking the host to
// invoke a registered function. Immutable once created.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolDefinition describes a callable tool for the model (serializable
// metadata only; the executable lives in the agent's registry).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Message is one entry in the ordered conversation log.
//
// Tool-role messages carry the result of a tool execution and reference the
// originating call via ToolCallID. Assistant messages may carry the tool
// calls the model requested alongside (or instead of) text content.
type Message struct {
	Role       Role          `json:"role"`
	Content    string        `json:"content,omitempty"`
	Name       string        `json:"name,omitempty"`         // tool name on tool messages
	ToolCallID string        `json:"tool_call_id,omitempty"` // links a result to its call
	IsError    bool          `json:"is_error,omitempty"`
	ToolCalls  []ToolCall    `json:"tool_calls,omitempty"`
	Images     []ImageSource `json:"images,omitempty"`
}

// SystemMessage creates a system Message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user Message, optionally with attached images.
func UserMessage(text string, images ...ImageSource) Message {
	return Message{Role: RoleUser, Content: text, Images: images}
}

// AssistantMessage creates an assistant Message with text content.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// ToolCallMessage creates an assistant Message carrying a single requested
// tool call.
func ToolCallMessage(call ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: []ToolCall{call}}
}

// ToolResultMessage creates a tool-role Message holding an execution result.
func ToolResultMessage(name, output, toolCallID string, isError bool) Message {
	return Message{
		Role:       RoleTool,
		Name:       name,
		Content:    output,
		ToolCallID: toolCallID,
		IsError:    isError,
	}
}
