package agent

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/martinemde/liteagent/llm"
)

// DefaultLoopWindow is the number of recent tool-call fingerprints retained
// for repeat detection.
const DefaultLoopWindow = 32

// ConversationMemory is the append-only message log for one agent instance,
// plus a sliding window of recent tool-call fingerprints used for repeat
// detection. It is mutated only by the owning agent's loop and carries no
// locking.
type ConversationMemory struct {
	systemPrompt string
	messages     []llm.Message

	window    []string
	maxWindow int
}

// NewConversationMemory seeds memory with the system prompt.
func NewConversationMemory(systemPrompt string) *ConversationMemory {
	return NewConversationMemoryWithWindow(systemPrompt, DefaultLoopWindow)
}

// NewConversationMemoryWithWindow seeds memory with the system prompt and a
// custom detection window size.
func NewConversationMemoryWithWindow(systemPrompt string, windowSize int) *ConversationMemory {
	if windowSize <= 0 {
		windowSize = DefaultLoopWindow
	}
	m := &ConversationMemory{maxWindow: windowSize}
	m.seed(systemPrompt)
	return m
}

func (m *ConversationMemory) seed(systemPrompt string) {
	m.systemPrompt = systemPrompt
	m.messages = nil
	if systemPrompt != "" {
		m.messages = append(m.messages, llm.SystemMessage(systemPrompt))
	}
	m.window = nil
}

// AddUserMessage appends a user message, with optional image attachments.
func (m *ConversationMemory) AddUserMessage(text string, images ...llm.ImageSource) {
	m.messages = append(m.messages, llm.UserMessage(text, images...))
}

// AddAssistantMessage appends an assistant text message.
func (m *ConversationMemory) AddAssistantMessage(text string) {
	m.messages = append(m.messages, llm.AssistantMessage(text))
}

// AddToolCall appends a tool-call message and records its fingerprint in the
// detection window. The window is bounded FIFO; the oldest fingerprint is
// evicted once it fills.
func (m *ConversationMemory) AddToolCall(call llm.ToolCall) {
	m.messages = append(m.messages, llm.ToolCallMessage(call))

	m.window = append(m.window, callFingerprint(call.Name, call.Arguments))
	if len(m.window) > m.maxWindow {
		m.window = m.window[len(m.window)-m.maxWindow:]
	}
}

// AddToolResult appends the outcome of a tool execution. The toolCallID must
// match a tool call appended earlier in the same turn.
func (m *ConversationMemory) AddToolResult(name, output, toolCallID string, isError bool) {
	m.messages = append(m.messages, llm.ToolResultMessage(name, output, toolCallID, isError))
}

// Messages returns a copy of the full ordered message sequence.
func (m *ConversationMemory) Messages() []llm.Message {
	out := make([]llm.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of messages, system prompt included.
func (m *ConversationMemory) Len() int {
	return len(m.messages)
}

// Reset clears history and the detection window, reseeding the system prompt.
func (m *ConversationMemory) Reset() {
	m.seed(m.systemPrompt)
}

// SetSystemPrompt replaces the system prompt in place. If the first message
// is the system message it is updated; otherwise one is inserted at the
// front.
func (m *ConversationMemory) SetSystemPrompt(prompt string) {
	m.systemPrompt = prompt
	if len(m.messages) > 0 && m.messages[0].Role == llm.RoleSystem {
		m.messages[0].Content = prompt
		return
	}
	m.messages = append([]llm.Message{llm.SystemMessage(prompt)}, m.messages...)
}

// SystemPrompt returns the current system prompt.
func (m *ConversationMemory) SystemPrompt() string {
	return m.systemPrompt
}

// IsFunctionCallLoop reports whether an identical (name, canonicalized
// arguments) call already appears in the detection window. It is a pure
// check: the candidate is not recorded until AddToolCall.
func (m *ConversationMemory) IsFunctionCallLoop(name string, args map[string]any) bool {
	fp := callFingerprint(name, args)
	for _, seen := range m.window {
		if seen == fp {
			return true
		}
	}
	return false
}

// callFingerprint computes a deterministic signature for a tool call
// (name + hash of normalized arguments). encoding/json sorts map keys, so
// equal argument maps always hash equal.
func callFingerprint(name string, args map[string]any) string {
	encoded, err := json.Marshal(normalizeArgs(args))
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", args))
	}
	h := sha256.Sum256(encoded)
	return fmt.Sprintf("%s:%x", name, h[:8])
}

// normalizeArgs strips surrounding quote characters from string values, so
// that a model quoting an argument differently across calls still matches.
func normalizeArgs(args map[string]any) map[string]any {
	if args == nil {
		return map[string]any{}
	}
	normalized := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok {
			normalized[k] = strings.Trim(s, `"'`)
		} else {
			normalized[k] = v
		}
	}
	return normalized
}
