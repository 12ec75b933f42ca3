package agent

import (
	"testing"

	"github.com/martinemde/liteagent/llm"
)

func TestMemoryAppendOrder(t *testing.T) {
	m := NewConversationMemory("be helpful")

	m.AddUserMessage("hi")
	m.AddAssistantMessage("checking")
	m.AddToolCall(llm.ToolCall{ID: "call_1", Name: "lookup", Arguments: map[string]any{"q": "x"}})
	m.AddToolResult("lookup", "found", "call_1", false)
	m.AddAssistantMessage("done")

	msgs := m.Messages()
	wantRoles := []llm.Role{
		llm.RoleSystem, llm.RoleUser, llm.RoleAssistant,
		llm.RoleAssistant, llm.RoleTool, llm.RoleAssistant,
	}
	if len(msgs) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(msgs))
	}
	for i, role := range wantRoles {
		if msgs[i].Role != role {
			t.Errorf("message %d: got role %s, want %s", i, msgs[i].Role, role)
		}
	}
	if msgs[4].ToolCallID != "call_1" {
		t.Errorf("tool result not linked to its call: %+v", msgs[4])
	}
}

func TestMemoryMessagesReturnsCopy(t *testing.T) {
	m := NewConversationMemory("prompt")
	m.AddUserMessage("hi")

	snapshot := m.Messages()
	snapshot[0].Content = "mutated"

	if m.Messages()[0].Content != "prompt" {
		t.Error("mutating the snapshot leaked into memory")
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewConversationMemory("prompt")
	m.AddUserMessage("hi")
	m.AddToolCall(llm.ToolCall{ID: "c1", Name: "f", Arguments: map[string]any{"a": 1}})

	m.Reset()

	msgs := m.Messages()
	if len(msgs) != 1 || msgs[0].Role != llm.RoleSystem || msgs[0].Content != "prompt" {
		t.Fatalf("expected only the reseeded system prompt, got %+v", msgs)
	}
	if m.IsFunctionCallLoop("f", map[string]any{"a": 1}) {
		t.Error("detector window must be empty after reset")
	}
}

func TestMemorySetSystemPrompt(t *testing.T) {
	m := NewConversationMemory("old")
	m.AddUserMessage("hi")
	m.SetSystemPrompt("new")

	msgs := m.Messages()
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "new" {
		t.Errorf("system prompt not replaced in place: %+v", msgs[0])
	}
	if len(msgs) != 2 {
		t.Errorf("expected replacement, not insertion: %d messages", len(msgs))
	}
}

func TestIsFunctionCallLoopIsPure(t *testing.T) {
	m := NewConversationMemory("p")

	args := map[string]any{"city": "Oslo"}
	if m.IsFunctionCallLoop("get_weather", args) {
		t.Fatal("empty window must not report a loop")
	}
	// A pure check does not record the candidate.
	if m.IsFunctionCallLoop("get_weather", args) {
		t.Fatal("repeated checks without AddToolCall must not report a loop")
	}

	m.AddToolCall(llm.ToolCall{ID: "c1", Name: "get_weather", Arguments: args})
	if !m.IsFunctionCallLoop("get_weather", args) {
		t.Error("identical call after AddToolCall must be detected")
	}
	if m.IsFunctionCallLoop("get_weather", map[string]any{"city": "Bergen"}) {
		t.Error("different arguments must not be detected")
	}
	if m.IsFunctionCallLoop("other_tool", args) {
		t.Error("different tool name must not be detected")
	}
}

func TestLoopDetectionNormalizesQuotedStrings(t *testing.T) {
	m := NewConversationMemory("p")
	m.AddToolCall(llm.ToolCall{ID: "c1", Name: "f", Arguments: map[string]any{"q": `"Oslo"`}})

	if !m.IsFunctionCallLoop("f", map[string]any{"q": "Oslo"}) {
		t.Error("quote-wrapped string arguments must match their bare form")
	}
}

func TestLoopDetectionKeyOrderIndependent(t *testing.T) {
	m := NewConversationMemory("p")
	m.AddToolCall(llm.ToolCall{ID: "c1", Name: "f", Arguments: map[string]any{"a": 1, "b": 2}})

	if !m.IsFunctionCallLoop("f", map[string]any{"b": 2, "a": 1}) {
		t.Error("argument maps with equal contents must fingerprint equal")
	}
}

func TestDetectionWindowEvicts(t *testing.T) {
	m := NewConversationMemoryWithWindow("p", 2)

	first := map[string]any{"n": 1}
	m.AddToolCall(llm.ToolCall{ID: "c1", Name: "f", Arguments: first})
	m.AddToolCall(llm.ToolCall{ID: "c2", Name: "f", Arguments: map[string]any{"n": 2}})
	m.AddToolCall(llm.ToolCall{ID: "c3", Name: "f", Arguments: map[string]any{"n": 3}})

	if m.IsFunctionCallLoop("f", first) {
		t.Error("oldest fingerprint should have been evicted from the window")
	}
	if !m.IsFunctionCallLoop("f", map[string]any{"n": 3}) {
		t.Error("recent fingerprint must still be in the window")
	}
}
