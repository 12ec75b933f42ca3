package eventlog

import (
	"testing"
	"time"

	"github.com/martinemde/liteagent/agent"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEvent(kind agent.EventKind, agentID string) agent.AgentEvent {
	ev := agent.AgentEvent{
		Kind:      kind,
		Timestamp: time.Now(),
		AgentID:   agentID,
		AgentName: "tester",
		ContextID: "ctx-1",
	}
	switch kind {
	case agent.EventUserMessage:
		ev.UserMessage = &agent.UserMessagePayload{Message: "hi"}
	case agent.EventAgentResponse:
		ev.AgentResponse = &agent.AgentResponsePayload{Response: "hello"}
	}
	return ev
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupStore(t)

	store.OnEvent(sampleEvent(agent.EventUserMessage, "agent-1"))
	store.OnEvent(sampleEvent(agent.EventAgentResponse, "agent-1"))

	events, err := store.Events("agent-1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != string(agent.EventUserMessage) {
		t.Errorf("first event kind = %q", events[0].Kind)
	}
	if events[0].Event.UserMessage == nil || events[0].Event.UserMessage.Message != "hi" {
		t.Errorf("payload not round-tripped: %+v", events[0].Event)
	}
	if events[1].Event.AgentResponse == nil || events[1].Event.AgentResponse.Response != "hello" {
		t.Errorf("payload not round-tripped: %+v", events[1].Event)
	}
}

func TestStoreFiltersByAgent(t *testing.T) {
	store := setupStore(t)

	store.OnEvent(sampleEvent(agent.EventUserMessage, "agent-1"))
	store.OnEvent(sampleEvent(agent.EventUserMessage, "agent-2"))

	events, err := store.Events("agent-2")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].AgentID != "agent-2" {
		t.Errorf("filter returned %+v", events)
	}

	all, err := store.Events("")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected all events, got %d", len(all))
	}
}

func TestStoreCount(t *testing.T) {
	store := setupStore(t)
	for i := 0; i < 3; i++ {
		store.OnEvent(sampleEvent(agent.EventUserMessage, "agent-1"))
	}
	n, err := store.Count()
	if err != nil || n != 3 {
		t.Errorf("count = %d, %v", n, err)
	}
}

func TestStoreObservesLiveAgent(t *testing.T) {
	store := setupStore(t)

	// Wire the store as an observer on a real dispatcher to confirm the
	// Observer contract holds.
	d := &agent.Dispatcher{}
	d.Add(store)
	d.Emit(sampleEvent(agent.EventAgentResponse, "agent-live"))

	events, err := store.Events("agent-live")
	if err != nil || len(events) != 1 {
		t.Fatalf("dispatched event not persisted: %v, %v", events, err)
	}
}
