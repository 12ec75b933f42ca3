package agent

import (
	"testing"
)

// orderedObserver tags each received event with its own label so tests can
// verify registration-order dispatch.
type orderedObserver struct {
	label string
	log   *[]string
}

func (o *orderedObserver) OnEvent(event AgentEvent) {
	*o.log = append(*o.log, o.label+":"+string(event.Kind))
}

func TestDispatcherRegistrationOrder(t *testing.T) {
	var log []string
	d := &Dispatcher{}
	d.Add(&orderedObserver{label: "first", log: &log})
	d.Add(&orderedObserver{label: "second", log: &log})

	d.Emit(AgentEvent{Kind: EventUserMessage, UserMessage: &UserMessagePayload{Message: "hi"}})

	want := []string{"first:user_message", "second:user_message"}
	if len(log) != len(want) {
		t.Fatalf("expected %d deliveries, got %v", len(want), log)
	}
	for i, entry := range want {
		if log[i] != entry {
			t.Errorf("delivery %d: got %s, want %s", i, log[i], entry)
		}
	}
}

func TestDispatcherRemove(t *testing.T) {
	var log []string
	d := &Dispatcher{}
	kept := &orderedObserver{label: "kept", log: &log}
	removed := &orderedObserver{label: "removed", log: &log}
	d.Add(kept)
	d.Add(removed)

	d.Remove(removed)
	d.Emit(AgentEvent{Kind: EventAgentResponse, AgentResponse: &AgentResponsePayload{Response: "ok"}})

	if len(log) != 1 || log[0] != "kept:agent_response" {
		t.Errorf("removed observer still received events: %v", log)
	}
}

func TestDispatcherAddIsIdempotent(t *testing.T) {
	var log []string
	d := &Dispatcher{}
	obs := &orderedObserver{label: "once", log: &log}
	d.Add(obs)
	d.Add(obs)

	d.Emit(AgentEvent{Kind: EventUserMessage, UserMessage: &UserMessagePayload{}})
	if len(log) != 1 {
		t.Errorf("double registration delivered %d events, want 1", len(log))
	}
}

// selectiveObserver implements one specific listener plus the catch-all.
type selectiveObserver struct {
	specific []EventKind
	catchAll []EventKind
}

func (o *selectiveObserver) OnFunctionCall(event AgentEvent) {
	o.specific = append(o.specific, event.Kind)
}

func (o *selectiveObserver) OnEvent(event AgentEvent) {
	o.catchAll = append(o.catchAll, event.Kind)
}

func TestDispatcherPrefersSpecificHandler(t *testing.T) {
	obs := &selectiveObserver{}
	d := &Dispatcher{}
	d.Add(obs)

	d.Emit(AgentEvent{Kind: EventFunctionCall, FunctionCall: &FunctionCallPayload{}})
	d.Emit(AgentEvent{Kind: EventUserMessage, UserMessage: &UserMessagePayload{}})

	if len(obs.specific) != 1 || obs.specific[0] != EventFunctionCall {
		t.Errorf("specific handler deliveries: %v", obs.specific)
	}
	if len(obs.catchAll) != 1 || obs.catchAll[0] != EventUserMessage {
		t.Errorf("catch-all deliveries: %v", obs.catchAll)
	}
}

type panickyObserver struct{}

func (o *panickyObserver) OnEvent(event AgentEvent) {
	panic("observer bug")
}

func TestDispatcherContainsObserverPanic(t *testing.T) {
	var log []string
	d := &Dispatcher{}
	d.Add(&panickyObserver{})
	d.Add(&orderedObserver{label: "after", log: &log})

	// Must not panic, and later observers still receive the event.
	d.Emit(AgentEvent{Kind: EventUserMessage, UserMessage: &UserMessagePayload{}})

	if len(log) != 1 {
		t.Errorf("observer after the panicking one was skipped: %v", log)
	}
}
