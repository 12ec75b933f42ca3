package agent

import (
	"time"

	"github.com/martinemde/liteagent/llm"
)

// EventKind identifies the type of agent lifecycle event.
type EventKind string

const (
	EventInitialized    EventKind = "initialized"
	EventUserMessage    EventKind = "user_message"
	EventModelRequest   EventKind = "model_request"
	EventModelResponse  EventKind = "model_response"
	EventFunctionCall   EventKind = "function_call"
	EventFunctionResult EventKind = "function_result"
	EventAgentResponse  EventKind = "agent_response"
)

// AgentEvent is a tagged variant over the lifecycle event kinds. Exactly one
// payload pointer is non-nil, matching Kind. Events are ephemeral: the loop
// hands them to observers and never stores them.
type AgentEvent struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	AgentID   string    `json:"agent_id"`
	AgentName string    `json:"agent_name,omitempty"`
	ContextID string    `json:"context_id"`

	Initialized    *InitializedPayload    `json:"initialized,omitempty"`
	UserMessage    *UserMessagePayload    `json:"user_message,omitempty"`
	ModelRequest   *ModelRequestPayload   `json:"model_request,omitempty"`
	ModelResponse  *ModelResponsePayload  `json:"model_response,omitempty"`
	FunctionCall   *FunctionCallPayload   `json:"function_call,omitempty"`
	FunctionResult *FunctionResultPayload `json:"function_result,omitempty"`
	AgentResponse  *AgentResponsePayload  `json:"agent_response,omitempty"`
}

// InitializedPayload is emitted once when the agent is constructed.
type InitializedPayload struct {
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	ToolCount    int    `json:"tool_count"`
}

// UserMessagePayload carries the user's input at the start of a turn.
type UserMessagePayload struct {
	Message    string `json:"message"`
	ImageCount int    `json:"image_count,omitempty"`
}

// ModelRequestPayload carries the snapshot sent to the model.
type ModelRequestPayload struct {
	Messages []llm.Message        `json:"messages"`
	Tools    []llm.ToolDefinition `json:"tools,omitempty"`
}

// ModelResponsePayload carries what the model answered.
type ModelResponsePayload struct {
	Content   string         `json:"content"`
	ToolCalls []llm.ToolCall `json:"tool_calls,omitempty"`
}

// FunctionCallPayload is emitted before a requested tool call executes.
type FunctionCallPayload struct {
	Call llm.ToolCall `json:"call"`
}

// FunctionResultPayload is emitted after a tool call finishes, success or
// not.
type FunctionResultPayload struct {
	Name       string        `json:"name"`
	ToolCallID string        `json:"tool_call_id"`
	Output     string        `json:"output"`
	IsError    bool          `json:"is_error"`
	Duration   time.Duration `json:"duration"`
}

// AgentResponsePayload carries the terminal text of a turn.
type AgentResponsePayload struct {
	Response string `json:"response"`
}

// Observer receives every event the agent emits. OnEvent is the catch-all
// handler; observers that also implement one of the kind-specific listener
// interfaces below receive those kinds through the specific method instead.
type Observer interface {
	OnEvent(event AgentEvent)
}

// Kind-specific listener interfaces. Implementing any of these on an
// Observer routes that kind to the specific method; other kinds still reach
// OnEvent.

type InitializedListener interface {
	OnInitialized(event AgentEvent)
}

type UserMessageListener interface {
	OnUserMessage(event AgentEvent)
}

type ModelRequestListener interface {
	OnModelRequest(event AgentEvent)
}

type ModelResponseListener interface {
	OnModelResponse(event AgentEvent)
}

type FunctionCallListener interface {
	OnFunctionCall(event AgentEvent)
}

type FunctionResultListener interface {
	OnFunctionResult(event AgentEvent)
}

type AgentResponseListener interface {
	OnAgentResponse(event AgentEvent)
}

// Dispatcher broadcasts events synchronously to registered observers in
// registration order. It is driven only by the owning agent's loop and is
// not safe for concurrent use.
type Dispatcher struct {
	observers []Observer
}

// Add registers an observer. The same observer may be registered once;
// re-adding is a no-op.
func (d *Dispatcher) Add(obs Observer) {
	if obs == nil {
		return
	}
	for _, existing := range d.observers {
		if existing == obs {
			return
		}
	}
	d.observers = append(d.observers, obs)
}

// Remove deregisters an observer. Takes effect before the next Emit.
func (d *Dispatcher) Remove(obs Observer) {
	for i, existing := range d.observers {
		if existing == obs {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered observers.
func (d *Dispatcher) Len() int {
	return len(d.observers)
}

// Emit dispatches the event to every observer, selecting the most specific
// handler for its kind and falling back to OnEvent. A panicking observer is
// contained so it cannot end the turn.
func (d *Dispatcher) Emit(event AgentEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, obs := range d.observers {
		dispatchOne(obs, event)
	}
}

func dispatchOne(obs Observer, event AgentEvent) {
	defer func() {
		recover()
	}()

	switch event.Kind {
	case EventInitialized:
		if l, ok := obs.(InitializedListener); ok {
			l.OnInitialized(event)
			return
		}
	case EventUserMessage:
		if l, ok := obs.(UserMessageListener); ok {
			l.OnUserMessage(event)
			return
		}
	case EventModelRequest:
		if l, ok := obs.(ModelRequestListener); ok {
			l.OnModelRequest(event)
			return
		}
	case EventModelResponse:
		if l, ok := obs.(ModelResponseListener); ok {
			l.OnModelResponse(event)
			return
		}
	case EventFunctionCall:
		if l, ok := obs.(FunctionCallListener); ok {
			l.OnFunctionCall(event)
			return
		}
	case EventFunctionResult:
		if l, ok := obs.(FunctionResultListener); ok {
			l.OnFunctionResult(event)
			return
		}
	case EventAgentResponse:
		if l, ok := obs.(AgentResponseListener); ok {
			l.OnAgentResponse(event)
			return
		}
	}
	obs.OnEvent(event)
}
