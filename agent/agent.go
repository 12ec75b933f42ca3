package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/martinemde/liteagent/llm"
)

// DefaultSystemPrompt is used when no system prompt is configured.
const DefaultSystemPrompt = `You are a helpful AI assistant.
Use the provided functions when needed to answer the user's question.
After calling a function and receiving its result, you MUST provide a complete
text response to the user. Do not call functions repeatedly if you already
have the information needed.`

// DefaultMaxIterations bounds the number of model calls per turn.
const DefaultMaxIterations = 10

// Fixed terminal responses. Every failure path of a turn converges on one of
// these or on model content; Chat never returns an error.
const (
	modelErrorPrefix     = "Error calling LLM API: "
	emptyResponseMessage = "No response generated by the model."
	iterationCapMessage  = "No complete response generated after maximum iterations."
	loopDetectedMessage  = "I already have the information from previous tool calls. Let me answer with what has been gathered instead of calling the same tool again."
)

// Options configures a new Agent. Zero values select the documented
// defaults.
type Options struct {
	// Name identifies the agent in events and logs.
	Name string
	// SystemPrompt seeds conversation memory. Empty selects
	// DefaultSystemPrompt.
	SystemPrompt string
	// Tools is the agent's tool set. Nil selects a clone of
	// BuiltinRegistry(); the agent owns its resolved registry after
	// construction.
	Tools *Registry
	// Debug enables verbose logging of every loop step.
	Debug bool
	// MaxIterations caps model calls per turn. Zero selects
	// DefaultMaxIterations.
	MaxIterations int
	// LoopWindow is the repeat-detection window size. Zero selects
	// DefaultLoopWindow.
	LoopWindow int
	// ParentContextID links this agent into a nested agent hierarchy. Empty
	// means this agent is a root.
	ParentContextID string
	// ToolOutputLimits overrides the per-tool character cap on tool output.
	ToolOutputLimits map[string]int
	// ToolLineLimits sets per-tool line caps applied after character
	// truncation.
	ToolLineLimits map[string]int
	// Observers are registered before the initialized event fires, so they
	// see the full lifecycle. Observers added later via AddObserver see
	// events from that point on.
	Observers []Observer
	// Logger receives loop diagnostics. Nil selects slog.Default.
	Logger *slog.Logger
}

// Agent drives bounded tool-calling turns against a model. One turn runs
// start to finish on the calling goroutine; concurrent turns on the same
// agent are not supported.
type Agent struct {
	id        string
	name      string
	contextID string
	model     llm.Model

	memory     *ConversationMemory
	tools      *Registry
	tracker    *ToolCallTracker
	dispatcher *Dispatcher

	maxIterations    int
	toolOutputLimits map[string]int
	toolLineLimits   map[string]int
	logger           *slog.Logger
}

// New constructs an Agent around a model and emits the initialized event to
// any observers supplied in opts.
func New(model llm.Model, opts Options) *Agent {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	tools := opts.Tools
	if tools == nil {
		tools = BuiltinRegistry().Clone()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.Debug {
		logger = slog.New(discardDebugHandler{logger.Handler()})
	}

	contextID := uuid.New().String()
	if opts.ParentContextID != "" {
		contextID = opts.ParentContextID + "." + contextID[:8]
	}

	a := &Agent{
		id:               uuid.New().String(),
		name:             opts.Name,
		contextID:        contextID,
		model:            model,
		memory:           NewConversationMemoryWithWindow(opts.SystemPrompt, opts.LoopWindow),
		tools:            tools,
		tracker:          &ToolCallTracker{},
		dispatcher:       &Dispatcher{},
		maxIterations:    opts.MaxIterations,
		toolOutputLimits: opts.ToolOutputLimits,
		toolLineLimits:   opts.ToolLineLimits,
		logger:           logger.With("agent", opts.Name),
	}
	for _, obs := range opts.Observers {
		a.dispatcher.Add(obs)
	}

	a.emit(AgentEvent{
		Kind: EventInitialized,
		Initialized: &InitializedPayload{
			Model:        modelID(model),
			SystemPrompt: opts.SystemPrompt,
			ToolCount:    tools.Count(),
		},
	})
	return a
}

// modelID extracts a display identifier from the model when it exposes one.
func modelID(m llm.Model) string {
	if ident, ok := m.(interface{ ModelID() string }); ok {
		return ident.ModelID()
	}
	return ""
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() string { return a.id }

// Name returns the agent's configured name.
func (a *Agent) Name() string { return a.name }

// ContextID returns the agent's context identifier, which embeds the parent
// context when the agent is nested.
func (a *Agent) ContextID() string { return a.contextID }

// AddObserver registers an observer for lifecycle events.
func (a *Agent) AddObserver(obs Observer) { a.dispatcher.Add(obs) }

// RemoveObserver deregisters an observer; it receives no further events.
func (a *Agent) RemoveObserver(obs Observer) { a.dispatcher.Remove(obs) }

// AddTool registers a tool on this agent's private registry.
func (a *Agent) AddTool(tool RegisteredTool) { a.tools.Register(tool) }

// RemoveTool removes a tool by name.
func (a *Agent) RemoveTool(name string) { a.tools.Unregister(name) }

// Tools returns the agent's registry.
func (a *Agent) Tools() *Registry { return a.tools }

// Memory returns the agent's conversation memory.
func (a *Agent) Memory() *ConversationMemory { return a.memory }

// Tracker returns the tool-call diagnostics log.
func (a *Agent) Tracker() *ToolCallTracker { return a.tracker }

// ResetMemory clears conversation history and the repeat-detection window,
// reseeding the system prompt.
func (a *Agent) ResetMemory() { a.memory.Reset() }

// ChatOption adjusts a single Chat call.
type ChatOption func(*chatSettings)

type chatSettings struct {
	images        []llm.ImageSource
	enableCaching bool
}

// WithImages attaches image inputs to the user message.
func WithImages(images ...llm.ImageSource) ChatOption {
	return func(s *chatSettings) { s.images = append(s.images, images...) }
}

// WithCaching asks the provider to cache the static prompt prefix.
func WithCaching() ChatOption {
	return func(s *chatSettings) { s.enableCaching = true }
}

// Chat runs one turn: it appends the user message, then loops between model
// calls and tool executions until the model answers in plain text, a repeat
// call is detected, or the iteration cap is hit. All failures surface as
// text; Chat never returns an error.
func (a *Agent) Chat(ctx context.Context, message string, opts ...ChatOption) string {
	var settings chatSettings
	for _, opt := range opts {
		opt(&settings)
	}

	a.memory.AddUserMessage(message, settings.images...)
	a.emit(AgentEvent{
		Kind: EventUserMessage,
		UserMessage: &UserMessagePayload{
			Message:    message,
			ImageCount: len(settings.images),
		},
	})

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		a.logger.Debug("loop iteration", "iteration", iteration)

		messages := a.memory.Messages()

		var schemas []llm.ToolDefinition
		if a.model.SupportsToolCalling() && a.tools.Count() > 0 {
			schemas = a.tools.Definitions()
		}

		a.emit(AgentEvent{
			Kind: EventModelRequest,
			ModelRequest: &ModelRequestPayload{
				Messages: messages,
				Tools:    schemas,
			},
		})

		resp, err := a.model.GenerateResponse(ctx, llm.Request{
			Messages:      messages,
			Tools:         schemas,
			EnableCaching: settings.enableCaching,
		})
		if err != nil {
			a.logger.Error("model call failed", "error", err)
			return a.respond(modelErrorPrefix + err.Error())
		}

		a.emit(AgentEvent{
			Kind: EventModelResponse,
			ModelResponse: &ModelResponsePayload{
				Content:   resp.Content,
				ToolCalls: resp.ToolCalls,
			},
		})

		if len(resp.ToolCalls) == 0 {
			content := strings.TrimSpace(resp.Content)
			if content == "" {
				content = emptyResponseMessage
			}
			return a.respond(content)
		}

		// Tool calls requested. Any accompanying text becomes an assistant
		// message before execution.
		if text := strings.TrimSpace(resp.Content); text != "" {
			a.memory.AddAssistantMessage(text)
		}

		// Evaluate every call in the batch against the detector before
		// executing any of them. One repeat aborts the whole batch.
		for _, call := range resp.ToolCalls {
			if a.memory.IsFunctionCallLoop(call.Name, call.Arguments) {
				a.logger.Warn("function call loop detected", "tool", call.Name)
				return a.respond(loopDetectedMessage)
			}
		}

		for _, call := range resp.ToolCalls {
			a.emit(AgentEvent{
				Kind:         EventFunctionCall,
				FunctionCall: &FunctionCallPayload{Call: call},
			})
			a.memory.AddToolCall(call)

			outcome := a.executeToolCall(call)
			a.memory.AddToolResult(call.Name, outcome.Output, call.ID, outcome.IsError)

			a.emit(AgentEvent{
				Kind: EventFunctionResult,
				FunctionResult: &FunctionResultPayload{
					Name:       call.Name,
					ToolCallID: call.ID,
					Output:     outcome.Output,
					IsError:    outcome.IsError,
					Duration:   outcome.Duration,
				},
			})
		}
	}

	a.logger.Warn("iteration cap reached", "max", a.maxIterations)
	return a.respond(iterationCapMessage)
}

// respond records the terminal text of the turn and emits the agent
// response event.
func (a *Agent) respond(text string) string {
	a.memory.AddAssistantMessage(text)
	a.emit(AgentEvent{
		Kind:          EventAgentResponse,
		AgentResponse: &AgentResponsePayload{Response: text},
	})
	return text
}

func (a *Agent) emit(event AgentEvent) {
	event.Timestamp = time.Now()
	event.AgentID = a.id
	event.AgentName = a.name
	event.ContextID = a.contextID
	a.dispatcher.Emit(event)
}

// discardDebugHandler suppresses debug records when the agent is not in
// debug mode, regardless of the wrapped handler's own level.
type discardDebugHandler struct {
	slog.Handler
}

func (h discardDebugHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < slog.LevelInfo {
		return false
	}
	return h.Handler.Enabled(ctx, level)
}
