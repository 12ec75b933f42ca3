package agent

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
)

// ConsoleObserver logs a one-line summary of each event through slog. It
// implements the kind-specific listeners for the chatty kinds and lets the
// rest fall through to the catch-all.
type ConsoleObserver struct {
	Logger *slog.Logger
}

// NewConsoleObserver returns a ConsoleObserver writing through logger, or
// slog.Default when nil.
func NewConsoleObserver(logger *slog.Logger) *ConsoleObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleObserver{Logger: logger}
}

func (o *ConsoleObserver) OnUserMessage(event AgentEvent) {
	o.Logger.Info("user message",
		"agent", event.AgentName,
		"message", clip(event.UserMessage.Message, 80))
}

func (o *ConsoleObserver) OnFunctionCall(event AgentEvent) {
	o.Logger.Info("tool call",
		"agent", event.AgentName,
		"tool", event.FunctionCall.Call.Name,
		"args", event.FunctionCall.Call.Arguments)
}

func (o *ConsoleObserver) OnFunctionResult(event AgentEvent) {
	o.Logger.Info("tool result",
		"agent", event.AgentName,
		"tool", event.FunctionResult.Name,
		"error", event.FunctionResult.IsError,
		"duration", event.FunctionResult.Duration,
		"output", clip(event.FunctionResult.Output, 80))
}

func (o *ConsoleObserver) OnAgentResponse(event AgentEvent) {
	o.Logger.Info("agent response",
		"agent", event.AgentName,
		"response", clip(event.AgentResponse.Response, 120))
}

func (o *ConsoleObserver) OnEvent(event AgentEvent) {
	o.Logger.Debug("agent event", "kind", event.Kind, "agent", event.AgentName)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// JSONLObserver appends every event as one JSON line to a writer. Useful for
// capturing full traces to a file for later inspection.
type JSONLObserver struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
	c   io.Closer
}

// NewJSONLObserver wraps an open writer. The caller retains ownership of w.
func NewJSONLObserver(w io.Writer) *JSONLObserver {
	return &JSONLObserver{w: w, enc: json.NewEncoder(w)}
}

// OpenJSONLObserver opens (or creates, appending) a trace file at path.
func OpenJSONLObserver(path string) (*JSONLObserver, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	obs := NewJSONLObserver(f)
	obs.c = f
	return obs, nil
}

func (o *JSONLObserver) OnEvent(event AgentEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	// Encoding failures are swallowed; observers must never disturb the loop.
	_ = o.enc.Encode(event)
}

// Close closes the underlying file when the observer owns one.
func (o *JSONLObserver) Close() error {
	if o.c != nil {
		return o.c.Close()
	}
	return nil
}
