package agent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/martinemde/liteagent/llm"
)

// toolOutcome is the result of executing one requested tool call. Failures
// are carried as error-tagged output, never as a returned error: a failing
// tool does not end the turn.
type toolOutcome struct {
	Output   string
	IsError  bool
	Duration time.Duration
}

// executeToolCall resolves and runs one tool call, measuring wall-clock
// duration and recording the attempt in the tracker. Panics from the tool
// body are contained and converted into an error outcome.
func (a *Agent) executeToolCall(call llm.ToolCall) toolOutcome {
	tool := a.tools.Get(call.Name)
	if tool == nil {
		msg := fmt.Sprintf("Tool %s is not registered with this agent.", call.Name)
		a.tracker.Record(call.Name, call.Arguments, nil, 0, fmt.Errorf("tool not found"))
		a.logger.Warn("tool not found", "tool", call.Name)
		return toolOutcome{Output: msg, IsError: true}
	}

	start := time.Now()
	result, err := invokeTool(tool.Func, call.Arguments)
	duration := time.Since(start)

	if err != nil {
		a.tracker.Record(call.Name, call.Arguments, nil, duration, err)
		a.logger.Warn("tool failed", "tool", call.Name, "duration", duration, "error", err)
		return toolOutcome{
			Output:   fmt.Sprintf("Error executing %s: %v", call.Name, err),
			IsError:  true,
			Duration: duration,
		}
	}

	output := truncateToolOutput(stringifyResult(result), call.Name, a.toolOutputLimits, a.toolLineLimits)
	a.tracker.Record(call.Name, call.Arguments, result, duration, nil)
	a.logger.Debug("tool executed", "tool", call.Name, "duration", duration)
	return toolOutcome{Output: output, Duration: duration}
}

// invokeTool calls fn with panic containment.
func invokeTool(fn ToolFunc, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return fn(args)
}

// stringifyResult renders a tool's return value as text for the model.
// Strings pass through; structured values are JSON-encoded.
func stringifyResult(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
