package agent

import (
	"fmt"
	"time"

	"github.com/martinemde/liteagent/llm"
)

// BuiltinRegistry returns the default tool set used when an agent is
// constructed without an explicit one. Callers get a fresh registry each
// time; agents clone it again so per-agent registration never leaks.
func BuiltinRegistry() *Registry {
	r := NewRegistry()

	r.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "get_weather",
			Description: "Returns weather information for a city.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city": map[string]any{
						"type":        "string",
						"description": "City name to look up",
					},
				},
				"required": []string{"city"},
			},
		},
		Func: func(args map[string]any) (any, error) {
			city, ok := StringArg(args, "city")
			if !ok {
				return nil, fmt.Errorf("missing required argument: city")
			}
			return fmt.Sprintf("The weather in %s is 22°C and sunny.", city), nil
		},
	})

	r.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "add_numbers",
			Description: "Adds two numbers together.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"a": map[string]any{"type": "number"},
					"b": map[string]any{"type": "number"},
				},
				"required": []string{"a", "b"},
			},
		},
		Func: func(args map[string]any) (any, error) {
			a, okA := FloatArg(args, "a")
			b, okB := FloatArg(args, "b")
			if !okA || !okB {
				return nil, fmt.Errorf("arguments a and b must be numbers")
			}
			return a + b, nil
		},
	})

	r.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "calculate_area",
			Description: "Calculates the area of a rectangle.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"width":  map[string]any{"type": "number"},
					"height": map[string]any{"type": "number"},
				},
				"required": []string{"width", "height"},
			},
		},
		Func: func(args map[string]any) (any, error) {
			w, okW := FloatArg(args, "width")
			h, okH := FloatArg(args, "height")
			if !okW || !okH {
				return nil, fmt.Errorf("arguments width and height must be numbers")
			}
			return w * h, nil
		},
	})

	r.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "current_time",
			Description: "Returns the current time in RFC 3339 format.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		Func: func(args map[string]any) (any, error) {
			return time.Now().Format(time.RFC3339), nil
		},
	})

	return r
}
