package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teilomillet/gollm"
)

// gollmModel implements Model on top of a gollm.LLM instance.
type gollmModel struct {
	provider string
	model    string
	llm      gollm.LLM
	retry    RetryPolicy
}

func newGollmModel(provider string, cfg Config) (*gollmModel, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	temperature := 0.7
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	opts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(cfg.Model),
		gollm.SetMaxTokens(maxTokens),
		gollm.SetTemperature(temperature),
		gollm.SetMaxRetries(0), // retried here, not inside gollm
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.APIKey != "" {
		opts = append(opts, gollm.SetAPIKey(cfg.APIKey))
	}

	inner, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, fmt.Errorf("create %s model %q: %w", provider, cfg.Model, err)
	}

	for k, v := range cfg.ProviderOptions {
		inner.SetOption(k, v)
	}

	policy := DefaultRetryPolicy()
	if cfg.MaxRetries > 0 {
		policy.MaxRetries = cfg.MaxRetries
	}

	return &gollmModel{
		provider: provider,
		model:    cfg.Model,
		llm:      inner,
		retry:    policy,
	}, nil
}

// ModelID returns the configured model identifier.
func (m *gollmModel) ModelID() string {
	return m.model
}

func (m *gollmModel) SupportsToolCalling() bool {
	return SupportsToolCalling(m.model)
}

func (m *gollmModel) GenerateResponse(ctx context.Context, req Request) (*Response, error) {
	prompt := m.translateRequest(req)

	text, err := Retry(ctx, m.retry, func(ctx context.Context) (string, error) {
		out, genErr := m.llm.Generate(ctx, prompt)
		if genErr != nil {
			return "", m.translateError(genErr)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	calls := parseToolCalls(text)
	return &Response{
		Content:   stripToolCallJSON(text, calls),
		ToolCalls: calls,
	}, nil
}

// translateRequest flattens the conversation into a gollm Prompt. System
// messages become the system prompt; assistant turns and tool results are
// inlined as labeled context, matching how gollm expects multi-turn input.
func (m *gollmModel) translateRequest(req Request) *gollm.Prompt {
	var system strings.Builder
	var parts []string

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			system.WriteString(msg.Content)
			system.WriteString("\n")
		case RoleUser:
			text := msg.Content
			for _, img := range msg.Images {
				if img.URL != "" {
					text += "\n[Image: " + img.URL + "]"
				} else if len(img.Data) > 0 {
					text += fmt.Sprintf("\n[Image: %d bytes, %s]", len(img.Data), img.MediaType)
				}
			}
			parts = append(parts, text)
		case RoleAssistant:
			if msg.Content != "" {
				parts = append(parts, "[Assistant]: "+msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				args, _ := json.Marshal(tc.Arguments)
				parts = append(parts, fmt.Sprintf("[Assistant called %s(%s)]", tc.Name, args))
			}
		case RoleTool:
			prefix := "[Tool Result]"
			if msg.IsError {
				prefix = "[Tool Error]"
			}
			parts = append(parts, fmt.Sprintf("%s %s: %s", prefix, msg.Name, msg.Content))
		}
	}

	promptText := strings.Join(parts, "\n")
	if promptText == "" {
		promptText = "Hello"
	}

	var promptOpts []gollm.PromptOption
	if s := strings.TrimSpace(system.String()); s != "" {
		if req.EnableCaching {
			promptOpts = append(promptOpts, gollm.WithSystemPrompt(s, gollm.CacheTypeEphemeral))
		} else {
			promptOpts = append(promptOpts, gollm.WithSystemPrompt(s, ""))
		}
	}

	if len(req.Tools) > 0 {
		tools := make([]gollm.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, gollm.Tool{
				Type: "function",
				Function: gollm.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		promptOpts = append(promptOpts, gollm.WithTools(tools))
		promptOpts = append(promptOpts, gollm.WithToolChoice("auto"))
	}

	return gollm.NewPrompt(promptText, promptOpts...)
}

// parseToolCalls extracts tool calls embedded as JSON in the response text.
// gollm surfaces provider tool calls this way rather than as structured
// fields.
func parseToolCalls(text string) []ToolCall {
	start := strings.Index(text, `{"tool_calls"`)
	if start == -1 {
		start = strings.Index(text, `[{"name"`)
	}
	if start == -1 {
		return nil
	}

	var rawCalls []struct {
		ID        string         `json:"id"`
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	remaining := text[start:]
	if wrapped := strings.HasPrefix(remaining, `{"tool_calls"`); wrapped {
		var envelope struct {
			ToolCalls json.RawMessage `json:"tool_calls"`
		}
		if err := json.Unmarshal([]byte(remaining), &envelope); err != nil {
			return nil
		}
		if err := json.Unmarshal(envelope.ToolCalls, &rawCalls); err != nil {
			return nil
		}
	} else if err := json.Unmarshal([]byte(remaining), &rawCalls); err != nil {
		return nil
	}

	calls := make([]ToolCall, 0, len(rawCalls))
	for _, rc := range rawCalls {
		id := rc.ID
		if id == "" {
			id = "call_" + uuid.New().String()[:8]
		}
		calls = append(calls, ToolCall{
			ID:        id,
			Name:      rc.Name,
			Arguments: rc.Arguments,
		})
	}
	return calls
}

// stripToolCallJSON removes the parsed tool-call JSON block from the text so
// only human-readable content remains.
func stripToolCallJSON(text string, calls []ToolCall) string {
	if len(calls) == 0 {
		return text
	}
	result := text
	for _, marker := range []string{`{"tool_calls"`, `[{"name"`} {
		if idx := strings.Index(result, marker); idx != -1 {
			result = strings.TrimSpace(result[:idx])
		}
	}
	return result
}

// translateError classifies a gollm error into the typed hierarchy. gollm
// loses HTTP status codes, so classification is by message content.
func (m *gollmModel) translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	pe := func(status int, retryable bool) ProviderError {
		return ProviderError{
			baseError:  baseError{Message: msg, Cause: err},
			Provider:   m.provider,
			StatusCode: status,
			Retryable:  retryable,
		}
	}

	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key"):
		return &AuthenticationError{ProviderError: pe(401, false)}
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found"):
		return &NotFoundError{ProviderError: pe(404, false)}
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		return &RateLimitError{ProviderError: pe(429, true)}
	case strings.Contains(lower, "context length") || strings.Contains(lower, "too many tokens"):
		return &ContextLengthError{ProviderError: pe(413, false)}
	case strings.Contains(lower, "500") || strings.Contains(lower, "internal server"):
		return &ServerError{ProviderError: pe(500, true)}
	case strings.Contains(lower, "timeout"):
		return &RequestTimeoutError{baseError: baseError{Message: msg, Cause: err}}
	case strings.Contains(lower, "content filter") || strings.Contains(lower, "safety"):
		return &ContentFilterError{ProviderError: pe(0, false)}
	default:
		generic := pe(0, true)
		return &generic
	}
}
