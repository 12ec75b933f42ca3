package llm

import (
	"context"
	"fmt"
)

// Request is the input to a single model invocation.
type Request struct {
	Messages      []Message        `json:"messages"`
	Tools         []ToolDefinition `json:"tools,omitempty"` // nil = no tool calling
	EnableCaching bool             `json:"enable_caching,omitempty"`
}

// Response is the model's answer: text content and/or requested tool calls.
type Response struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Model is the contract the agent loop drives. Implementations block until
// the provider answers; the loop imposes no timeout of its own.
type Model interface {
	// SupportsToolCalling reports whether tool schemas may be attached to
	// requests against this model.
	SupportsToolCalling() bool

	// GenerateResponse sends the conversation to the model and returns its
	// content and any requested tool calls.
	GenerateResponse(ctx context.Context, req Request) (*Response, error)
}

// Config describes how to construct a provider-backed Model.
type Config struct {
	// Model is the model identifier (e.g. "gpt-5.2", "claude-sonnet-4-5").
	Model string
	// Provider overrides catalog-based provider inference when set.
	Provider string
	// APIKey overrides environment-based credential lookup when set.
	APIKey string
	// MaxTokens caps the response length. Zero means the adapter default.
	MaxTokens int
	// Temperature overrides the adapter default when non-nil.
	Temperature *float64
	// MaxRetries is the number of transport-level retries for retryable
	// errors. Zero means the default policy.
	MaxRetries int
	// ProviderOptions are free-form options forwarded to the provider
	// adapter untouched.
	ProviderOptions map[string]any
}

// New constructs a gollm-backed Model from cfg. The provider is taken from
// cfg.Provider, or inferred from the model catalog when unset.
func New(cfg Config) (Model, error) {
	if cfg.Model == "" {
		return nil, &ConfigurationError{baseError: baseError{
			Message: "no model identifier configured",
		}}
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderForModel(cfg.Model)
	}
	if provider == "" {
		return nil, &ConfigurationError{baseError: baseError{
			Message: fmt.Sprintf("cannot infer provider for model %q; set an explicit provider", cfg.Model),
		}}
	}

	return newGollmModel(provider, cfg)
}
