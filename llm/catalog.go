package llm

import "strings"

// ModelInfo describes a known model in the capability catalog.
type ModelInfo struct {
	ID            string   `json:"id"`
	Provider      string   `json:"provider"`
	DisplayName   string   `json:"display_name"`
	ContextWindow int      `json:"context_window"`
	SupportsTools bool     `json:"supports_tools"`
	Aliases       []string `json:"aliases,omitempty"`
}

// Models is the built-in capability catalog.
var Models = []ModelInfo{
	{
		ID: "claude-opus-4-6", Provider: "anthropic", DisplayName: "Claude Opus 4.6",
		ContextWindow: 200000, SupportsTools: true,
		Aliases: []string{"opus", "claude-opus"},
	},
	{
		ID: "claude-sonnet-4-5", Provider: "anthropic", DisplayName: "Claude Sonnet 4.5",
		ContextWindow: 200000, SupportsTools: true,
		Aliases: []string{"sonnet", "claude-sonnet"},
	},
	{
		ID: "gpt-5.2", Provider: "openai", DisplayName: "GPT-5.2",
		ContextWindow: 1047576, SupportsTools: true,
		Aliases: []string{"gpt5"},
	},
	{
		ID: "gpt-5.2-mini", Provider: "openai", DisplayName: "GPT-5.2 Mini",
		ContextWindow: 1047576, SupportsTools: true,
		Aliases: []string{"gpt5-mini"},
	},
	{
		ID: "gemini-3-pro-preview", Provider: "gemini", DisplayName: "Gemini 3 Pro (Preview)",
		ContextWindow: 1048576, SupportsTools: true,
		Aliases: []string{"gemini-pro"},
	},
	{
		ID: "gemini-3-flash-preview", Provider: "gemini", DisplayName: "Gemini 3 Flash (Preview)",
		ContextWindow: 1048576, SupportsTools: true,
		Aliases: []string{"gemini-flash"},
	},
}

// noToolCallPrefixes marks model families known not to support native tool
// calling. Matched case-insensitively as substrings of the model identifier.
var noToolCallPrefixes = []string{
	"text-davinci", "text-ada", "text-babbage", "text-curie",
	"ollama/", "phi", "llama", "mistral",
}

// GetModelInfo returns the catalog entry for a model ID or alias, or nil if
// the model is unknown.
func GetModelInfo(modelID string) *ModelInfo {
	for i := range Models {
		if Models[i].ID == modelID {
			return &Models[i]
		}
		for _, alias := range Models[i].Aliases {
			if alias == modelID {
				return &Models[i]
			}
		}
	}
	return nil
}

// ProviderForModel infers the provider for a model from the catalog, or by
// prefix convention for models not in the catalog. Returns "" when no
// inference is possible.
func ProviderForModel(modelID string) string {
	if info := GetModelInfo(modelID); info != nil {
		return info.Provider
	}
	lower := strings.ToLower(modelID)
	switch {
	case strings.HasPrefix(lower, "claude"):
		return "anthropic"
	case strings.HasPrefix(lower, "gpt") || strings.HasPrefix(lower, "o1") || strings.HasPrefix(lower, "o3"):
		return "openai"
	case strings.HasPrefix(lower, "gemini"):
		return "gemini"
	case strings.HasPrefix(lower, "ollama/"):
		return "ollama"
	}
	return ""
}

// SupportsToolCalling reports whether a model is believed to support native
// tool calling. Catalog entries are authoritative; unknown models default to
// supported unless they match a known non-supporting family.
func SupportsToolCalling(modelID string) bool {
	if info := GetModelInfo(modelID); info != nil {
		return info.SupportsTools
	}
	lower := strings.ToLower(modelID)
	for _, prefix := range noToolCallPrefixes {
		if strings.Contains(lower, prefix) {
			return false
		}
	}
	return true
}
