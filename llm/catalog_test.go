package llm

import "testing"

func TestGetModelInfoByIDAndAlias(t *testing.T) {
	if info := GetModelInfo("claude-sonnet-4-5"); info == nil || info.Provider != "anthropic" {
		t.Errorf("lookup by ID failed: %+v", info)
	}
	if info := GetModelInfo("sonnet"); info == nil || info.ID != "claude-sonnet-4-5" {
		t.Errorf("lookup by alias failed: %+v", info)
	}
	if info := GetModelInfo("no-such-model"); info != nil {
		t.Errorf("unknown model returned %+v", info)
	}
}

func TestProviderForModel(t *testing.T) {
	cases := []struct {
		model string
		want  string
	}{
		{"claude-sonnet-4-5", "anthropic"},
		{"gpt-5.2", "openai"},
		{"gemini-3-pro-preview", "gemini"},
		{"claude-next-experimental", "anthropic"}, // prefix convention
		{"o3-mini", "openai"},
		{"ollama/qwen3:4b", "ollama"},
		{"mystery-model", ""},
	}
	for _, tc := range cases {
		if got := ProviderForModel(tc.model); got != tc.want {
			t.Errorf("ProviderForModel(%q) = %q, want %q", tc.model, got, tc.want)
		}
	}
}

func TestSupportsToolCalling(t *testing.T) {
	if !SupportsToolCalling("claude-sonnet-4-5") {
		t.Error("catalog entry with tool support reported false")
	}
	// Known non-supporting families, matched as substrings.
	for _, model := range []string{"text-davinci-003", "ollama/llama3", "phi-2", "Mistral-7B"} {
		if SupportsToolCalling(model) {
			t.Errorf("%q should not support tool calling", model)
		}
	}
	// Unknown models default to supported.
	if !SupportsToolCalling("future-model-9000") {
		t.Error("unknown model should default to supported")
	}
}
