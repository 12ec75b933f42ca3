// Package config handles liteagent configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./liteagent.yaml, ~/.config/liteagent/config.yaml,
// /etc/liteagent/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"liteagent.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "liteagent", "config.yaml"))
	}

	paths = append(paths, "/etc/liteagent/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all liteagent configuration.
type Config struct {
	Model           ModelConfig    `yaml:"model"`
	Agent           AgentConfig    `yaml:"agent"`
	EventLog        EventLogConfig `yaml:"event_log"`
	LogLevel        string         `yaml:"log_level"`
	ProviderOptions map[string]any `yaml:"provider_options"`
}

// ModelConfig selects and credentials the language model.
type ModelConfig struct {
	Name string `yaml:"name"`
	// Provider overrides catalog-based inference (anthropic, openai,
	// gemini, ollama).
	Provider string `yaml:"provider"`
	// APIKey overrides environment-based credential lookup.
	APIKey      string   `yaml:"api_key"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
	MaxRetries  int      `yaml:"max_retries"`
}

// AgentConfig tunes the agent loop.
type AgentConfig struct {
	Name          string `yaml:"name"`
	SystemPrompt  string `yaml:"system_prompt"`
	Debug         bool   `yaml:"debug"`
	MaxIterations int    `yaml:"max_iterations"`
	LoopWindow    int    `yaml:"loop_window"`
}

// EventLogConfig enables SQLite event persistence.
type EventLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file. Environment variables in the
// file body are expanded before parsing, so credentials can be referenced
// as ${ANTHROPIC_API_KEY} rather than written inline.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name: "claude-sonnet-4-5",
		},
		Agent: AgentConfig{
			Name: "liteagent",
		},
		EventLog: EventLogConfig{
			Path: "liteagent-events.db",
		},
		LogLevel: "info",
	}
}
