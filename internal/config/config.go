// Package config loads and manages quill's configuration.
// Sources, highest priority first:
//  1. environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, QUILL_* ...)
//  2. the file given by --config
//  3. ~/.config/quill/config.json
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// ProviderConfig holds the settings for one provider.
type ProviderConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
}

// UIConfig controls the interactive surface.
type UIConfig struct {
	// Stream toggles incremental display of assistant output.
	Stream bool `json:"stream"`
}

// Config is the full configuration.
type Config struct {
	// Provider names the active provider ("anthropic", "openai", "deepseek", "groq").
	Provider string `json:"provider"`

	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`

	// Providers carries per-provider credentials and endpoints.
	Providers map[string]*ProviderConfig `json:"providers,omitempty"`

	// WorkspaceRoot confines file tools. Empty means the current directory.
	WorkspaceRoot string `json:"workspace_root,omitempty"`

	// MaxHistoryTokens is the session trimming budget. 0 = default.
	MaxHistoryTokens int `json:"max_history_tokens,omitempty"`

	// MaxIterations bounds the tool-call loop within one turn (default 25).
	MaxIterations int `json:"max_iterations,omitempty"`

	// SystemPrompt replaces the built-in system prompt when set.
	SystemPrompt string `json:"system_prompt,omitempty"`

	UI UIConfig `json:"ui"`

	// Debug enables diagnostic logging to stderr.
	Debug bool `json:"debug,omitempty"`
}

// Default returns the baseline configuration before file and env overrides.
func Default() *Config {
	return &Config{
		Provider:      "anthropic",
		Providers:     make(map[string]*ProviderConfig),
		MaxIterations: 25,
		UI:            UIConfig{Stream: true},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "config.json")
}

// Load reads the config file at path (or the default location when path is
// empty) and applies environment overrides. A missing file is not an error;
// a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, &Error{Kind: KindParse, Path: path, Err: err}
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return nil, &Error{Kind: KindIO, Path: path, Err: err}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]*ProviderConfig)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &Error{Kind: KindParse, Path: path, Err: err}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	return nil
}

// ProviderConfig returns the settings for the named provider, empty when
// none are configured.
func (c *Config) ProviderConfig(name string) *ProviderConfig {
	if pc, ok := c.Providers[name]; ok {
		return pc
	}
	return &ProviderConfig{}
}

func (c *Config) ensureProvider(name string) *ProviderConfig {
	if c.Providers == nil {
		c.Providers = make(map[string]*ProviderConfig)
	}
	if c.Providers[name] == nil {
		c.Providers[name] = &ProviderConfig{}
	}
	return c.Providers[name]
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.ensureProvider("anthropic").APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.ensureProvider("openai").APIKey = v
	}

	if v := os.Getenv("QUILL_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("QUILL_API_KEY"); v != "" {
		cfg.ensureProvider(cfg.Provider).APIKey = v
	}
	if v := os.Getenv("QUILL_BASE_URL"); v != "" {
		cfg.ensureProvider(cfg.Provider).BaseURL = v
	}
	if v := os.Getenv("QUILL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
