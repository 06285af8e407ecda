package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv. A set, non-empty variable wins
// over the file.
const (
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvAnthropicKey   = "ANTHROPIC_API_KEY"
	EnvGoogleKey      = "GOOGLE_API_KEY"
	EnvSearchEngineID = "GOOGLE_SEARCH_ENGINE_ID"
	EnvInsightsToken  = "ATLA_INSIGHTS_TOKEN"
	EnvModel          = "DEEPRESEARCH_MODEL"
	EnvProvider       = "DEEPRESEARCH_PROVIDER"
)

// ConfigPath returns the default configuration file path: ~/.deepresearch/config.yaml.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DataDir returns the deepresearch data directory: ~/.deepresearch.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deepresearch"
	}
	return filepath.Join(home, ".deepresearch")
}

// Load reads the config file at path, applies environment overrides and
// validates the result. If path is empty, ConfigPath() is used.
// A missing file yields the defaults. On parse failure it prints a warning
// and continues from DefaultConfig().
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.LookupEnv)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config file at path without environment overrides or
// validation. It is what Save should write back.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := unmarshal(path, data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to parse config %s: %v\n", path, err)
		fmt.Fprintln(os.Stderr, "Using default configuration.")
		def := DefaultConfig()
		return &def, nil
	}
	return &cfg, nil
}

// ApplyEnv overlays the environment onto cfg. lookup is os.LookupEnv in
// production.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&cfg.Providers.OpenAI.APIKey, EnvOpenAIKey)
	set(&cfg.Providers.Anthropic.APIKey, EnvAnthropicKey)
	set(&cfg.Tools.Web.Search.APIKey, EnvGoogleKey)
	set(&cfg.Tools.Web.Search.EngineID, EnvSearchEngineID)
	set(&cfg.Observability.Token, EnvInsightsToken)
	set(&cfg.Agents.Defaults.Model, EnvModel)
	set(&cfg.Agents.Defaults.Provider, EnvProvider)
}

// Save writes cfg to path as YAML, or as indented JSON for .json paths.
// If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := marshal(path, cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if isJSON(path) {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func marshal(path string, cfg *Config) ([]byte, error) {
	if !isJSON(path) {
		return yaml.Marshal(cfg)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
