package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RomanEngeler1805/deep-research-agent/internal/providers"
)

// clearEnv blanks every variable ApplyEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvOpenAIKey, EnvAnthropicKey, EnvGoogleKey, EnvSearchEngineID, EnvInsightsToken, EnvModel, EnvProvider} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeJSONConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	return writeConfig(t, dir, "config.json", string(data))
}

func TestLoad_NonExistent(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.MaxTurns.Orchestrator != 8 || cfg.Agents.MaxTurns.Research != 10 {
		t.Errorf("unexpected default budgets: %+v", cfg.Agents.MaxTurns)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", `
agents:
  defaults:
    model: claude-3-5-sonnet-20241022
    maxTokens: 2048
  maxTurns:
    search: 3
tools:
  web:
    search:
      engineId: abc123
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agents.Defaults.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("expected model from file, got %q", cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.MaxTokens != 2048 {
		t.Errorf("expected maxTokens 2048, got %d", cfg.Agents.Defaults.MaxTokens)
	}
	if cfg.Agents.MaxTurns.Search != 3 {
		t.Errorf("expected search budget 3, got %d", cfg.Agents.MaxTurns.Search)
	}
	// Unset fields keep their defaults.
	if cfg.Agents.MaxTurns.Reasoning != 5 {
		t.Errorf("expected default reasoning budget 5, got %d", cfg.Agents.MaxTurns.Reasoning)
	}
	if cfg.Tools.Web.Fetch.TimeoutSeconds != 10 {
		t.Errorf("expected default fetch timeout 10, got %d", cfg.Tools.Web.Fetch.TimeoutSeconds)
	}
	if cfg.Tools.Web.Search.EngineID != "abc123" {
		t.Errorf("expected engine id from file, got %q", cfg.Tools.Web.Search.EngineID)
	}
}

func TestLoad_ValidJSON(t *testing.T) {
	clearEnv(t)
	path := writeJSONConfig(t, t.TempDir(), map[string]any{
		"agents": map[string]any{
			"defaults": map[string]any{
				"model":         "openai/gpt-4o-mini",
				"parallelTools": true,
			},
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agents.Defaults.Model != "openai/gpt-4o-mini" {
		t.Errorf("expected model %q, got %q", "openai/gpt-4o-mini", cfg.Agents.Defaults.Model)
	}
	if !cfg.Agents.Defaults.ParallelTools {
		t.Error("expected parallelTools to be true")
	}
}

func TestLoad_InvalidFileFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.json", "{not valid json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", `
agents:
  maxTurns:
    orchestrator: 0
tools:
  web:
    search:
      maxResults: 50
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Orchestrator", "MaxResults"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", `
providers:
  openai:
    apiKey: from-file
`)
	t.Setenv(EnvOpenAIKey, "from-env")
	t.Setenv(EnvGoogleKey, "google-key")
	t.Setenv(EnvSearchEngineID, "engine")
	t.Setenv(EnvInsightsToken, "token")
	t.Setenv(EnvModel, "gpt-4o-mini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Providers.OpenAI.APIKey != "from-env" {
		t.Errorf("expected env key to win, got %q", cfg.Providers.OpenAI.APIKey)
	}
	if cfg.Tools.Web.Search.APIKey != "google-key" || cfg.Tools.Web.Search.EngineID != "engine" {
		t.Errorf("search credentials not applied: %+v", cfg.Tools.Web.Search)
	}
	if cfg.Observability.Token != "token" {
		t.Errorf("expected observability token, got %q", cfg.Observability.Token)
	}
	if cfg.Agents.Defaults.Model != "gpt-4o-mini" {
		t.Errorf("expected env model, got %q", cfg.Agents.Defaults.Model)
	}
}

func TestApplyEnv_IgnoresBlankValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Providers.Anthropic.APIKey = "keep"
	ApplyEnv(&cfg, func(k string) (string, bool) {
		if k == EnvAnthropicKey {
			return "   ", true
		}
		return "", false
	})
	if cfg.Providers.Anthropic.APIKey != "keep" {
		t.Errorf("blank env value should not override, got %q", cfg.Providers.Anthropic.APIKey)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(t.TempDir(), name)

		original := DefaultConfig()
		original.Agents.Defaults.Model = "anthropic/claude-3-5-sonnet"
		original.Agents.Defaults.MaxTokens = 1234

		if err := Save(&original, path); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}

		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", name, err)
		}
		if loaded.Agents.Defaults.Model != original.Agents.Defaults.Model {
			t.Errorf("%s: model mismatch: got %q, want %q", name, loaded.Agents.Defaults.Model, original.Agents.Defaults.Model)
		}
		if loaded.Agents.Defaults.MaxTokens != original.Agents.Defaults.MaxTokens {
			t.Errorf("%s: maxTokens mismatch: got %d, want %d", name, loaded.Agents.Defaults.MaxTokens, original.Agents.Defaults.MaxTokens)
		}
	}
}

func TestSave_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestMatchProvider(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.MatchProvider("claude-3-5-sonnet-20241022").Name; got != providers.ProviderAnthropic {
		t.Errorf("claude model: got %q", got)
	}
	if got := cfg.MatchProvider("gpt-4o").Name; got != providers.ProviderOpenAI {
		t.Errorf("gpt model: got %q", got)
	}
	if got := cfg.MatchProvider("mystery-model").Name; got != providers.ProviderOpenAI {
		t.Errorf("fallback without keys: got %q", got)
	}

	cfg.Providers.Anthropic.APIKey = "k"
	if got := cfg.MatchProvider("mystery-model").Name; got != providers.ProviderAnthropic {
		t.Errorf("fallback to first keyed provider: got %q", got)
	}

	cfg.Agents.Defaults.Provider = "scripted"
	m := cfg.MatchProvider("gpt-4o")
	if m.Name != providers.ProviderScripted || m.Provider != nil {
		t.Errorf("explicit provider: got %+v", m)
	}
}

func TestProviderParams_MissingKey(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.ProviderParams()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if !strings.Contains(err.Error(), EnvOpenAIKey) {
		t.Errorf("expected error to name %s, got %v", EnvOpenAIKey, err)
	}

	cfg.Providers.OpenAI.APIKey = "sk"
	cfg.Providers.OpenAI.APIBase = "http://localhost:8080/v1"
	p, err := cfg.ProviderParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.APIKey != "sk" || p.APIBase != "http://localhost:8080/v1" || p.ProviderName != providers.ProviderOpenAI {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestProviderParams_ScriptedNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agents.Defaults.Provider = providers.ProviderScripted

	p, err := cfg.ProviderParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ProviderName != providers.ProviderScripted || p.DefaultModel != "scripted" {
		t.Errorf("unexpected params: %+v", p)
	}
}
