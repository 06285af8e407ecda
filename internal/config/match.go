package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/config/provider"
	"github.com/RomanEngeler1805/deep-research-agent/internal/providers"
)

// ErrMissingAPIKey is returned when the selected completion backend needs a
// key and none is configured.
var ErrMissingAPIKey = errors.New("no API key configured")

// MatchResult is the resolved provider config and registry name for a model.
type MatchResult struct {
	Provider *provider.ProviderConfig // nil for backends without credentials
	Name     string                   // e.g. "openai", "anthropic"
}

// MatchProvider resolves which provider config and registry entry to use for model.
// If model is empty, the default model from agents.defaults.model is used.
//
// Priority order:
//  1. agents.defaults.provider, when set
//  2. Explicit provider prefix in the model string (e.g. "anthropic/claude-3-5-sonnet")
//  3. Keyword match in the model name (registry order)
//  4. Fallback: the first provider with a key, else openai
func (c *Config) MatchProvider(model string) MatchResult {
	if model == "" {
		model = c.Agents.Defaults.Model
	}

	if name := strings.ToLower(c.Agents.Defaults.Provider); name != "" {
		return MatchResult{Provider: c.Providers.ByName(name), Name: name}
	}

	if spec := providers.FindByModel(model); spec != nil {
		return MatchResult{Provider: c.Providers.ByName(spec.Name), Name: spec.Name}
	}

	for _, spec := range providers.PROVIDERS {
		if p := c.Providers.ByName(spec.Name); p != nil && p.APIKey != "" {
			return MatchResult{Provider: p, Name: spec.Name}
		}
	}
	return MatchResult{Provider: c.Providers.ByName(providers.ProviderOpenAI), Name: providers.ProviderOpenAI}
}

// ProviderParams resolves everything needed to build the completion client
// for the default model. It fails with ErrMissingAPIKey when the matched
// backend needs a key that is not configured.
func (c *Config) ProviderParams() (providers.Params, error) {
	model := c.Agents.Defaults.Model
	m := c.MatchProvider(model)

	spec := providers.FindByName(m.Name)
	if spec == nil {
		return providers.Params{}, fmt.Errorf("unknown provider %q", m.Name)
	}

	p := providers.Params{ProviderName: m.Name, DefaultModel: model}
	if m.Provider != nil {
		p.APIKey = m.Provider.APIKey
		p.APIBase = m.Provider.APIBase
	}
	if spec.NeedsKey && p.APIKey == "" {
		return providers.Params{}, fmt.Errorf("%w for model %q: set %s or edit %s",
			ErrMissingAPIKey, model, spec.EnvKey, ConfigPath())
	}
	if m.Name == providers.ProviderScripted {
		p.DefaultModel = spec.DefaultModel
	}
	return p, nil
}
