package providers

import "strings"

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderScripted  = "scripted"
)

// ProviderSpec is the metadata record for one completion backend.
type ProviderSpec struct {
	Name           string   // config name, e.g. "openai"
	Keywords       []string // model-name keywords for matching (lowercase)
	EnvKey         string   // env var holding the API key
	DisplayName    string   // shown in `deepresearch status`
	DefaultAPIBase string
	DefaultModel   string
	NeedsKey       bool
}

// Label returns the display name, defaulting to Title-cased Name.
func (s ProviderSpec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// PROVIDERS is the registry. Order = match priority.
var PROVIDERS = []ProviderSpec{
	{
		Name:           ProviderOpenAI,
		Keywords:       []string{"gpt", "o1", "o3", "o4"},
		EnvKey:         "OPENAI_API_KEY",
		DisplayName:    "OpenAI",
		DefaultAPIBase: "https://api.openai.com/v1",
		DefaultModel:   "gpt-4o",
		NeedsKey:       true,
	},
	{
		Name:           ProviderAnthropic,
		Keywords:       []string{"claude"},
		EnvKey:         "ANTHROPIC_API_KEY",
		DisplayName:    "Anthropic",
		DefaultAPIBase: "https://api.anthropic.com",
		DefaultModel:   "claude-3-5-sonnet-20241022",
		NeedsKey:       true,
	},
	{
		Name:         ProviderScripted,
		DisplayName:  "Scripted (dry run)",
		DefaultModel: "scripted",
	},
}

// FindByName returns the spec registered under name, or nil.
func FindByName(name string) *ProviderSpec {
	for i := range PROVIDERS {
		if PROVIDERS[i].Name == name {
			return &PROVIDERS[i]
		}
	}
	return nil
}

// FindByModel returns the first spec whose keywords match model, or nil.
func FindByModel(model string) *ProviderSpec {
	m := strings.ToLower(model)
	if prefix, _, ok := strings.Cut(m, "/"); ok {
		if spec := FindByName(prefix); spec != nil {
			return spec
		}
	}
	for i := range PROVIDERS {
		for _, kw := range PROVIDERS[i].Keywords {
			if strings.Contains(m, kw) {
				return &PROVIDERS[i]
			}
		}
	}
	return nil
}

// StripPrefix removes an explicit "provider/" prefix from model.
func StripPrefix(model string) string {
	if prefix, rest, ok := strings.Cut(model, "/"); ok && FindByName(strings.ToLower(prefix)) != nil {
		return rest
	}
	return model
}
