package providers

import (
	"fmt"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// DryRunAnswer is what the scripted provider says when no backend is wired.
const DryRunAnswer = "FINAL_ANSWER: dry run, no completion backend was called."

// Params are the raw values needed to construct any schema.CompletionClient.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	APIKey       string
	APIBase      string
	DefaultModel string
	ProviderName string // registry name, e.g. "openai", "anthropic"
}

// New creates the schema.CompletionClient for the given params.
//
//   - openai    → OpenAIProvider
//   - anthropic → AnthropicProvider
//   - scripted  → Scripted answering DryRunAnswer
func New(p Params) (schema.CompletionClient, error) {
	spec := FindByName(p.ProviderName)
	if spec == nil {
		return nil, fmt.Errorf("unknown provider %q", p.ProviderName)
	}
	if spec.NeedsKey && p.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q (set %s)", spec.Name, spec.EnvKey)
	}
	model := p.DefaultModel
	if model == "" {
		model = spec.DefaultModel
	}

	switch spec.Name {
	case ProviderAnthropic:
		return NewAnthropicProvider(p.APIKey, p.APIBase, model), nil
	case ProviderScripted:
		return NewScripted(TextTurn(DryRunAnswer)), nil
	default:
		return NewOpenAIProvider(p.APIKey, p.APIBase, model), nil
	}
}
