// Package providers implements schema.CompletionClient for the supported
// completion backends. Concrete implementations are in openai.go,
// anthropic.go and scripted.go.
package providers

import (
	"errors"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// ErrEmptyResponse is returned when a backend answers without any choice.
var ErrEmptyResponse = errors.New("completion returned no choices")

const defaultMaxTokens = 4096

func resolveModel(opts schema.ChatOptions, fallback string) string {
	model := opts.Model
	if model == "" {
		model = fallback
	}
	return StripPrefix(model)
}

func resolveMaxTokens(opts schema.ChatOptions) int64 {
	if opts.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return int64(opts.MaxTokens)
}
