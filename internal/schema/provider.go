package schema

import "context"

// ChatOptions configures a single completion request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// ModelTurn is the normalised next turn returned by any completion backend.
type ModelTurn struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
	Usage        map[string]int // "input_tokens", "output_tokens"
}

// HasToolCalls reports whether the turn requests at least one tool call.
func (t ModelTurn) HasToolCalls() bool { return len(t.ToolCalls) > 0 }

// CompletionClient is the interface every completion backend must satisfy.
// An empty tool list means a plain chat completion with no tool choice.
type CompletionClient interface {
	Complete(ctx context.Context, messages Messages, tools []ToolSchema, opts ChatOptions) (ModelTurn, error)
	DefaultModel() string
}
