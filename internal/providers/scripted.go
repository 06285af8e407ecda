package providers

import (
	"context"
	"errors"
	"sync"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// ScriptedCall is one request recorded by Scripted.
type ScriptedCall struct {
	Messages schema.Messages
	Tools    []schema.ToolSchema
	Opts     schema.ChatOptions
}

// Scripted replays a fixed sequence of turns. Once the script runs out the
// last turn repeats. Every request is recorded with a copy of its transcript.
// It backs the dry-run provider and deterministic agent tests.
type Scripted struct {
	mu    sync.Mutex
	turns []schema.ModelTurn
	next  int
	calls []ScriptedCall
}

// NewScripted returns a client that answers with turns in order.
func NewScripted(turns ...schema.ModelTurn) *Scripted {
	return &Scripted{turns: turns}
}

func (s *Scripted) DefaultModel() string { return ProviderScripted }

// Complete implements schema.CompletionClient.
func (s *Scripted) Complete(
	ctx context.Context,
	messages schema.Messages,
	tools []schema.ToolSchema,
	opts schema.ChatOptions,
) (schema.ModelTurn, error) {
	if err := ctx.Err(); err != nil {
		return schema.ModelTurn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, ScriptedCall{
		Messages: messages.Clone(),
		Tools:    append([]schema.ToolSchema(nil), tools...),
		Opts:     opts,
	})
	if len(s.turns) == 0 {
		return schema.ModelTurn{}, errors.New("scripted client has no turns")
	}
	turn := s.turns[min(s.next, len(s.turns)-1)]
	s.next++
	return turn, nil
}

// Calls returns the recorded requests in order.
func (s *Scripted) Calls() []ScriptedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScriptedCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of requests served.
func (s *Scripted) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// ClientFunc adapts a function to schema.CompletionClient.
type ClientFunc func(ctx context.Context, messages schema.Messages, tools []schema.ToolSchema, opts schema.ChatOptions) (schema.ModelTurn, error)

func (f ClientFunc) Complete(ctx context.Context, messages schema.Messages, tools []schema.ToolSchema, opts schema.ChatOptions) (schema.ModelTurn, error) {
	return f(ctx, messages, tools, opts)
}

func (f ClientFunc) DefaultModel() string { return ProviderScripted }

// TextTurn is a turn carrying only text.
func TextTurn(content string) schema.ModelTurn {
	return schema.ModelTurn{Content: content, FinishReason: "stop"}
}

// ToolTurn is a turn requesting the given tool calls.
func ToolTurn(content string, calls ...schema.ToolCall) schema.ModelTurn {
	return schema.ModelTurn{Content: content, ToolCalls: calls, FinishReason: "tool_calls"}
}
