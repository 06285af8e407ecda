package telemetry

import (
	"context"
	"time"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// Client wraps a completion client so every call is counted and logged.
type Client struct {
	next    schema.CompletionClient
	session *Session
}

// WrapClient instruments next with the session.
func (s *Session) WrapClient(next schema.CompletionClient) *Client {
	return &Client{next: next, session: s}
}

func (c *Client) DefaultModel() string { return c.next.DefaultModel() }

// Complete implements schema.CompletionClient.
func (c *Client) Complete(
	ctx context.Context,
	messages schema.Messages,
	tools []schema.ToolSchema,
	opts schema.ChatOptions,
) (schema.ModelTurn, error) {
	start := time.Now()
	turn, err := c.next.Complete(ctx, messages, tools, opts)

	model := opts.Model
	if model == "" {
		model = c.next.DefaultModel()
	}
	if c.session == nil {
		return turn, err
	}
	c.session.calls.Inc()
	if err != nil {
		c.session.failedCalls.Inc()
		c.session.logger.Warn("LLM call failed",
			"model", model,
			"duration", time.Since(start),
			"err", err,
		)
		return turn, err
	}
	c.session.logger.Debug("LLM call",
		"model", model,
		"duration", time.Since(start),
		"messages", messages.Len(),
		"tools", len(tools),
		"tool_calls", len(turn.ToolCalls),
		"input_tokens", turn.Usage["input_tokens"],
		"output_tokens", turn.Usage["output_tokens"],
		"success", true,
	)
	return turn, nil
}
