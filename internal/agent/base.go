package agent

import (
	"context"
	"fmt"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// base carries what every agent shares: its name, capability, prompt and
// the loop that runs it.
type base struct {
	LoopRunner
	capability schema.Capability
	prompt     string
	// failPrefix labels errors escaping Execute, e.g. "Search execution failed".
	failPrefix string
	// timeout is the error reported when the turn budget runs out.
	timeout string
	// span names the telemetry span wrapping Execute.
	span string
}

func (b *base) Name() string                  { return b.name }
func (b *base) Capability() schema.Capability { return b.capability }
func (b *base) SystemPrompt() string          { return b.prompt }

func (b *base) newSuccess(result string, metadata map[string]any) schema.AgentResponse {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return schema.AgentResponse{Result: result, Success: true, AgentName: b.name, Metadata: metadata}
}

func (b *base) newFailure(msg string, metadata map[string]any) schema.AgentResponse {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return schema.AgentResponse{Success: false, Error: msg, AgentName: b.name, Metadata: metadata}
}

// guard runs fn inside a telemetry span and turns returned errors and
// panics into a failed response. Nothing escapes Execute.
func (b *base) guard(ctx context.Context, fn func(ctx context.Context) (schema.AgentResponse, error)) (resp schema.AgentResponse) {
	end := b.session.Instrument(b.span)
	defer func() {
		if p := recover(); p != nil {
			b.session.Logger().Error("Agent panicked", "agent", b.name, "panic", p)
			resp = b.newFailure(fmt.Sprintf("%s: %v", b.failPrefix, p), nil)
		}
		end(resp.Success)
	}()

	resp, err := fn(ctx)
	if err != nil {
		b.session.Logger().Error("Agent failed", "agent", b.name, "err", err)
		return b.newFailure(fmt.Sprintf("%s: %v", b.failPrefix, err), nil)
	}
	return resp
}

// runTask starts a fresh transcript for task and drives the loop.
// On budget exhaustion it reports the agent's timeout error.
func (b *base) runTask(ctx context.Context, task string, extra func(res loopResult, md map[string]any)) (schema.AgentResponse, error) {
	transcript := schema.NewTranscript(b.prompt, task)
	res, err := b.run(ctx, &transcript)
	if err != nil {
		return schema.AgentResponse{}, err
	}

	md := map[string]any{"turns_used": res.turnsUsed}
	if extra != nil {
		extra(res, md)
	}
	if !res.done {
		return b.newFailure(b.timeout, md), nil
	}
	return b.newSuccess(res.result, md), nil
}
