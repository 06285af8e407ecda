package agent

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/shared/llmutils"
	"github.com/RomanEngeler1805/deep-research-agent/internal/telemetry"
	"github.com/RomanEngeler1805/deep-research-agent/internal/tools"
)

// DelegateFunc hands a sub-task to the agent registered for target.
type DelegateFunc func(ctx context.Context, target schema.TaskType, task string) schema.AgentResponse

// LoopRunner executes the LLM ↔ tool iteration loop.
// It is embedded by every agent to share the loop body; the agents differ
// only in prompt, tool subset, markers and budget.
type LoopRunner struct {
	name        string
	client      schema.CompletionClient
	settings    schema.AgentSettings
	tools       *tools.Registry // nil: plain completions without tools
	final       string
	delegations []Delegation
	delegate    DelegateFunc
	parallel    bool
	session     *telemetry.Session
	progress    schema.ProgressFunc
}

// loopResult is what one run of the loop produced.
type loopResult struct {
	result      string
	done        bool
	turnsUsed   int
	delegations int
	toolSteps   int
}

// run drives transcript until the completion marker shows up or the turn
// budget runs out. A turn is one completion call. Only transport errors
// are returned; tool problems are folded into the transcript as text.
func (r *LoopRunner) run(ctx context.Context, transcript *schema.Messages) (loopResult, error) {
	var res loopResult
	logger := r.session.Logger().With("agent", r.name)

	var schemas []schema.ToolSchema
	if r.tools != nil {
		schemas = r.tools.Discover()
	}

	for turn := 1; turn <= r.settings.MaxTurns; turn++ {
		resp, err := r.client.Complete(ctx,
			transcript.Window(r.settings.MaxContextTokens),
			schemas,
			r.settings.ChatOptions(),
		)
		if err != nil {
			return res, err
		}
		res.turnsUsed = turn

		content := resp.Content
		if thought := llmutils.StripThink(content); thought != "" {
			r.progress.Emit(schema.ProgressEvent{Kind: schema.ProgressThought, Agent: r.name, Detail: thought})
		}

		sig := Classify(content, r.final, r.delegations)
		switch {
		case sig.Kind == SignalFinal:
			res.result = sig.Result
			res.done = true
			return res, nil

		case sig.Kind == SignalDelegate:
			transcript.AddAssistant(content)
			res.delegations++
			r.handOff(ctx, transcript, sig)

		case resp.HasToolCalls():
			r.runTools(ctx, transcript, content, resp.ToolCalls, &res.toolSteps)

		default:
			transcript.AddAssistant(content)
		}
	}

	logger.Warn("Turn budget exhausted", "max_turns", r.settings.MaxTurns, "delegations", res.delegations)
	return res, nil
}

// handOff runs the delegation and folds its outcome back as a user turn.
func (r *LoopRunner) handOff(ctx context.Context, transcript *schema.Messages, sig Signal) {
	r.progress.Emit(schema.ProgressEvent{
		Kind:   schema.ProgressDelegation,
		Agent:  r.name,
		Name:   string(sig.Target),
		Detail: sig.Task,
	})
	r.session.Logger().Info("Delegating", "agent", r.name, "target", sig.Target, "task", llmutils.Truncate(sig.Task, 200))

	var out schema.AgentResponse
	if r.delegate == nil {
		out = schema.AgentResponse{Error: fmt.Sprintf("No agent of type '%s' available. Available: []", sig.Target)}
	} else {
		out = r.delegate(ctx, sig.Target, sig.Task)
	}

	if out.Success {
		r.progress.Emit(schema.ProgressEvent{Kind: schema.ProgressAgentResult, Agent: r.name, Name: string(sig.Target), Detail: out.Result})
		transcript.AddUser("Agent result: " + out.Result)
		return
	}
	r.progress.Emit(schema.ProgressEvent{Kind: schema.ProgressAgentError, Agent: r.name, Name: string(sig.Target), Detail: out.Error})
	transcript.AddUser("Agent encountered an error: " + out.Error)
}

// runTools executes the calls of one turn. Each call is recorded as its own
// assistant turn followed by its result, in the order the model sent them,
// whether or not the calls ran concurrently.
func (r *LoopRunner) runTools(ctx context.Context, transcript *schema.Messages, content string, calls []schema.ToolCall, step *int) {
	results := make([]string, len(calls))
	r.session.Logger().Debug("Tool turn", "agent", r.name, "calls", llmutils.ToolHint(calls), "parallel", r.parallel)

	for _, tc := range calls {
		*step++
		r.progress.Emit(schema.ProgressEvent{
			Kind:   schema.ProgressToolCall,
			Agent:  r.name,
			Step:   *step,
			Name:   tc.Name,
			Detail: tc.Arguments,
		})
	}

	if r.parallel && len(calls) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for i, tc := range calls {
			g.Go(func() error {
				results[i] = r.execute(gctx, tc)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, tc := range calls {
			results[i] = r.execute(ctx, tc)
		}
	}

	for i, tc := range calls {
		r.progress.Emit(schema.ProgressEvent{Kind: schema.ProgressToolResult, Agent: r.name, Name: tc.Name, Detail: results[i]})
		transcript.AddAssistant(content, tc)
		transcript.AddToolResult(tc.ID, tc.Name, results[i])
	}
}

func (r *LoopRunner) execute(ctx context.Context, tc schema.ToolCall) string {
	r.session.Logger().Info("Tool call", "agent", r.name, "name", tc.Name, "args", llmutils.Truncate(tc.Arguments, 200))

	start := time.Now()
	var result string
	if r.tools == nil {
		result = fmt.Sprintf("Error: Tool '%s' not found.", tc.Name)
	} else {
		result = r.tools.ExecuteCall(ctx, tc)
	}
	r.session.RecordToolCall(tc.Name, time.Since(start))
	return result
}
