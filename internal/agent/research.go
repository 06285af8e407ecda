package agent

import (
	"context"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

const ResearchAgentName = "ResearchAgent"

const researchPrompt = `
You are a deep research assistant. Think step-by-step to reason through problems, then use the available tools to gather information and provide comprehensive answers.

When you need information, use the available tools to search, read web pages, perform calculations, or gather data. You can use multiple tools in sequence to build a complete understanding.

IMPORTANT: If one approach doesn't work (e.g., a webpage is inaccessible, contains PDFs, or doesn't have the information), try alternative approaches:
- Search with different keywords or phrases
- Look for alternative sources or websites
- Try broader or more specific search terms
- Use different tools or combinations of tools

Be thorough in your research and provide well-sourced, comprehensive answers. Don't give up easily - if one source doesn't work, find another. If a tool fails or the result is unclear, try alternative approaches or sources.

For challenging reasoning tasks, MANDATORY: after reaching your initial conclusion, explicitly critique your reasoning by stating "Let me double-check this reasoning:" then identify potential flaws, consider alternative solutions, and verify each logical step before providing the final answer.

Always provide the final answer to the user's question based on your research and analysis.

When you are done, end your response with "FINAL_ANSWER:" followed by your complete answer.
`

// ResearchCapability describes the single-agent research path.
var ResearchCapability = schema.Capability{
	Name:        ResearchAgentName,
	Description: "Single agent that researches and answers a question end to end with every available tool",
	BestFor: []string{
		"Open research questions",
		"Questions mixing web lookup and calculation",
	},
	ExampleTasks: []string{
		"What is the population density of the largest city in Switzerland?",
	},
}

// ResearchAgent is the non-orchestrated path: one agent, every tool, and a
// best-effort salvage call when the turn budget runs out.
type ResearchAgent struct {
	base
}

// CanHandle always reports true.
func (a *ResearchAgent) CanHandle(schema.AgentRequest) bool { return true }

// Execute implements schema.Agent.
func (a *ResearchAgent) Execute(ctx context.Context, req schema.AgentRequest) schema.AgentResponse {
	return a.guard(ctx, func(ctx context.Context) (schema.AgentResponse, error) {
		transcript := schema.NewTranscript(a.prompt, req.Task)
		res, err := a.run(ctx, &transcript)
		if err != nil {
			return schema.AgentResponse{}, err
		}
		md := map[string]any{"turns_used": res.turnsUsed, "tool_calls": res.toolSteps}
		if res.done {
			return a.newSuccess(res.result, md), nil
		}
		return a.salvage(ctx, &transcript, md)
	})
}

// salvage asks the model once more, with the full transcript so far, and
// takes whatever it answers.
func (a *ResearchAgent) salvage(ctx context.Context, transcript *schema.Messages, md map[string]any) (schema.AgentResponse, error) {
	a.session.Logger().Info("Salvaging answer", "agent", a.name, "turns_used", md["turns_used"])

	var schemas []schema.ToolSchema
	if a.tools != nil {
		schemas = a.tools.Discover()
	}
	resp, err := a.client.Complete(ctx,
		transcript.Window(a.settings.MaxContextTokens),
		schemas,
		a.settings.ChatOptions(),
	)
	if err != nil {
		return schema.AgentResponse{}, err
	}

	md["salvaged"] = true
	answer := resp.Content
	if sig := Classify(answer, a.final, nil); sig.Kind == SignalFinal {
		answer = sig.Result
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return a.newFailure(a.timeout, md), nil
	}
	return a.newSuccess(answer, md), nil
}
