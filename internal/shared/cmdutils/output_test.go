package cmdutils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RomanEngeler1805/deep-research-agent/internal/agent"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

func TestProgressToolStep(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Progress(schema.ProgressEvent{Kind: schema.ProgressToolCall, Agent: agent.ResearchAgentName, Step: 2, Name: "calculate", Detail: `{"expression":"2+2"}`})
	p.Progress(schema.ProgressEvent{Kind: schema.ProgressToolResult, Agent: agent.ResearchAgentName, Name: "calculate", Detail: "Result: 4\nok"})

	out := buf.String()
	assert.Contains(t, out, "STEP 2: Using calculate")
	assert.Contains(t, out, "   Function: calculate\n   Arguments: {\"expression\":\"2+2\"}")
	assert.Contains(t, out, "📊 RESULT:\n   Result: 4\n   ok\n")
}

func TestProgressTruncatesLongObservations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Progress(schema.ProgressEvent{Kind: schema.ProgressToolResult, Detail: strings.Repeat("x", ObservationLimit+50)})

	out := buf.String()
	assert.Contains(t, out, strings.Repeat("x", ObservationLimit)+"...")
	assert.NotContains(t, out, strings.Repeat("x", ObservationLimit+1))
	assert.Contains(t, out, "[Content truncated - showing first 800 characters]")
}

func TestProgressThoughtsByAgent(t *testing.T) {
	cases := []struct {
		agent string
		want  string
	}{
		{agent.OrchestratorAgentName, "🎯 ORCHESTRATOR: plan"},
		{agent.ReasoningAgentName, "🧠 REASONING: plan"},
		{agent.ResearchAgentName, "💭 REASONING:\n   plan"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		NewPrinter(&buf).Progress(schema.ProgressEvent{Kind: schema.ProgressThought, Agent: tc.agent, Detail: "plan"})
		assert.Contains(t, buf.String(), tc.want, tc.agent)
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Progress(schema.ProgressEvent{Kind: schema.ProgressThought, Detail: "  "})
	assert.Empty(t, buf.String())
}

func TestProgressDelegation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Progress(schema.ProgressEvent{Kind: schema.ProgressDelegation, Name: "search", Detail: "find X"})
	p.Progress(schema.ProgressEvent{Kind: schema.ProgressAgentResult, Name: "search", Detail: "X is 1"})
	p.Progress(schema.ProgressEvent{Kind: schema.ProgressDelegation, Name: "reasoning", Detail: "double X"})
	p.Progress(schema.ProgressEvent{Kind: schema.ProgressAgentError, Name: "reasoning", Detail: "boom"})

	out := buf.String()
	assert.Contains(t, out, "🔍 DELEGATING TO SEARCH AGENT: find X")
	assert.Contains(t, out, "✅ AGENT RESULT: X is 1")
	assert.Contains(t, out, "🧠 DELEGATING TO REASONING AGENT: double X")
	assert.Contains(t, out, "❌ AGENT ERROR: boom")
}

func TestAnswerShowsErrorBlockOnFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Answer("FINAL ANSWER", schema.AgentResponse{Success: false, Error: "Orchestration failed: down"})

	out := buf.String()
	assert.Contains(t, out, "🎯 FINAL ANSWER:")
	assert.Contains(t, out, "❌ Error: Orchestration failed: down")
}
