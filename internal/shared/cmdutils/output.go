package cmdutils

import (
	"fmt"
	"io"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/agent"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/shared/llmutils"
)

const (
	logo = "🤖"

	// ObservationLimit is how much of a tool result is echoed to the terminal.
	ObservationLimit = 800
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
	stepRule  = strings.Repeat("=", 60)
)

// Printer renders agent progress and answers for a terminal.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Progress prints one progress event. Pass it to the agent factory as a
// schema.ProgressFunc.
func (p *Printer) Progress(ev schema.ProgressEvent) {
	switch ev.Kind {
	case schema.ProgressThought:
		p.thought(ev.Agent, ev.Detail)
	case schema.ProgressToolCall:
		p.StepHeader(ev.Step, "Using "+ev.Name)
		fmt.Fprintf(p.w, "\n🔧 TOOL CALL:\n   Function: %s\n   Arguments: %s\n", ev.Name, ev.Detail)
	case schema.ProgressToolResult:
		p.observation(ev.Detail)
	case schema.ProgressDelegation:
		switch schema.TaskType(ev.Name) {
		case schema.TaskSearch:
			fmt.Fprintf(p.w, "\n🔍 DELEGATING TO SEARCH AGENT: %s\n", ev.Detail)
		case schema.TaskReasoning:
			fmt.Fprintf(p.w, "\n🧠 DELEGATING TO REASONING AGENT: %s\n", ev.Detail)
		default:
			fmt.Fprintf(p.w, "\n➡️  DELEGATING TO %s AGENT: %s\n", strings.ToUpper(ev.Name), ev.Detail)
		}
	case schema.ProgressAgentResult:
		fmt.Fprintf(p.w, "✅ AGENT RESULT: %s\n", ev.Detail)
	case schema.ProgressAgentError:
		fmt.Fprintf(p.w, "❌ AGENT ERROR: %s\n", ev.Detail)
	}
}

func (p *Printer) thought(agentName, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	switch agentName {
	case agent.OrchestratorAgentName:
		fmt.Fprintf(p.w, "\n🎯 ORCHESTRATOR: %s\n", text)
	case agent.ReasoningAgentName:
		fmt.Fprintf(p.w, "\n🧠 REASONING: %s\n", text)
	default:
		fmt.Fprintf(p.w, "\n💭 REASONING:\n   %s\n", text)
	}
}

func (p *Printer) observation(text string) {
	fmt.Fprintln(p.w, "\n📊 RESULT:")
	if len([]rune(text)) > ObservationLimit {
		fmt.Fprintf(p.w, "   %s\n", llmutils.Truncate(text, ObservationLimit))
		fmt.Fprintf(p.w, "   [Content truncated - showing first %d characters]\n", ObservationLimit)
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(p.w, "   %s\n", line)
	}
}

// StepHeader prints a numbered step banner.
func (p *Printer) StepHeader(step int, title string) {
	fmt.Fprintf(p.w, "\n%s\nSTEP %d: %s\n%s\n", stepRule, step, title, stepRule)
}

// QueryBanner introduces a one-shot multi-agent query.
func (p *Printer) QueryBanner(query string) {
	fmt.Fprintf(p.w, "%s\n%s Multi-Agent AI System\n%s\n", heavyRule, logo, heavyRule)
	fmt.Fprintf(p.w, "Query: %s\n%s\n", query, lightRule)
	fmt.Fprintln(p.w, "🧠 Orchestrator analyzing task...")
}

// InteractiveBanner greets the user before the single interactive prompt.
func (p *Printer) InteractiveBanner() {
	fmt.Fprintf(p.w, "%s\n%s Multi-Agent AI System Ready\n%s\n", heavyRule, logo, heavyRule)
	fmt.Fprintln(p.w, "Ask me anything! I'll coordinate specialized agents to research and provide comprehensive answers.")
	fmt.Fprintln(p.w, "Type 'quit' or 'exit' to end the session.")
	fmt.Fprintln(p.w)
}

// Analyzing separates an interactive question from the agent trace.
func (p *Printer) Analyzing() {
	fmt.Fprintln(p.w, lightRule)
	fmt.Fprintln(p.w, "🧠 Orchestrator analyzing task...")
}

// Answer prints the orchestrator's result under title, or a labelled error
// block when the run failed.
func (p *Printer) Answer(title string, resp schema.AgentResponse) {
	fmt.Fprintf(p.w, "\n%s\n🎯 %s:\n%s\n", heavyRule, title, heavyRule)
	if resp.Success {
		fmt.Fprintln(p.w, resp.Result)
		return
	}
	p.Error(resp.Error)
}

// ResearchBanner introduces a single-agent research run.
func (p *Printer) ResearchBanner(query string) {
	fmt.Fprintf(p.w, "\n🔄 RESEARCHING: %s\n%s\n", query, heavyRule)
}

// ResearchAnswer prints the single-agent result framed by rules.
func (p *Printer) ResearchAnswer(resp schema.AgentResponse) {
	fmt.Fprintf(p.w, "\n%s\n💬 FINAL ANSWER\n%s\n", heavyRule, heavyRule)
	if resp.Success {
		fmt.Fprintln(p.w, resp.Result)
	} else {
		p.Error(resp.Error)
	}
	fmt.Fprintln(p.w, heavyRule)
}

// Error prints a labelled error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "\n❌ Error: %s\n", msg)
}

// Prompt prints s without a trailing newline.
func (p *Printer) Prompt(s string) {
	fmt.Fprint(p.w, s)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Goodbye is printed on exit commands and interrupts.
func (p *Printer) Goodbye() {
	fmt.Fprintln(p.w, "\n👋 Goodbye!")
}
