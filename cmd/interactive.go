package cmd

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/container"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/shared/cmdutils"
)

var exitCommands = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

// readQuestion prints prompt and returns the trimmed line. ok is false when
// the user asked to leave or sent nothing.
func readQuestion(in io.Reader, out *cmdutils.Printer, prompt string) (question string, ok bool) {
	out.Prompt(prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSpace(line)

	if exitCommands[strings.ToLower(line)] {
		out.Goodbye()
		return "", false
	}
	return line, line != ""
}

// runInteractive asks for a single question and answers it through the
// orchestrator.
func runInteractive(ctx context.Context, c *container.Container, out *cmdutils.Printer, in io.Reader) {
	session := c.Telemetry()
	done := session.Instrument("Run interactive multi-agent mode")

	out.InteractiveBanner()
	question, ok := readQuestion(in, out, "You: ")
	if !ok {
		done(true)
		return
	}

	out.Analyzing()
	orch := c.AgentFactory().NewOrchestrator(progressFor(out))
	resp := orch.Execute(ctx, schema.NewAgentRequest(question, schema.TaskGeneral))
	out.Answer("ANSWER", resp)
	out.Blank()

	done(resp.Success)
}
