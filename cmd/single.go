package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RomanEngeler1805/deep-research-agent/internal/container"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/shared/cmdutils"
)

var singleCmd = &cobra.Command{
	Use:   "single [query...]",
	Short: "Answer a query with one research agent that holds every tool",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSingle,
}

var batchCmd = &cobra.Command{
	Use:   "batch [questions-file]",
	Short: "Answer every line of a questions file with the research agent",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatch,
}

func runSingle(_ *cobra.Command, args []string) error {
	c, err := buildContainer()
	if err != nil {
		return err
	}
	session := c.Telemetry()
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := cmdutils.NewPrinter(os.Stdout)
	listenForSignals(cancel, out, session)

	query := strings.Join(args, " ")
	if query == "" {
		var ok bool
		if query, ok = readQuestion(os.Stdin, out, "\n❓ You: "); !ok {
			return nil
		}
	}
	research(ctx, c, out, query)
	return nil
}

// research runs query through the single-agent path with step printing.
func research(ctx context.Context, c *container.Container, out *cmdutils.Printer, query string) schema.AgentResponse {
	session := c.Telemetry()
	done := session.Instrument("Run single query")

	out.ResearchBanner(query)
	ra := c.AgentFactory().NewResearchAgent(progressFor(out))
	resp := ra.Execute(ctx, schema.NewAgentRequest(query, schema.TaskGeneral))
	out.ResearchAnswer(resp)

	if resp.Success {
		session.MarkSuccess()
	} else {
		session.MarkFailure()
	}
	done(resp.Success)
	return resp
}

func runBatch(_ *cobra.Command, args []string) error {
	path := "questions.txt"
	if len(args) == 1 {
		path = args[0]
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	c, err := buildContainer()
	if err != nil {
		return err
	}
	defer c.Telemetry().Close()

	return answerAll(context.Background(), c, f, os.Stdout)
}

// answerAll runs every non-empty line of r through a quiet research agent.
// Line numbers count blank lines too.
func answerAll(ctx context.Context, c *container.Container, r io.Reader, w io.Writer) error {
	session := c.Telemetry()
	ra := c.AgentFactory().NewResearchAgent(nil)

	allOK := true
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		fmt.Fprintf(w, "\n=== Question %d: %s ===\n", i, question)

		resp := ra.Execute(ctx, schema.NewAgentRequest(question, schema.TaskGeneral))
		if resp.Success {
			fmt.Fprintf(w, "Answer: %s\n", resp.Result)
			continue
		}
		allOK = false
		fmt.Fprintf(w, "Answer: Error: %s\n", resp.Error)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read questions: %w", err)
	}

	if allOK {
		session.MarkSuccess()
	} else {
		session.MarkFailure()
	}
	return nil
}
