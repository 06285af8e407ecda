// Package cmd implements the deepresearch CLI using cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RomanEngeler1805/deep-research-agent/internal/config"
	"github.com/RomanEngeler1805/deep-research-agent/internal/container"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/shared/cmdutils"
	"github.com/RomanEngeler1805/deep-research-agent/internal/telemetry"
)

const version = "2.0.0"

var (
	cfgPath      string
	showLogs     bool
	modelFlag    string
	providerFlag string
	dryRun       bool
	quiet        bool
)

// rootCmd runs one query through the orchestrator, or asks for one when
// called without arguments.
var rootCmd = &cobra.Command{
	Use:          "deepresearch [query...]",
	Short:        "🤖 deepresearch: multi-agent web research assistant",
	Long:         "🤖 deepresearch: an orchestrator that delegates to search and reasoning agents",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "Config file (default ~/.deepresearch/config.yaml)")
	pf.BoolVar(&showLogs, "logs", false, "Show runtime logs on stderr")
	pf.StringVarP(&modelFlag, "model", "m", "", "Override the completion model")
	pf.StringVar(&providerFlag, "provider", "", "Override the completion provider (openai, anthropic, scripted)")
	pf.BoolVar(&dryRun, "dry-run", false, "Use the scripted provider instead of a real backend")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Hide intermediate agent steps")

	rootCmd.AddCommand(singleCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(onboardCmd)
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if modelFlag != "" {
		cfg.Agents.Defaults.Model = modelFlag
	}
	if providerFlag != "" {
		cfg.Agents.Defaults.Provider = providerFlag
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildContainer() (*container.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return container.New(cfg, container.Options{Logger: newLogger(), DryRun: dryRun})
}

func newLogger() *slog.Logger {
	if !showLogs {
		return telemetry.Discard()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// progressFor returns the printer's progress callback unless --quiet is set.
func progressFor(out *cmdutils.Printer) schema.ProgressFunc {
	if quiet {
		return nil
	}
	return out.Progress
}

func runRoot(_ *cobra.Command, args []string) error {
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

	if len(args) > 0 {
		runQuery(ctx, c, out, strings.Join(args, " "))
		return nil
	}
	runInteractive(ctx, c, out, os.Stdin)
	return nil
}

// runQuery sends one task through the orchestrator and prints the answer.
func runQuery(ctx context.Context, c *container.Container, out *cmdutils.Printer, query string) {
	session := c.Telemetry()
	done := session.Instrument("Run single query multi-agent")

	out.QueryBanner(query)
	orch := c.AgentFactory().NewOrchestrator(progressFor(out))
	resp := orch.Execute(ctx, schema.NewAgentRequest(query, schema.TaskGeneral))
	out.Answer("FINAL ANSWER", resp)

	if resp.Success {
		session.MarkSuccess()
	} else {
		session.MarkFailure()
	}
	done(resp.Success)
}

// listenForSignals cancels ctx on SIGINT or SIGTERM, says goodbye and exits 0.
func listenForSignals(cancel context.CancelFunc, out *cmdutils.Printer, session *telemetry.Session) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		out.Goodbye()
		session.Logger().Info("Received signal, shutting down", "signal", sig.String())

		cancel()
		session.Close()
		os.Exit(0)
	}()
}
