// Package telemetry carries the per-process observability context: run
// metadata, the structured logger, spans and the final success mark.
// A Session is created once at startup and passed explicitly to the
// completion client and the agents.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"go.uber.org/atomic"
)

const unknown = "unknown"

// Outcome is the mark recorded for the whole run.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Metadata describes the run. It is attached to every span log line.
type Metadata struct {
	RunID            string
	GitCommit        string
	GitCommitMessage string
	Model            string
	Environment      string
	AgentVersion     string
	Architecture     string
	TokenConfigured  bool
}

// Options configure New.
type Options struct {
	Token        string
	Model        string
	Environment  string
	AgentVersion string
	Architecture string
	Logger       *slog.Logger
	// GitDir is where git is asked about the current commit. Empty means
	// the working directory.
	GitDir string
}

// Stats is a snapshot of the session counters.
type Stats struct {
	Calls       int64
	FailedCalls int64
	ToolCalls   int64
	Spans       int64
	Duration    time.Duration
}

// Session is the explicit observability context. All methods are safe on a
// nil receiver, which behaves as a discarding session.
type Session struct {
	meta    Metadata
	logger  *slog.Logger
	started time.Time

	calls       *atomic.Int64
	failedCalls *atomic.Int64
	toolCalls   *atomic.Int64
	spans       *atomic.Int64

	mu      sync.Mutex
	outcome Outcome
	closed  bool
}

// New builds a session and resolves git metadata once.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = Discard()
	}
	meta := Metadata{
		RunID:            uuid.NewString(),
		GitCommit:        gitOutput(opts.GitDir, "rev-parse", "HEAD"),
		GitCommitMessage: gitOutput(opts.GitDir, "log", "-1", "--pretty=%B"),
		Model:            opts.Model,
		Environment:      opts.Environment,
		AgentVersion:     opts.AgentVersion,
		Architecture:     opts.Architecture,
		TokenConfigured:  opts.Token != "",
	}
	s := &Session{
		meta:        meta,
		logger:      logger.With("run_id", meta.RunID),
		started:     time.Now(),
		calls:       atomic.NewInt64(0),
		failedCalls: atomic.NewInt64(0),
		toolCalls:   atomic.NewInt64(0),
		spans:       atomic.NewInt64(0),
	}
	s.logger.Debug("Telemetry configured",
		"git_commit", meta.GitCommit,
		"model", meta.Model,
		"environment", meta.Environment,
		"agent_version", meta.AgentVersion,
		"architecture", meta.Architecture,
		"token_configured", meta.TokenConfigured,
	)
	return s
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *Session) Metadata() Metadata {
	if s == nil {
		return Metadata{}
	}
	return s.meta
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger {
	if s == nil {
		return Discard()
	}
	return s.logger
}

// Instrument opens a named span. The returned func closes it and records
// whether the spanned work succeeded.
func (s *Session) Instrument(name string) func(success bool) {
	if s == nil {
		return func(bool) {}
	}
	id := xid.New().String()
	start := time.Now()
	s.spans.Inc()
	s.logger.Debug("Span start", "span", name, "span_id", id)

	var once sync.Once
	return func(success bool) {
		once.Do(func() {
			s.logger.Debug("Span end",
				"span", name,
				"span_id", id,
				"success", success,
				"duration", time.Since(start),
			)
		})
	}
}

// MarkSuccess records a successful run. The first mark wins.
func (s *Session) MarkSuccess() { s.mark(OutcomeSuccess) }

// MarkFailure records a failed run. The first mark wins.
func (s *Session) MarkFailure() { s.mark(OutcomeFailure) }

func (s *Session) mark(o Outcome) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == OutcomeNone {
		s.outcome = o
		s.logger.Info("Run marked", "outcome", string(o))
	}
}

func (s *Session) Outcome() Outcome {
	if s == nil {
		return OutcomeNone
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// RecordToolCall counts one executed tool call.
func (s *Session) RecordToolCall(name string, d time.Duration) {
	if s == nil {
		return
	}
	s.toolCalls.Inc()
	s.logger.Debug("Tool executed", "name", name, "duration", d)
}

func (s *Session) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Calls:       s.calls.Load(),
		FailedCalls: s.failedCalls.Load(),
		ToolCalls:   s.toolCalls.Load(),
		Spans:       s.spans.Load(),
		Duration:    time.Since(s.started),
	}
}

// Close logs the run summary. Calling it twice is a no-op.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	outcome := s.outcome
	s.mu.Unlock()

	st := s.Stats()
	s.logger.Info("Run finished",
		"outcome", string(outcome),
		"llm_calls", st.Calls,
		"llm_failures", st.FailedCalls,
		"tool_calls", st.ToolCalls,
		"spans", st.Spans,
		"duration", st.Duration,
	)
}

func gitOutput(dir string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return unknown
	}
	if v := strings.TrimSpace(string(out)); v != "" {
		return v
	}
	return unknown
}
