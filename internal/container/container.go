// Package container wires core deepresearch services using go.uber.org/dig.
package container

import (
	"log/slog"
	"time"

	"go.uber.org/dig"

	"github.com/RomanEngeler1805/deep-research-agent/internal/agent"
	"github.com/RomanEngeler1805/deep-research-agent/internal/config"
	"github.com/RomanEngeler1805/deep-research-agent/internal/providers"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/telemetry"
	"github.com/RomanEngeler1805/deep-research-agent/internal/tools"
)

// Architecture is reported in telemetry metadata.
const Architecture = "multi-agent-orchestrated"

// Options are the process-level switches that are not part of the config file.
type Options struct {
	// Logger receives structured logs. Nil discards them.
	Logger *slog.Logger
	// DryRun replaces the completion backend with a scripted client.
	DryRun bool
}

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg      *config.Config
	session  *telemetry.Session
	client   schema.CompletionClient
	registry *tools.Registry
	factory  *agent.AgentFactory
}

func (c *Container) Config() *config.Config            { return c.cfg }
func (c *Container) Telemetry() *telemetry.Session     { return c.session }
func (c *Container) Client() schema.CompletionClient   { return c.client }
func (c *Container) Tools() *tools.Registry            { return c.registry }
func (c *Container) AgentFactory() *agent.AgentFactory { return c.factory }

// llmModelKey is a named string type so dig can distinguish it from plain
// strings when injecting the effective model name.
type llmModelKey string

// backend is the raw completion client before telemetry wraps it.
type backend struct{ schema.CompletionClient }

// New builds and wires all core services from cfg.
func New(cfg *config.Config, opts Options) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() Options { return opts }); err != nil {
		return nil, err
	}
	if err := d.Provide(newBackend); err != nil {
		return nil, err
	}
	if err := d.Provide(resolveLLMModel); err != nil {
		return nil, err
	}
	if err := d.Provide(newTelemetry); err != nil {
		return nil, err
	}
	if err := d.Provide(newCompletionClient); err != nil {
		return nil, err
	}
	if err := d.Provide(NewToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentFactory); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		session *telemetry.Session,
		client schema.CompletionClient,
		registry *tools.Registry,
		factory *agent.AgentFactory,
	) {
		result = &Container{
			cfg:      cfg,
			session:  session,
			client:   client,
			registry: registry,
			factory:  factory,
		}
	})
	return result, err
}

func newBackend(cfg *config.Config, opts Options) (backend, error) {
	if opts.DryRun {
		c, err := providers.New(providers.Params{ProviderName: providers.ProviderScripted})
		return backend{c}, err
	}
	params, err := cfg.ProviderParams()
	if err != nil {
		return backend{}, err
	}
	c, err := providers.New(params)
	return backend{c}, err
}

func resolveLLMModel(cfg *config.Config, opts Options, b backend) llmModelKey {
	m := cfg.Agents.Defaults.Model
	if m == "" || opts.DryRun {
		m = b.DefaultModel()
	}
	return llmModelKey(m)
}

func newTelemetry(cfg *config.Config, opts Options, m llmModelKey) *telemetry.Session {
	return telemetry.New(telemetry.Options{
		Token:        cfg.Observability.Token,
		Model:        string(m),
		Environment:  cfg.Observability.Environment,
		AgentVersion: cfg.Observability.AgentVersion,
		Architecture: Architecture,
		Logger:       opts.Logger,
	})
}

func newCompletionClient(b backend, session *telemetry.Session) schema.CompletionClient {
	return session.WrapClient(b.CompletionClient)
}

// NewToolRegistry builds the full tool registry from the web tool settings.
func NewToolRegistry(cfg *config.Config) *tools.Registry {
	web := cfg.Tools.Web
	return tools.NewResearchRegistry(
		tools.SearchOptions{
			APIKey:     web.Search.APIKey,
			EngineID:   web.Search.EngineID,
			Endpoint:   web.Search.Endpoint,
			MaxResults: web.Search.MaxResults,
		},
		tools.FetchOptions{
			UserAgent: web.Fetch.UserAgent,
			Timeout:   time.Duration(web.Fetch.TimeoutSeconds) * time.Second,
			MaxChars:  web.Fetch.MaxChars,
		},
	)
}

func newAgentFactory(
	cfg *config.Config,
	client schema.CompletionClient,
	registry *tools.Registry,
	m llmModelKey,
	session *telemetry.Session,
) *agent.AgentFactory {
	d := cfg.Agents.Defaults
	settings := schema.NewAgentSettings(string(m), 0, d.Temperature, d.MaxTokens, d.MaxContextTokens)
	t := cfg.Agents.MaxTurns
	budgets := agent.Budgets{
		Orchestrator: t.Orchestrator,
		Reasoning:    t.Reasoning,
		Search:       t.Search,
		Research:     t.Research,
	}
	return agent.NewFactory(client, registry, settings, budgets, d.ParallelTools, session)
}
