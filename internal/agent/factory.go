package agent

import (
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
	"github.com/RomanEngeler1805/deep-research-agent/internal/telemetry"
	"github.com/RomanEngeler1805/deep-research-agent/internal/tools"
)

// Budgets are the turn limits per agent.
type Budgets struct {
	Orchestrator int
	Reasoning    int
	Search       int
	Research     int
}

// DefaultBudgets are the stock turn limits.
var DefaultBudgets = Budgets{Orchestrator: 8, Reasoning: 5, Search: 5, Research: 10}

// AgentFactory creates agents. It holds construction-time dependencies;
// created agents own only their read-only configuration and can be reused
// across Execute calls.
type AgentFactory struct {
	client   schema.CompletionClient
	registry *tools.Registry // every tool; agents take subsets
	settings schema.AgentSettings
	budgets  Budgets
	parallel bool
	session  *telemetry.Session
}

// NewFactory constructs an AgentFactory. settings.MaxTurns is ignored in
// favour of budgets.
func NewFactory(
	client schema.CompletionClient,
	registry *tools.Registry,
	settings schema.AgentSettings,
	budgets Budgets,
	parallelTools bool,
	session *telemetry.Session,
) *AgentFactory {
	return &AgentFactory{
		client:   client,
		registry: registry,
		settings: settings,
		budgets:  budgets,
		parallel: parallelTools,
		session:  session,
	}
}

func (f *AgentFactory) loop(name string, maxTurns int, registry *tools.Registry, final string, progress schema.ProgressFunc) LoopRunner {
	settings := f.settings
	settings.MaxTurns = maxTurns
	return LoopRunner{
		name:     name,
		client:   f.client,
		settings: settings,
		tools:    registry,
		final:    final,
		parallel: f.parallel,
		session:  f.session,
		progress: progress,
	}
}

// NewSearchAgent creates the web research specialist.
func (f *AgentFactory) NewSearchAgent(progress schema.ProgressFunc) *Specialist {
	return &Specialist{
		base: base{
			LoopRunner: f.loop(SearchAgentName, f.budgets.Search, f.registry.Subset(tools.SearchTools...), MarkerSearchComplete, progress),
			capability: SearchCapability,
			prompt:     searchPrompt,
			failPrefix: "Search execution failed",
			timeout:    "Search timeout - could not complete within turn limit",
			span:       "SearchAgent - Web Research",
		},
		taskType: schema.TaskSearch,
	}
}

// NewReasoningAgent creates the calculation and logic specialist.
func (f *AgentFactory) NewReasoningAgent(progress schema.ProgressFunc) *Specialist {
	return &Specialist{
		base: base{
			LoopRunner: f.loop(ReasoningAgentName, f.budgets.Reasoning, f.registry.Subset(tools.ReasoningTools...), MarkerReasoningComplete, progress),
			capability: ReasoningCapability,
			prompt:     reasoningPrompt,
			failPrefix: "Reasoning execution failed",
			timeout:    "Reasoning timeout - could not complete within turn limit",
			span:       "ReasoningAgent - Logic & Calculations",
		},
		taskType: schema.TaskReasoning,
	}
}

// NewOrchestrator creates an orchestrator delegating to fresh search and
// reasoning specialists.
func (f *AgentFactory) NewOrchestrator(progress schema.ProgressFunc) *Orchestrator {
	return f.NewOrchestratorWith(progress,
		Target{Type: schema.TaskSearch, Agent: f.NewSearchAgent(progress)},
		Target{Type: schema.TaskReasoning, Agent: f.NewReasoningAgent(progress)},
	)
}

// NewOrchestratorWith creates an orchestrator over the given targets. The
// system prompt lists them in the order given.
func (f *AgentFactory) NewOrchestratorWith(progress schema.ProgressFunc, targets ...Target) *Orchestrator {
	o := &Orchestrator{agents: make(map[schema.TaskType]schema.Agent, len(targets))}
	caps := make([]schema.Capability, 0, len(targets))
	for _, t := range targets {
		if _, dup := o.agents[t.Type]; !dup {
			o.order = append(o.order, t.Type)
			caps = append(caps, t.Agent.Capability())
		}
		o.agents[t.Type] = t.Agent
	}

	// The orchestrator sends plain completions: no tools, no tool choice.
	o.base = base{
		LoopRunner: f.loop(OrchestratorAgentName, f.budgets.Orchestrator, nil, MarkerFinalAnswer, progress),
		capability: OrchestratorCapability,
		prompt:     BuildOrchestratorPrompt(caps),
		failPrefix: "Orchestration failed",
		timeout:    "Orchestration timeout - could not complete within turn limit",
		span:       "Orchestrator - Task Coordination",
	}
	o.delegations = OrchestratorDelegations
	o.delegate = o.Delegate
	return o
}

// NewResearchAgent creates the single-agent research path with every tool.
func (f *AgentFactory) NewResearchAgent(progress schema.ProgressFunc) *ResearchAgent {
	return &ResearchAgent{
		base: base{
			LoopRunner: f.loop(ResearchAgentName, f.budgets.Research, f.registry, MarkerFinalAnswer, progress),
			capability: ResearchCapability,
			prompt:     researchPrompt,
			failPrefix: "Research execution failed",
			timeout:    "Research timeout - could not complete within turn limit",
			span:       "Process query internally",
		},
	}
}
