package agent

type AgentDefaults struct {
	// Provider forces a completion backend ("openai", "anthropic",
	// "scripted"). Empty means it is inferred from Model.
	Provider         string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=openai anthropic scripted"`
	Model            string  `json:"model" yaml:"model" validate:"required"`
	MaxTokens        int     `json:"maxTokens" yaml:"maxTokens" validate:"gte=1"`
	Temperature      float64 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	MaxContextTokens int     `json:"maxContextTokens" yaml:"maxContextTokens" validate:"gte=0"`
	ParallelTools    bool    `json:"parallelTools" yaml:"parallelTools"`
}

// TurnBudgets caps the completion calls each agent may make per task.
type TurnBudgets struct {
	Orchestrator int `json:"orchestrator" yaml:"orchestrator" validate:"gte=1"`
	Reasoning    int `json:"reasoning" yaml:"reasoning" validate:"gte=1"`
	Search       int `json:"search" yaml:"search" validate:"gte=1"`
	Research     int `json:"research" yaml:"research" validate:"gte=1"`
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults" yaml:"defaults"`
	MaxTurns TurnBudgets   `json:"maxTurns" yaml:"maxTurns"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Model:            "gpt-4o",
		MaxTokens:        4096,
		Temperature:      0,
		MaxContextTokens: 120000,
	}
}

func DefaultTurnBudgets() TurnBudgets {
	return TurnBudgets{Orchestrator: 8, Reasoning: 5, Search: 5, Research: 10}
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults(), MaxTurns: DefaultTurnBudgets()}
}
