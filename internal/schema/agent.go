package schema

import "context"

// AgentSettings carries the per-agent completion settings and turn budget.
type AgentSettings struct {
	Model            string
	MaxTurns         int
	Temperature      float64
	MaxTokens        int
	MaxContextTokens int
}

func NewAgentSettings(model string, maxTurns int, temperature float64, maxTokens, maxContextTokens int) AgentSettings {
	return AgentSettings{
		Model:            model,
		MaxTurns:         maxTurns,
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		MaxContextTokens: maxContextTokens,
	}
}

// ChatOptions returns the completion options for these settings.
func (s AgentSettings) ChatOptions() ChatOptions {
	return NewChatOptions(s.Model, s.MaxTokens, s.Temperature)
}

// TaskType tags a request with the kind of work it carries.
type TaskType string

const (
	TaskSearch    TaskType = "search"
	TaskReasoning TaskType = "reasoning"
	TaskGeneral   TaskType = "general"
)

// Capability is the static self-description of an agent.
type Capability struct {
	Name         string
	Description  string
	BestFor      []string
	ExampleTasks []string
}

// AgentRequest is a unit of work handed to an agent.
type AgentRequest struct {
	Task     string
	TaskType TaskType
	Context  map[string]any
}

func NewAgentRequest(task string, taskType TaskType) AgentRequest {
	if taskType == "" {
		taskType = TaskGeneral
	}
	return AgentRequest{Task: task, TaskType: taskType}
}

// AgentResponse is the single outcome of one Execute call.
type AgentResponse struct {
	Result    string
	Success   bool
	Error     string
	Metadata  map[string]any
	AgentName string
}

// TurnsUsed returns the "turns_used" metadata entry, or 0.
func (r AgentResponse) TurnsUsed() int {
	n, _ := r.Metadata["turns_used"].(int)
	return n
}

// Agent is one participant in the research pipeline.
type Agent interface {
	Name() string
	Capability() Capability
	SystemPrompt() string
	CanHandle(req AgentRequest) bool
	Execute(ctx context.Context, req AgentRequest) AgentResponse
}
