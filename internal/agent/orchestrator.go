package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

const OrchestratorAgentName = "OrchestratorAgent"

// OrchestratorCapability describes the coordinating agent itself.
var OrchestratorCapability = schema.Capability{
	Name:        OrchestratorAgentName,
	Description: "Coordinates and manages specialized agents to solve complex multi-step tasks",
	BestFor: []string{
		"Complex queries requiring multiple types of expertise",
		"Tasks needing both research and analysis",
		"Multi-step problem solving",
		"Coordinating different specialized capabilities",
	},
	ExampleTasks: []string{
		"Research the latest climate data and analyze the trends",
		"Find information about quantum computing and explain how it works",
		"Look up the GDP of Japan and calculate the per capita income",
	},
}

const orchestratorGuide = `**Your approach**:
1. Analyze what the user is asking for
2. Determine which specialized agent(s) are best suited for the task
3. Delegate to the appropriate agent(s) based on their capabilities
4. You can use agents sequentially if needed
5. Combine results intelligently

**Delegation format**:
- To use SearchAgent: "DELEGATE_SEARCH: [specific task for search agent]"
- To use ReasoningAgent: "DELEGATE_REASONING: [specific task for reasoning agent]"
- When you have everything needed: "FINAL_ANSWER: [your complete response]"

**Key principles**:
- ALWAYS delegate tasks that match an agent's specialty area
- For mathematical calculations, logic puzzles, step-by-step analysis: use ReasoningAgent
- For factual information, current data, web research: use SearchAgent
- Only handle very simple conversational tasks directly (greetings, clarifications)
- Be specific about what you want each agent to do
- Choose agents based on their described capabilities and strengths
- Combine results from multiple agents when beneficial
`

// exampleTasksInPrompt caps how many example tasks each agent contributes
// to the orchestrator prompt.
const exampleTasksInPrompt = 3

// Orchestrator delegates sub-tasks to specialist agents through text markers
// and folds their answers back into its own transcript. It never calls
// tools itself.
type Orchestrator struct {
	base
	order  []schema.TaskType
	agents map[schema.TaskType]schema.Agent
}

// Target is one delegation target registered with an Orchestrator.
type Target struct {
	Type  schema.TaskType
	Agent schema.Agent
}

// CanHandle always reports true: the orchestrator accepts any request.
func (o *Orchestrator) CanHandle(schema.AgentRequest) bool { return true }

// Agents returns the delegation targets in registration order.
func (o *Orchestrator) Agents() []Target {
	out := make([]Target, 0, len(o.order))
	for _, t := range o.order {
		out = append(out, Target{Type: t, Agent: o.agents[t]})
	}
	return out
}

// Delegate forwards task to the agent registered for agentType.
func (o *Orchestrator) Delegate(ctx context.Context, agentType schema.TaskType, task string) schema.AgentResponse {
	a, ok := o.agents[agentType]
	if !ok {
		return schema.AgentResponse{
			Result: "Unknown agent type",
			Error:  fmt.Sprintf("No agent of type '%s' available. Available: %v", agentType, o.order),
		}
	}
	return a.Execute(ctx, schema.NewAgentRequest(task, agentType))
}

// Execute implements schema.Agent.
func (o *Orchestrator) Execute(ctx context.Context, req schema.AgentRequest) schema.AgentResponse {
	return o.guard(ctx, func(ctx context.Context) (schema.AgentResponse, error) {
		return o.runTask(ctx, req.Task, func(res loopResult, md map[string]any) {
			md["delegations_made"] = res.delegations
		})
	})
}

// BuildOrchestratorPrompt assembles the orchestrator system prompt from the
// capabilities of its delegation targets, in the given order.
func BuildOrchestratorPrompt(caps []schema.Capability) string {
	blocks := make([]string, 0, len(caps))
	for _, c := range caps {
		examples := c.ExampleTasks
		if len(examples) > exampleTasksInPrompt {
			examples = examples[:exampleTasksInPrompt]
		}
		blocks = append(blocks, fmt.Sprintf("**%s**:\n- %s\n- Best for: %s\n- Example tasks: %s",
			c.Name,
			c.Description,
			strings.Join(c.BestFor, ", "),
			strings.Join(examples, "; "),
		))
	}

	var sb strings.Builder
	sb.WriteString("You are an intelligent orchestrator that coordinates specialized agents to solve complex tasks.\n\n")
	sb.WriteString("Available agents and their capabilities:\n\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n\n")
	sb.WriteString(orchestratorGuide)
	return sb.String()
}
