package agent

import (
	"context"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

const (
	SearchAgentName    = "SearchAgent"
	ReasoningAgentName = "ReasoningAgent"
)

const searchPrompt = `
You are a specialized search agent. Your job is to find specific information using web searches and reading web pages.

Your capabilities:
- Search Google for information
- Open and read web pages
- Extract relevant information from search results

IMPORTANT:
- Be very careful to use trustable information. Always prefer official websites, open websites to understand the context.
- If initial search doesn't find what you need, try different keywords
- Always verify information by reading the actual web pages, not just search snippets
- Focus on finding the specific information requested

When you have found the answer, provide it clearly and cite your sources.

End your response with "SEARCH_COMPLETE:" followed by your findings.
`

const reasoningPrompt = `You are a specialized reasoning agent focused on logical analysis and problem solving.

Your process:
1. Break down the problem systematically
2. Apply logical reasoning step by step
3. Use calculations when needed
4. MANDATORY: State "Let me double-check this reasoning:" and critically examine your logic
5. Consider alternative approaches and potential flaws
6. Provide your final conclusion

Focus on:
- Clear logical steps
- Identifying assumptions
- Mathematical accuracy
- Critical self-evaluation

When complete, end with "REASONING_COMPLETE:" followed by your final answer.`

// SearchCapability describes the web research specialist.
var SearchCapability = schema.Capability{
	Name:        SearchAgentName,
	Description: "Specialized agent for finding and retrieving information from the web",
	BestFor: []string{
		"Factual questions requiring current information",
		"Finding specific data from websites",
		"Research on recent events or developments",
		"Looking up official information from authoritative sources",
		"Gathering comprehensive information on a topic",
	},
	ExampleTasks: []string{
		"What is the current population of Tokyo?",
		"Find the latest news about renewable energy developments",
		"What are the requirements for a US passport?",
		"Look up the official exchange rate for USD to EUR today",
		"Research the specifications of the latest iPhone model",
	},
}

// ReasoningCapability describes the calculation and logic specialist.
var ReasoningCapability = schema.Capability{
	Name:        ReasoningAgentName,
	Description: "Specialized agent for logical analysis, mathematical calculations, and systematic problem solving",
	BestFor: []string{
		"Mathematical calculations and problem solving",
		"Logical reasoning and deduction",
		"Step-by-step analysis of complex problems",
		"Critical thinking and argument evaluation",
		"Puzzles and brain teasers requiring systematic approach",
	},
	ExampleTasks: []string{
		"Solve this math problem: If a train travels 120 km in 2 hours, what is its speed?",
		"Analyze the logic in this argument: All cats are animals. Fluffy is a cat. Therefore...",
		"A standard Rubik's cube puzzle with missing pieces - determine what's missing",
		"Calculate compound interest on $1000 at 5% for 3 years",
		"Evaluate the reasoning: If all birds can fly, and penguins are birds, can penguins fly?",
	},
}

// Specialist is a single-purpose agent: one tool subset, one completion
// marker, one task type. The search and reasoning agents are both
// Specialists.
type Specialist struct {
	base
	taskType schema.TaskType
}

// CanHandle reports whether req carries this specialist's task type.
func (s *Specialist) CanHandle(req schema.AgentRequest) bool {
	return req.TaskType == s.taskType
}

// TaskType returns the task type this specialist accepts.
func (s *Specialist) TaskType() schema.TaskType { return s.taskType }

// Execute implements schema.Agent.
func (s *Specialist) Execute(ctx context.Context, req schema.AgentRequest) schema.AgentResponse {
	return s.guard(ctx, func(ctx context.Context) (schema.AgentResponse, error) {
		return s.runTask(ctx, req.Task, func(res loopResult, md map[string]any) {
			if s.taskType == schema.TaskReasoning && res.done {
				md["reasoning_complete"] = true
			}
		})
	})
}
