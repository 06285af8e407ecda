package schema

// ProgressKind identifies what an agent is reporting.
type ProgressKind string

const (
	ProgressThought     ProgressKind = "thought"
	ProgressToolCall    ProgressKind = "tool_call"
	ProgressToolResult  ProgressKind = "tool_result"
	ProgressDelegation  ProgressKind = "delegation"
	ProgressAgentResult ProgressKind = "agent_result"
	ProgressAgentError  ProgressKind = "agent_error"
)

// ProgressEvent is one intermediate step surfaced to the caller.
type ProgressEvent struct {
	Kind   ProgressKind
	Agent  string
	Step   int    // tool step counter, tool_call only
	Name   string // tool name or delegation target
	Detail string
}

// ProgressFunc receives progress events. A nil ProgressFunc drops them.
type ProgressFunc func(ProgressEvent)

// Emit calls f when it is set.
func (f ProgressFunc) Emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
