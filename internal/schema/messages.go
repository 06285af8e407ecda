package schema

import (
	"errors"
	"fmt"
)

// charsPerToken is the rough estimate used to size a transcript.
const charsPerToken = 4

// recentWindow is how many non-system messages survive a windowed view.
const recentWindow = 10

// Messages is the ordered transcript exchanged with the LLM.
// It owns typed append methods so callers never construct raw entries,
// and it always starts with exactly one system message.
type Messages struct {
	Messages []Message
}

// NewTranscript returns a transcript holding the system prompt and the task.
func NewTranscript(systemPrompt, task string) Messages {
	return Messages{Messages: []Message{
		NewSystemMessage(systemPrompt),
		NewUserMessage(task),
	}}
}

// AddUser appends a user message.
func (mh *Messages) AddUser(content string) {
	mh.Messages = append(mh.Messages, NewUserMessage(content))
}

// AddAssistant appends an assistant message with optional tool calls.
func (mh *Messages) AddAssistant(content string, toolCalls ...ToolCall) {
	mh.Messages = append(mh.Messages, NewAssistantMessage(content, toolCalls...))
}

// AddToolResult appends a tool-result message.
func (mh *Messages) AddToolResult(toolCallID, toolName, result string) {
	mh.Messages = append(mh.Messages, NewToolResultMessage(toolCallID, toolName, result))
}

// Len returns the number of messages.
func (mh *Messages) Len() int { return len(mh.Messages) }

// Last returns the most recent message, or a zero Message when empty.
func (mh *Messages) Last() Message {
	if len(mh.Messages) == 0 {
		return Message{}
	}
	return mh.Messages[len(mh.Messages)-1]
}

// Clone returns a copy of mh with an independent backing slice.
func (mh *Messages) Clone() Messages {
	cloned := make([]Message, len(mh.Messages))
	copy(cloned, mh.Messages)
	return Messages{Messages: cloned}
}

// Validate checks the transcript shape: one leading system message, and every
// tool result answering a call made by the assistant turn right before it.
func (mh *Messages) Validate() error {
	if len(mh.Messages) == 0 || mh.Messages[0].Role != RoleSystem {
		return errors.New("transcript must start with a system message")
	}
	for i, m := range mh.Messages {
		if i > 0 && m.Role == RoleSystem {
			return fmt.Errorf("unexpected system message at %d", i)
		}
		if m.Role != RoleTool {
			continue
		}
		prev := mh.Messages[i-1]
		if prev.Role != RoleAssistant || !hasCall(prev.ToolCalls, m.ToolCallID) {
			return fmt.Errorf("tool result %q at %d has no matching call", m.ToolCallID, i)
		}
	}
	return nil
}

// EstimateTokens returns a rough token count for the transcript.
func (mh *Messages) EstimateTokens() int {
	chars := 0
	for _, m := range mh.Messages {
		chars += len(m.Role) + len(m.Content) + len(m.ToolCallID) + len(m.ToolName)
		for _, tc := range m.ToolCalls {
			chars += len(tc.ID) + len(tc.Name) + len(tc.Arguments)
		}
	}
	return chars / charsPerToken
}

// Window returns the view of the transcript sent to the model.
// Under maxTokens (or when maxTokens <= 0) it is the whole transcript.
// Otherwise it keeps the system message and the most recent messages,
// skipping leading tool results whose call was cut off.
// The receiver is never modified.
func (mh *Messages) Window(maxTokens int) Messages {
	if maxTokens <= 0 || mh.EstimateTokens() <= maxTokens {
		return *mh
	}

	var system []Message
	var others []Message
	for _, m := range mh.Messages {
		if m.Role == RoleSystem {
			system = append(system, m)
			continue
		}
		others = append(others, m)
	}
	if len(others) > recentWindow {
		others = others[len(others)-recentWindow:]
	}
	for len(others) > 0 && others[0].Role == RoleTool {
		others = others[1:]
	}

	out := make([]Message, 0, len(system)+len(others))
	out = append(out, system...)
	out = append(out, others...)
	return Messages{Messages: out}
}

func hasCall(calls []ToolCall, id string) bool {
	for _, c := range calls {
		if c.ID == id {
			return true
		}
	}
	return false
}
