package providers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

const anthropicToolResponse = `{
  "id": "msg_1", "type": "message", "role": "assistant", "model": "claude-3-5-sonnet-20241022",
  "content": [
    {"type": "text", "text": "Let me calculate."},
    {"type": "tool_use", "id": "tu_1", "name": "calculate", "input": {"expression": "2+2"}}
  ],
  "stop_reason": "tool_use", "stop_sequence": null,
  "usage": {"input_tokens": 3, "output_tokens": 4}
}`

func TestAnthropicCompleteWithTools(t *testing.T) {
	srv, reqs := captureServer(t, http.StatusOK, anthropicToolResponse)
	p := NewAnthropicProvider("key", srv.URL, "claude-3-5-sonnet-20241022")

	turn, err := p.Complete(context.Background(), schema.NewTranscript("sys", "2+2?"),
		[]schema.ToolSchema{calcSchema}, schema.NewChatOptions("", 256, 0.2))
	require.NoError(t, err)

	assert.Equal(t, "Let me calculate.", turn.Content)
	require.Len(t, turn.ToolCalls, 1)
	assert.Equal(t, "tu_1", turn.ToolCalls[0].ID)
	assert.JSONEq(t, `{"expression":"2+2"}`, turn.ToolCalls[0].Arguments)
	assert.Equal(t, "tool_use", turn.FinishReason)

	req := <-reqs
	assert.True(t, strings.HasSuffix(req.Path, "/v1/messages"), req.Path)
	assert.Equal(t, map[string]any{"type": "auto"}, req.Body["tool_choice"])
	system := req.Body["system"].([]any)
	assert.Equal(t, "sys", system[0].(map[string]any)["text"])
}

func TestToAnthropicMessagesMergesConsecutiveRoles(t *testing.T) {
	tr := schema.NewTranscript("sys", "task")
	tr.AddAssistant("thinking")
	tr.AddAssistant("", schema.ToolCall{ID: "c1", Name: "calculate", Arguments: `{"expression":"1"}`})
	tr.AddToolResult("c1", "calculate", "1")
	tr.AddUser("Agent result: 1")

	system, msgs := toAnthropicMessages(tr)

	assert.Equal(t, "sys", system)
	require.Len(t, msgs, 3)
	assert.Len(t, msgs[1].Content, 2, "assistant text and tool_use merged")
	assert.Len(t, msgs[2].Content, 2, "tool_result and user text merged")
}
