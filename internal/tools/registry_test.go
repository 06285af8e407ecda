package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

type echoArgs struct {
	Text  string `json:"text" description:"Text to echo"`
	Times int    `json:"times" default:"1"`
}

func echoTool() schema.Tool {
	return NewFunc("echo", "Echo text", func(_ context.Context, a echoArgs) (string, error) {
		out := ""
		for i := 0; i < a.Times; i++ {
			out += a.Text
		}
		return out, nil
	})
}

func failingTool() schema.Tool {
	return NewFunc("fail", "Always fails", func(_ context.Context, _ struct{}) (string, error) {
		return "", errors.New("boom")
	})
}

func panickingTool() schema.Tool {
	return NewFunc("panic", "Always panics", func(_ context.Context, _ struct{}) (string, error) {
		panic("kaboom")
	})
}

func TestRegistryDiscoverKeepsRegistrationOrder(t *testing.T) {
	reg := NewRegistryBuilder().
		WithTool(echoTool()).
		WithTool(NewCalculateTool()).
		WithTool(failingTool()).
		Build()

	var names []string
	for _, s := range reg.Discover() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"echo", "calculate", "fail"}, names)
}

func TestRegistryRequiredParamsMatchDefaults(t *testing.T) {
	reg := NewRegistryBuilder().WithTool(echoTool()).Build()

	s := reg.Discover()[0]
	assert.Equal(t, []string{"text"}, s.Required())
	require.Len(t, s.Params, 2)
	assert.Equal(t, schema.TypeString, s.Params[0].Type)
	assert.Equal(t, schema.TypeInteger, s.Params[1].Type)
	assert.Equal(t, "Text to echo", s.Params[0].Description)
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	reg := NewRegistryBuilder().WithTool(echoTool()).Build()

	out := reg.Execute(context.Background(), "does_not_exist", nil)
	assert.Equal(t, "Error: Tool 'does_not_exist' not found.", out)
}

func TestRegistryExecuteAppliesDefaults(t *testing.T) {
	reg := NewRegistryBuilder().WithTool(echoTool()).Build()

	assert.Equal(t, "hi", reg.Execute(context.Background(), "echo", map[string]any{"text": "hi"}))
	assert.Equal(t, "hihihi", reg.Execute(context.Background(), "echo", map[string]any{"text": "hi", "times": 3}))
}

func TestRegistryExecuteErrorsBecomeText(t *testing.T) {
	reg := NewRegistryBuilder().
		WithTool(echoTool()).
		WithTool(failingTool()).
		WithTool(panickingTool()).
		Build()
	ctx := context.Background()

	assert.Equal(t, "Error: tool execution failed: boom", reg.Execute(ctx, "fail", nil))
	assert.Equal(t, "Error: tool execution failed: kaboom", reg.Execute(ctx, "panic", nil))
	assert.Equal(t, "Error: tool execution failed: missing required parameter 'text'",
		reg.Execute(ctx, "echo", map[string]any{}))
}

func TestRegistryExecuteCallRejectsNonJSONArguments(t *testing.T) {
	reg := NewRegistryBuilder().WithTool(echoTool()).Build()

	out := reg.ExecuteCall(context.Background(), schema.ToolCall{ID: "1", Name: "echo", Arguments: "{'text': 'hi'}"})
	assert.Contains(t, out, "Error: tool execution failed:")

	out = reg.ExecuteCall(context.Background(), schema.ToolCall{ID: "2", Name: "echo", Arguments: `{"text":"ok"}`})
	assert.Equal(t, "ok", out)
}

func TestRegistrySubset(t *testing.T) {
	reg := NewRegistryBuilder().
		WithTool(NewGoogleSearchTool(NewGoogleSearch(SearchOptions{}))).
		WithTool(NewOpenWebpageTool(NewPageReader(FetchOptions{}))).
		WithTool(NewCalculateTool()).
		Build()

	sub := reg.Subset(ReasoningTools...)
	assert.Equal(t, []string{"calculate"}, sub.Names())

	sub = reg.Subset(SearchTools...)
	assert.Equal(t, []string{"google_search", "open_webpage"}, sub.Names())
	assert.Equal(t, "Error: Tool 'calculate' not found.", sub.Execute(context.Background(), "calculate", nil))
}

func TestNewFuncSchemaTypes(t *testing.T) {
	type args struct {
		S  string            `json:"s"`
		I  int64             `json:"i"`
		F  float64           `json:"f"`
		B  bool              `json:"b"`
		L  []string          `json:"l"`
		M  map[string]string `json:"m"`
		C  complex128        `json:"c"`
		Ig string            `json:"-"`
	}
	f := NewFunc("types", "", func(context.Context, args) (string, error) { return "", nil })

	got := map[string]schema.ParamType{}
	for _, p := range f.Schema().Params {
		got[p.Name] = p.Type
	}
	assert.Equal(t, map[string]schema.ParamType{
		"s": schema.TypeString,
		"i": schema.TypeInteger,
		"f": schema.TypeNumber,
		"b": schema.TypeBoolean,
		"l": schema.TypeArray,
		"m": schema.TypeObject,
		"c": schema.TypeString,
	}, got)
}

func TestNewResearchRegistryOrderAndSubsets(t *testing.T) {
	r := NewResearchRegistry(SearchOptions{}, FetchOptions{})

	assert.Equal(t, []string{"google_search", "open_webpage", "search_and_read", "calculate"}, r.Names())
	assert.Equal(t, []string{"google_search", "open_webpage", "search_and_read"}, r.Subset(SearchTools...).Names())
	assert.Equal(t, []string{"calculate"}, r.Subset(ReasoningTools...).Names())

	params := r.Get("search_and_read").Schema().Params
	require.Len(t, params, 2)
	assert.True(t, params[0].Required)
	assert.False(t, params[1].Required)
}
