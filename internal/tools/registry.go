package tools

import (
	"context"
	"fmt"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolGoogleSearch  ToolName = "google_search"
	ToolOpenWebpage   ToolName = "open_webpage"
	ToolSearchAndRead ToolName = "search_and_read"
	ToolCalculate     ToolName = "calculate"
)

// SearchTools is the tool subset owned by the search agent.
var SearchTools = []ToolName{ToolGoogleSearch, ToolOpenWebpage, ToolSearchAndRead}

// ReasoningTools is the tool subset owned by the reasoning agent.
var ReasoningTools = []ToolName{ToolCalculate}

// Registry holds a fixed, ordered set of named tools and executes them by name.
// Execution never fails: every problem is reported as result text.
type Registry struct {
	order []string
	tools map[string]schema.Tool
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Discover returns one schema per registered tool, in registration order.
func (r *Registry) Discover() []schema.ToolSchema {
	list := make([]schema.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.tools[name].Schema())
	}
	return list
}

// Subset returns a registry restricted to the named tools.
// Registration order is preserved and unknown names are ignored.
func (r *Registry) Subset(names ...ToolName) *Registry {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[string(n)] = true
	}
	b := NewRegistryBuilder()
	for _, name := range r.order {
		if want[name] {
			b.WithTool(r.tools[name])
		}
	}
	return b.Build()
}

// Execute runs the named tool with already-decoded arguments.
// An unknown tool, a tool error and a tool panic all come back as text.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result string) {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Error: Tool '%s' not found.", name)
	}

	defer func() {
		if p := recover(); p != nil {
			result = fmt.Sprintf("Error: tool execution failed: %v", p)
		}
	}()

	out, err := t.Execute(ctx, args)
	if err != nil {
		return "Error: tool execution failed: " + err.Error()
	}
	return out
}

// ExecuteCall decodes the call's JSON arguments and runs it.
func (r *Registry) ExecuteCall(ctx context.Context, tc schema.ToolCall) string {
	if _, ok := r.tools[tc.Name]; !ok {
		return fmt.Sprintf("Error: Tool '%s' not found.", tc.Name)
	}
	args, err := tc.Args()
	if err != nil {
		return "Error: tool execution failed: " + err.Error()
	}
	return r.Execute(ctx, tc.Name, args)
}
