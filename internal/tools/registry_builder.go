package tools

import "github.com/RomanEngeler1805/deep-research-agent/internal/schema"

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	order []string
	tools map[string]schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
// Re-adding a name replaces the tool but keeps its original position.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	name := tool.Schema().Name
	if _, exists := b.tools[name]; !exists {
		b.order = append(b.order, name)
	}
	b.tools[name] = tool

	return b
}

// Build produces an immutable Registry from the accumulated tools.
func (b *RegistryBuilder) Build() *Registry {
	tools := make(map[string]schema.Tool, len(b.tools))
	for k, v := range b.tools {
		tools[k] = v
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	return &Registry{order: order, tools: tools}
}

// NewResearchRegistry builds the full built-in tool set in its canonical
// order: google_search, open_webpage, search_and_read, calculate.
func NewResearchRegistry(search SearchOptions, fetch FetchOptions) *Registry {
	s := NewGoogleSearch(search)
	p := NewPageReader(fetch)
	return NewRegistryBuilder().
		WithTool(NewGoogleSearchTool(s)).
		WithTool(NewOpenWebpageTool(p)).
		WithTool(NewSearchAndReadTool(s, p)).
		WithTool(NewCalculateTool()).
		Build()
}
