package schema

import "context"

// ParamType is the JSON type vocabulary exposed to the model.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

// ParamSchema describes one tool parameter.
type ParamSchema struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// ToolSchema is the model-facing description of a callable tool.
// Params keep declaration order.
type ToolSchema struct {
	Name        string
	Description string
	Params      []ParamSchema
}

// Required returns the names of the required parameters in declaration order.
func (s ToolSchema) Required() []string {
	required := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return required
}

// Properties returns the JSON Schema "properties" object.
func (s ToolSchema) Properties() map[string]any {
	props := make(map[string]any, len(s.Params))
	for _, p := range s.Params {
		prop := map[string]any{"type": string(p.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
	}
	return props
}

// JSONSchema returns the function-calling parameter object.
func (s ToolSchema) JSONSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": s.Properties(),
		"required":   s.Required(),
	}
}

// Tool is the interface all LLM-callable tools must satisfy.
type Tool interface {
	Schema() ToolSchema
	Execute(ctx context.Context, args map[string]any) (string, error)
}
