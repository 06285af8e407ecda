package tool

// ToolsConfig groups all tool-level settings.
type ToolsConfig struct {
	Web WebToolsConfig `json:"web" yaml:"web"`
}

func DefaultToolConfigs() ToolsConfig {
	return ToolsConfig{
		Web: DefaultWebToolsConfig(),
	}
}
