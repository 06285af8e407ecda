// Package config defines the configuration schema for deepresearch.
//
// Files are YAML by default; a path ending in .json is read and written as
// JSON. Keys use camelCase in both formats.
package config

import (
	"github.com/RomanEngeler1805/deep-research-agent/internal/config/agent"
	"github.com/RomanEngeler1805/deep-research-agent/internal/config/provider"
	"github.com/RomanEngeler1805/deep-research-agent/internal/config/tool"
)

// ObservabilityConfig describes the run for telemetry.
type ObservabilityConfig struct {
	Token        string `json:"token,omitempty" yaml:"token,omitempty"`
	Environment  string `json:"environment" yaml:"environment" validate:"required"`
	AgentVersion string `json:"agentVersion" yaml:"agentVersion"`
}

func defaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{Environment: "development", AgentVersion: "2.0.0-multi-agent"}
}

// Config is the root configuration object, loaded from ~/.deepresearch/config.yaml.
type Config struct {
	Agents        agent.AgentsConfig       `json:"agents" yaml:"agents"`
	Providers     provider.ProvidersConfig `json:"providers" yaml:"providers"`
	Tools         tool.ToolsConfig         `json:"tools" yaml:"tools"`
	Observability ObservabilityConfig      `json:"observability" yaml:"observability"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:        agent.DefaultAgentsConfig(),
		Providers:     provider.DefaultProvidersConfig(),
		Tools:         tool.DefaultToolConfigs(),
		Observability: defaultObservabilityConfig(),
	}
}
