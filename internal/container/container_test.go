package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/RomanEngeler1805/deep-research-agent/internal/config"
	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

func TestNew_DryRunWiresEverything(t *testing.T) {
	cfg := config.DefaultConfig()

	c, err := New(&cfg, Options{DryRun: true})
	require.NoError(t, err)
	defer c.Telemetry().Close()

	assert.Same(t, &cfg, c.Config())
	assert.Equal(t, "scripted", c.Telemetry().Metadata().Model)
	assert.Equal(t, Architecture, c.Telemetry().Metadata().Architecture)
	assert.Equal(t,
		[]string{"google_search", "open_webpage", "search_and_read", "calculate"},
		c.Tools().Names())

	orch := c.AgentFactory().NewOrchestrator(nil)
	resp := orch.Execute(context.Background(), schema.NewAgentRequest("what is 2+2?", schema.TaskGeneral))
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "dry run, no completion backend was called.", resp.Result)
	assert.Equal(t, int64(1), c.Telemetry().Stats().Calls)
}

func TestNew_MissingKeyFails(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := New(&cfg, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, dig.RootCause(err), config.ErrMissingAPIKey)
}

func TestNew_ModelFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Agents.Defaults.Model = "gpt-4o-mini"

	c, err := New(&cfg, Options{})
	require.NoError(t, err)
	defer c.Telemetry().Close()

	assert.Equal(t, "gpt-4o-mini", c.Telemetry().Metadata().Model)
	assert.Equal(t, "gpt-4o-mini", c.Client().DefaultModel())
}
