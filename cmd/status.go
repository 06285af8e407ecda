package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RomanEngeler1805/deep-research-agent/internal/config"
	"github.com/RomanEngeler1805/deep-research-agent/internal/container"
	"github.com/RomanEngeler1805/deep-research-agent/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show deepresearch status",
	RunE:  runStatus,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool schemas sent to the model",
	RunE:  runTools,
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "(not set)"
}

func runStatus(_ *cobra.Command, _ []string) error {
	path := cfgPath
	if path == "" {
		path = config.ConfigPath()
	}

	fmt.Println("🤖 deepresearch Status")
	fmt.Println()

	_, statErr := os.Stat(path)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", path, cfgMark)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	match := cfg.MatchProvider("")
	fmt.Printf("Model:     %s\n", cfg.Agents.Defaults.Model)
	fmt.Printf("Provider:  %s\n", match.Name)
	t := cfg.Agents.MaxTurns
	fmt.Printf("Budgets:   orchestrator=%d reasoning=%d search=%d research=%d\n\n",
		t.Orchestrator, t.Reasoning, t.Search, t.Research)

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		p := cfg.Providers.ByName(spec.Name)
		if p == nil {
			continue
		}
		switch {
		case p.APIBase != "" && p.APIKey != "":
			fmt.Printf("  %-20s ✓ %s\n", spec.Label(), p.APIBase)
		default:
			fmt.Printf("  %-20s %s\n", spec.Label(), mark(p.APIKey != ""))
		}
	}

	fmt.Println("\nWeb search:")
	fmt.Printf("  %-20s %s\n", config.EnvGoogleKey, mark(cfg.Tools.Web.Search.APIKey != ""))
	fmt.Printf("  %-20s %s\n", config.EnvSearchEngineID, mark(cfg.Tools.Web.Search.EngineID != ""))

	fmt.Println("\nObservability:")
	fmt.Printf("  %-20s %s\n", config.EnvInsightsToken, mark(cfg.Observability.Token != ""))
	fmt.Printf("  %-20s %s\n", "Environment", cfg.Observability.Environment)
	return nil
}

type toolView struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schemas := container.NewToolRegistry(cfg).Discover()
	views := make([]toolView, 0, len(schemas))
	for _, s := range schemas {
		views = append(views, toolView{Name: s.Name, Description: s.Description, Parameters: s.JSONSchema()})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
