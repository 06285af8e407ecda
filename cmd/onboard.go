package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RomanEngeler1805/deep-research-agent/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write a default configuration file",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	path := cfgPath
	if path == "" {
		path = config.ConfigPath()
	}

	// Environment overrides are left out so keys never land in the file.
	existing, err := config.LoadFile(path)
	if err != nil {
		def := config.DefaultConfig()
		existing = &def
	}
	if err := config.Save(existing, path); err != nil {
		return err
	}
	fmt.Printf("✓ Config written to %s\n", path)

	fmt.Println("\n🤖 deepresearch is ready!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Set %s (or %s) and, for web search, %s and %s\n",
		config.EnvOpenAIKey, config.EnvAnthropicKey, config.EnvGoogleKey, config.EnvSearchEngineID)
	fmt.Printf("     or add them to %s\n", path)
	fmt.Println("  2. Ask: deepresearch \"What is the population of Zurich divided by 3?\"")
	return nil
}
