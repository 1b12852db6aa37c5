package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify Quorum configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/quorum/config.yaml
Project-specific overrides can be placed in .quorum.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("backend: %s\n", cfg.Backend)
	fmt.Printf("anthropic.api_key: %s\n", maskOrUnset(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("gemini.api_key: %s\n", maskOrUnset(cfg.Gemini.APIKey))
	fmt.Printf("gemini.model: %s\n", cfg.Gemini.Model)
	fmt.Printf("panel.language: %s\n", cfg.Panel.Language)
	fmt.Printf("panel.follow_up_delay: %s\n", cfg.Panel.FollowUpDelay)
	fmt.Printf("panel.history_limit: %d\n", cfg.Panel.HistoryLimit)
	fmt.Printf("tui.refresh_rate: %s\n", cfg.TUI.RefreshRate)
}

func maskOrUnset(key string) string {
	if key == "" {
		return "(not set)"
	}
	return config.MaskAPIKey(key)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s = %s\n", key, value)
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "backend":
		return cfg.Backend, nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_aws_bedrock":
		return fmt.Sprintf("%t", cfg.Anthropic.UseAWSBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "gemini.model":
		return cfg.Gemini.Model, nil
	case "panel.language":
		return cfg.Panel.Language, nil
	case "panel.follow_up_delay":
		return cfg.Panel.FollowUpDelay.String(), nil
	case "panel.history_limit":
		return fmt.Sprintf("%d", cfg.Panel.HistoryLimit), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "backend":
		if value != "anthropic" && value != "gemini" {
			return fmt.Errorf("backend must be anthropic or gemini")
		}
		cfg.Backend = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "gemini.model":
		cfg.Gemini.Model = value
	case "panel.language":
		cfg.Panel.Language = value
	default:
		return fmt.Errorf("unknown or read-only config key: %s", key)
	}
	return nil
}
