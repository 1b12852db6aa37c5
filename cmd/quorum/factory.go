package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/llm"
)

// buildBackend constructs the LLM backend named by override, or by the
// configured default when override is empty.
func buildBackend(cfg *config.Config, override string) (llm.Backend, error) {
	backend := cfg.Backend
	if override != "" {
		backend = override
	}

	switch backend {
	case "", "anthropic":
		key, err := config.GetAnthropicKey(cfg)
		if err != nil {
			return nil, err
		}
		client, err := llm.NewClient(llm.ClientConfig{
			Model:         anthropic.Model(cfg.Anthropic.Model),
			APIKey:        key,
			UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
		if err != nil {
			return nil, fmt.Errorf("create Anthropic client: %w", err)
		}
		return llm.NewAnthropicBackend(client), nil

	case "gemini":
		key, err := config.GetGeminiKey(cfg)
		if err != nil {
			return nil, err
		}
		gb, err := llm.NewGeminiBackend(key, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("create Gemini client: %w", err)
		}
		return gb, nil

	default:
		return nil, fmt.Errorf("unknown backend %q (want anthropic or gemini)", backend)
	}
}
