// Package config provides API key management utilities.
package config

import (
	"errors"
	"os"
	"strings"
)

// ErrNoAnthropicKey is returned when no Anthropic API key is configured.
var ErrNoAnthropicKey = errors.New("no Anthropic API key configured")

// ErrNoGeminiKey is returned when no Gemini API key is configured.
var ErrNoGeminiKey = errors.New("no Gemini API key configured")

// GetAnthropicKey returns the Anthropic API key from the configuration.
// It checks in order: environment variable, config file.
func GetAnthropicKey(cfg *Config) (string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.Anthropic.APIKey != "" {
		// Expand any remaining env var references
		key := os.ExpandEnv(cfg.Anthropic.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, nil
		}
	}

	return "", ErrNoAnthropicKey
}

// GetGeminiKey returns the Gemini API key from the configuration.
// It checks in order: environment variable, config file.
func GetGeminiKey(cfg *Config) (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.Gemini.APIKey != "" {
		key := os.ExpandEnv(cfg.Gemini.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, nil
		}
	}

	return "", ErrNoGeminiKey
}

// ValidateAnthropicKey performs basic validation on an Anthropic API key.
// It checks format but does not verify the key with Anthropic's API.
func ValidateAnthropicKey(key string) error {
	if key == "" {
		return ErrNoAnthropicKey
	}

	// Anthropic API keys start with "sk-ant-"
	if !strings.HasPrefix(key, "sk-ant-") {
		return errors.New("invalid API key format: expected 'sk-ant-' prefix")
	}

	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}

	return nil
}

// MaskAPIKey returns a masked version of an API key for display.
// Shows the first 7 characters and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 15 {
		return strings.Repeat("*", len(key))
	}

	return key[:7] + strings.Repeat("*", len(key)-11) + key[len(key)-4:]
}
