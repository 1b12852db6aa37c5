package llm

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestTranslateModelForBedrock(t *testing.T) {
	model := translateModelForBedrock(anthropic.ModelClaudeSonnet4_20250514)
	if !strings.HasPrefix(string(model), "us.anthropic.") {
		t.Errorf("expected Bedrock inference profile, got %s", model)
	}

	// Unknown models pass through unchanged.
	custom := anthropic.Model("my-custom-model")
	if got := translateModelForBedrock(custom); got != custom {
		t.Errorf("expected passthrough, got %s", got)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("expected error when no API key is available")
	}
}

func TestNewClientDefaultModel(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	client, err := NewClient(ClientConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() == "" {
		t.Error("expected a default model to be set")
	}
}

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(200, 75)

	in, out := tracker.Total()
	if in != 300 || out != 125 {
		t.Errorf("expected totals 300/125, got %d/%d", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", tracker.Calls())
	}
	if tracker.Cost() <= 0 {
		t.Error("expected positive cost")
	}

	tracker.Reset()
	in, out = tracker.Total()
	if in != 0 || out != 0 || tracker.Calls() != 0 {
		t.Error("expected tracker to be reset")
	}
}

func TestNewGeminiBackendRequiresKey(t *testing.T) {
	if _, err := NewGeminiBackend("", "gemini-2.0-flash"); err == nil {
		t.Error("expected error when no API key is provided")
	}
}
