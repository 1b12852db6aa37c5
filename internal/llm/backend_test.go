package llm

import "testing"

func TestSplitSystem(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "You are concise."},
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleSystem, Content: "Answer in French."},
		{Role: RoleAssistant, Content: "Bonjour"},
	}

	system, rest := SplitSystem(messages)

	if system != "You are concise.\n\nAnswer in French." {
		t.Errorf("unexpected system text: %q", system)
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 non-system messages, got %d", len(rest))
	}
	if rest[0].Role != RoleUser || rest[1].Role != RoleAssistant {
		t.Errorf("unexpected roles: %v, %v", rest[0].Role, rest[1].Role)
	}
}

func TestSplitSystemNoSystem(t *testing.T) {
	messages := []Message{{Role: RoleUser, Content: "Hi"}}

	system, rest := SplitSystem(messages)
	if system != "" {
		t.Errorf("expected empty system, got %q", system)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 message, got %d", len(rest))
	}
}
