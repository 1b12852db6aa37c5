// Package llm provides the model backends quorum can run a panel on.
// Each backend turns an ordered message list into completion text; retry
// and timeout policy belong to the backend or its SDK, never the caller.
package llm

import "context"

// Message roles understood by every backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a conversation sent to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend completes a prompt against one model provider.
// Complete returns the raw response text; failures (auth, quota,
// connectivity) propagate unchanged to the caller.
type Backend interface {
	// Name identifies the backend, e.g. "anthropic" or "gemini".
	Name() string
	// Complete sends the messages and returns the response text.
	// When jsonMode is set the backend asks the model for JSON output.
	Complete(ctx context.Context, messages []Message, jsonMode bool) (string, error)
}

// SplitSystem separates system messages from the conversational ones.
// Backends differ in how system text is carried, so each pulls it apart
// the same way.
func SplitSystem(messages []Message) (system string, rest []Message) {
	rest = make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
