package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// AnthropicBackend completes prompts via the Anthropic Messages API.
type AnthropicBackend struct {
	client *Client
}

// NewAnthropicBackend creates a backend on top of an existing client.
func NewAnthropicBackend(client *Client) *AnthropicBackend {
	return &AnthropicBackend{client: client}
}

// Name implements Backend.
func (b *AnthropicBackend) Name() string {
	return "anthropic"
}

// Client returns the underlying client for token tracking.
func (b *AnthropicBackend) Client() *Client {
	return b.client
}

// Complete implements Backend.
func (b *AnthropicBackend) Complete(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	system, rest := SplitSystem(messages)
	if jsonMode {
		if system != "" {
			system += "\n\n"
		}
		// The Messages API has no dedicated JSON mode; instruct instead.
		system += "Respond with a single valid JSON value and nothing else."
	}

	params := anthropic.MessageNewParams{
		Model:     b.client.Model(),
		MaxTokens: 4096,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	for _, m := range rest {
		switch m.Role {
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(params.Messages) == 0 {
		return "", fmt.Errorf("no user messages to send")
	}

	resp, err := b.client.sdk().Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	b.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result string
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result += variant.Text
		}
	}

	return result, nil
}

// Verify AnthropicBackend implements Backend at compile time.
var _ Backend = (*AnthropicBackend)(nil)
