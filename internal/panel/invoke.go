package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/quorumhq/quorum/internal/llm"
	"github.com/quorumhq/quorum/pkg/models"
)

// Invoker turns one expert invocation into raw model text.
// Implementations must let backend failures propagate unchanged; the
// engine captures the message verbatim for display.
type Invoker interface {
	Invoke(ctx context.Context, expert models.Expert, instruction, projectContext string, teammates models.Team, depth int) (string, error)
}

// Adapter is the uniform model invocation adapter. It builds a single
// prompt from the acting expert's persona, the project context, the
// teammate roster, and the instruction, then asks the configured
// backend to complete it.
type Adapter struct {
	backend  llm.Backend
	language string
}

// NewAdapter creates an adapter for the given backend.
// language is the target language for expert prose; empty means English.
func NewAdapter(backend llm.Backend, language string) *Adapter {
	if language == "" {
		language = "English"
	}
	return &Adapter{
		backend:  backend,
		language: language,
	}
}

// Invoke implements Invoker.
func (a *Adapter) Invoke(ctx context.Context, expert models.Expert, instruction, projectContext string, teammates models.Team, depth int) (string, error) {
	messages := a.BuildMessages(expert, instruction, projectContext, teammates, depth)
	return a.backend.Complete(ctx, messages, false)
}

// BuildMessages assembles the prompt for one invocation. Exposed so the
// prompt shape can be tested without a live backend.
func (a *Adapter) BuildMessages(expert models.Expert, instruction, projectContext string, teammates models.Team, depth int) []llm.Message {
	var system strings.Builder

	fmt.Fprintf(&system, "You are %s, %s.\n\n%s\n\n", expert.Name, expert.Role, strings.TrimSpace(expert.Description))
	fmt.Fprintf(&system, "Respond as this persona with professional prose in %s. Do not break character.\n", a.language)

	if len(teammates) > 0 {
		system.WriteString("\nYour teammates on this panel (for awareness, you do not pick who runs next):\n")
		for _, mate := range teammates {
			fmt.Fprintf(&system, "- %s (%s)\n", mate.Name, mate.Role)
		}
	}

	if depth < MaxDelegationDepth && len(teammates) > 0 {
		fmt.Fprintf(&system, `
If another teammate's perspective is genuinely needed, you may delegate a
follow-up by embedding this exact pattern anywhere in your answer:

%[1]sTEAMMATE NAME%[1]sINSTRUCTION FOR THEM%[1]s

Use it sparingly and only with the teammate names listed above. The pattern
is removed before your answer is shown to the user.
`, DelegationSentinel)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Project under analysis:\n%s\n\n", strings.TrimSpace(projectContext))
	fmt.Fprintf(&user, "Your task:\n%s", strings.TrimSpace(instruction))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system.String()},
		{Role: llm.RoleUser, Content: user.String()},
	}
}

// Verify Adapter implements Invoker at compile time.
var _ Invoker = (*Adapter)(nil)
