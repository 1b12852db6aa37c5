package panel

import (
	"strings"
	"testing"

	"github.com/quorumhq/quorum/pkg/models"
)

func directiveTeam() models.Team {
	return models.Team{
		{ID: "e1", Name: "Alice", Role: "Strategist"},
		{ID: "e2", Name: "Bob", Role: "Engineer"},
		{ID: "e3", Name: "Carol", Role: "Counsel"},
	}
}

func wrap(target, instruction string) string {
	return DelegationSentinel + target + DelegationSentinel + instruction + DelegationSentinel
}

func TestExtractDirectivesNone(t *testing.T) {
	raw := "The budget looks reasonable overall."

	clean, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if clean != raw {
		t.Errorf("expected text unchanged, got %q", clean)
	}
	if len(directives) != 0 {
		t.Errorf("expected no directives, got %d", len(directives))
	}
}

func TestExtractDirectivesSingle(t *testing.T) {
	raw := "My analysis.\n\n" + wrap("Bob", "Check the infra costs") + "\n\nDone."

	clean, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if strings.Contains(clean, DelegationSentinel) {
		t.Errorf("directive markup leaked into clean text: %q", clean)
	}
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if directives[0].Target.ID != "e2" {
		t.Errorf("expected target e2, got %s", directives[0].Target.ID)
	}
	if directives[0].Instruction != "Check the infra costs" {
		t.Errorf("unexpected instruction: %q", directives[0].Instruction)
	}
}

func TestExtractDirectivesMultipleInDocumentOrder(t *testing.T) {
	raw := wrap("Carol", "Legal review") + " middle " + wrap("Bob", "Cost review")

	_, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(directives))
	}
	if directives[0].Target.ID != "e3" || directives[1].Target.ID != "e2" {
		t.Errorf("expected document order Carol then Bob, got %s then %s",
			directives[0].Target.ID, directives[1].Target.ID)
	}
}

func TestExtractDirectivesDuplicateTargetsNotDeduplicated(t *testing.T) {
	raw := wrap("Bob", "First pass") + wrap("Bob", "Second pass")

	_, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 2 {
		t.Fatalf("expected 2 independent directives for duplicate target, got %d", len(directives))
	}
	if directives[0].Instruction == directives[1].Instruction {
		t.Error("expected distinct instructions to survive")
	}
}

func TestExtractDirectivesAtMaxDepthStripsButSuppresses(t *testing.T) {
	raw := "Answer. " + wrap("Bob", "Keep digging")

	clean, directives := ExtractDirectives(raw, MaxDelegationDepth, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 0 {
		t.Errorf("expected no directives at max depth, got %d", len(directives))
	}
	if strings.Contains(clean, DelegationSentinel) {
		t.Errorf("markup must be stripped even at max depth: %q", clean)
	}
	if !strings.Contains(clean, "Answer.") {
		t.Errorf("prose should survive stripping: %q", clean)
	}
}

func TestExtractDirectivesUnknownTargetDropped(t *testing.T) {
	raw := "Text " + wrap("Zed", "Do something")

	clean, directives := ExtractDirectives(raw, 1, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 0 {
		t.Errorf("expected unknown target to be dropped, got %d directives", len(directives))
	}
	if strings.Contains(clean, DelegationSentinel) {
		t.Errorf("unresolved directive must still be stripped: %q", clean)
	}
}

func TestExtractDirectivesSelfDelegationDropped(t *testing.T) {
	raw := wrap("Alice", "Note to self")

	_, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 0 {
		t.Errorf("expected self-delegation to be dropped, got %d directives", len(directives))
	}
}

func TestExtractDirectivesCaseInsensitiveResolution(t *testing.T) {
	raw := wrap("bob", "lower case works")

	_, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 1 || directives[0].Target.ID != "e2" {
		t.Fatalf("expected case-insensitive match on Bob, got %+v", directives)
	}
}

func TestExtractDirectivesEmptyInstructionDropped(t *testing.T) {
	raw := wrap("Bob", "   ")

	clean, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 0 {
		t.Errorf("expected empty instruction to be dropped, got %d", len(directives))
	}
	if strings.Contains(clean, DelegationSentinel) {
		t.Errorf("markup must still be stripped: %q", clean)
	}
}

func TestExtractDirectivesIdempotent(t *testing.T) {
	raw := "Before " + wrap("Bob", "Task") + " after"

	clean, _ := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")
	again, directives := ExtractDirectives(clean, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if again != clean {
		t.Errorf("second pass changed the text: %q vs %q", again, clean)
	}
	if len(directives) != 0 {
		t.Errorf("second pass produced %d directives", len(directives))
	}
}

func TestExtractDirectivesMultilineInstruction(t *testing.T) {
	raw := wrap("Carol", "Review:\n- contract terms\n- liability caps")

	_, directives := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if !strings.Contains(directives[0].Instruction, "liability caps") {
		t.Errorf("multi-line instruction truncated: %q", directives[0].Instruction)
	}
}

func TestExtractDirectivesCollapsesLeftoverBlankLines(t *testing.T) {
	raw := "Para one.\n\n" + wrap("Bob", "Task") + "\n\nPara two."

	clean, _ := ExtractDirectives(raw, 0, MaxDelegationDepth, directiveTeam(), "e1")

	if strings.Contains(clean, "\n\n\n") {
		t.Errorf("expected blank runs collapsed, got %q", clean)
	}
}
