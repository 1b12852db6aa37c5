package panel

import (
	"regexp"
	"strings"

	"github.com/quorumhq/quorum/pkg/models"
)

// DelegationSentinel is the fixed token that delimits a delegation
// directive embedded in model output. A directive is three
// sentinel-delimited segments: sentinel, target name, sentinel,
// instruction, sentinel. The model is told this grammar verbatim, so it
// must stay bit-exact.
const DelegationSentinel = "%%DELEGATE%%"

// MaxDelegationDepth is the hard ceiling on delegation hops from a root
// invocation (root = 0). At this depth the parser suppresses further
// delegation regardless of directive content, which guarantees the
// recursion terminates no matter what the model outputs.
const MaxDelegationDepth = 2

// directivePattern matches one directive. (?s) lets instructions span
// lines; the lazy quantifiers keep matches non-overlapping in document
// order.
var directivePattern = regexp.MustCompile(`(?s)%%DELEGATE%%(.*?)%%DELEGATE%%(.*?)%%DELEGATE%%`)

// Directive is a resolved delegation request extracted from a response.
type Directive struct {
	// Target is the teammate the follow-up is addressed to.
	Target models.Expert
	// Instruction is the follow-up instruction text.
	Instruction string
}

// ExtractDirectives scans raw model output for delegation directives,
// resolves their targets against the team, and returns the user-visible
// text with every matched directive span removed.
//
// Matched spans are stripped even when depth blocks delegation or the
// target does not resolve, so protocol syntax never leaks to the user.
// Unresolved and self-addressed targets are dropped without error;
// duplicate targets each produce an independent directive.
func ExtractDirectives(raw string, depth, maxDepth int, team models.Team, actingID string) (string, []Directive) {
	matches := directivePattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return raw, nil
	}

	clean := directivePattern.ReplaceAllString(raw, "")
	clean = collapseBlankRuns(clean)

	// Past the ceiling the markup is still stripped but no follow-ups
	// are produced.
	if depth >= maxDepth {
		debugLog("[directive] depth %d >= max %d, suppressing %d directive(s)", depth, maxDepth, len(matches))
		return clean, nil
	}

	var directives []Directive
	for _, m := range matches {
		targetName := strings.TrimSpace(m[1])
		instruction := strings.TrimSpace(m[2])
		if instruction == "" {
			debugLog("[directive] dropping directive with empty instruction (target %q)", targetName)
			continue
		}

		target, ok := team.ResolveName(targetName)
		if !ok {
			debugLog("[directive] dropping directive for unknown target %q", targetName)
			continue
		}
		if target.ID == actingID {
			debugLog("[directive] dropping self-delegation by %s", actingID)
			continue
		}

		directives = append(directives, Directive{
			Target:      target,
			Instruction: instruction,
		})
	}

	return clean, directives
}

// collapseBlankRuns reduces runs of three or more newlines left behind
// by stripped directives to a single blank line, and trims the edges.
func collapseBlankRuns(s string) string {
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

var blankRunPattern = regexp.MustCompile(`\n{3,}`)
