package insights

import "github.com/jonathan/resume-builder/internal/types"

// MaxExternalSuggestions caps how many of the external report's suggestions
// are shown ahead of the local insights.
const MaxExternalSuggestions = 4

// CombineAdvice returns up to MaxExternalSuggestions suggestions from report,
// in the scorer's order, followed by every local insight for state.
// The two lists are concatenated only; nothing is merged or deduplicated.
// A nil report contributes nothing.
func CombineAdvice(report *types.ATSReport, state types.BuilderState) []string {
	local := Derive(state)

	var external []string
	if report != nil {
		external = report.Suggestions[:min(len(report.Suggestions), MaxExternalSuggestions)]
	}

	out := make([]string, 0, len(external)+len(local))
	out = append(out, external...)
	return append(out, local...)
}
