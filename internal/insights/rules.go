// Package insights implements the rule-based resume assistant: a fixed, versioned
// rule table over the builder state, deterministic bullet examples, and the
// concatenation of external ATS suggestions with local advice.
package insights

import "github.com/jonathan/resume-builder/internal/types"

// RuleSetVersion identifies the rule table below. Bump it when a rule is
// added or its message changes.
const RuleSetVersion = "2024.1"

// minSkills is the skill count below which the skills rule fires.
const minSkills = 6

// Rule is a single predicate over the builder state with the advice it emits.
type Rule struct {
	ID      string
	Message string
	Applies func(state types.BuilderState) bool
}

// rules are evaluated in order; the order is the priority shown to the user.
// New rules go at the end.
var rules = []Rule{
	{
		ID:      "skills.count",
		Message: "Add 6-12 hard skills tailored to the target template.",
		Applies: func(s types.BuilderState) bool { return len(s.Skills) < minSkills },
	},
	{
		ID:      "experience.bullets",
		Message: "Each experience should have 2-4 quantified bullets.",
		Applies: func(s types.BuilderState) bool {
			for _, e := range s.Experience {
				if len(e.Bullets) == 0 {
					return true
				}
			}
			return false
		},
	},
	{
		ID:      "projects.present",
		Message: "Include at least one project with tech stack and outcome.",
		Applies: func(s types.BuilderState) bool { return len(s.Projects) == 0 },
	},
	{
		ID:      "personal.linkedin",
		Message: "Add LinkedIn URL for recruiter validation.",
		Applies: func(s types.BuilderState) bool { return s.Personal.LinkedIn == "" },
	},
	{
		ID:      "personal.github",
		Message: "Link GitHub/portfolio for code samples.",
		Applies: func(s types.BuilderState) bool { return s.Personal.GitHub == "" && len(s.Projects) > 0 },
	},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Derive evaluates every rule against state and returns the messages of the
// rules that fired, in table order. It does not deduplicate.
func Derive(state types.BuilderState) []string {
	out := []string{}
	for _, r := range rules {
		if r.Applies(state) {
			out = append(out, r.Message)
		}
	}
	return out
}
