// Package builder implements the resume builder state operations: the default seed,
// copy-on-write mutations, and the canonical plain-text projection.
package builder

import "github.com/jonathan/resume-builder/internal/types"

// NewDefaultState returns the seed profile used on first load.
// Every collection is non-empty so the assistant has something to reason about.
func NewDefaultState() types.BuilderState {
	return types.BuilderState{
		Personal: types.Personal{},
		Skills:   []string{"JavaScript", "TypeScript", "React", "Node.js"},
		Experience: []types.ExperienceItem{
			{
				Role:    "Software Engineer",
				Company: "Acme Inc.",
				Start:   "2022",
				End:     "Present",
				Bullets: []string{"Built APIs", "Improved reliability"},
			},
		},
		Education: []types.EducationItem{
			{
				School:  "University",
				Degree:  "B.Tech Computer Science",
				Start:   "2018",
				End:     "2022",
				Details: "CGPA 8.5/10",
			},
		},
		Projects: []types.ProjectItem{
			{
				Name:        "Project Aurora",
				Link:        "",
				Description: "Web app for analytics",
				Bullets:     []string{"React, Node, PostgreSQL", "Improved latency by 30%"},
			},
		},
	}
}

// Clone returns a deep copy of state. Nil collections become empty ones.
func Clone(state types.BuilderState) types.BuilderState {
	out := types.BuilderState{
		Personal:   state.Personal,
		Skills:     cloneStrings(state.Skills),
		Experience: make([]types.ExperienceItem, len(state.Experience)),
		Education:  make([]types.EducationItem, len(state.Education)),
		Projects:   make([]types.ProjectItem, len(state.Projects)),
	}
	for i, e := range state.Experience {
		e.Bullets = cloneStrings(e.Bullets)
		out.Experience[i] = e
	}
	copy(out.Education, state.Education)
	for i, p := range state.Projects {
		p.Bullets = cloneStrings(p.Bullets)
		out.Projects[i] = p
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
