// Package templates provides the fixed catalog of resume templates and the
// operation that resets a builder state to a template's defaults.
package templates

import (
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultKey is the template selected when nothing has been persisted yet.
const DefaultKey = "software_engineer"

// Template is one catalog entry.
type Template struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Headline string   `json:"headline"`
	Skills   []string `json:"skills"`
}

var catalog = []Template{
	{
		Key:      "software_engineer",
		Name:     "Software Engineer",
		Headline: "Full-Stack Engineer | Systems & APIs",
		Skills:   []string{"TypeScript", "Node.js", "React", "PostgreSQL", "AWS", "CI/CD"},
	},
	{
		Key:      "frontend_developer",
		Name:     "Frontend Developer",
		Headline: "Frontend Developer | Design Systems",
		Skills:   []string{"React", "TypeScript", "Next.js", "Tailwind", "Accessibility", "Testing"},
	},
	{
		Key:      "backend_developer",
		Name:     "Backend Developer",
		Headline: "Backend Developer | Microservices",
		Skills:   []string{"Node.js", "Express", "PostgreSQL", "Redis", "Docker", "Monitoring"},
	},
	{
		Key:      "data_analyst",
		Name:     "Data Analyst",
		Headline: "Data Analyst | Insights & BI",
		Skills:   []string{"SQL", "Python", "Tableau", "Power BI", "Statistics", "ETL"},
	},
	{
		Key:      "student",
		Name:     "Fresher / Student",
		Headline: "CS Student | Internships & Projects",
		Skills:   []string{"JavaScript", "Data Structures", "Git", "Projects", "Hackathons", "Teamwork"},
	},
}

// All returns the catalog in display order. The result is a copy.
func All() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		out[i] = t.clone()
	}
	return out
}

// Lookup returns the template for key, or a *NotFoundError.
func Lookup(key string) (Template, error) {
	for _, t := range catalog {
		if t.Key == key {
			return t.clone(), nil
		}
	}
	return Template{}, &NotFoundError{Key: key}
}

// Apply resets the headline and the whole skills list to the template's defaults.
// Existing skills are discarded, not merged. An unknown key returns state
// unchanged together with a *NotFoundError.
func Apply(state types.BuilderState, key string) (types.BuilderState, error) {
	t, err := Lookup(key)
	if err != nil {
		return state, err
	}
	next := builder.SetSkills(state, t.Skills)
	next.Personal.Headline = t.Headline
	return next, nil
}

func (t Template) clone() Template {
	skills := make([]string, len(t.Skills))
	copy(skills, t.Skills)
	t.Skills = skills
	return t
}
