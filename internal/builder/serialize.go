package builder

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// noLink is printed in place of an empty project link.
const noLink = "no link"

// ToText projects state into the canonical plain-text document sent to the
// ATS analysis endpoint. The output depends only on state.
func ToText(state types.BuilderState) string {
	p := state.Personal

	lines := []string{
		p.Name,
		p.Headline,
		p.Summary,
		fmt.Sprintf("Email: %s | Phone: %s | Location: %s", p.Email, p.Phone, p.Location),
		fmt.Sprintf("Links: %s %s", p.LinkedIn, p.GitHub),
		"Skills: " + strings.Join(state.Skills, ", "),
		"Experience:",
		experienceBlock(state.Experience),
		"Education:",
		educationBlock(state.Education),
		"Projects:",
		projectsBlock(state.Projects),
	}

	kept := lines[:0]
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func experienceBlock(items []types.ExperienceItem) string {
	parts := make([]string, 0, len(items))
	for _, e := range items {
		parts = append(parts, fmt.Sprintf("%s at %s (%s - %s)\n%s",
			e.Role, e.Company, e.Start, e.End, strings.Join(e.Bullets, "; ")))
	}
	return strings.Join(parts, "\n")
}

func educationBlock(items []types.EducationItem) string {
	parts := make([]string, 0, len(items))
	for _, e := range items {
		parts = append(parts, fmt.Sprintf("%s - %s (%s-%s) %s",
			e.Degree, e.School, e.Start, e.End, e.Details))
	}
	return strings.Join(parts, "\n")
}

func projectsBlock(items []types.ProjectItem) string {
	parts := make([]string, 0, len(items))
	for _, p := range items {
		link := p.Link
		if link == "" {
			link = noLink
		}
		parts = append(parts, fmt.Sprintf("%s (%s): %s. %s",
			p.Name, link, p.Description, strings.Join(p.Bullets, "; ")))
	}
	return strings.Join(parts, "\n")
}
