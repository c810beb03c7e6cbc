// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Personal holds the contact and headline fields of a resume.
// An empty string means the field was not provided.
type Personal struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// ExperienceItem represents one role in the experience section.
// Start and End are free text and are not parsed as dates.
type ExperienceItem struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Bullets []string `json:"bullets" validate:"required"`
}

// EducationItem represents one entry in the education section.
type EducationItem struct {
	School  string `json:"school"`
	Degree  string `json:"degree"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Details string `json:"details"`
}

// ProjectItem represents one entry in the projects section.
type ProjectItem struct {
	Name        string   `json:"name"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets" validate:"required"`
}

// BuilderState is the root entity of a resume under construction.
// Skills keep insertion order and are never deduplicated.
type BuilderState struct {
	Personal   Personal         `json:"personal"`
	Skills     []string         `json:"skills" validate:"required"`
	Experience []ExperienceItem `json:"experience" validate:"required,dive"`
	Education  []EducationItem  `json:"education" validate:"required"`
	Projects   []ProjectItem    `json:"projects" validate:"required,dive"`
}

// Validate checks that the state has the shape the builder core expects:
// every collection and every bullets list must be present (empty is fine).
func (s *BuilderState) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
