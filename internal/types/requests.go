package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// SkillsRequest replaces the skills list. Text, when set, is parsed as a
// comma separated list and wins over Skills.
type SkillsRequest struct {
	Skills []string `json:"skills" validate:"required_without=Text"`
	Text   *string  `json:"text,omitempty"`
}

// Validate validates the SkillsRequest using the validator.
func (r *SkillsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TemplateRequest selects a template to apply.
type TemplateRequest struct {
	Key string `json:"key" validate:"required,max=64"`
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ClassifyRequest asks for the band of a score.
type ClassifyRequest struct {
	Score     *float64      `json:"score" validate:"required"`
	Breakdown *ATSBreakdown `json:"breakdown,omitempty"`
}

// Validate validates the ClassifyRequest using the validator.
func (r *ClassifyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AssistantRequest carries a state and an optional report for the stateless
// assistant view. State stays raw so it can be checked against the state schema.
type AssistantRequest struct {
	State  json.RawMessage `json:"state" validate:"required"`
	Report *ATSReport      `json:"report,omitempty"`
}

// Validate validates the AssistantRequest using the validator.
func (r *AssistantRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
