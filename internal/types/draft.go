package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UntitledDraft is the title used when a draft has no headline.
const UntitledDraft = "Untitled Resume"

// ResumeDraft is a saved snapshot of the builder.
type ResumeDraft struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Payload     BuilderState `json:"payload"`
	TemplateKey string       `json:"templateKey"`
	ATSScore    *float64     `json:"atsScore,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// DraftTitle returns the headline of the state, or UntitledDraft when it is blank.
func DraftTitle(state BuilderState) string {
	if title := strings.TrimSpace(state.Personal.Headline); title != "" {
		return title
	}
	return UntitledDraft
}

// SaveDraftRequest is the request body for saving a draft.
// A nil ID creates a new draft.
type SaveDraftRequest struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       string     `json:"title,omitempty"`
	TemplateKey string     `json:"templateKey,omitempty" validate:"omitempty,max=64"`
	ATSScore    *float64   `json:"atsScore,omitempty" validate:"omitempty,gte=0"`
}

// Validate validates the SaveDraftRequest using the validator.
func (r *SaveDraftRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
