package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validState() BuilderState {
	return BuilderState{
		Skills:     []string{},
		Experience: []ExperienceItem{{Bullets: []string{}}},
		Education:  []EducationItem{},
		Projects:   []ProjectItem{{Bullets: []string{"Shipped"}}},
	}
}

func TestBuilderState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BuilderState)
		wantErr bool
	}{
		{name: "empty collections are fine", mutate: func(*BuilderState) {}},
		{name: "nil skills", mutate: func(s *BuilderState) { s.Skills = nil }, wantErr: true},
		{name: "nil education", mutate: func(s *BuilderState) { s.Education = nil }, wantErr: true},
		{name: "nil experience bullets", mutate: func(s *BuilderState) { s.Experience[0].Bullets = nil }, wantErr: true},
		{name: "nil project bullets", mutate: func(s *BuilderState) { s.Projects[0].Bullets = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraftTitle(t *testing.T) {
	s := validState()
	assert.Equal(t, UntitledDraft, DraftTitle(s))

	s.Personal.Headline = "  Platform Engineer "
	assert.Equal(t, "Platform Engineer", DraftTitle(s))
}

func TestSaveDraftRequest_Validate(t *testing.T) {
	negative := -1.0
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'k'
	}

	assert.NoError(t, (&SaveDraftRequest{}).Validate())
	assert.Error(t, (&SaveDraftRequest{ATSScore: &negative}).Validate())
	assert.Error(t, (&SaveDraftRequest{TemplateKey: string(long)}).Validate())
}

func TestRequests_Validate(t *testing.T) {
	text := "Go, SQL"
	score := 55.0

	assert.NoError(t, (&SkillsRequest{Skills: []string{}}).Validate())
	assert.NoError(t, (&SkillsRequest{Text: &text}).Validate())
	assert.Error(t, (&SkillsRequest{}).Validate())

	assert.NoError(t, (&TemplateRequest{Key: "data_analyst"}).Validate())
	assert.Error(t, (&TemplateRequest{}).Validate())

	assert.NoError(t, (&ClassifyRequest{Score: &score}).Validate())
	assert.Error(t, (&ClassifyRequest{}).Validate())
}
