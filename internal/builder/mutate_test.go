package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewDefaultState_NonEmptySeed(t *testing.T) {
	state := NewDefaultState()

	assert.NotEmpty(t, state.Skills)
	assert.Len(t, state.Experience, 1)
	assert.Len(t, state.Education, 1)
	assert.Len(t, state.Projects, 1)
	require.NoError(t, state.Validate())
}

func TestNewDefaultState_FreshValues(t *testing.T) {
	a := NewDefaultState()
	a.Skills[0] = "changed"

	b := NewDefaultState()
	assert.Equal(t, "JavaScript", b.Skills[0])
}

func TestClone_IsDeep(t *testing.T) {
	state := NewDefaultState()
	cp := Clone(state)

	cp.Skills[0] = "Go"
	cp.Experience[0].Bullets[0] = "changed"
	cp.Projects[0].Bullets[0] = "changed"
	cp.Education[0].School = "changed"

	assert.Equal(t, "JavaScript", state.Skills[0])
	assert.Equal(t, "Built APIs", state.Experience[0].Bullets[0])
	assert.Equal(t, "React, Node, PostgreSQL", state.Projects[0].Bullets[0])
	assert.Equal(t, "University", state.Education[0].School)
}

func TestUpdatePersonal(t *testing.T) {
	state := NewDefaultState()

	next := UpdatePersonal(state, PersonalPatch{Name: strPtr("Ada"), LinkedIn: strPtr("in/ada")})

	assert.Equal(t, "Ada", next.Personal.Name)
	assert.Equal(t, "in/ada", next.Personal.LinkedIn)
	assert.Empty(t, next.Personal.Email)
	assert.Empty(t, state.Personal.Name, "input state must not change")
}

func TestSetSkillsFromText(t *testing.T) {
	state := NewDefaultState()

	next := SetSkillsFromText(state, " Go, , Rust ,Go,")

	assert.Equal(t, []string{"Go", "Rust", "Go"}, next.Skills)
	assert.Len(t, state.Skills, 4)
}

func TestSetSkills_CopiesInput(t *testing.T) {
	skills := []string{"Go"}
	next := SetSkills(NewDefaultState(), skills)
	skills[0] = "changed"

	assert.Equal(t, []string{"Go"}, next.Skills)
}

func TestAddExperience_Defaults(t *testing.T) {
	state := NewDefaultState()

	next := AddExperience(state)

	require.Len(t, next.Experience, 2)
	assert.Equal(t, "Present", next.Experience[1].End)
	assert.NotNil(t, next.Experience[1].Bullets)
	assert.Empty(t, next.Experience[1].Bullets)
	assert.Len(t, state.Experience, 1)
}

func TestUpdateExperience(t *testing.T) {
	state := NewDefaultState()

	next, err := UpdateExperience(state, 0, ExperiencePatch{Company: strPtr("Globex"), BulletsText: strPtr("Shipped v2; ; Led team ")})
	require.NoError(t, err)

	assert.Equal(t, "Globex", next.Experience[0].Company)
	assert.Equal(t, "Software Engineer", next.Experience[0].Role)
	assert.Equal(t, []string{"Shipped v2", "Led team"}, next.Experience[0].Bullets)
	assert.Equal(t, "Acme Inc.", state.Experience[0].Company)
	assert.Equal(t, []string{"Built APIs", "Improved reliability"}, state.Experience[0].Bullets)
}

func TestUpdateExperience_ClearBullets(t *testing.T) {
	next, err := UpdateExperience(NewDefaultState(), 0, ExperiencePatch{Bullets: []string{}})
	require.NoError(t, err)

	assert.NotNil(t, next.Experience[0].Bullets)
	assert.Empty(t, next.Experience[0].Bullets)
}

func TestUpdateExperience_OutOfRange(t *testing.T) {
	state := NewDefaultState()

	for _, idx := range []int{-1, 1, 5} {
		next, err := UpdateExperience(state, idx, ExperiencePatch{Role: strPtr("x")})
		require.Error(t, err)

		var idxErr *IndexError
		require.True(t, errors.As(err, &idxErr))
		assert.Equal(t, CollectionExperience, idxErr.Collection)
		assert.Equal(t, idx, idxErr.Index)
		assert.Equal(t, 1, idxErr.Len)
		assert.Equal(t, state, next)
	}
}

func TestRemoveExperience(t *testing.T) {
	state := AddExperience(NewDefaultState())

	next, err := RemoveExperience(state, 0)
	require.NoError(t, err)

	require.Len(t, next.Experience, 1)
	assert.Equal(t, "Present", next.Experience[0].End)
	assert.Len(t, state.Experience, 2)
	assert.Equal(t, "Software Engineer", state.Experience[0].Role)
}

func TestEducationEdits(t *testing.T) {
	state := AddEducation(NewDefaultState())
	require.Len(t, state.Education, 2)

	next, err := UpdateEducation(state, 1, EducationPatch{School: strPtr("MIT"), Details: strPtr("Honors")})
	require.NoError(t, err)
	assert.Equal(t, "MIT", next.Education[1].School)
	assert.Equal(t, "Honors", next.Education[1].Details)
	assert.Empty(t, state.Education[1].School)

	removed, err := RemoveEducation(next, 0)
	require.NoError(t, err)
	require.Len(t, removed.Education, 1)
	assert.Equal(t, "MIT", removed.Education[0].School)

	_, err = UpdateEducation(state, 2, EducationPatch{})
	assert.Error(t, err)
	_, err = RemoveEducation(state, -1)
	assert.Error(t, err)
}

func TestProjectEdits(t *testing.T) {
	state := AddProject(NewDefaultState())
	require.Len(t, state.Projects, 2)
	assert.NotNil(t, state.Projects[1].Bullets)

	next, err := UpdateProject(state, 1, ProjectPatch{
		Name:    strPtr("CLI"),
		Link:    strPtr("https://github.com/x/cli"),
		Bullets: []string{"Go", "cobra"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CLI", next.Projects[1].Name)
	assert.Equal(t, []string{"Go", "cobra"}, next.Projects[1].Bullets)
	assert.Empty(t, state.Projects[1].Name)

	removed, err := RemoveProject(next, 1)
	require.NoError(t, err)
	assert.Len(t, removed.Projects, 1)

	_, err = RemoveProject(removed, 1)
	var idxErr *IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, CollectionProjects, idxErr.Collection)
}

func TestRemoveThenAdd_DoesNotAliasInput(t *testing.T) {
	state := AddProject(NewDefaultState())

	removed, err := RemoveProject(state, 0)
	require.NoError(t, err)
	_ = AddProject(removed)

	assert.Equal(t, "Project Aurora", state.Projects[0].Name)
	assert.Len(t, state.Projects, 2)
}

func TestParseBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "Built APIs", []string{"Built APIs"}},
		{"trims and drops blanks", " a ;; b ; ", []string{"a", "b"}},
		{"commas stay inside bullets", "React, Node; Postgres", []string{"React, Node", "Postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBullets(tt.input))
		})
	}
}
