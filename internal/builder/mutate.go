package builder

import "github.com/jonathan/resume-builder/internal/types"

// Collection names used in IndexError and by the HTTP layer.
const (
	CollectionExperience = "experience"
	CollectionEducation  = "education"
	CollectionProjects   = "projects"
)

// PersonalPatch carries partial updates for Personal. Nil fields are left unchanged.
type PersonalPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Headline *string `json:"headline,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
}

// ExperiencePatch carries partial updates for an ExperienceItem.
// A nil Bullets slice means "unchanged"; an empty one clears the bullets.
// BulletsText, when set, is parsed with ParseBullets and takes precedence.
type ExperiencePatch struct {
	Role        *string  `json:"role,omitempty"`
	Company     *string  `json:"company,omitempty"`
	Start       *string  `json:"start,omitempty"`
	End         *string  `json:"end,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	BulletsText *string  `json:"bulletsText,omitempty"`
}

// EducationPatch carries partial updates for an EducationItem.
type EducationPatch struct {
	School  *string `json:"school,omitempty"`
	Degree  *string `json:"degree,omitempty"`
	Start   *string `json:"start,omitempty"`
	End     *string `json:"end,omitempty"`
	Details *string `json:"details,omitempty"`
}

// ProjectPatch carries partial updates for a ProjectItem.
type ProjectPatch struct {
	Name        *string  `json:"name,omitempty"`
	Link        *string  `json:"link,omitempty"`
	Description *string  `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	BulletsText *string  `json:"bulletsText,omitempty"`
}

// UpdatePersonal returns a copy of state with the patch applied to Personal.
func UpdatePersonal(state types.BuilderState, patch PersonalPatch) types.BuilderState {
	next := Clone(state)
	p := &next.Personal
	set(&p.Name, patch.Name)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Location, patch.Location)
	set(&p.Headline, patch.Headline)
	set(&p.Summary, patch.Summary)
	set(&p.LinkedIn, patch.LinkedIn)
	set(&p.GitHub, patch.GitHub)
	return next
}

// SetSkills returns a copy of state whose skills are replaced by a copy of skills.
func SetSkills(state types.BuilderState, skills []string) types.BuilderState {
	next := Clone(state)
	next.Skills = cloneStrings(skills)
	return next
}

// SetSkillsFromText parses comma separated text and replaces the skills with the result.
func SetSkillsFromText(state types.BuilderState, text string) types.BuilderState {
	return SetSkills(state, ParseSkills(text))
}

// AddExperience appends a blank experience item ending "Present".
func AddExperience(state types.BuilderState) types.BuilderState {
	next := Clone(state)
	next.Experience = append(next.Experience, types.ExperienceItem{End: "Present", Bullets: []string{}})
	return next
}

// UpdateExperience returns a copy of state with the patch applied to experience[index].
func UpdateExperience(state types.BuilderState, index int, patch ExperiencePatch) (types.BuilderState, error) {
	if err := checkIndex(CollectionExperience, index, len(state.Experience)); err != nil {
		return state, err
	}
	next := Clone(state)
	e := &next.Experience[index]
	set(&e.Role, patch.Role)
	set(&e.Company, patch.Company)
	set(&e.Start, patch.Start)
	set(&e.End, patch.End)
	e.Bullets = patchBullets(e.Bullets, patch.Bullets, patch.BulletsText)
	return next, nil
}

// RemoveExperience returns a copy of state without experience[index].
func RemoveExperience(state types.BuilderState, index int) (types.BuilderState, error) {
	if err := checkIndex(CollectionExperience, index, len(state.Experience)); err != nil {
		return state, err
	}
	next := Clone(state)
	next.Experience = append(next.Experience[:index], next.Experience[index+1:]...)
	return next, nil
}

// AddEducation appends a blank education item.
func AddEducation(state types.BuilderState) types.BuilderState {
	next := Clone(state)
	next.Education = append(next.Education, types.EducationItem{})
	return next
}

// UpdateEducation returns a copy of state with the patch applied to education[index].
func UpdateEducation(state types.BuilderState, index int, patch EducationPatch) (types.BuilderState, error) {
	if err := checkIndex(CollectionEducation, index, len(state.Education)); err != nil {
		return state, err
	}
	next := Clone(state)
	e := &next.Education[index]
	set(&e.School, patch.School)
	set(&e.Degree, patch.Degree)
	set(&e.Start, patch.Start)
	set(&e.End, patch.End)
	set(&e.Details, patch.Details)
	return next, nil
}

// RemoveEducation returns a copy of state without education[index].
func RemoveEducation(state types.BuilderState, index int) (types.BuilderState, error) {
	if err := checkIndex(CollectionEducation, index, len(state.Education)); err != nil {
		return state, err
	}
	next := Clone(state)
	next.Education = append(next.Education[:index], next.Education[index+1:]...)
	return next, nil
}

// AddProject appends a blank project item.
func AddProject(state types.BuilderState) types.BuilderState {
	next := Clone(state)
	next.Projects = append(next.Projects, types.ProjectItem{Bullets: []string{}})
	return next
}

// UpdateProject returns a copy of state with the patch applied to projects[index].
func UpdateProject(state types.BuilderState, index int, patch ProjectPatch) (types.BuilderState, error) {
	if err := checkIndex(CollectionProjects, index, len(state.Projects)); err != nil {
		return state, err
	}
	next := Clone(state)
	p := &next.Projects[index]
	set(&p.Name, patch.Name)
	set(&p.Link, patch.Link)
	set(&p.Description, patch.Description)
	p.Bullets = patchBullets(p.Bullets, patch.Bullets, patch.BulletsText)
	return next, nil
}

// RemoveProject returns a copy of state without projects[index].
func RemoveProject(state types.BuilderState, index int) (types.BuilderState, error) {
	if err := checkIndex(CollectionProjects, index, len(state.Projects)); err != nil {
		return state, err
	}
	next := Clone(state)
	next.Projects = append(next.Projects[:index], next.Projects[index+1:]...)
	return next, nil
}

func checkIndex(collection string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Collection: collection, Index: index, Len: length}
	}
	return nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func patchBullets(current, replacement []string, text *string) []string {
	switch {
	case text != nil:
		return ParseBullets(*text)
	case replacement != nil:
		return cloneStrings(replacement)
	default:
		return current
	}
}
