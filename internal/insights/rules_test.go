package insights

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msgSkills   = "Add 6-12 hard skills tailored to the target template."
	msgBullets  = "Each experience should have 2-4 quantified bullets."
	msgProjects = "Include at least one project with tech stack and outcome."
	msgLinkedIn = "Add LinkedIn URL for recruiter validation."
	msgGitHub   = "Link GitHub/portfolio for code samples."
)

// completeState fires no rule.
func completeState() types.BuilderState {
	state := builder.NewDefaultState()
	state.Skills = []string{"Go", "SQL", "Docker", "Kubernetes", "gRPC", "Redis"}
	state.Personal.LinkedIn = "linkedin.com/in/ada"
	state.Personal.GitHub = "github.com/ada"
	return state
}

func skillsOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "skill"
	}
	return out
}

func TestDerive_CompleteStateHasNoInsights(t *testing.T) {
	insights := Derive(completeState())
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestDerive_SkillsBoundary(t *testing.T) {
	tests := []struct {
		count int
		fires bool
	}{
		{0, true},
		{5, true},
		{6, false},
		{7, false},
		{12, false},
	}

	for _, tt := range tests {
		state := completeState()
		state.Skills = skillsOf(tt.count)
		if tt.fires {
			assert.Contains(t, Derive(state), msgSkills, "count=%d", tt.count)
		} else {
			assert.NotContains(t, Derive(state), msgSkills, "count=%d", tt.count)
		}
	}
}

func TestDerive_ExperienceBullets(t *testing.T) {
	state := completeState()
	state.Experience = []types.ExperienceItem{{Role: "Dev", Bullets: []string{"Shipped it"}}}
	assert.NotContains(t, Derive(state), msgBullets, "one bullet is enough")

	state.Experience = append(state.Experience, types.ExperienceItem{Role: "Intern", Bullets: []string{}})
	assert.Contains(t, Derive(state), msgBullets)

	state.Experience = []types.ExperienceItem{}
	assert.NotContains(t, Derive(state), msgBullets, "no experience means nothing to complain about")
}

func TestDerive_ProjectsAndGitHub(t *testing.T) {
	state := completeState()
	state.Personal.GitHub = ""
	assert.Equal(t, []string{msgGitHub}, Derive(state))

	state.Projects = []types.ProjectItem{}
	assert.Equal(t, []string{msgProjects}, Derive(state), "github rule needs at least one project")
}

func TestDerive_FixedOrder(t *testing.T) {
	state := types.BuilderState{
		Skills:     []string{},
		Experience: []types.ExperienceItem{{Bullets: []string{}}},
		Education:  []types.EducationItem{},
		Projects:   []types.ProjectItem{},
	}
	assert.Equal(t, []string{msgSkills, msgBullets, msgProjects, msgLinkedIn}, Derive(state))

	state.Projects = []types.ProjectItem{{Bullets: []string{}}}
	assert.Equal(t, []string{msgSkills, msgBullets, msgLinkedIn, msgGitHub}, Derive(state))
}

func TestDerive_DefaultSeed(t *testing.T) {
	assert.Equal(t, []string{msgSkills, msgLinkedIn, msgGitHub}, Derive(builder.NewDefaultState()))
}

func TestRules_TableMatchesDerive(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, 5)

	ids := map[string]bool{}
	for _, r := range rs {
		assert.False(t, ids[r.ID], "duplicate rule id %s", r.ID)
		ids[r.ID] = true
	}
	assert.Equal(t, msgSkills, rs[0].Message)
	assert.Equal(t, msgGitHub, rs[4].Message)
	assert.NotEmpty(t, RuleSetVersion)
}
