package insights

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBulletExamples_DefaultSeed(t *testing.T) {
	examples := BulletExamples(builder.NewDefaultState())

	// 4 skills: verbs[4] and verbs[6]
	assert.Equal(t, "Delivered a feature using JavaScript, TypeScript, React that improved reliability by 20%.", examples[0])
	assert.Equal(t, "Improved deployment pipeline reducing release time by 30%.", examples[1])
}

func TestBulletExamples_NoSkills(t *testing.T) {
	examples := BulletExamples(types.BuilderState{Skills: []string{}})

	assert.Equal(t, "Built a feature using modern stack that improved reliability by 20%.", examples[0])
	assert.Equal(t, "Optimized deployment pipeline reducing release time by 30%.", examples[1])
}

func TestBulletExamples_NilSkills(t *testing.T) {
	examples := BulletExamples(types.BuilderState{})
	assert.Contains(t, examples[0], "modern stack")
}

func TestBulletExamples_BlankSkillFallsBack(t *testing.T) {
	examples := BulletExamples(types.BuilderState{Skills: []string{""}})
	assert.Equal(t, "Designed a feature using modern stack that improved reliability by 20%.", examples[0])
}

func TestBulletExamples_VerbWrapsAround(t *testing.T) {
	state := types.BuilderState{Skills: skillsOf(7)}
	examples := BulletExamples(state)

	assert.Equal(t, "Launched a feature using skill, skill, skill that improved reliability by 20%.", examples[0])
	assert.Equal(t, "Designed deployment pipeline reducing release time by 30%.", examples[1])
}

func TestBulletExamples_Deterministic(t *testing.T) {
	state := completeState()
	assert.Equal(t, BulletExamples(state), BulletExamples(state))
}

func TestBulletExamples_FewerThanThreeSkills(t *testing.T) {
	examples := BulletExamples(types.BuilderState{Skills: []string{"Go", "SQL"}})
	assert.Equal(t, "Optimized a feature using Go, SQL that improved reliability by 20%.", examples[0])
	assert.Equal(t, "Delivered deployment pipeline reducing release time by 30%.", examples[1])
}
