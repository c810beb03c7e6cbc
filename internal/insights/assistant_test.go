package insights

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistant_NoReport(t *testing.T) {
	state := completeState()
	state.Personal.LinkedIn = ""

	panel := Assistant(nil, state)

	assert.Nil(t, panel.Report)
	assert.Equal(t, RuleSetVersion, panel.RuleSetVersion)
	assert.Equal(t, []string{msgLinkedIn}, panel.Insights)
	assert.Equal(t, []string{msgLinkedIn}, panel.Advice)
	assert.Equal(t, BulletExamples(state), panel.BulletExamples)
}

func TestAssistant_Digest(t *testing.T) {
	tests := []struct {
		name     string
		report   *types.ATSReport
		band     string
		missing  string
		keywords string
	}{
		{
			name: "exactly five keywords",
			report: &types.ATSReport{
				ATSScore:        100,
				MissingSections: []string{"education"},
				KeywordsNeeded:  []string{"a", "b", "c", "d", "e"},
			},
			band:     "Excellent",
			missing:  "education",
			keywords: "a, b, c, d, e",
		},
		{
			name:     "score past the last band",
			report:   &types.ATSReport{ATSScore: 140},
			band:     "Poor",
			missing:  noneMissing,
			keywords: keywordsCovered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := Assistant(tt.report, completeState())

			require.NotNil(t, panel.Report)
			assert.Equal(t, tt.report.ATSScore, panel.Report.Score)
			assert.Equal(t, tt.band, panel.Report.Band.Label)
			assert.Equal(t, tt.missing, panel.Report.Missing)
			assert.Equal(t, tt.keywords, panel.Report.KeywordsNeeded)
		})
	}
}

func TestAssistant_AdviceLeadsWithReportSuggestions(t *testing.T) {
	state := completeState()
	state.Personal.GitHub = ""
	report := &types.ATSReport{ATSScore: 60, Suggestions: []string{"Quantify impact"}}

	panel := Assistant(report, state)

	assert.Equal(t, []string{"Quantify impact", msgGitHub}, panel.Advice)
}

func TestAssistant_WithReport(t *testing.T) {
	report := &types.ATSReport{
		ATSScore:        58.4,
		MissingSections: []string{"Projects", "Links"},
		KeywordsNeeded:  []string{"k1", "k2", "k3", "k4", "k5", "k6"},
		Suggestions:     []string{"s1"},
	}

	panel := Assistant(report, completeState())

	require.NotNil(t, panel.Report)
	assert.Equal(t, 58.4, panel.Report.Score)
	assert.Equal(t, "Fair", panel.Report.Band.Label)
	assert.Equal(t, "Projects, Links", panel.Report.Missing)
	assert.Equal(t, "k1, k2, k3, k4, k5", panel.Report.KeywordsNeeded)
	assert.Equal(t, []string{"s1"}, panel.Advice)
	assert.Empty(t, panel.Insights)
	assert.Equal(t, RuleSetVersion, panel.RuleSetVersion)
}

func TestAssistant_EmptyReportFields(t *testing.T) {
	panel := Assistant(&types.ATSReport{}, completeState())

	require.NotNil(t, panel.Report)
	assert.Equal(t, "None", panel.Report.Missing)
	assert.Equal(t, "Covered", panel.Report.KeywordsNeeded)
	assert.Equal(t, "Poor", panel.Report.Band.Label)
}
