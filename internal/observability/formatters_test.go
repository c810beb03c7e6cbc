package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintBuilderState(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	state := builder.NewDefaultState()
	state.Personal.Name = "Ada Lovelace"
	p.PrintBuilderState(&state, "software_engineer")
	output := buf.String()

	assert.Contains(t, output, "BUILDER STATE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "software_engineer")
	assert.Contains(t, output, "Skills:      4")
}

func TestPrintBuilderState_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBuilderState(nil, "")
	assert.Empty(t, buf.String())
}

func TestPrintAssistant(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.ATSReport{ATSScore: 72, Suggestions: []string{"Add metrics"}}
	panel := insights.Assistant(report, builder.NewDefaultState())
	p.PrintAssistant(&panel)
	output := buf.String()

	assert.Contains(t, output, "ASSISTANT")
	assert.Contains(t, output, "ATS Score: 72.0 (Good)")
	assert.Contains(t, output, "Add metrics")
	assert.Contains(t, output, "Bullet rewrites:")
	assert.Contains(t, output, insights.RuleSetVersion)
}

func TestPrintAssistant_NoAdvice(t *testing.T) {
	var buf bytes.Buffer
	panel := insights.Panel{RuleSetVersion: "x"}
	NewPrinter(&buf).PrintAssistant(&panel)

	assert.Contains(t, buf.String(), "No immediate fixes")
}

func TestPrintGauge(t *testing.T) {
	var buf bytes.Buffer
	gauge := scoring.NewGauge(150, &types.ATSBreakdown{SkillsMatch: 90})
	NewPrinter(&buf).PrintGauge(&gauge)
	output := buf.String()

	assert.Contains(t, output, "ATS COMPATIBILITY")
	assert.Contains(t, output, "[Poor]")
	assert.Contains(t, output, "Skills Match")
}

func TestPrintInsightGroups_SortsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	groups := []types.InsightGroup{
		{Title: "Formatting", Severity: types.SeverityLow, Items: []string{"Use one column"}},
		{Title: "Contact", Severity: types.SeverityHigh, Items: []string{"Add email"}},
	}
	NewPrinter(&buf).PrintInsightGroups(groups)
	output := buf.String()

	assert.Less(t, strings.Index(output, "Contact"), strings.Index(output, "Formatting"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("x", 200))

	assert.Contains(t, buf.String(), "...")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
