package scoring

import (
	"math"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"zero", 0, "Poor"},
		{"just below fair", 39.9, "Poor"},
		{"fair boundary", 40, "Fair"},
		{"just below good", 59.999, "Fair"},
		{"good boundary", 60, "Good"},
		{"excellent boundary", 80, "Excellent"},
		{"perfect", 100, "Excellent"},
		{"just below cap", 100.99, "Excellent"},
		{"cap falls back", 101, "Poor"},
		{"over range falls back", 150, "Poor"},
		{"negative", -5, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.score).Label)
		})
	}
}

func TestClassify_NaNFallsBack(t *testing.T) {
	assert.Equal(t, "Poor", Classify(math.NaN()).Label)
}

func TestClassify_Severity(t *testing.T) {
	assert.Equal(t, types.SeverityHigh, Classify(10).Severity)
	assert.Equal(t, types.SeverityMedium, Classify(50).Severity)
	assert.Equal(t, types.SeverityLow, Classify(70).Severity)
	assert.Equal(t, types.SeverityLow, Classify(95).Severity)
}

func TestMeterWidth(t *testing.T) {
	assert.Equal(t, 55.5, MeterWidth(55.5))
	assert.Equal(t, 100.0, MeterWidth(100))
	assert.Equal(t, 100.0, MeterWidth(150))
	assert.Equal(t, "Poor", Classify(150).Label, "width clamp does not change band")
}

func TestBands_Ascending(t *testing.T) {
	bs := Bands()
	require.Len(t, bs, 4)
	for i := 1; i < len(bs); i++ {
		assert.Greater(t, bs[i].Max, bs[i-1].Max)
	}
	bs[0].Label = "changed"
	assert.Equal(t, "Poor", Bands()[0].Label)
}

func TestNewGauge(t *testing.T) {
	g := NewGauge(72.5, &types.ATSBreakdown{SkillsMatch: 80, ContactQuality: 100})

	assert.Equal(t, "Good", g.Band.Label)
	assert.Equal(t, 72.5, g.Width)
	assert.Equal(t, []string{"Poor", "Fair", "Good", "Excellent"}, g.BandLabels)
	require.Len(t, g.Breakdown, 7)
	assert.Equal(t, "Skills Match", g.Breakdown[0].Label)
	assert.Equal(t, 80.0, g.Breakdown[0].Value)
	assert.Equal(t, "contactQuality", g.Breakdown[6].Key)

	assert.Nil(t, NewGauge(10, nil).Breakdown)
}
