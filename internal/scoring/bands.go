// Package scoring maps ATS scores to display bands and orders insight groups by severity.
package scoring

import (
	"math"

	"github.com/jonathan/resume-builder/internal/types"
)

// Band is one tier of the score gauge.
type Band struct {
	Max      float64        `json:"max"`
	Label    string         `json:"label"`
	Severity types.Severity `json:"severity"`
}

// bands is ordered by ascending Max. The last Max is 101 so a score of
// exactly 100 is still "Excellent".
var bands = []Band{
	{Max: 40, Label: "Poor", Severity: types.SeverityHigh},
	{Max: 60, Label: "Fair", Severity: types.SeverityMedium},
	{Max: 80, Label: "Good", Severity: types.SeverityLow},
	{Max: 101, Label: "Excellent", Severity: types.SeverityLow},
}

// Bands returns the band table in ascending order.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Classify returns the first band whose Max is strictly greater than score.
// Scores with no matching band (>= 101, NaN) fall back to the first band.
func Classify(score float64) Band {
	for _, b := range bands {
		if score < b.Max {
			return b
		}
	}
	return bands[0]
}

// MeterWidth is the gauge fill percentage: min(100, score).
// It only clamps the bar and never changes the classified band.
func MeterWidth(score float64) float64 {
	return math.Min(100, score)
}

// Gauge is everything the score gauge renders.
type Gauge struct {
	Score      float64          `json:"score"`
	Band       Band             `json:"band"`
	Width      float64          `json:"width"`
	Breakdown  []BreakdownEntry `json:"breakdown,omitempty"`
	BandLabels []string         `json:"bandLabels"`
}

// NewGauge builds the gauge view for a score and an optional breakdown.
func NewGauge(score float64, breakdown *types.ATSBreakdown) Gauge {
	labels := make([]string, len(bands))
	for i, b := range bands {
		labels[i] = b.Label
	}
	return Gauge{
		Score:      score,
		Band:       Classify(score),
		Width:      MeterWidth(score),
		Breakdown:  BreakdownEntries(breakdown),
		BandLabels: labels,
	}
}
