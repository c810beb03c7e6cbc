// Package report builds read-only views over an external ATS report.
package report

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	notDetected = "Not detected"

	// idealMinWords and idealMaxWords bound the highlighted word count range.
	idealMinWords = 400
	idealMaxWords = 800

	// previewChars is how much extracted text the preview shows.
	previewChars = 2500
)

// Card is one labelled value in the summary grid.
type Card struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Detected  bool   `json:"detected"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Summary is the summary grid for a report.
type Summary struct {
	Filename string `json:"filename,omitempty"`
	Cards    []Card `json:"cards"`
}

// Summarize renders the contact block and word count of report.
// Empty fields read "Not detected"; a word count within 400..800 is highlighted.
func Summarize(r *types.ATSReport) Summary {
	if r == nil {
		return Summary{Cards: []Card{}}
	}
	s := r.Summary
	cards := []Card{
		field("Name", s.Name),
		field("Email", s.Email),
		field("Phone", s.Phone),
		field("LinkedIn", s.LinkedIn),
		field("GitHub", s.GitHub),
		field("Location", s.Address),
		{
			Label:     "Word Count",
			Value:     fmt.Sprintf("%d", r.WordCount),
			Detected:  true,
			Highlight: r.WordCount >= idealMinWords && r.WordCount <= idealMaxWords,
		},
	}
	return Summary{Filename: r.Filename, Cards: cards}
}

func field(label, value string) Card {
	if value == "" {
		return Card{Label: label, Value: notDetected}
	}
	return Card{Label: label, Value: value, Detected: true}
}

// TextPreview is the leading part of the extracted text.
type TextPreview struct {
	Text       string `json:"text"`
	Characters int    `json:"characters"`
	Truncated  bool   `json:"truncated"`
}

// Preview returns the first 2500 characters of text.
func Preview(text string) TextPreview {
	r := []rune(text)
	p := TextPreview{Text: text, Characters: len(r)}
	if len(r) > previewChars {
		p.Text = string(r[:previewChars])
		p.Truncated = true
	}
	return p
}

// View is everything the analyzer page shows for one report.
type View struct {
	Gauge           scoring.Gauge        `json:"gauge"`
	Insights        []types.InsightGroup `json:"insights"`
	Summary         Summary              `json:"summary"`
	Preview         TextPreview          `json:"preview"`
	DetectedSkills  []string             `json:"detectedSkills"`
	MissingSections []string             `json:"missingSections"`
}

// NewView builds the full report view. r must not be nil.
func NewView(r *types.ATSReport) View {
	return View{
		Gauge:           scoring.NewGauge(r.ATSScore, r.Breakdown),
		Insights:        scoring.SortInsightGroups(r.Insights),
		Summary:         Summarize(r),
		Preview:         Preview(r.Text),
		DetectedSkills:  append([]string{}, r.DetectedSkills...),
		MissingSections: append([]string{}, r.MissingSections...),
	}
}
