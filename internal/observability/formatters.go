// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// PrintBuilderState outputs a short summary of the builder state.
func (p *Printer) PrintBuilderState(state *types.BuilderState, templateKey string) {
	if state == nil {
		return
	}

	var sb strings.Builder
	name := state.Personal.Name
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	sb.WriteString(fmt.Sprintf("Headline:  %s\n", state.Personal.Headline))
	if templateKey != "" {
		sb.WriteString(fmt.Sprintf("Template:  %s\n", templateKey))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:      %d\n", len(state.Skills)))
	sb.WriteString(fmt.Sprintf("Experience:  %d\n", len(state.Experience)))
	sb.WriteString(fmt.Sprintf("Education:   %d\n", len(state.Education)))
	sb.WriteString(fmt.Sprintf("Projects:    %d", len(state.Projects)))

	p.printBox("BUILDER STATE", sb.String())
}

// PrintAssistant outputs the assistant panel: report digest, advice and bullet examples.
func (p *Printer) PrintAssistant(panel *insights.Panel) {
	if panel == nil {
		return
	}

	var sb strings.Builder
	if panel.Report != nil {
		sb.WriteString(fmt.Sprintf("ATS Score: %.1f (%s)\n", panel.Report.Score, panel.Report.Band.Label))
		sb.WriteString(fmt.Sprintf("Missing:   %s\n", panel.Report.Missing))
		sb.WriteString(fmt.Sprintf("Keywords:  %s\n", panel.Report.KeywordsNeeded))
		sb.WriteString("\n")
	}

	if len(panel.Advice) == 0 {
		sb.WriteString("No immediate fixes\n")
	} else {
		sb.WriteString("Immediate fixes:\n")
		for _, a := range panel.Advice {
			sb.WriteString(fmt.Sprintf("  • %s\n", a))
		}
	}
	sb.WriteString("\nBullet rewrites:\n")
	for _, ex := range panel.BulletExamples {
		sb.WriteString(fmt.Sprintf("  • %s\n", ex))
	}
	sb.WriteString(fmt.Sprintf("\nRules: %s", panel.RuleSetVersion))

	p.printBox("ASSISTANT", sb.String())
}

// PrintGauge outputs the score, its band and the breakdown sub-scores.
func (p *Printer) PrintGauge(gauge *scoring.Gauge) {
	if gauge == nil {
		return
	}

	var sb strings.Builder
	filled := int(max(0, gauge.Width) / 100 * float64(boxWidth-6))
	sb.WriteString(fmt.Sprintf("Score: %.1f  [%s]\n", gauge.Score, gauge.Band.Label))
	sb.WriteString(fmt.Sprintf("[%s%s]\n", strings.Repeat("█", filled), strings.Repeat("·", boxWidth-6-filled)))

	for _, e := range gauge.Breakdown {
		sb.WriteString(fmt.Sprintf("  %-16s %6.1f\n", e.Label, e.Value))
	}

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsightGroups outputs externally produced insight groups, highest severity first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintInsightGroups(groups []types.InsightGroup) {
	if len(groups) == 0 {
		return
	}

	var sb strings.Builder
	for i, g := range scoring.SortInsightGroups(groups) {
		sb.WriteString(fmt.Sprintf("%s [%s]\n", g.Title, scoring.DisplaySeverity(g.Severity)))
		count := min(len(g.Items), maxItemsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", g.Items[j]))
		}
		if len(g.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(g.Items)-maxItemsToShow))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ATS INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}
