package scoring

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

// BreakdownEntry is one labelled sub-score.
type BreakdownEntry struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BreakdownEntries flattens a breakdown into its seven sub-scores in wire order.
// A nil breakdown yields nil.
func BreakdownEntries(b *types.ATSBreakdown) []BreakdownEntry {
	if b == nil {
		return nil
	}
	pairs := []struct {
		key   string
		value float64
	}{
		{"skillsMatch", b.SkillsMatch},
		{"roleRelevance", b.RoleRelevance},
		{"experience", b.Experience},
		{"education", b.Education},
		{"projectsLinks", b.ProjectsLinks},
		{"lengthQuality", b.LengthQuality},
		{"contactQuality", b.ContactQuality},
	}
	out := make([]BreakdownEntry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, BreakdownEntry{Key: p.key, Label: HumanizeKey(p.key), Value: p.value})
	}
	return out
}

// HumanizeKey turns a camelCase key into space separated title case words,
// e.g. "projectsLinks" becomes "Projects Links".
func HumanizeKey(key string) string {
	var sb strings.Builder
	for i, r := range key {
		if i == 0 {
			sb.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func severityRank(s types.Severity) int {
	switch s {
	case types.SeverityHigh:
		return 0
	case types.SeverityMedium:
		return 1
	case types.SeverityLow:
		return 2
	default:
		return 3
	}
}

// SortInsightGroups returns a copy of groups ordered high, medium, low, then
// unknown severities. The relative order within a severity is kept.
func SortInsightGroups(groups []types.InsightGroup) []types.InsightGroup {
	out := make([]types.InsightGroup, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank(out[i].Severity) < severityRank(out[j].Severity)
	})
	return out
}

// DisplaySeverity maps unknown severities to low, which is how they are rendered.
func DisplaySeverity(s types.Severity) types.Severity {
	if severityRank(s) > 2 {
		return types.SeverityLow
	}
	return s
}
