package builder

import "strings"

// ParseSkills splits comma separated skill text, trimming entries and dropping empty ones.
// Duplicates are kept.
func ParseSkills(text string) []string {
	return splitNonEmpty(text, ",")
}

// ParseBullets splits semicolon separated bullet text, trimming entries and dropping empty ones.
func ParseBullets(text string) []string {
	return splitNonEmpty(text, ";")
}

func splitNonEmpty(text, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(text, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
