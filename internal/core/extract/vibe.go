package extract

import (
	"strings"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// Labels recognised in a vibe completion. Matching is case-sensitive.
const (
	LabelVibe      = "VIBE:"
	LabelThemes    = "THEMES:"
	LabelMoods     = "MOODS:"
	LabelReasoning = "REASONING:"
)

// ExtractVibe parses a vibe completion. Each label is located
// independently; its value runs to the next line that starts with an
// all-caps label, or to the end of the text. Absent labels yield empty
// fields.
func ExtractVibe(response, title, year string) domain.VibeAnalysis {
	breaks := sectionBreaks(response)
	return domain.VibeAnalysis{
		Title:     title,
		Year:      year,
		Vibe:      labelValue(response, breaks, LabelVibe),
		Themes:    splitList(labelValue(response, breaks, LabelThemes)),
		Moods:     splitList(labelValue(response, breaks, LabelMoods)),
		Reasoning: labelValue(response, breaks, LabelReasoning),
	}
}

func labelValue(text string, breaks []int, label string) string {
	found := tokenize(text, label)
	if len(found) == 0 {
		return ""
	}
	start := found[0].value
	end := len(text)
	for _, b := range breaks {
		if b >= start {
			end = b
			break
		}
	}
	return strings.TrimSpace(text[start:end])
}

// splitList splits on commas and keeps only non-blank, trimmed pieces.
// The result is never nil.
func splitList(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
