// Package prompt renders the fixed prompt templates sent to the
// completion backend. Rendering is pure and deterministic.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// RecommendationCount is the number of suggestions the recommendation
// prompt asks for. The extractor does not enforce it.
const RecommendationCount = 5

const vibeTemplate = `Analyze this movie's emotional vibe and thematic feel:

Title: %s (%s)
Genre: %s
Plot: %s
Director: %s
Actors: %s

Describe the emotional atmosphere, the themes and motifs, and the tone and style.
Provide the analysis in this exact format:
VIBE: [2-3 word emotional feel]
THEMES: [3-5 key themes, comma-separated]
MOODS: [3-5 emotional moods, comma-separated]
REASONING: [2-3 sentences explaining the vibe]

Focus on emotional atmosphere, not just genre.
`

const recommendationTemplate = `Based on this movie vibe analysis, recommend %d movies with a similar emotional feel:

Source: %s (%s)
Vibe: %s
Themes: %s
Moods: %s

For each recommendation, provide exactly these two lines:
MOVIE: <Title> (<Year>)
REASON: <why it matches the vibe in 1-2 sentences>

Repeat the MOVIE and REASON lines for every recommendation.
Focus on emotional atmosphere match, not just genre. Include diverse time periods.
`

// BuildVibePrompt renders the vibe analysis prompt for m.
func BuildVibePrompt(m domain.MovieMetadata) string {
	return fmt.Sprintf(vibeTemplate,
		orUnknown(m.Title),
		orUnknown(m.Year),
		orUnknown(m.Genre),
		orFallback(m.Plot, domain.NoPlot),
		orUnknown(m.Director),
		orUnknown(m.Actors),
	)
}

// BuildRecommendationPrompt renders the recommendation prompt for a
// previously extracted vibe.
func BuildRecommendationPrompt(v domain.VibeAnalysis) string {
	return fmt.Sprintf(recommendationTemplate,
		RecommendationCount,
		orUnknown(v.Title),
		orUnknown(v.Year),
		orUnknown(v.Vibe),
		joinOrUnknown(v.Themes),
		joinOrUnknown(v.Moods),
	)
}

func orUnknown(s string) string {
	return orFallback(s, domain.Unknown)
}

func orFallback(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

func joinOrUnknown(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return orUnknown(strings.Join(kept, ", "))
}
