package domain

// VibeAnalysis is the structured emotional profile extracted from a
// completion. Themes and Moods never contain blank entries.
type VibeAnalysis struct {
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	Vibe      string   `json:"vibe"`
	Themes    []string `json:"themes"`
	Moods     []string `json:"moods"`
	Reasoning string   `json:"reasoning"`
}
