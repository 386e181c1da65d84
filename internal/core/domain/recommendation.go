package domain

// RecommendedMovie is a single suggestion parsed from a completion.
// Title and Year are always non-empty.
type RecommendedMovie struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	Reason string `json:"reason"`
}

// RecommendationResult is the assembled output of the recommendation pipeline.
type RecommendationResult struct {
	SourceTitle     string             `json:"sourceTitle"`
	SourceYear      string             `json:"sourceYear"`
	SourceGenre     string             `json:"sourceGenre"`
	Vibe            VibeAnalysis       `json:"vibe"`
	Recommendations []RecommendedMovie `json:"recommendations"`
}
