// Package domain holds the request-scoped value types of the vibe pipeline
// and the failure taxonomy shared by every adapter.
package domain

// Fallback text substituted wherever the catalog has no value for a field.
const (
	Unknown = "Unknown"
	NoPlot  = "No plot available"
)

// MovieMetadata is the normalized catalog record for a single movie.
// Optional fields hold Unknown (or NoPlot) instead of an empty string.
type MovieMetadata struct {
	Title    string `json:"title"`
	Year     string `json:"year"`
	Genre    string `json:"genre"`
	Plot     string `json:"plot"`
	Director string `json:"director"`
	Actors   string `json:"actors"`
	IMDbID   string `json:"imdbId,omitempty"`
	Poster   string `json:"poster,omitempty"`
}

// SearchHit is one entry of a catalog title search.
type SearchHit struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	IMDbID string `json:"imdbId"`
	Type   string `json:"type"`
	Poster string `json:"poster,omitempty"`
}

// SearchResult is a page of catalog search hits.
type SearchResult struct {
	Query        string      `json:"query"`
	Page         int         `json:"page"`
	TotalResults int         `json:"totalResults"`
	Results      []SearchHit `json:"results"`
}
