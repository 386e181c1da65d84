package omdb

import "strings"

// envelope is implemented by every OMDb response body. The API reports
// failures in-band with Response "False" and an Error message.
type envelope interface {
	failed() bool
	message() string
}

type omdbStatus struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (s *omdbStatus) failed() bool {
	return strings.EqualFold(strings.TrimSpace(s.Response), "False")
}

func (s *omdbStatus) message() string {
	if msg := strings.TrimSpace(s.Error); msg != "" {
		return msg
	}
	return "no matching movie"
}

// omdbMovie is the detail body returned for t= and i= lookups.
type omdbMovie struct {
	omdbStatus
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Plot     string `json:"Plot"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	ImdbID   string `json:"imdbID"`
	Poster   string `json:"Poster"`
}

// omdbSearch is the body returned for s= lookups.
type omdbSearch struct {
	omdbStatus
	Search       []omdbSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
}

type omdbSearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}
