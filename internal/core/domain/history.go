package domain

import "time"

// Operation names recorded in the lookup history.
const (
	OperationRecommendations = "recommendations"
	OperationVibe            = "vibe"
)

// LookupRecord describes one inbound pipeline request. It records how
// many recommendations were produced, never the recommendations.
type LookupRecord struct {
	ID              string    `json:"id"`
	Operation       string    `json:"operation"`
	Title           string    `json:"title"`
	Year            string    `json:"year,omitempty"`
	Outcome         string    `json:"outcome"`
	Recommendations int       `json:"recommendations"`
	DurationMs      int64     `json:"durationMs"`
	RequestID       string    `json:"requestId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// OutcomeOf maps a pipeline error to the outcome stored in a LookupRecord.
func OutcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return KindOf(err).String()
}
