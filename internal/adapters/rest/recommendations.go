package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

// GetRecommendations handles GET /api/recommendations?title=&year=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	q, err := parseTitleQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	started := time.Now()
	result, err := h.svc.Recommend(r.Context(), q.Title, q.Year)
	h.record(r.Context(), domain.OperationRecommendations, q, len(result.Recommendations), err, started)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetVibe handles GET /api/recommendations/vibe?title=&year=
func (h *Handler) GetVibe(w http.ResponseWriter, r *http.Request) {
	q, err := parseTitleQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	started := time.Now()
	vibe, err := h.svc.AnalyzeVibe(r.Context(), q.Title, q.Year)
	h.record(r.Context(), domain.OperationVibe, q, 0, err, started)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, vibe)
}

func (h *Handler) record(ctx context.Context, operation string, q titleQuery, recommendations int, err error, started time.Time) {
	if h.recorder == nil {
		return
	}
	h.recorder.Submit(domain.LookupRecord{
		ID:              logging.NewRequestID(),
		Operation:       operation,
		Title:           q.Title,
		Year:            q.Year,
		Outcome:         domain.OutcomeOf(err),
		Recommendations: recommendations,
		DurationMs:      time.Since(started).Milliseconds(),
		RequestID:       logging.RequestID(ctx),
		CreatedAt:       started.UTC(),
	})
}
