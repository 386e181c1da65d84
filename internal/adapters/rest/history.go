package rest

import (
	"net/http"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

type historyResponse struct {
	Lookups []domain.LookupRecord `json:"lookups"`
}

// GetHistory handles GET /api/history?limit=
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q, err := parseHistoryQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	records := []domain.LookupRecord{}
	if h.lookups != nil {
		got, err := h.lookups.Recent(r.Context(), q.Limit)
		if err != nil {
			log := logging.Ctx(r.Context(), h.logger)
			log.Error().Err(err).Msg("failed to load lookup history")
			writeError(w, r, err)
			return
		}
		if got != nil {
			records = got
		}
	}

	writeJSON(w, http.StatusOK, historyResponse{Lookups: records})
}
