package rest

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError maps a failure kind to its status: NotFound 404,
// InvalidInput 400, upstream failures 503, anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := describe(err)
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: logging.RequestID(r.Context()),
	}})
}

func writeErrorStatus(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func describe(err error) (int, string, string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch de.Kind {
	case domain.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND", messageOr(de.Message, "not found")
	case domain.KindInvalidInput:
		return http.StatusBadRequest, "INVALID_INPUT", messageOr(de.Message, "invalid input")
	case domain.KindUpstreamTimeout:
		return http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT", "an upstream service timed out"
	case domain.KindUpstreamError:
		return http.StatusServiceUnavailable, "UPSTREAM_ERROR", "an upstream service is unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
