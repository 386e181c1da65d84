package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/core/services"
)

// HistoryRecorder accepts lookup records for asynchronous storage.
type HistoryRecorder interface {
	Submit(rec domain.LookupRecord) bool
}

// Options tunes the middleware stack.
type Options struct {
	CORSOrigins []string
	// RateLimitRequests per RateLimitWindow per client IP on /api; 0 disables.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	Logger            zerolog.Logger
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Orchestrator
	recorder HistoryRecorder
	lookups  ports.LookupLog
	logger   zerolog.Logger
	router   chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, recorder HistoryRecorder, lookups ports.LookupLog, opts Options) *Handler {
	h := &Handler{
		svc:      svc,
		recorder: recorder,
		lookups:  lookups,
		logger:   opts.Logger,
		router:   chi.NewRouter(),
	}

	h.routes(opts)

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes(opts Options) {
	r := h.router

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(opts.CORSOrigins))

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(opts.RateLimitRequests, opts.RateLimitWindow))

		r.Get("/recommendations", h.GetRecommendations)
		r.Get("/recommendations/vibe", h.GetVibe)

		r.Get("/movies", h.GetMovie)
		r.Get("/movies/search", h.SearchMovies)
		r.Get("/movies/{imdbID:tt[0-9]+}", h.GetMovieByID)

		r.Get("/history", h.GetHistory)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, domain.NotFound("rest", "route not found"))
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
