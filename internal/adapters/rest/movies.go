package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetMovie handles GET /api/movies?title=&year=
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	q, err := parseTitleQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	movie, err := h.svc.GetMovie(r.Context(), q.Title, q.Year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GetMovieByID handles GET /api/movies/{imdbID}
func (h *Handler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.svc.GetMovieByID(r.Context(), chi.URLParam(r, "imdbID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// SearchMovies handles GET /api/movies/search?q=&page=
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.svc.SearchMovies(r.Context(), q.Query, q.Page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
