package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/sqlite"
	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/services"
	"github.com/ewilliams-labs/reelvibe/internal/worker"
)

// --- Mocks ---

// The Handler depends on the concrete *Orchestrator, so tests build a real
// one over mock adapters.

type mockCatalog struct {
	mu     sync.Mutex
	movie  domain.MovieMetadata
	search domain.SearchResult
	err    error
	calls  int
}

func (m *mockCatalog) FetchByTitle(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.MovieMetadata{}, m.err
	}
	if m.movie.Title != "" {
		return m.movie, nil
	}
	return domain.MovieMetadata{Title: title, Year: year, Genre: "Drama", Plot: "A plot.", Director: "Someone", Actors: "Someone Else"}, nil
}

func (m *mockCatalog) FetchByID(ctx context.Context, imdbID string) (domain.MovieMetadata, error) {
	movie, err := m.FetchByTitle(ctx, "By ID", "")
	movie.IMDbID = imdbID
	return movie, err
}

func (m *mockCatalog) Search(ctx context.Context, query string, page int) (domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.SearchResult{}, m.err
	}
	res := m.search
	res.Query, res.Page = query, page
	return res, nil
}

func (m *mockCatalog) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

const (
	vibeReply = "VIBE: slow-burn paranoia\nTHEMES: memory, grief\nMOODS: tense, melancholic\nREASONING: Dreams fold into loss."
	recReply  = "MOVIE: Memento (2000)\nREASON: Unreliable memory.\nMOVIE: Shutter Island (2010)\nREASON: Grief bends reality."
)

// mockCompletion answers vibe prompts and recommendation prompts differently.
type mockCompletion struct {
	err error
}

func (m *mockCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if strings.Contains(prompt, "MOVIE:") {
		return recReply, nil
	}
	return vibeReply, nil
}

type mockRecorder struct {
	mu      sync.Mutex
	records []domain.LookupRecord
}

func (m *mockRecorder) Submit(rec domain.LookupRecord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return true
}

func newTestHandler(catalog *mockCatalog, completion *mockCompletion, recorder HistoryRecorder) *Handler {
	svc := services.NewOrchestrator(catalog, completion, time.Second, zerolog.Nop())
	return NewHandler(svc, recorder, nil, Options{Logger: zerolog.Nop()})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body.Error
}

// --- Tests ---

func TestHandler_GetRecommendations(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		catalogErr     error
		completionErr  error
		expectedStatus int
		expectedCode   string
		expectedBody   string
		wantCatalog    bool
	}{
		{
			name:           "Success: returns recommendations",
			target:         "/api/recommendations?title=Inception&year=2010",
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Memento"`,
			wantCatalog:    true,
		},
		{
			name:           "Bad Request: missing title",
			target:         "/api/recommendations",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
			expectedBody:   "title is required",
		},
		{
			name:           "Bad Request: blank title",
			target:         "/api/recommendations?title=%20%20",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
		{
			name:           "Bad Request: malformed year",
			target:         "/api/recommendations?title=Inception&year=20x0",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
			expectedBody:   "year must be numeric",
		},
		{
			name:           "Bad Request: title too long",
			target:         "/api/recommendations?title=" + strings.Repeat("a", 201),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
		{
			name:           "Not Found: catalog has no match",
			target:         "/api/recommendations?title=Nope",
			catalogErr:     domain.NotFound("omdb", "Movie not found!"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
			expectedBody:   "Movie not found!",
			wantCatalog:    true,
		},
		{
			name:           "Service Unavailable: catalog timeout",
			target:         "/api/recommendations?title=Inception",
			catalogErr:     domain.UpstreamTimeout("omdb", context.DeadlineExceeded),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "UPSTREAM_TIMEOUT",
			wantCatalog:    true,
		},
		{
			name:           "Service Unavailable: completion failure",
			target:         "/api/recommendations?title=Inception",
			completionErr:  errors.New("connection reset"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "UPSTREAM_ERROR",
			wantCatalog:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &mockCatalog{err: tt.catalogErr}
			h := newTestHandler(catalog, &mockCompletion{err: tt.completionErr}, nil)

			rec := serve(h, http.MethodGet, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code, "body: %s", rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			assert.Equal(t, tt.wantCatalog, catalog.callCount() > 0)
		})
	}
}

func TestHandler_GetRecommendations_Body(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, nil)

	rec := serve(h, http.MethodGet, "/api/recommendations?title=Inception&year=2010")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Inception", got.SourceTitle)
	assert.Equal(t, "slow-burn paranoia", got.Vibe.Vibe)
	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, domain.RecommendedMovie{Title: "Shutter Island", Year: "2010", Reason: "Grief bends reality."}, got.Recommendations[1])
}

func TestHandler_GetVibe(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, nil)

	rec := serve(h, http.MethodGet, "/api/recommendations/vibe?title=Inception")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.VibeAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"memory", "grief"}, got.Themes)
	assert.Equal(t, []string{"tense", "melancholic"}, got.Moods)
}

func TestHandler_RecordsLookups(t *testing.T) {
	recorder := &mockRecorder{}
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, recorder)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?title=Inception&year=2010", nil)
	req.Header.Set(RequestIDHeader, "req-abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	serve(h, http.MethodGet, "/api/recommendations/vibe?title=Unknown")
	serve(h, http.MethodGet, "/api/recommendations")

	require.Len(t, recorder.records, 2, "validation failures are not recorded")
	first := recorder.records[0]
	assert.Equal(t, domain.OperationRecommendations, first.Operation)
	assert.Equal(t, "Inception", first.Title)
	assert.Equal(t, "2010", first.Year)
	assert.Equal(t, "ok", first.Outcome)
	assert.Equal(t, 2, first.Recommendations)
	assert.Equal(t, "req-abc", first.RequestID)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, domain.OperationVibe, recorder.records[1].Operation)
}

func TestHandler_HistoryEndToEnd(t *testing.T) {
	store, err := sqlite.NewAdapter(":memory:")
	require.NoError(t, err)
	defer store.Close()

	pool := worker.NewPool(store, 10, zerolog.Nop())
	pool.Start(1)

	svc := services.NewOrchestrator(&mockCatalog{err: domain.NotFound("omdb", "Movie not found!")}, &mockCompletion{}, time.Second, zerolog.Nop())
	h := NewHandler(svc, pool, store, Options{Logger: zerolog.Nop()})

	serve(h, http.MethodGet, "/api/recommendations?title=Nope")
	pool.Stop()

	rec := serve(h, http.MethodGet, "/api/history?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var got historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Lookups, 1)
	assert.Equal(t, "Nope", got.Lookups[0].Title)
	assert.Equal(t, "not_found", got.Lookups[0].Outcome)

	rec = serve(h, http.MethodGet, "/api/history?limit=500")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = serve(h, http.MethodGet, "/api/history?limit=ten")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HistoryWithoutStore(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, nil)

	rec := serve(h, http.MethodGet, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lookups":[]}`, rec.Body.String())
}

func TestHandler_Movies(t *testing.T) {
	catalog := &mockCatalog{
		search: domain.SearchResult{
			TotalResults: 1,
			Results:      []domain.SearchHit{{Title: "The Matrix", Year: "1999", IMDbID: "tt0133093", Type: "movie"}},
		},
	}
	h := newTestHandler(catalog, &mockCompletion{}, nil)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "by title", target: "/api/movies?title=Heat&year=1995", expectedStatus: http.StatusOK, expectedBody: `"title":"Heat"`},
		{name: "by title missing", target: "/api/movies", expectedStatus: http.StatusBadRequest, expectedBody: "title is required"},
		{name: "by id", target: "/api/movies/tt0113277", expectedStatus: http.StatusOK, expectedBody: `"imdbId":"tt0113277"`},
		{name: "malformed id", target: "/api/movies/abc", expectedStatus: http.StatusNotFound, expectedBody: "NOT_FOUND"},
		{name: "search", target: "/api/movies/search?q=matrix&page=2", expectedStatus: http.StatusOK, expectedBody: `"page":2`},
		{name: "search default page", target: "/api/movies/search?q=matrix", expectedStatus: http.StatusOK, expectedBody: `"page":1`},
		{name: "search missing query", target: "/api/movies/search", expectedStatus: http.StatusBadRequest, expectedBody: "q is required"},
		{name: "search page too large", target: "/api/movies/search?q=matrix&page=101", expectedStatus: http.StatusBadRequest, expectedBody: "page must be at most 100"},
		{name: "search page not a number", target: "/api/movies/search?q=matrix&page=two", expectedStatus: http.StatusBadRequest, expectedBody: "page must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.target)
			assert.Equal(t, tt.expectedStatus, rec.Code, "body: %s", rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandler_RequestID(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, nil)

	rec := serve(h, http.MethodGet, "/health")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "trace-123", decodeError(t, rec).RequestID)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "bad id with spaces")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id with spaces", rec.Header().Get(RequestIDHeader))
}

func TestHandler_HealthAndMetrics(t *testing.T) {
	h := newTestHandler(&mockCatalog{}, &mockCompletion{}, nil)
	serve(h, http.MethodGet, "/api/recommendations?title=Inception")

	rec := serve(h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reelvibe_pipeline_runs_total")
}

func TestHandler_RateLimit(t *testing.T) {
	svc := services.NewOrchestrator(&mockCatalog{}, &mockCompletion{}, time.Second, zerolog.Nop())
	h := NewHandler(svc, nil, nil, Options{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
		Logger:            zerolog.Nop(),
	})

	first := serve(h, http.MethodGet, "/api/movies?title=Heat")
	second := serve(h, http.MethodGet, "/api/movies?title=Heat")
	health := serve(h, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, second).Code)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.NotFound("x", "gone"), http.StatusNotFound, "NOT_FOUND"},
		{domain.InvalidInput("x", "bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{domain.UpstreamTimeout("x", nil), http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT"},
		{domain.UpstreamError("x", nil), http.StatusServiceUnavailable, "UPSTREAM_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		status, code, _ := describe(tt.err)
		assert.Equal(t, tt.wantStatus, status, tt.err.Error())
		assert.Equal(t, tt.wantCode, code, tt.err.Error())
	}
}
