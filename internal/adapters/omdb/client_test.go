package omdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/omdb"
	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// --- Helpers ---

func newTestClient(t *testing.T, handler http.HandlerFunc) *omdb.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return omdb.NewClient(omdb.Options{
		BaseURL: ts.URL + "/",
		APIKey:  "test-key",
		Timeout: 200 * time.Millisecond,
		Logger:  zerolog.Nop(),
	})
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

const inceptionBody = `{
	"Title": "Inception",
	"Year": "2010",
	"Genre": "Action, Adventure, Sci-Fi",
	"Plot": "A thief who steals corporate secrets through dream-sharing technology.",
	"Director": "Christopher Nolan",
	"Actors": "Leonardo DiCaprio, Joseph Gordon-Levitt",
	"imdbID": "tt1375666",
	"Poster": "https://img.example/inception.jpg",
	"Response": "True"
}`

// --- Tests ---

func TestFetchByTitle_QueryParameters(t *testing.T) {
	tests := []struct {
		name     string
		year     string
		wantYear string
	}{
		{name: "with year", year: "2010", wantYear: "2010"},
		{name: "without year", year: "", wantYear: ""},
		{name: "blank year omitted", year: "   ", wantYear: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "test-key", q.Get("apikey"))
				assert.Equal(t, "Inception", q.Get("t"))
				assert.Equal(t, "full", q.Get("plot"))
				assert.Equal(t, tt.wantYear, q.Get("y"))
				assert.Equal(t, tt.wantYear != "", q.Has("y"))
				respond(http.StatusOK, inceptionBody)(w, r)
			})

			movie, err := client.FetchByTitle(context.Background(), "Inception", tt.year)
			require.NoError(t, err)
			assert.Equal(t, domain.MovieMetadata{
				Title:    "Inception",
				Year:     "2010",
				Genre:    "Action, Adventure, Sci-Fi",
				Plot:     "A thief who steals corporate secrets through dream-sharing technology.",
				Director: "Christopher Nolan",
				Actors:   "Leonardo DiCaprio, Joseph Gordon-Levitt",
				IMDbID:   "tt1375666",
				Poster:   "https://img.example/inception.jpg",
			}, movie)
		})
	}
}

func TestFetchByTitle_NormalizesMissingFields(t *testing.T) {
	client := newTestClient(t, respond(http.StatusOK, `{
		"Title": "Obscure Film",
		"Year": "1999–2001",
		"Genre": "N/A",
		"Plot": "N/A",
		"Director": "",
		"Poster": "N/A",
		"Response": "True"
	}`))

	movie, err := client.FetchByTitle(context.Background(), "Obscure Film", "")
	require.NoError(t, err)
	assert.Equal(t, "1999", movie.Year)
	assert.Equal(t, domain.Unknown, movie.Genre)
	assert.Equal(t, domain.NoPlot, movie.Plot)
	assert.Equal(t, domain.Unknown, movie.Director)
	assert.Equal(t, domain.Unknown, movie.Actors)
	assert.Empty(t, movie.Poster)
}

func TestFetchByTitle_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind domain.Kind
		wantMsg  string
	}{
		{
			name:     "response false with 200 is not found",
			handler:  respond(http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`),
			wantKind: domain.KindNotFound,
			wantMsg:  "Movie not found!",
		},
		{
			name:     "response false with 404 is not found",
			handler:  respond(http.StatusNotFound, `{"Response":"False","Error":"Movie not found!"}`),
			wantKind: domain.KindNotFound,
		},
		{
			name:     "response false with 401 is upstream error",
			handler:  respond(http.StatusUnauthorized, `{"Response":"False","Error":"Invalid API key!"}`),
			wantKind: domain.KindUpstreamError,
		},
		{
			name:     "server error",
			handler:  respond(http.StatusInternalServerError, `oops`),
			wantKind: domain.KindUpstreamError,
		},
		{
			name:     "malformed body",
			handler:  respond(http.StatusOK, `{"Title": `),
			wantKind: domain.KindUpstreamError,
		},
		{
			name:     "record without title",
			handler:  respond(http.StatusOK, `{"Year":"2010","Response":"True"}`),
			wantKind: domain.KindUpstreamError,
		},
		{
			name: "slow server times out",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			wantKind: domain.KindUpstreamTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.FetchByTitle(context.Background(), "Inception", "")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFetchByTitle_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(respond(http.StatusOK, inceptionBody))
	url := ts.URL
	ts.Close()

	client := omdb.NewClient(omdb.Options{BaseURL: url, Logger: zerolog.Nop()})
	_, err := client.FetchByTitle(context.Background(), "Inception", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamError))
}

func TestFetchByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tt1375666", q.Get("i"))
		assert.Equal(t, "full", q.Get("plot"))
		assert.False(t, q.Has("t"))
		respond(http.StatusOK, inceptionBody)(w, r)
	})

	movie, err := client.FetchByID(context.Background(), "tt1375666")
	require.NoError(t, err)
	assert.Equal(t, "Inception", movie.Title)
	assert.Equal(t, "tt1375666", movie.IMDbID)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "matrix", q.Get("s"))
		assert.Equal(t, "2", q.Get("page"))
		respond(http.StatusOK, `{
			"Search": [
				{"Title":"The Matrix","Year":"1999","imdbID":"tt0133093","Type":"movie","Poster":"N/A"},
				{"Title":"","Year":"2000","imdbID":"tt0000000","Type":"movie"},
				{"Title":"The Matrix Reloaded","Year":"2003","imdbID":"tt0234215","Type":"movie","Poster":"https://img.example/r.jpg"}
			],
			"totalResults": "42",
			"Response": "True"
		}`)(w, r)
	})

	result, err := client.Search(context.Background(), "matrix", 2)
	require.NoError(t, err)
	assert.Equal(t, "matrix", result.Query)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 42, result.TotalResults)
	require.Len(t, result.Results, 2)
	assert.Equal(t, domain.SearchHit{Title: "The Matrix", Year: "1999", IMDbID: "tt0133093", Type: "movie"}, result.Results[0])
	assert.Equal(t, "https://img.example/r.jpg", result.Results[1].Poster)
}

func TestSearch_PageDefaultsAndNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		respond(http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`)(w, r)
	})

	_, err := client.Search(context.Background(), "zzzz", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
