package omdb

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

var errMissingTitle = errors.New("catalog record has no title")

// FetchByTitle looks up a movie by exact title, optionally narrowed by year.
func (c *Client) FetchByTitle(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	params := url.Values{}
	params.Set("t", title)
	if year = strings.TrimSpace(year); year != "" {
		params.Set("y", year)
	}
	params.Set("plot", "full")

	return c.fetchMovie(ctx, params)
}

// FetchByID looks up a movie by IMDb ID.
func (c *Client) FetchByID(ctx context.Context, imdbID string) (domain.MovieMetadata, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	return c.fetchMovie(ctx, params)
}

func (c *Client) fetchMovie(ctx context.Context, params url.Values) (domain.MovieMetadata, error) {
	var body omdbMovie
	if err := c.get(ctx, params, &body); err != nil {
		return domain.MovieMetadata{}, err
	}

	movie := mapMovieToDomain(body)
	if movie.Title == "" {
		return domain.MovieMetadata{}, domain.UpstreamError(opName, errMissingTitle)
	}

	log := logging.Ctx(ctx, c.logger)
	log.Info().Str("title", movie.Title).Str("year", movie.Year).Msg("fetched movie details")
	return movie, nil
}
