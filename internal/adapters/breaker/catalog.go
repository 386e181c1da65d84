package breaker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

// Catalog guards a CatalogClient. All three lookups share one breaker
// because they hit the same upstream.
type Catalog struct {
	next   ports.CatalogClient
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

var _ ports.CatalogClient = (*Catalog)(nil)

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalog(next ports.CatalogClient, s Settings, logger zerolog.Logger) *Catalog {
	if s.Name == "" {
		s.Name = "catalog"
	}
	return &Catalog{next: next, cb: newBreaker[any](s, logger), logger: logger}
}

func (c *Catalog) FetchByTitle(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	return castResult[domain.MovieMetadata](c.run(ctx, func() (any, error) {
		return c.next.FetchByTitle(ctx, title, year)
	}))
}

func (c *Catalog) FetchByID(ctx context.Context, imdbID string) (domain.MovieMetadata, error) {
	return castResult[domain.MovieMetadata](c.run(ctx, func() (any, error) {
		return c.next.FetchByID(ctx, imdbID)
	}))
}

func (c *Catalog) Search(ctx context.Context, query string, page int) (domain.SearchResult, error) {
	return castResult[domain.SearchResult](c.run(ctx, func() (any, error) {
		return c.next.Search(ctx, query, page)
	}))
}

func (c *Catalog) run(ctx context.Context, fn func() (any, error)) (any, error) {
	return execute(c.cb, logging.Ctx(ctx, c.logger), fn)
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, domain.UpstreamError("breaker", fmt.Errorf("unexpected result type %T", result))
	}
	return typed, nil
}
