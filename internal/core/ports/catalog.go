package ports

import (
	"context"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// CatalogClient looks up movie metadata in the external catalog.
// Failures are *domain.Error values of kind NotFound, UpstreamTimeout
// or UpstreamError. Implementations make exactly one attempt per call.
type CatalogClient interface {
	FetchByTitle(ctx context.Context, title, year string) (domain.MovieMetadata, error)
	FetchByID(ctx context.Context, imdbID string) (domain.MovieMetadata, error)
	Search(ctx context.Context, query string, page int) (domain.SearchResult, error)
}
