package omdb

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
)

// Search runs a title search. Pages below 1 request page 1.
func (c *Client) Search(ctx context.Context, query string, page int) (domain.SearchResult, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var body omdbSearch
	if err := c.get(ctx, params, &body); err != nil {
		return domain.SearchResult{}, err
	}

	result := mapSearchToDomain(query, page, body)
	log := logging.Ctx(ctx, c.logger)
	log.Info().Str("query", query).Int("total", result.TotalResults).Msg("catalog search")
	return result, nil
}
