package omdb

import (
	"strconv"
	"strings"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

// mapMovieToDomain converts an OMDb detail body to domain metadata,
// substituting the Unknown and NoPlot sentinels for absent fields.
func mapMovieToDomain(m omdbMovie) domain.MovieMetadata {
	return domain.MovieMetadata{
		Title:    strings.TrimSpace(m.Title),
		Year:     normalizeYear(m.Year),
		Genre:    normalizeField(m.Genre, domain.Unknown),
		Plot:     normalizeField(m.Plot, domain.NoPlot),
		Director: normalizeField(m.Director, domain.Unknown),
		Actors:   normalizeField(m.Actors, domain.Unknown),
		IMDbID:   normalizeField(m.ImdbID, ""),
		Poster:   normalizeField(m.Poster, ""),
	}
}

func mapSearchToDomain(query string, page int, s omdbSearch) domain.SearchResult {
	hits := make([]domain.SearchHit, 0, len(s.Search))
	for _, item := range s.Search {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Title:  title,
			Year:   normalizeField(item.Year, ""),
			IMDbID: normalizeField(item.ImdbID, ""),
			Type:   normalizeField(item.Type, ""),
			Poster: normalizeField(item.Poster, ""),
		})
	}

	total, err := strconv.Atoi(strings.TrimSpace(s.TotalResults))
	if err != nil {
		total = len(hits)
	}

	return domain.SearchResult{
		Query:        query,
		Page:         page,
		TotalResults: total,
		Results:      hits,
	}
}
