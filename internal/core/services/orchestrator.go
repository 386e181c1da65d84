// Package services composes the catalog client, prompt builder,
// completion gateway and extractors into the vibe and recommendation
// pipelines.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/extract"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/core/prompt"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
	"github.com/ewilliams-labs/reelvibe/internal/metrics"
)

// DefaultStageTimeout bounds each external call when no timeout is configured.
const DefaultStageTimeout = 5 * time.Second

const (
	pipelineRecommendations = "recommendations"
	pipelineVibe            = "vibe"
)

// Orchestrator runs the pipelines. It holds only read-only collaborators
// and is safe for concurrent use.
type Orchestrator struct {
	catalog      ports.CatalogClient
	completion   ports.CompletionGateway
	stageTimeout time.Duration
	logger       zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator. A non-positive stageTimeout
// selects DefaultStageTimeout.
func NewOrchestrator(catalog ports.CatalogClient, completion ports.CompletionGateway, stageTimeout time.Duration, logger zerolog.Logger) *Orchestrator {
	if stageTimeout <= 0 {
		stageTimeout = DefaultStageTimeout
	}
	return &Orchestrator{
		catalog:      catalog,
		completion:   completion,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}

// Recommend runs the full pipeline: fetch metadata, analyse the vibe,
// then ask for and parse recommendations. Any upstream failure stops
// the pipeline; no partial result is returned.
func (o *Orchestrator) Recommend(ctx context.Context, title, year string) (domain.RecommendationResult, error) {
	log := logging.Ctx(ctx, o.logger)

	movie, vibe, err := o.vibeStages(ctx, title, year)
	if err != nil {
		o.finish(log, pipelineRecommendations, title, err)
		return domain.RecommendationResult{}, err
	}

	response, err := o.complete(ctx, prompt.BuildRecommendationPrompt(vibe))
	if err != nil {
		err = fmt.Errorf("service: recommendation completion: %w", err)
		o.finish(log, pipelineRecommendations, title, err)
		return domain.RecommendationResult{}, err
	}

	recs := extract.ExtractRecommendations(response)
	metrics.RecommendationsExtracted.Observe(float64(len(recs)))
	log.Info().Str("title", movie.Title).Int("recommendations", len(recs)).Msg("recommendations extracted")

	o.finish(log, pipelineRecommendations, title, nil)
	return domain.RecommendationResult{
		SourceTitle:     movie.Title,
		SourceYear:      movie.Year,
		SourceGenre:     movie.Genre,
		Vibe:            vibe,
		Recommendations: recs,
	}, nil
}

// AnalyzeVibe runs the pipeline up to and including vibe extraction.
func (o *Orchestrator) AnalyzeVibe(ctx context.Context, title, year string) (domain.VibeAnalysis, error) {
	log := logging.Ctx(ctx, o.logger)

	_, vibe, err := o.vibeStages(ctx, title, year)
	o.finish(log, pipelineVibe, title, err)
	if err != nil {
		return domain.VibeAnalysis{}, err
	}
	return vibe, nil
}

// GetMovie returns catalog metadata for a title.
func (o *Orchestrator) GetMovie(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	title, year, err := normalizeTitleYear(title, year)
	if err != nil {
		return domain.MovieMetadata{}, err
	}
	return o.fetchByTitle(ctx, title, year)
}

// GetMovieByID returns catalog metadata for an IMDb ID.
func (o *Orchestrator) GetMovieByID(ctx context.Context, imdbID string) (domain.MovieMetadata, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return domain.MovieMetadata{}, domain.InvalidInput("service", "imdb id is required")
	}

	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	movie, err := o.catalog.FetchByID(stageCtx, imdbID)
	if err != nil {
		return domain.MovieMetadata{}, fmt.Errorf("service: fetch metadata: %w", classify(stageCtx, "catalog", err))
	}
	return movie, nil
}

// SearchMovies runs a catalog title search. Pages below 1 select page 1.
func (o *Orchestrator) SearchMovies(ctx context.Context, query string, page int) (domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, domain.InvalidInput("service", "search query is required")
	}
	if page < 1 {
		page = 1
	}

	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	result, err := o.catalog.Search(stageCtx, query, page)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("service: search: %w", classify(stageCtx, "catalog", err))
	}
	return result, nil
}

// vibeStages runs FetchMetadata -> BuildVibePrompt -> RequestVibeCompletion -> ExtractVibe.
func (o *Orchestrator) vibeStages(ctx context.Context, title, year string) (domain.MovieMetadata, domain.VibeAnalysis, error) {
	title, year, err := normalizeTitleYear(title, year)
	if err != nil {
		return domain.MovieMetadata{}, domain.VibeAnalysis{}, err
	}

	movie, err := o.fetchByTitle(ctx, title, year)
	if err != nil {
		return domain.MovieMetadata{}, domain.VibeAnalysis{}, err
	}

	response, err := o.complete(ctx, prompt.BuildVibePrompt(movie))
	if err != nil {
		return domain.MovieMetadata{}, domain.VibeAnalysis{}, fmt.Errorf("service: vibe completion: %w", err)
	}

	return movie, extract.ExtractVibe(response, movie.Title, movie.Year), nil
}

func (o *Orchestrator) fetchByTitle(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	movie, err := o.catalog.FetchByTitle(stageCtx, title, year)
	if err != nil {
		return domain.MovieMetadata{}, fmt.Errorf("service: fetch metadata: %w", classify(stageCtx, "catalog", err))
	}
	return movie, nil
}

func (o *Orchestrator) complete(ctx context.Context, promptText string) (string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	response, err := o.completion.Complete(stageCtx, promptText)
	if err != nil {
		return "", classify(stageCtx, "completion", err)
	}
	return response, nil
}

func (o *Orchestrator) finish(log zerolog.Logger, pipeline, title string, err error) {
	outcome := domain.OutcomeOf(err)
	metrics.PipelineRuns.WithLabelValues(pipeline, outcome).Inc()
	if err == nil {
		return
	}

	event := log.Error()
	switch domain.KindOf(err) {
	case domain.KindNotFound, domain.KindInvalidInput:
		event = log.Warn()
	}
	event.Err(err).Str("pipeline", pipeline).Str("title", title).Str("outcome", outcome).Msg("pipeline failed")
}

// classify keeps typed failures as they are and converts anything else
// into UpstreamTimeout or UpstreamError.
func classify(ctx context.Context, op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.UpstreamTimeout(op, err)
	}
	return domain.UpstreamError(op, err)
}

func normalizeTitleYear(title, year string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", domain.InvalidInput("service", "title is required")
	}
	return title, strings.TrimSpace(year), nil
}
