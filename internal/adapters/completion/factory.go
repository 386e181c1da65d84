// Package completion selects the completion gateway named by configuration.
package completion

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/ollama"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/openai"
	"github.com/ewilliams-labs/reelvibe/internal/config"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
)

// New creates a gateway from config. httpClient may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg config.CompletionConfig, httpClient *http.Client, logger zerolog.Logger) (ports.CompletionGateway, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key")
		}
		return openai.NewClient(openai.Options{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			HTTPClient:  httpClient,
			Logger:      logger,
		}), nil

	case config.ProviderOllama:
		return ollama.NewClient(ollama.Options{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			HTTPClient:  httpClient,
			Logger:      logger,
		}), nil

	default:
		return nil, fmt.Errorf("unknown completion provider: %q", cfg.Provider)
	}
}
