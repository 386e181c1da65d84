package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimitRequests < 0 {
		errs = append(errs, errors.New("server.rate_limit_requests must not be negative"))
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("server.rate_limit_window must be positive"))
	}

	if strings.TrimSpace(c.Catalog.APIKey) == "" {
		errs = append(errs, errors.New("catalog.api_key is required (OMDB_API_KEY)"))
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("catalog.timeout must be positive"))
	}
	if c.Catalog.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("catalog.requests_per_second must not be negative"))
	}

	switch c.Completion.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(c.Completion.APIKey) == "" {
			errs = append(errs, errors.New("completion.api_key is required for openai (OPENAI_API_KEY)"))
		}
	case ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("completion.provider %q is not one of openai, ollama", c.Completion.Provider))
	}
	if c.Completion.Timeout <= 0 {
		errs = append(errs, errors.New("completion.timeout must be positive"))
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		errs = append(errs, errors.New("completion.temperature must be within [0, 2]"))
	}

	if c.Breaker.Enabled {
		if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
			errs = append(errs, errors.New("breaker.failure_ratio must be within (0, 1]"))
		}
		if c.Breaker.Timeout <= 0 {
			errs = append(errs, errors.New("breaker.timeout must be positive"))
		}
	}

	switch c.Storage.Driver {
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			errs = append(errs, errors.New("storage.path is required for sqlite"))
		}
	case StorageNone:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, none", c.Storage.Driver))
	}

	if c.History.Workers < 1 {
		errs = append(errs, errors.New("history.workers must be at least 1"))
	}
	if c.History.QueueSize < 1 {
		errs = append(errs, errors.New("history.queue_size must be at least 1"))
	}

	return errors.Join(errs...)
}
