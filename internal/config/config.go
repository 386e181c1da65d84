// Package config loads service configuration from defaults, an optional
// YAML file and environment variables, in increasing order of precedence.
package config

import "time"

// Completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Storage drivers for the lookup history.
const (
	StorageSQLite = "sqlite"
	StorageNone   = "none"
)

// Config is the complete service configuration. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Completion CompletionConfig `koanf:"completion"`
	Breaker    BreakerConfig    `koanf:"breaker"`
	Storage    StorageConfig    `koanf:"storage"`
	History    HistoryConfig    `koanf:"history"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	// RateLimitRequests per RateLimitWindow per client IP on /api; 0 disables.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// CatalogConfig configures the OMDb client.
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// CompletionConfig selects and configures the language model backend.
// Empty BaseURL and Model fall back to the provider's defaults.
type CompletionConfig struct {
	Provider    string        `koanf:"provider"`
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
}

// BreakerConfig mirrors gobreaker.Settings for both upstreams.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
}

type HistoryConfig struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue_size"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
		},
		Catalog: CatalogConfig{
			BaseURL: "https://www.omdbapi.com/",
			Timeout: 5 * time.Second,
		},
		Completion: CompletionConfig{
			Provider:    ProviderOpenAI,
			Temperature: 0.7,
			Timeout:     5 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.6,
		},
		Storage: StorageConfig{
			Driver: StorageSQLite,
			Path:   "reelvibe.db",
		},
		History: HistoryConfig{
			Workers:   2,
			QueueSize: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
