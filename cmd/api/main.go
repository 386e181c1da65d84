package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/breaker"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/completion"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/history"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/omdb"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/rest"
	"github.com/ewilliams-labs/reelvibe/internal/adapters/sqlite"
	"github.com/ewilliams-labs/reelvibe/internal/config"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/core/services"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
	"github.com/ewilliams-labs/reelvibe/internal/worker"
)

func main() {
	// 1. Configuration: defaults, then config.yaml, then environment.
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New(logging.Config{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// 2. Driven adapters.
	// -- Lookup history
	var lookups ports.LookupLog
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		store, err := sqlite.NewAdapter(cfg.Storage.Path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("failed to initialize database")
		}
		defer store.Close()
		lookups = store
	default:
		lookups = history.Discard{}
	}

	// -- Catalog
	var catalog ports.CatalogClient = omdb.NewClient(omdb.Options{
		BaseURL:           cfg.Catalog.BaseURL,
		APIKey:            cfg.Catalog.APIKey,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Logger:            logger,
	})

	// -- Completion
	gateway, err := completion.New(cfg.Completion, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize completion gateway")
	}

	if cfg.Breaker.Enabled {
		catalog = breaker.NewCatalog(catalog, breakerSettings(cfg.Breaker, "catalog"), logger)
		gateway = breaker.NewCompletion(gateway, breakerSettings(cfg.Breaker, "completion"), logger)
	}

	// 3. Core logic.
	stageTimeout := max(cfg.Catalog.Timeout, cfg.Completion.Timeout)
	svc := services.NewOrchestrator(catalog, gateway, stageTimeout, logger)

	// 4. Driving adapter.
	pool := worker.NewPool(lookups, cfg.History.QueueSize, logger)
	pool.Start(cfg.History.Workers)
	defer pool.Stop()

	handler := rest.NewHandler(svc, pool, lookups, rest.Options{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
		Logger:            logger,
	})

	// 5. Start the server.
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Str("completion_provider", cfg.Completion.Provider).
		Str("storage", cfg.Storage.Driver).
		Bool("breaker", cfg.Breaker.Enabled).
		Msg("reelvibe API is running")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}
}

func breakerSettings(cfg config.BreakerConfig, name string) breaker.Settings {
	return breaker.Settings{
		Name:         name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		MinRequests:  cfg.MinRequests,
		FailureRatio: cfg.FailureRatio,
	}
}

