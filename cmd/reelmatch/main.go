// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command reelmatch recommends movies from a free-text description.
//
// By default it loads the corpus and runs an interactive prompt on
// stdin/stdout. With SERVER_ENABLED=true it serves the HTTP API under a
// supervisor tree instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/console"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("corpus_path", cfg.Corpus.Path).
		Bool("server_enabled", cfg.Server.Enabled).
		Msg("Initializing movie recommendation system")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := catalog.CSVSource{Path: cfg.Corpus.Path}
	if err := engine.Load(logging.ContextWithNewCorrelationID(ctx), source); err != nil {
		if errors.Is(err, catalog.ErrCorpusNotFound) {
			logging.Fatal().Err(err).Str("path", cfg.Corpus.Path).Msg("Movie dataset file not found")
		}
		logging.Fatal().Err(err).Msg("Failed to load movie corpus")
	}

	if cfg.Server.Enabled {
		runServer(ctx, cfg, engine, source)
		return
	}

	fmt.Printf("Loaded %d movies from dataset\n", engine.Stats().Movies)
	if err := console.Run(ctx, os.Stdin, os.Stdout, engine, cfg.Recommend.DefaultN); err != nil &&
		!errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Console stopped with error")
		stop()
		os.Exit(1)
	}
}

// runServer serves the HTTP API until ctx is canceled.
func runServer(ctx context.Context, cfg *config.Config, engine *recommend.Engine, source catalog.Source) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCorpusService(services.NewCorpusService(engine, source, services.CorpusServiceConfig{
		ReloadInterval: cfg.Corpus.ReloadInterval,
	}, logging.WithComponent("corpus")))

	router := api.NewRouter(engine, api.ChiMiddlewareConfigFromServer(cfg.Server), cfg.Recommend.MaxN)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Handler(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.HTTPServiceConfig{
		Addr:         server.Addr,
		DrainTimeout: cfg.Server.ShutdownTimeout,
	}, logging.WithComponent("api")))

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	logging.Info().Msg("Application stopped gracefully")
}
