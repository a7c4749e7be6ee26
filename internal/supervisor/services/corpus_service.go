// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// CorpusLoader is implemented by *recommend.Engine.
type CorpusLoader interface {
	Load(ctx context.Context, source catalog.Source) error
}

// CorpusServiceConfig controls reloading.
type CorpusServiceConfig struct {
	// ReloadInterval is the time between full reloads. Zero disables
	// reloading and the service only waits for shutdown.
	ReloadInterval time.Duration

	// LoadTimeout bounds one reload. Default: 5m
	LoadTimeout time.Duration
}

// CorpusService periodically rebuilds the corpus from its source. Each
// reload replaces the whole corpus; a failed reload keeps the current one.
type CorpusService struct {
	loader CorpusLoader
	source catalog.Source
	config CorpusServiceConfig
	logger zerolog.Logger
	name   string
}

// NewCorpusService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCorpusService(loader CorpusLoader, source catalog.Source, cfg CorpusServiceConfig, logger zerolog.Logger) *CorpusService {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}
	return &CorpusService{
		loader: loader,
		source: source,
		config: cfg,
		logger: logger.With().Str("service", "corpus").Logger(),
		name:   "corpus-service",
	}
}

// Serve implements suture.Service.
func (s *CorpusService) Serve(ctx context.Context) error {
	if s.config.ReloadInterval <= 0 {
		s.logger.Debug().Msg("corpus reloading disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().Dur("reload_interval", s.config.ReloadInterval).Msg("corpus service running")

	ticker := time.NewTicker(s.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("corpus service shutting down")
			return ctx.Err()
		case <-ticker.C:
			reloadCtx := logging.ContextWithNewCorrelationID(ctx)
			logger := s.logger.With().
				Str("correlation_id", logging.CorrelationIDFromContext(reloadCtx)).
				Logger()
			if err := s.reload(reloadCtx, logger); err != nil {
				logger.Warn().Err(err).Msg("corpus reload failed, keeping current corpus")
			}
		}
	}
}

// reload runs one full load. ctx carries the correlation ID that the
// engine repeats in its own load logs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (s *CorpusService) reload(ctx context.Context, logger zerolog.Logger) error {
	loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.loader.Load(loadCtx, s.source); err != nil {
		return err
	}
	logger.Info().Dur("duration", time.Since(start)).Msg("corpus reloaded")
	return nil
}

// String names the service in supervisor logs.
func (s *CorpusService) String() string {
	return s.name
}
