// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts reelmatch components to suture.Service.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
}

// HTTPServiceConfig controls the API server lifecycle.
type HTTPServiceConfig struct {
	// Addr is reported in logs and errors only; the server owns its listener.
	Addr string

	// DrainTimeout bounds graceful shutdown. Connections still open after
	// it are closed. Default: 10s
	DrainTimeout time.Duration
}

// HTTPServerService serves the recommendation API until its context is
// canceled, then drains in-flight requests.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Handler()}
//	tree.AddAPIService(services.NewHTTPServerService(server,
//		services.HTTPServiceConfig{Addr: server.Addr}, logger))
type HTTPServerService struct {
	server HTTPServer
	config HTTPServiceConfig
	logger zerolog.Logger
	name   string
}

// NewHTTPServerService wraps server.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, cfg HTTPServiceConfig, logger zerolog.Logger) *HTTPServerService {
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server: server,
		config: cfg,
		logger: logger.With().Str("service", "api").Str("addr", cfg.Addr).Logger(),
		name:   "api-server",
	}
}

// Serve implements suture.Service. A listen failure is returned so the
// supervisor restarts the service with backoff.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	stopped := make(chan error, 1)
	go func() {
		stopped <- s.server.ListenAndServe()
	}()
	s.logger.Info().Msg("api server listening")

	select {
	case err := <-stopped:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	case <-ctx.Done():
	}

	drainErr := s.drain()
	<-stopped
	if drainErr != nil {
		return drainErr
	}
	return ctx.Err()
}

// drain shuts the server down on a fresh deadline, since the serve context
// is already canceled, and force-closes whatever is left.
func (s *HTTPServerService) drain() error {
	drainCtx, cancel := context.WithTimeout(context.Background(), s.config.DrainTimeout)
	defer cancel()

	start := time.Now()
	err := s.server.Shutdown(drainCtx)
	if err == nil {
		s.logger.Info().Dur("duration", time.Since(start)).Msg("api server drained")
		return nil
	}

	s.logger.Warn().Err(err).Msg("api drain incomplete, closing remaining connections")
	if closeErr := s.server.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return fmt.Errorf("shutdown api server: %w", err)
}

// String names the service in supervisor logs.
func (s *HTTPServerService) String() string {
	return s.name
}
