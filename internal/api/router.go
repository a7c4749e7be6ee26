// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package api exposes the recommender over HTTP.
//
// Routes:
//
//	GET  /api/v1/recommendations?q=...&n=5
//	POST /api/v1/recommendations   {"query": "...", "n": 5}
//	GET  /api/v1/genres?q=...
//	GET  /api/v1/corpus
//	GET  /api/v1/health
//	GET  /metrics
//
// Every /api/v1 response uses the models.APIResponse envelope.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Recommender is the engine surface the handlers need.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	DetectGenres(text string) []string
	Stats() recommend.Stats
}

// Router holds handler dependencies.
type Router struct {
	engine     Recommender
	middleware *ChiMiddleware
	maxN       int
	startTime  time.Time
}

// NewRouter creates a router. maxN bounds the n parameter accepted by the
// recommendation endpoints; a nil middleware config uses the defaults.
func NewRouter(engine Recommender, mwConfig *ChiMiddlewareConfig, maxN int) *Router {
	return &Router{
		engine:     engine,
		middleware: NewChiMiddleware(mwConfig),
		maxN:       maxN,
		startTime:  time.Now(),
	}
}

// Handler assembles the chi router.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.middleware.CORS())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Get("/health", router.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimit())

			r.Get("/recommendations", router.handleRecommendationsGet)
			r.Post("/recommendations", router.handleRecommendationsPost)
			r.Get("/genres", router.handleGenres)
			r.Get("/corpus", router.handleCorpus)
		})
	})

	return r
}
