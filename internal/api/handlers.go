// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 64 << 10

// RecommendationRequest is the validated input of both recommendation
// endpoints. N of zero selects the engine default.
type RecommendationRequest struct {
	Query string `json:"query" validate:"max=1000"`
	N     int    `json:"n" validate:"gte=0"`
}

// handleRecommendationsGet serves GET /api/v1/recommendations?q=&n=.
func (router *Router) handleRecommendationsGet(w http.ResponseWriter, r *http.Request) {
	n, ok := getIntParam(r, "n", 0)
	if !ok {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "n must be an integer", nil)
		return
	}
	router.recommend(w, r, RecommendationRequest{Query: r.URL.Query().Get("q"), N: n})
}

// handleRecommendationsPost serves POST /api/v1/recommendations.
func (router *Router) handleRecommendationsPost(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Request body must be a JSON object", nil)
		return
	}
	router.recommend(w, r, req)
}

func (router *Router) recommend(w http.ResponseWriter, r *http.Request, req RecommendationRequest) {
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if router.maxN > 0 && req.N > router.maxN {
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "n must be less than or equal to the configured maximum",
			Details: map[string]interface{}{"field": "n", "max": router.maxN},
		}, nil)
		return
	}

	resp, err := router.engine.Recommend(r.Context(), recommend.Request{
		Query:     req.Query,
		N:         req.N,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	switch {
	case errors.Is(err, recommend.ErrNoCorpus):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeCorpusNotLoaded, "No movie corpus is loaded", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to compute recommendations", err)
		return
	}

	respondSuccess(w, r, resp, models.Metadata{
		Timestamp:   resp.Metadata.Timestamp,
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
		RequestID:   resp.Metadata.RequestID,
	})
}

// handleGenres serves GET /api/v1/genres?q=.
func (router *Router) handleGenres(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	respondSuccess(w, r, models.GenreDetection{
		Query:      q,
		Genres:     router.engine.DetectGenres(q),
		Vocabulary: append([]string(nil), genre.Vocabulary...),
	}, models.Metadata{})
}

// handleCorpus serves GET /api/v1/corpus.
func (router *Router) handleCorpus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, router.engine.Stats(), models.Metadata{})
}

// handleHealth reports 200 when a corpus is loaded and 503 otherwise.
func (router *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := router.engine.Stats()
	health := models.HealthStatus{
		Status:       "healthy",
		CorpusLoaded: stats.Loaded,
		Movies:       stats.Movies,
		Uptime:       time.Since(router.startTime).Seconds(),
		LoadedAt:     stats.LoadedAt,
	}

	status := http.StatusOK
	if !stats.Loaded {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now(), RequestID: logging.RequestIDFromContext(r.Context())},
	})
}
