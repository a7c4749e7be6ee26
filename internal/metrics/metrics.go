// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics holds the Prometheus collectors for reelmatch:
// corpus loading and fitting, recommendation latency and cache
// efficiency, and HTTP API traffic.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

var (
	// Corpus Metrics
	CorpusLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_corpus_load_duration_seconds",
			Help:    "Duration of corpus load and vector space fit in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CorpusLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_corpus_loads_total",
			Help: "Total number of corpus load attempts by result",
		},
		[]string{"result"}, // "success", "not_found", "error"
	)

	CorpusMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_corpus_movies",
			Help: "Number of movies in the active corpus",
		},
	)

	CorpusVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_corpus_vocabulary_terms",
			Help: "Number of terms in the fitted vocabulary",
		},
	)

	MalformedFields = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_malformed_fields_total",
			Help: "Genre or keyword fields that failed to parse and were treated as empty",
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommendation_requests_total",
			Help: "Total number of recommendation requests by result",
		},
		[]string{"result"}, // "success", "error"
	)

	DetectedGenres = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_detected_genres_total",
			Help: "Genres detected in query text",
		},
		[]string{"genre"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// RecordCorpusLoad records a corpus load attempt. movies and vocabulary
// only update the gauges on success.
func RecordCorpusLoad(duration time.Duration, movies, vocabulary int, err error) {
	CorpusLoadDuration.Observe(duration.Seconds())
	if err != nil {
		CorpusLoads.WithLabelValues(loadResult(err)).Inc()
		return
	}
	CorpusLoads.WithLabelValues("success").Inc()
	CorpusMovies.Set(float64(movies))
	CorpusVocabularySize.Set(float64(vocabulary))
}

func loadResult(err error) string {
	if errors.Is(err, catalog.ErrCorpusNotFound) {
		return "not_found"
	}
	return "error"
}

// RecordMalformedFields adds recovered malformed field parses.
func RecordMalformedFields(n int) {
	if n > 0 {
		MalformedFields.Add(float64(n))
	}
}

// RecordRecommendation records a served recommendation request.
func RecordRecommendation(duration time.Duration, genres []string, err error) {
	RecommendationDuration.Observe(duration.Seconds())
	if err != nil {
		RecommendationRequests.WithLabelValues("error").Inc()
		return
	}
	RecommendationRequests.WithLabelValues("success").Inc()
	for _, g := range genres {
		DetectedGenres.WithLabelValues(g).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
