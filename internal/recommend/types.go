// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/vectorspace"
)

// Request is a recommendation request.
type Request struct {
	// Query is the free-text description. Empty is valid.
	Query string `json:"query"`

	// N is the number of results. Zero or negative means DefaultN.
	N int `json:"n"`

	// RequestID is generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked result.
type Recommendation struct {
	Rank          int      `json:"rank"`
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Genres        string   `json:"genres"`
	Score         float64  `json:"score"`
	BaseScore     float64  `json:"base_score"`
	GenreBonus    float64  `json:"genre_bonus"`
	MatchedGenres []string `json:"matched_genres"`
	Overview      string   `json:"overview"`
}

// Response is the result of Recommend.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	DetectedGenres  []string         `json:"detected_genres"`
	TotalCandidates int              `json:"total_candidates"`
	Metadata        ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	RequestedN     int       `json:"requested_n"`
	LatencyMS      int64     `json:"latency_ms"`
	CacheHit       bool      `json:"cache_hit"`
	CorpusLoadedAt time.Time `json:"corpus_loaded_at"`
	Timestamp      time.Time `json:"timestamp"`
}

// ScoredMovie is the score breakdown for one corpus movie.
type ScoredMovie struct {
	Index         int      `json:"index"`
	BaseScore     float64  `json:"base_score"`
	GenreBonus    float64  `json:"genre_bonus"`
	FinalScore    float64  `json:"final_score"`
	MatchedGenres []string `json:"matched_genres"`
}

// Stats describes the engine state.
type Stats struct {
	Loaded          bool      `json:"loaded"`
	Movies          int       `json:"movies"`
	VocabularySize  int       `json:"vocabulary_size"`
	MalformedFields int       `json:"malformed_fields"`
	LoadedAt        time.Time `json:"loaded_at,omitempty"`
	Requests        int64     `json:"requests"`
	CacheHits       int64     `json:"cache_hits"`
	CacheMisses     int64     `json:"cache_misses"`
	CacheEntries    int       `json:"cache_entries"`
}

// Corpus is a loaded, vectorized movie collection. It is never mutated
// after construction; a reload builds a new Corpus.
type Corpus struct {
	Movies   []catalog.MovieRecord
	Space    *vectorspace.VectorSpace
	Compose  catalog.ComposeStats
	LoadedAt time.Time
}
