// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads reelmatch configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Environment Variables: mapped names such as CORPUS_PATH or HTTP_PORT
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	Corpus     CorpusConfig     `koanf:"corpus"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Vectorizer VectorizerConfig `koanf:"vectorizer"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// CorpusConfig locates the movie metadata file.
//
// Environment Variables:
//   - CORPUS_PATH: CSV file with original_title, overview, genres, keywords columns
//   - CORPUS_RELOAD_INTERVAL: full reload period in server mode, 0 disables (default: 0)
type CorpusConfig struct {
	Path           string        `koanf:"path" validate:"required"`
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"gte=0"`
}

// RecommendConfig controls ranking.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_N: results returned when the caller asks for none (default: 5)
//   - RECOMMEND_MAX_N: largest n accepted by the HTTP API (default: 100)
//   - RECOMMEND_GENRE_BONUS_WEIGHT: per-genre bonus multiplier (default: 0.1)
//   - RECOMMEND_SNIPPET_LENGTH: overview snippet length in characters (default: 100)
//   - RECOMMEND_CACHE_ENABLED: cache responses per (query, n) (default: true)
//   - RECOMMEND_CACHE_MAX_ENTRIES: LRU capacity (default: 1024)
type RecommendConfig struct {
	DefaultN         int         `koanf:"default_n" validate:"gte=1"`
	MaxN             int         `koanf:"max_n" validate:"gte=1"`
	GenreBonusWeight float64     `koanf:"genre_bonus_weight" validate:"gte=0"`
	SnippetLength    int         `koanf:"snippet_length" validate:"gte=1"`
	Cache            CacheConfig `koanf:"cache"`
}

// CacheConfig configures the recommendation response cache.
type CacheConfig struct {
	Enabled    bool `koanf:"enabled"`
	MaxEntries int  `koanf:"max_entries" validate:"gte=1"`
}

// VectorizerConfig controls the TF-IDF fit.
//
// Environment Variables:
//   - VECTORIZER_MAX_FEATURES: vocabulary cap (default: 5000)
//   - VECTORIZER_MIN_NGRAM / VECTORIZER_MAX_NGRAM: n-gram range (default: 1..2)
//   - VECTORIZER_STOP_WORDS: "english" or "none" (default: english)
type VectorizerConfig struct {
	MaxFeatures int    `koanf:"max_features" validate:"gte=1"`
	MinNGram    int    `koanf:"min_ngram" validate:"gte=1"`
	MaxNGram    int    `koanf:"max_ngram" validate:"gte=1,lte=5"`
	StopWords   string `koanf:"stop_words" validate:"oneof=english none"`
}

// ServerConfig holds HTTP server settings. When Enabled is false the
// interactive console runs instead.
//
// Environment Variables:
//   - SERVER_ENABLED: serve the HTTP API instead of the console (default: false)
//   - HTTP_HOST, HTTP_PORT: listen address (default: 0.0.0.0:8080)
//   - HTTP_TIMEOUT: read/write timeout (default: 30s)
//   - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: per-IP limit (default: 100 per 1m)
//   - DISABLE_RATE_LIMIT: turn rate limiting off
type ServerConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: console)
//   - LOG_CALLER: include file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate runs struct-tag validation followed by cross-field checks.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if c.Recommend.DefaultN > c.Recommend.MaxN {
		return fmt.Errorf("recommend.default_n (%d) must not exceed recommend.max_n (%d)",
			c.Recommend.DefaultN, c.Recommend.MaxN)
	}
	if c.Vectorizer.MinNGram > c.Vectorizer.MaxNGram {
		return fmt.Errorf("vectorizer.min_ngram (%d) must not exceed vectorizer.max_ngram (%d)",
			c.Vectorizer.MinNGram, c.Vectorizer.MaxNGram)
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
