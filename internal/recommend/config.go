// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/vectorspace"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultN is used when a request asks for zero or fewer results.
	DefaultN int `json:"default_n"`

	// GenreBonusWeight is the per-matched-genre multiplier of the base score.
	GenreBonusWeight float64 `json:"genre_bonus_weight"`

	// SnippetLength is the overview prefix length in characters.
	SnippetLength int `json:"snippet_length"`

	// Vectorizer configures the TF-IDF fit.
	Vectorizer vectorspace.Options `json:"vectorizer"`

	// Cache configures the response cache.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig contains response cache parameters.
type CacheConfig struct {
	Enabled    bool `json:"enabled"`
	MaxEntries int  `json:"max_entries"`
}

// DefaultConfig returns the standard configuration: 5 results, a 0.1
// genre bonus, 100-character snippets, 5000 unigram and bigram features.
func DefaultConfig() *Config {
	return &Config{
		DefaultN:         5,
		GenreBonusWeight: 0.1,
		SnippetLength:    100,
		Vectorizer:       vectorspace.DefaultOptions(),
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultN < 1 {
		return fmt.Errorf("default_n must be positive, got %d", c.DefaultN)
	}
	if c.GenreBonusWeight < 0 {
		return fmt.Errorf("genre_bonus_weight must be non-negative, got %f", c.GenreBonusWeight)
	}
	if c.SnippetLength < 1 {
		return fmt.Errorf("snippet_length must be positive, got %d", c.SnippetLength)
	}
	if c.Vectorizer.MaxFeatures < 0 {
		return fmt.Errorf("vectorizer.max_features must be non-negative, got %d", c.Vectorizer.MaxFeatures)
	}
	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
