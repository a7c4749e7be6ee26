// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/vectorspace"
)

// buildEngineConfig maps application config onto the engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultN:         cfg.Recommend.DefaultN,
		GenreBonusWeight: cfg.Recommend.GenreBonusWeight,
		SnippetLength:    cfg.Recommend.SnippetLength,
		Vectorizer: vectorspace.Options{
			MaxFeatures: cfg.Vectorizer.MaxFeatures,
			MinNGram:    cfg.Vectorizer.MinNGram,
			MaxNGram:    cfg.Vectorizer.MaxNGram,
			StopWords:   cfg.Vectorizer.StopWords,
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Recommend.Cache.Enabled,
			MaxEntries: cfg.Recommend.Cache.MaxEntries,
		},
	}
}
