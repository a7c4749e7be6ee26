// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend ranks movies against a free-text description.
//
// # Scoring
//
// For a query q and every movie i in the loaded corpus:
//
//	base_i  = cosine(project(q), row_i)            in [0, 1]
//	bonus_i = |genres_i ∩ detected(q)| * w * base_i  (w = GenreBonusWeight, 0.1)
//	final_i = base_i + bonus_i
//
// The bonus scales the lexical similarity rather than adding a constant,
// so a movie with no textual overlap never rises on genre alone. Results
// are the N highest finals in descending order; exactly equal scores keep
// corpus order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err := engine.Load(ctx, catalog.CSVSource{Path: path}); err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Request{Query: "a scary haunted house", N: 5})
//
// # Thread Safety
//
// The corpus is immutable once loaded and swapped in atomically, so
// Recommend may run concurrently with itself and with Load. A failed Load
// keeps the previous corpus.
package recommend
