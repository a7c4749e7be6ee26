// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog turns raw movie metadata rows into MovieRecords.
//
// A corpus is read by a Source (CSVSource for the TMDB export), and each
// raw row is passed through Compose, which parses the structured genre and
// keyword fields and builds the combined text used for vectorization.
// Malformed structured fields never fail a load: they are recovered as
// empty lists and counted in ComposeStats.
package catalog

import "context"

// RawMovie is one unprocessed corpus row. Genres and Keywords hold the
// JSON text of an array of {"id":..,"name":..} objects. Empty cells are
// allowed in every field.
type RawMovie struct {
	Title    string
	Overview string
	Genres   string
	Keywords string
}

// MovieRecord is a composed corpus entry. ID is the 0-based position in
// the corpus and stays stable for the lifetime of the loaded corpus.
type MovieRecord struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	Genres       []string `json:"genres"`
	Keywords     []string `json:"keywords"`
	CombinedText string   `json:"-"`
}

// ComposeStats summarizes a ComposeAll run.
type ComposeStats struct {
	Movies          int `json:"movies"`
	MalformedFields int `json:"malformed_fields"`
}

// Source yields the raw rows of a corpus.
type Source interface {
	Load(ctx context.Context) ([]RawMovie, error)
}

// StaticSource serves rows already held in memory.
type StaticSource []RawMovie

// Load returns a copy of the rows.
func (s StaticSource) Load(ctx context.Context) ([]RawMovie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]RawMovie, len(s))
	copy(out, s)
	return out, nil
}
