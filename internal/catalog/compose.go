// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"strings"

	"github.com/goccy/go-json"
)

// Compose builds the MovieRecord for one raw row. It never fails: a
// missing or malformed genre/keyword field becomes an empty list.
func Compose(id int, raw RawMovie) MovieRecord {
	rec, _ := compose(id, raw)
	return rec
}

// ComposeAll composes every row, assigning IDs by position.
func ComposeAll(rows []RawMovie) ([]MovieRecord, ComposeStats) {
	records := make([]MovieRecord, len(rows))
	stats := ComposeStats{Movies: len(rows)}
	for i, raw := range rows {
		var malformed int
		records[i], malformed = compose(i, raw)
		stats.MalformedFields += malformed
	}
	return records, stats
}

func compose(id int, raw RawMovie) (MovieRecord, int) {
	malformed := 0

	genres, ok := ParseNames(raw.Genres)
	if !ok {
		malformed++
	}
	keywords, ok := ParseNames(raw.Keywords)
	if !ok {
		malformed++
	}

	return MovieRecord{
		ID:           id,
		Title:        raw.Title,
		Overview:     raw.Overview,
		Genres:       genres,
		Keywords:     keywords,
		CombinedText: CombineText(raw.Overview, genres, keywords),
	}, malformed
}

// CombineText joins overview, genres and keywords with single spaces
// between the three parts. Empty parts still contribute their separator.
func CombineText(overview string, genres, keywords []string) string {
	var b strings.Builder
	b.WriteString(overview)
	b.WriteByte(' ')
	b.WriteString(strings.Join(genres, " "))
	b.WriteByte(' ')
	b.WriteString(strings.Join(keywords, " "))
	return b.String()
}

type namedEntry struct {
	Name *string `json:"name"`
}

// ParseNames extracts the lower-cased "name" of every object in a JSON
// array. Blank input is a valid empty list. The second result is false
// when the text is not a JSON array or any entry is not an object with a
// string name; the names list is then empty.
func ParseNames(field string) ([]string, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return []string{}, true
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(field), &raw); err != nil {
		return []string{}, false
	}

	names := make([]string, 0, len(raw))
	for _, item := range raw {
		var entry namedEntry
		if err := json.Unmarshal(item, &entry); err != nil || entry.Name == nil {
			return []string{}, false
		}
		names = append(names, strings.ToLower(*entry.Name))
	}
	return names, true
}
