// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package genre detects genre names mentioned in free text.
//
// Detection is deliberately simple: a fixed, ordered vocabulary of genre
// labels is matched by case-insensitive substring containment. Hyphenated
// labels also match their space-separated spelling, so "sci fi" is
// reported as "sci-fi". There is no stemming and no fuzzy matching.
package genre

import "strings"

// Vocabulary is the fixed, ordered list of genre labels recognized in
// queries. Extract reports matches in this order.
var Vocabulary = []string{
	"action",
	"adventure",
	"animation",
	"comedy",
	"crime",
	"documentary",
	"drama",
	"family",
	"fantasy",
	"horror",
	"mystery",
	"romance",
	"sci-fi",
	"thriller",
	"western",
}

// Extractor finds vocabulary genres in text. It is safe for concurrent use.
type Extractor struct {
	vocabulary []string
	matcher    *matcher
}

// NewExtractor builds an extractor over Vocabulary.
func NewExtractor() *Extractor {
	return NewExtractorWithVocabulary(Vocabulary)
}

// NewExtractorWithVocabulary builds an extractor over a custom ordered
// vocabulary. Labels are lower-cased.
func NewExtractorWithVocabulary(vocabulary []string) *Extractor {
	labels := make([]string, 0, len(vocabulary))
	patterns := make([]pattern, 0, len(vocabulary)*2)

	for _, label := range vocabulary {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		idx := len(labels)
		labels = append(labels, label)
		patterns = append(patterns, pattern{text: label, label: idx})

		if spaced := strings.ReplaceAll(label, "-", " "); spaced != label {
			patterns = append(patterns, pattern{text: spaced, label: idx})
		}
	}

	return &Extractor{vocabulary: labels, matcher: newMatcher(patterns)}
}

// Extract returns the vocabulary genres contained in text, in vocabulary
// order and without duplicates. It returns an empty, non-nil slice when
// nothing matches.
func (e *Extractor) Extract(text string) []string {
	found := e.matcher.labels(text)

	genres := make([]string, 0, len(found))
	for idx, label := range e.vocabulary {
		if _, ok := found[idx]; ok {
			genres = append(genres, label)
		}
	}
	return genres
}

// Vocabulary returns a copy of the labels this extractor recognizes.
func (e *Extractor) Vocabulary() []string {
	out := make([]string, len(e.vocabulary))
	copy(out, e.vocabulary)
	return out
}

// Overlap counts the genres present in both lists. Lists are treated as
// sets; duplicates in either are counted once.
func Overlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, g := range b {
		set[g] = struct{}{}
	}
	n := 0
	for _, g := range a {
		if _, ok := set[g]; ok {
			n++
			delete(set, g)
		}
	}
	return n
}
