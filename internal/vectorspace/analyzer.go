// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package vectorspace

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Analyzer turns text into the terms counted by a VectorSpace: lower-case
// tokens with stop words removed, expanded to word n-grams.
type Analyzer struct {
	stopWords map[string]struct{}
	minN      int
	maxN      int
}

// NewAnalyzer returns an analyzer for the n-gram range [minN, maxN].
// A nil stopWords set disables stop-word removal.
func NewAnalyzer(stopWords map[string]struct{}, minN, maxN int) *Analyzer {
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}
	return &Analyzer{stopWords: stopWords, minN: minN, maxN: maxN}
}

// Tokenize lower-cases text and returns its tokens with stop words removed.
func (a *Analyzer) Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(a.stopWords) == 0 {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := a.stopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Analyze returns every n-gram term of text. N-grams are built over the
// stop-word-filtered token stream and joined with a single space.
func (a *Analyzer) Analyze(text string) []string {
	tokens := a.Tokenize(text)
	if a.minN == 1 && a.maxN == 1 {
		return tokens
	}

	terms := make([]string, 0, len(tokens)*(a.maxN-a.minN+1))
	for n := a.minN; n <= a.maxN; n++ {
		if n == 1 {
			terms = append(terms, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
