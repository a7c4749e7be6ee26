// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// scoreMovie applies the genre bonus to a base similarity.
func scoreMovie(index int, base float64, movieGenres, detected []string, weight float64) ScoredMovie {
	matched := matchGenres(movieGenres, detected)
	bonus := float64(len(matched)) * weight * base
	return ScoredMovie{
		Index:         index,
		BaseScore:     base,
		GenreBonus:    bonus,
		FinalScore:    base + bonus,
		MatchedGenres: matched,
	}
}

// matchGenres returns the distinct detected genres present in movieGenres,
// in detected order.
func matchGenres(movieGenres, detected []string) []string {
	if len(detected) == 0 || len(movieGenres) == 0 {
		return []string{}
	}
	have := make(map[string]struct{}, len(movieGenres))
	for _, g := range movieGenres {
		have[g] = struct{}{}
	}
	matched := make([]string, 0, len(detected))
	for _, g := range detected {
		if _, ok := have[g]; ok {
			matched = append(matched, g)
			delete(have, g)
		}
	}
	return matched
}

// topN returns the n highest final scores in descending order. Movies with
// exactly equal scores keep their relative input order.
func topN(scored []ScoredMovie, n int) []ScoredMovie {
	ranked := make([]ScoredMovie, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Snippet returns the first limit characters of text, with "..." appended
// only when something was cut.
func Snippet(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

// JoinGenres renders a genre list for display.
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
