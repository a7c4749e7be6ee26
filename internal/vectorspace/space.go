// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package vectorspace fits a TF-IDF vector space over a document corpus
// and projects new text into it.
//
// Terms are lower-cased word tokens (two or more letters, digits or
// underscores) with English stop words removed, expanded to unigrams and
// bigrams. The vocabulary keeps the MaxFeatures most frequent terms across
// the corpus and assigns dimensions in alphabetical order. A document's
// weight for a term is its raw count times the smoothed inverse document
// frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every vector is L2-normalized, so cosine similarity reduces to a dot
// product over shared dimensions.
//
// A VectorSpace is immutable after Fit and safe for concurrent use.
package vectorspace

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyCorpus is returned by Fit when there are no documents.
	ErrEmptyCorpus = errors.New("vectorspace: empty corpus")

	// ErrEmptyVocabulary is returned by Fit when no document yields a term.
	ErrEmptyVocabulary = errors.New("vectorspace: empty vocabulary")
)

// StopWords selects a stop list.
const (
	StopWordsEnglish = "english"
	StopWordsNone    = "none"
)

// Options configures Fit.
type Options struct {
	MaxFeatures int    // 0 means unlimited
	MinNGram    int    // default 1
	MaxNGram    int    // default 2
	StopWords   string // english or none
}

// DefaultOptions returns 5000 features, unigrams and bigrams, English stop words.
func DefaultOptions() Options {
	return Options{
		MaxFeatures: 5000,
		MinNGram:    1,
		MaxNGram:    2,
		StopWords:   StopWordsEnglish,
	}
}

func (o Options) analyzer() (*Analyzer, error) {
	if o.MinNGram == 0 && o.MaxNGram == 0 {
		o.MinNGram, o.MaxNGram = 1, 2
	}
	if o.MinNGram < 1 || o.MaxNGram < o.MinNGram {
		return nil, fmt.Errorf("vectorspace: invalid n-gram range %d..%d", o.MinNGram, o.MaxNGram)
	}
	if o.MaxFeatures < 0 {
		return nil, fmt.Errorf("vectorspace: negative max features %d", o.MaxFeatures)
	}

	var stop map[string]struct{}
	switch o.StopWords {
	case StopWordsEnglish, "":
		stop = EnglishStopWords()
	case StopWordsNone:
	default:
		return nil, fmt.Errorf("vectorspace: unknown stop word list %q", o.StopWords)
	}
	return NewAnalyzer(stop, o.MinNGram, o.MaxNGram), nil
}

// VectorSpace is a fitted TF-IDF model plus the vectors of the corpus it
// was fitted on. Row i belongs to document i.
type VectorSpace struct {
	analyzer *Analyzer
	terms    []string
	index    map[string]int
	idf      []float64
	rows     []Vector
}

// Fit learns the vocabulary and IDF weights from docs and vectorizes them.
// On error no VectorSpace is returned.
func Fit(docs []string, opts Options) (*VectorSpace, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	analyzer, err := opts.analyzer()
	if err != nil {
		return nil, err
	}

	docCounts := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	df := make(map[string]int)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, term := range analyzer.Analyze(doc) {
			counts[term]++
		}
		for term, c := range counts {
			totals[term] += c
			df[term]++
		}
		docCounts[i] = counts
	}
	if len(totals) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := selectTerms(totals, opts.MaxFeatures)

	vs := &VectorSpace{
		analyzer: analyzer,
		terms:    terms,
		index:    make(map[string]int, len(terms)),
		idf:      make([]float64, len(terms)),
		rows:     make([]Vector, len(docs)),
	}
	n := float64(len(docs))
	for dim, term := range terms {
		vs.index[term] = dim
		vs.idf[dim] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	for i, counts := range docCounts {
		vs.rows[i] = vs.weigh(counts)
	}
	return vs, nil
}

// selectTerms keeps the maxFeatures most frequent terms (ties by term) and
// returns them in alphabetical order.
func selectTerms(totals map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			ci, cj := totals[terms[i]], totals[terms[j]]
			if ci != cj {
				return ci > cj
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}

	sort.Strings(terms)
	return terms
}

// weigh converts term counts to a normalized TF-IDF vector, ignoring terms
// outside the vocabulary.
func (vs *VectorSpace) weigh(counts map[string]int) Vector {
	weights := make(map[int]float64, len(counts))
	for term, c := range counts {
		if dim, ok := vs.index[term]; ok {
			weights[dim] = float64(c) * vs.idf[dim]
		}
	}
	return newVector(weights).normalize()
}

// Project maps text into the fitted space without refitting. Terms outside
// the vocabulary are ignored; text with no known term yields nil.
func (vs *VectorSpace) Project(text string) Vector {
	counts := make(map[string]int)
	for _, term := range vs.analyzer.Analyze(text) {
		counts[term]++
	}
	return vs.weigh(counts)
}

// Similarities returns the cosine similarity of q with every row, each in
// [0, 1]. It panics if q was not produced by this space.
func (vs *VectorSpace) Similarities(q Vector) []float64 {
	if len(q) > 0 && q[len(q)-1].Dim >= len(vs.terms) {
		panic(fmt.Sprintf("vectorspace: query dimension %d outside vocabulary of %d",
			q[len(q)-1].Dim, len(vs.terms)))
	}
	out := make([]float64, len(vs.rows))
	for i, row := range vs.rows {
		out[i] = clamp01(CosineSimilarity(q, row))
	}
	return out
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// Row returns the vector of document i.
func (vs *VectorSpace) Row(i int) Vector { return vs.rows[i] }

// Rows returns the number of documents.
func (vs *VectorSpace) Rows() int { return len(vs.rows) }

// VocabularySize returns the number of dimensions.
func (vs *VectorSpace) VocabularySize() int { return len(vs.terms) }

// Term returns the term of a dimension.
func (vs *VectorSpace) Term(dim int) string { return vs.terms[dim] }

// Dimension returns the dimension of term, if it is in the vocabulary.
func (vs *VectorSpace) Dimension(term string) (int, bool) {
	dim, ok := vs.index[term]
	return dim, ok
}

// IDF returns the inverse document frequency weight of a dimension.
func (vs *VectorSpace) IDF(dim int) float64 { return vs.idf[dim] }
