// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package vectorspace

import (
	"math"
	"sort"
)

// Entry is one non-zero dimension of a sparse vector.
type Entry struct {
	Dim    int
	Weight float64
}

// Vector is a sparse vector sorted by Dim. The nil Vector is the zero vector.
type Vector []Entry

// newVector builds a sorted Vector from dimension weights, dropping zeros.
func newVector(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return nil
	}
	v := make(Vector, 0, len(weights))
	for dim, w := range weights {
		if w != 0 {
			v = append(v, Entry{Dim: dim, Weight: w})
		}
	}
	if len(v) == 0 {
		return nil
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Dim < v[j].Dim })
	return v
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// normalize scales v in place to unit length. The zero vector becomes nil.
func (v Vector) normalize() Vector {
	norm := v.Norm()
	if norm == 0 {
		return nil
	}
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}

// CosineSimilarity computes the cosine between two sorted sparse vectors
// with a merge-join. It returns 0 when either vector has zero norm.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i].Dim == b[j].Dim:
			dot += a[i].Weight * b[j].Weight
			normA += a[i].Weight * a[i].Weight
			normB += b[j].Weight * b[j].Weight
			i++
			j++
		case a[i].Dim < b[j].Dim:
			normA += a[i].Weight * a[i].Weight
			i++
		default:
			normB += b[j].Weight * b[j].Weight
			j++
		}
	}
	for ; i < len(a); i++ {
		normA += a[i].Weight * a[i].Weight
	}
	for ; j < len(b); j++ {
		normB += b[j].Weight * b[j].Weight
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
