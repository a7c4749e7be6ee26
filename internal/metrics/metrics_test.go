// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

func TestRecordCorpusLoad(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"missing file", &catalog.LoadError{Path: "x.csv", Err: fmt.Errorf("%w: open", catalog.ErrCorpusNotFound)}, "not_found"},
		{"other failure", errors.New("bad header"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(CorpusLoads.WithLabelValues(tt.result))
			RecordCorpusLoad(10*time.Millisecond, 42, 900, tt.err)
			after := testutil.ToFloat64(CorpusLoads.WithLabelValues(tt.result))

			if after != before+1 {
				t.Errorf("loads{result=%q} = %v, want %v", tt.result, after, before+1)
			}
		})
	}

	if got := testutil.ToFloat64(CorpusMovies); got != 42 {
		t.Errorf("CorpusMovies = %v, want 42", got)
	}
	if got := testutil.ToFloat64(CorpusVocabularySize); got != 900 {
		t.Errorf("CorpusVocabularySize = %v, want 900", got)
	}
}

func TestRecordMalformedFields(t *testing.T) {
	before := testutil.ToFloat64(MalformedFields)
	RecordMalformedFields(3)
	RecordMalformedFields(0)
	RecordMalformedFields(-1)
	if got := testutil.ToFloat64(MalformedFields); got != before+3 {
		t.Errorf("MalformedFields = %v, want %v", got, before+3)
	}
}

func TestRecordRecommendation(t *testing.T) {
	success := RecommendationRequests.WithLabelValues("success")
	failure := RecommendationRequests.WithLabelValues("error")
	horror := DetectedGenres.WithLabelValues("horror")

	s0, f0, h0 := testutil.ToFloat64(success), testutil.ToFloat64(failure), testutil.ToFloat64(horror)

	RecordRecommendation(time.Millisecond, []string{"horror", "comedy"}, nil)
	RecordRecommendation(time.Millisecond, []string{"horror"}, errors.New("no corpus"))

	if got := testutil.ToFloat64(success); got != s0+1 {
		t.Errorf("success = %v, want %v", got, s0+1)
	}
	if got := testutil.ToFloat64(failure); got != f0+1 {
		t.Errorf("error = %v, want %v", got, f0+1)
	}
	if got := testutil.ToFloat64(horror); got != h0+1 {
		t.Errorf("detected horror = %v, want %v (failed requests not counted)", got, h0+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	h0, m0 := testutil.ToFloat64(CacheHits), testutil.ToFloat64(CacheMisses)
	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)
	if got := testutil.ToFloat64(CacheHits); got != h0+1 {
		t.Errorf("CacheHits = %v", got)
	}
	if got := testutil.ToFloat64(CacheMisses); got != m0+2 {
		t.Errorf("CacheMisses = %v", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/genres", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/genres", "200", 5*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	c := APIRateLimitHits.WithLabelValues("/api/v1/recommendations")
	before := testutil.ToFloat64(c)
	RecordRateLimitHit("/api/v1/recommendations")
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("APIRateLimitHits = %v", got)
	}
}

func TestMetricGathering(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
