// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/vectorspace"
)

// ErrNoCorpus is returned when a query arrives before any corpus loaded.
var ErrNoCorpus = errors.New("no corpus loaded")

// cacheKey includes the corpus so a response computed against a replaced
// corpus can never be served after a reload.
type cacheKey struct {
	corpus *Corpus
	query  string
	n      int
}

// Engine ranks the movies of the current corpus against queries.
// It is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	extractor *genre.Extractor

	corpus atomic.Pointer[Corpus]
	loadMu sync.Mutex

	cache *lru.Cache[cacheKey, *Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// NewEngine creates an engine with no corpus. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:    cfg.Clone(),
		logger:    logger.With().Str("component", "recommend").Logger(),
		extractor: genre.NewExtractor(),
	}

	if cfg.Cache.Enabled {
		cache, err := lru.New[cacheKey, *Response](cfg.Cache.MaxEntries)
		if err != nil {
			return nil, fmt.Errorf("create response cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// Load reads rows from source, composes and vectorizes them, and swaps
// the result in. On error the previous corpus stays active.
func (e *Engine) Load(ctx context.Context, source catalog.Source) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	start := time.Now()
	rows, err := source.Load(ctx)
	if err != nil {
		metrics.RecordCorpusLoad(time.Since(start), 0, 0, err)
		logger := e.loadLogger(ctx)
		logger.Error().Err(err).Msg("corpus load failed")
		return fmt.Errorf("load corpus: %w", err)
	}
	return e.install(ctx, rows, start)
}

// LoadMovies is Load for rows already in memory.
func (e *Engine) LoadMovies(ctx context.Context, rows []catalog.RawMovie) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	return e.install(ctx, rows, time.Now())
}

// loadLogger tags load logs with the caller's correlation ID so a reload
// can be followed across the supervisor and the engine.
func (e *Engine) loadLogger(ctx context.Context) zerolog.Logger {
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		return e.logger.With().Str("correlation_id", id).Logger()
	}
	return e.logger
}

func (e *Engine) install(ctx context.Context, rows []catalog.RawMovie, start time.Time) error {
	logger := e.loadLogger(ctx)
	corpus, err := e.build(ctx, rows)
	if err != nil {
		metrics.RecordCorpusLoad(time.Since(start), 0, 0, err)
		logger.Error().Err(err).Int("rows", len(rows)).Msg("corpus build failed")
		return err
	}

	e.corpus.Store(corpus)
	if e.cache != nil {
		e.cache.Purge()
	}

	duration := time.Since(start)
	metrics.RecordCorpusLoad(duration, len(corpus.Movies), corpus.Space.VocabularySize(), nil)
	metrics.RecordMalformedFields(corpus.Compose.MalformedFields)

	logger.Info().
		Int("movies", len(corpus.Movies)).
		Int("vocabulary", corpus.Space.VocabularySize()).
		Int("malformed_fields", corpus.Compose.MalformedFields).
		Dur("duration", duration).
		Msg("corpus loaded")
	return nil
}

func (e *Engine) build(ctx context.Context, rows []catalog.RawMovie) (*Corpus, error) {
	movies, stats := catalog.ComposeAll(rows)
	if stats.MalformedFields > 0 {
		e.logger.Debug().Int("malformed_fields", stats.MalformedFields).Msg("recovered malformed genre/keyword fields as empty")
	}

	docs := make([]string, len(movies))
	for i := range movies {
		docs[i] = movies[i].CombinedText
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	space, err := vectorspace.Fit(docs, e.config.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("fit vector space: %w", err)
	}

	return &Corpus{
		Movies:   movies,
		Space:    space,
		Compose:  stats,
		LoadedAt: time.Now(),
	}, nil
}

// Corpus returns the active corpus, or nil.
func (e *Engine) Corpus() *Corpus {
	return e.corpus.Load()
}

// DetectGenres returns the vocabulary genres mentioned in text.
func (e *Engine) DetectGenres(text string) []string {
	return e.extractor.Extract(text)
}

// Score computes the score breakdown of every corpus movie, in corpus
// order, together with the genres detected in query.
func (e *Engine) Score(query string) ([]ScoredMovie, []string, error) {
	corpus := e.corpus.Load()
	if corpus == nil {
		return nil, nil, ErrNoCorpus
	}
	scored, detected := e.score(corpus, query)
	return scored, detected, nil
}

func (e *Engine) score(corpus *Corpus, query string) ([]ScoredMovie, []string) {
	detected := e.extractor.Extract(query)
	base := corpus.Space.Similarities(corpus.Space.Project(query))

	scored := make([]ScoredMovie, len(corpus.Movies))
	for i := range corpus.Movies {
		scored[i] = scoreMovie(i, base[i], corpus.Movies[i].Genres, detected, e.config.GenreBonusWeight)
	}
	return scored, detected
}

// Recommend returns the top movies for a description.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if err := ctx.Err(); err != nil {
		metrics.RecordRecommendation(time.Since(start), nil, err)
		return nil, err
	}

	corpus := e.corpus.Load()
	if corpus == nil {
		metrics.RecordRecommendation(time.Since(start), nil, ErrNoCorpus)
		return nil, ErrNoCorpus
	}

	if resp := e.tryGetCachedResponse(corpus, req, start, logger); resp != nil {
		metrics.RecordRecommendation(time.Since(start), resp.DetectedGenres, nil)
		return resp, nil
	}

	scored, detected := e.score(corpus, req.Query)
	ranked := topN(scored, req.N)

	resp := &Response{
		Recommendations: e.buildRecommendations(corpus, ranked),
		DetectedGenres:  detected,
		TotalCandidates: len(corpus.Movies),
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			RequestedN:     req.N,
			LatencyMS:      time.Since(start).Milliseconds(),
			CorpusLoadedAt: corpus.LoadedAt,
			Timestamp:      time.Now(),
		},
	}
	e.cacheResponse(corpus, req, resp)
	metrics.RecordRecommendation(time.Since(start), detected, nil)

	logger.Debug().
		Strs("detected_genres", detected).
		Int("returned", len(resp.Recommendations)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	if req.N <= 0 {
		req.N = e.config.DefaultN
	}
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("n", req.N).
		Logger()
}

// tryGetCachedResponse returns a copy of a cached response marked as a hit.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(corpus *Corpus, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(cacheKey{corpus: corpus, query: req.Query, n: req.N})
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := *cached
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	logger.Debug().Msg("cache hit")
	return &resp
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(corpus *Corpus, req Request, resp *Response) {
	if e.cache != nil {
		e.cache.Add(cacheKey{corpus: corpus, query: req.Query, n: req.N}, resp)
	}
}

func (e *Engine) buildRecommendations(corpus *Corpus, ranked []ScoredMovie) []Recommendation {
	recs := make([]Recommendation, len(ranked))
	for i, s := range ranked {
		movie := &corpus.Movies[s.Index]
		recs[i] = Recommendation{
			Rank:          i + 1,
			ID:            movie.ID,
			Title:         movie.Title,
			Genres:        JoinGenres(movie.Genres),
			Score:         s.FinalScore,
			BaseScore:     s.BaseScore,
			GenreBonus:    s.GenreBonus,
			MatchedGenres: s.MatchedGenres,
			Overview:      Snippet(movie.Overview, e.config.SnippetLength),
		}
	}
	return recs
}

// Stats returns a snapshot of the engine state.
func (e *Engine) Stats() Stats {
	stats := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
	if e.cache != nil {
		stats.CacheEntries = e.cache.Len()
	}
	if corpus := e.corpus.Load(); corpus != nil {
		stats.Loaded = true
		stats.Movies = len(corpus.Movies)
		stats.VocabularySize = corpus.Space.VocabularySize()
		stats.MalformedFields = corpus.Compose.MalformedFields
		stats.LoadedAt = corpus.LoadedAt
	}
	return stats
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
