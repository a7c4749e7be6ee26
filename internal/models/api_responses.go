// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package models defines the JSON envelope shared by every HTTP endpoint.
package models

import (
	"time"
)

// APIResponse wraps every API payload.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "detected_genres": ["horror"]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 3, "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the machine-readable error body.
//
// Codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - INVALID_JSON: request body could not be decoded
//   - CORPUS_NOT_LOADED: no corpus is available to rank against
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeCorpusNotLoaded   = "CORPUS_NOT_LOADED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status       string    `json:"status"`
	CorpusLoaded bool      `json:"corpus_loaded"`
	Movies       int       `json:"movies"`
	Uptime       float64   `json:"uptime_seconds"`
	LoadedAt     time.Time `json:"loaded_at,omitempty"`
}

// GenreDetection is the payload of the genre detection endpoint.
type GenreDetection struct {
	Query      string   `json:"query"`
	Genres     []string `json:"genres"`
	Vocabulary []string `json:"vocabulary"`
}
