// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"strings"
	"testing"
)

type queryRequest struct {
	Query string `json:"query" validate:"max=10"`
	N     int    `json:"n" validate:"gte=0,lte=100"`
	Mode  string `json:"mode" validate:"omitempty,oneof=json console"`
}

type nestedConfig struct {
	Inner struct {
		Size int `koanf:"size" validate:"min=1"`
	} `koanf:"inner"`
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&queryRequest{Query: "heist", N: 5}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStruct_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       queryRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "query too long",
			req:       queryRequest{Query: "a very long query"},
			wantField: "query",
			wantTag:   "max",
			wantMsg:   "query must be at most 10 characters",
		},
		{
			name:      "n above limit",
			req:       queryRequest{N: 101},
			wantField: "n",
			wantTag:   "lte",
			wantMsg:   "n must be less than or equal to 100",
		},
		{
			name:      "n negative",
			req:       queryRequest{N: -1},
			wantField: "n",
			wantTag:   "gte",
			wantMsg:   "n must be greater than or equal to 0",
		},
		{
			name:      "bad mode",
			req:       queryRequest{Mode: "xml"},
			wantField: "mode",
			wantTag:   "oneof",
			wantMsg:   "mode must be one of: json console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(err.Errors()), err)
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", fe.Tag(), tt.wantTag)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Error(), tt.wantMsg)
			}

			apiErr := err.ToAPIError()
			if apiErr.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q", apiErr.Code)
			}
			if apiErr.Details["field"] != tt.wantField {
				t.Errorf("details field = %v", apiErr.Details["field"])
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&queryRequest{Query: "far too long a query", N: 500})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field entries, got %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "query") || !strings.Contains(apiErr.Message, "n must be") {
		t.Errorf("unexpected message: %s", apiErr.Message)
	}
}

func TestValidateStruct_KoanfPath(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&nestedConfig{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Errors()[0].Field(); got != "inner.size" {
		t.Errorf("field = %q, want inner.size", got)
	}
}
