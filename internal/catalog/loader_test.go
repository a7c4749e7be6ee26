// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `budget,genres,id,keywords,original_title,overview
237000000,"[{""id"": 28, ""name"": ""Action""}]",19995,"[{""id"": 1463, ""name"": ""culture clash""}]",Avatar,"In the 22nd century, a marine is dispatched."
0,[],1,[],Quiet,
5,"[{""id"": 10749, ""name"": ""Romance""}]",2
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	if rows[0].Title != "Avatar" || rows[0].Overview != "In the 22nd century, a marine is dispatched." {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].Genres != `[{"id": 28, "name": "Action"}]` {
		t.Errorf("rows[0].Genres = %q", rows[0].Genres)
	}
	if rows[1].Overview != "" || rows[1].Keywords != "[]" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	// Short row is padded.
	if rows[2].Title != "" || rows[2].Keywords != "" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(context.Background(), strings.NewReader("original_title,overview\nA,b\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "genres") || !strings.Contains(err.Error(), "keywords") {
		t.Errorf("error should name missing columns: %v", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	if _, err := ReadCSV(context.Background(), strings.NewReader("")); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestReadCSVCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(sampleCSV))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadCSV() error = %v, want context.Canceled", err)
	}
}

func TestCSVSourceLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := CSVSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d", len(rows))
	}
}

func TestCSVSourceNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.csv")
	_, err := CSVSource{Path: path}.Load(context.Background())

	if !errors.Is(err, ErrCorpusNotFound) {
		t.Errorf("errors.Is(err, ErrCorpusNotFound) = false for %v", err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != path {
		t.Errorf("LoadError.Path = %q", loadErr.Path)
	}
}

func TestCSVSourceBadHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("title\nx\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := CSVSource{Path: path}.Load(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if errors.Is(err, ErrCorpusNotFound) {
		t.Error("bad header must not be reported as not found")
	}
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := StaticSource{{Title: "A"}, {Title: "B"}}
	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	rows[0].Title = "changed"
	if src[0].Title != "A" {
		t.Error("Load must return a copy")
	}
}
