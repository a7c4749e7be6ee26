// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Column names read from the corpus header.
const (
	ColumnTitle    = "original_title"
	ColumnOverview = "overview"
	ColumnGenres   = "genres"
	ColumnKeywords = "keywords"
)

// ErrCorpusNotFound is matched by errors.Is when the corpus file is missing.
var ErrCorpusNotFound = errors.New("corpus file not found")

// LoadError reports a corpus that could not be read. It is fatal at startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load corpus %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CSVSource reads a TMDB-style CSV export. Columns are located by header
// name; other columns are ignored.
type CSVSource struct {
	Path string
}

// Load reads every data row. Short rows are padded with empty cells.
func (s CSVSource) Load(ctx context.Context) ([]RawMovie, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrCorpusNotFound, err)
		}
		return nil, &LoadError{Path: s.Path, Err: err}
	}
	defer f.Close()

	rows, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, &LoadError{Path: s.Path, Err: err}
	}
	return rows, nil
}

// ReadCSV parses corpus rows from r.
func ReadCSV(ctx context.Context, r io.Reader) ([]RawMovie, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []RawMovie
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		rows = append(rows, RawMovie{
			Title:    cell(rec, cols.title),
			Overview: cell(rec, cols.overview),
			Genres:   cell(rec, cols.genres),
			Keywords: cell(rec, cols.keywords),
		})
	}
	return rows, nil
}

type columnIndex struct {
	title, overview, genres, keywords int
}

func locateColumns(header []string) (columnIndex, error) {
	idx := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	get := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols := columnIndex{
		title:    get(ColumnTitle),
		overview: get(ColumnOverview),
		genres:   get(ColumnGenres),
		keywords: get(ColumnKeywords),
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
