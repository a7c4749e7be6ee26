// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package console runs the interactive recommendation prompt.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Prompt is printed before every query.
const Prompt = "What kind of movie are you looking for? (type 'quit' to exit): "

// QuitCommand ends the loop; compared case-insensitively.
const QuitCommand = "quit"

const rule = "-----------------------------"

// Recommender is the engine surface the console needs.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

type line struct {
	text string
	err  error
	eof  bool
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. It stops once done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan line {
	lines := make(chan line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), 1<<20)
		for scanner.Scan() {
			select {
			case lines <- line{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		select {
		case lines <- line{err: scanner.Err(), eof: true}:
		case <-done:
		}
	}()
	return lines
}

// Run reads one description per line from in and writes ranked results to
// out until the quit command, end of input, or ctx cancellation. n is the
// number of results per query; zero uses the engine default.
func Run(ctx context.Context, in io.Reader, out io.Writer, engine Recommender, n int) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, "\n"+Prompt); err != nil {
			return err
		}

		var next line
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case next = <-lines:
		}
		if next.eof {
			if next.err != nil {
				return fmt.Errorf("read query: %w", next.err)
			}
			fmt.Fprintln(out)
			return nil
		}

		query := strings.TrimRight(next.text, "\r")
		if strings.EqualFold(strings.TrimSpace(query), QuitCommand) {
			return nil
		}

		resp, err := engine.Recommend(ctx, recommend.Request{Query: query, N: n})
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		logging.Debug().
			Str("request_id", resp.Metadata.RequestID).
			Int("results", len(resp.Recommendations)).
			Bool("cache_hit", resp.Metadata.CacheHit).
			Msg("console query answered")

		if err := Render(out, resp); err != nil {
			return err
		}
	}
}

// Render writes the detected genres and the ranked list.
func Render(out io.Writer, resp *recommend.Response) error {
	w := bufio.NewWriter(out)

	detected := "None"
	if len(resp.DetectedGenres) > 0 {
		detected = strings.Join(resp.DetectedGenres, ", ")
	}
	fmt.Fprintf(w, "\nDetected genres from your description: %s\n", detected)
	fmt.Fprintf(w, "\nTop Recommendations for You:\n%s\n", rule)

	for _, rec := range resp.Recommendations {
		fmt.Fprintf(w, "\n%d. %s\n", rec.Rank, rec.Title)
		fmt.Fprintf(w, "   Match Score: %.3f\n", rec.Score)
	}
	return w.Flush()
}
