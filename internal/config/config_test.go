// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Corpus.Path != "tmdb_5000_movies.csv" {
		t.Errorf("Corpus.Path = %q", cfg.Corpus.Path)
	}
	if cfg.Recommend.DefaultN != 5 {
		t.Errorf("Recommend.DefaultN = %d, want 5", cfg.Recommend.DefaultN)
	}
	if cfg.Recommend.GenreBonusWeight != 0.1 {
		t.Errorf("Recommend.GenreBonusWeight = %v, want 0.1", cfg.Recommend.GenreBonusWeight)
	}
	if cfg.Vectorizer.MaxFeatures != 5000 {
		t.Errorf("Vectorizer.MaxFeatures = %d, want 5000", cfg.Vectorizer.MaxFeatures)
	}
	if cfg.Vectorizer.MinNGram != 1 || cfg.Vectorizer.MaxNGram != 2 {
		t.Errorf("ngram range = %d..%d, want 1..2", cfg.Vectorizer.MinNGram, cfg.Vectorizer.MaxNGram)
	}
	if cfg.Server.Enabled {
		t.Error("Server.Enabled should default to false")
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v", cfg.Server.Timeout)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CORPUS_PATH", "/data/movies.csv")
	t.Setenv("RECOMMEND_DEFAULT_N", "10")
	t.Setenv("VECTORIZER_MAX_FEATURES", "200")
	t.Setenv("SERVER_ENABLED", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Corpus.Path != "/data/movies.csv" {
		t.Errorf("Corpus.Path = %q", cfg.Corpus.Path)
	}
	if cfg.Recommend.DefaultN != 10 {
		t.Errorf("Recommend.DefaultN = %d, want 10", cfg.Recommend.DefaultN)
	}
	if cfg.Vectorizer.MaxFeatures != 200 {
		t.Errorf("Vectorizer.MaxFeatures = %d, want 200", cfg.Vectorizer.MaxFeatures)
	}
	if !cfg.Server.Enabled || cfg.Server.Port != 9090 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("Server.Timeout = %v, want 5s", cfg.Server.Timeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
corpus:
  path: /srv/movies.csv
recommend:
  default_n: 3
  cache:
    enabled: false
server:
  cors_origins:
    - https://ui.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Environment beats the file.
	t.Setenv("RECOMMEND_DEFAULT_N", "4")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Corpus.Path != "/srv/movies.csv" {
		t.Errorf("Corpus.Path = %q", cfg.Corpus.Path)
	}
	if cfg.Recommend.DefaultN != 4 {
		t.Errorf("Recommend.DefaultN = %d, want 4", cfg.Recommend.DefaultN)
	}
	if cfg.Recommend.Cache.Enabled {
		t.Error("Recommend.Cache.Enabled should be false from file")
	}
	if cfg.Recommend.Cache.MaxEntries != 1024 {
		t.Errorf("untouched default lost: MaxEntries = %d", cfg.Recommend.Cache.MaxEntries)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"https://ui.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestFindConfigFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty corpus path", func(c *Config) { c.Corpus.Path = "" }, "corpus.path"},
		{"zero default n", func(c *Config) { c.Recommend.DefaultN = 0 }, "recommend.default_n"},
		{"negative bonus", func(c *Config) { c.Recommend.GenreBonusWeight = -1 }, "recommend.genre_bonus_weight"},
		{"bad stop words", func(c *Config) { c.Vectorizer.StopWords = "french" }, "vectorizer.stop_words"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"default above max", func(c *Config) { c.Recommend.DefaultN = 200 }, "must not exceed recommend.max_n"},
		{"inverted ngram range", func(c *Config) { c.Vectorizer.MinNGram = 3 }, "must not exceed vectorizer.max_ngram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"CORPUS_PATH":        "corpus.path",
		"HTTP_PORT":          "server.port",
		"DISABLE_RATE_LIMIT": "server.rate_limit_disabled",
		"log_level":          "logging.level",
		"PATH":               "",
		"HOME":               "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
