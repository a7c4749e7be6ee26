// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*CorpusService)(nil)
)

type mockHTTPServer struct {
	listenErr     error
	shutdownErr   error
	shutdownCount atomic.Int32
	closeCount    atomic.Int32
	started       chan struct{}
	stopCh        chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{started: make(chan struct{}, 1), stopCh: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.started <- struct{}{}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCount.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

func (m *mockHTTPServer) Close() error {
	m.closeCount.Add(1)
	return nil
}

func serveUntilCanceled(t *testing.T, svc *HTTPServerService, server *mockHTTPServer) error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
		return nil
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, HTTPServiceConfig{Addr: ":8080", DrainTimeout: time.Second}, zerolog.Nop())

	if err := serveUntilCanceled(t, svc, server); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := server.shutdownCount.Load(); got != 1 {
		t.Errorf("Shutdown called %d times", got)
	}
	if got := server.closeCount.Load(); got != 0 {
		t.Errorf("Close called %d times after a clean drain", got)
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	server := newMockHTTPServer()
	server.listenErr = errors.New("address in use")

	err := NewHTTPServerService(server, HTTPServiceConfig{Addr: ":8080"}, zerolog.Nop()).Serve(context.Background())
	if !errors.Is(err, server.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
	if err != nil && !strings.Contains(err.Error(), ":8080") {
		t.Errorf("Serve() = %v, want address in error", err)
	}
}

func TestHTTPServerService_DrainTimeoutForcesClose(t *testing.T) {
	server := newMockHTTPServer()
	server.shutdownErr = context.DeadlineExceeded
	svc := NewHTTPServerService(server, HTTPServiceConfig{DrainTimeout: time.Second}, zerolog.Nop())

	if err := serveUntilCanceled(t, svc, server); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want drain error", err)
	}
	if got := server.closeCount.Load(); got != 1 {
		t.Errorf("Close called %d times, want 1", got)
	}
}

func TestHTTPServerService_Defaults(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), HTTPServiceConfig{}, zerolog.Nop())
	if svc.String() != "api-server" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.config.DrainTimeout != 10*time.Second {
		t.Errorf("DrainTimeout = %v", svc.config.DrainTimeout)
	}
}

type mockLoader struct {
	calls atomic.Int32
	err   error

	mu             sync.Mutex
	correlationIDs []string
}

func (m *mockLoader) Load(ctx context.Context, _ catalog.Source) error {
	m.calls.Add(1)
	m.mu.Lock()
	m.correlationIDs = append(m.correlationIDs, logging.CorrelationIDFromContext(ctx))
	m.mu.Unlock()
	return m.err
}

func TestCorpusService_Reloads(t *testing.T) {
	loader := &mockLoader{err: errors.New("file vanished")}
	svc := NewCorpusService(loader, catalog.StaticSource{}, CorpusServiceConfig{
		ReloadInterval: 10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for loader.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
	if got := loader.calls.Load(); got < 2 {
		t.Errorf("reloads = %d, want at least 2 despite failures", got)
	}

	loader.mu.Lock()
	defer loader.mu.Unlock()
	seen := map[string]bool{}
	for _, id := range loader.correlationIDs {
		if id == "" {
			t.Fatal("reload context has no correlation id")
		}
		if seen[id] {
			t.Errorf("correlation id %q reused across reloads", id)
		}
		seen[id] = true
	}
}

func TestCorpusService_Disabled(t *testing.T) {
	loader := &mockLoader{}
	svc := NewCorpusService(loader, catalog.StaticSource{}, CorpusServiceConfig{}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	if got := loader.calls.Load(); got != 0 {
		t.Errorf("disabled service loaded %d times", got)
	}
	if svc.String() != "corpus-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
