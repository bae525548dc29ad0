package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/cache"
	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/refresher"
)

type stubServer struct {
	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
	listenErr     error
	handler       http.Handler
}

func (s *stubServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	if s.listenErr != nil {
		return s.listenErr
	}
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdownCalls.Add(1)
	return nil
}

func (s *stubServer) Addr() string          { return ":0" }
func (s *stubServer) Handler() http.Handler { return s.handler }

type stubRefresher struct {
	started atomic.Int32
	stopped atomic.Int32
	status  refresher.Status
}

func (s *stubRefresher) Start(context.Context) { s.started.Add(1) }

func (s *stubRefresher) Stop(context.Context) error {
	s.stopped.Add(1)
	return nil
}

func (s *stubRefresher) Status() refresher.Status { return s.status }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("REFRESH_ENABLED", "false")
	return config.Load()
}

func TestNewBuildsWorkingHandler(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewRegistersConfiguredProviders(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gateway/breakers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Breakers map[string]any `json:"breakers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	for _, name := range []string{"sportsdataio", "espn", "mlbstats"} {
		if _, ok := body.Breakers[name]; !ok {
			t.Fatalf("expected breaker for %s, got %v", name, body.Breakers)
		}
	}
}

func TestNewWithoutRefreshIsReady(t *testing.T) {
	cfg := testConfig(t)
	s := New(cfg, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with refresh disabled, got %d", rec.Code)
	}
}

func TestNewWithRefreshStartsNotReady(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("REFRESH_ENABLED", "true")
	cfg := config.Load()
	s := New(cfg, nil)

	// The warm loop has not run yet, so readiness is withheld.
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before first warm cycle, got %d", rec.Code)
	}
}

func TestRunStartsAndShutsDown(t *testing.T) {
	cfg := testConfig(t)
	srv := &stubServer{}
	warm := &stubRefresher{}
	s := newServerWithDeps(cfg, nil, srv, warm)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for shutdown")
	}

	if srv.listenCalls.Load() != 1 {
		t.Fatalf("expected server start, got %d", srv.listenCalls.Load())
	}
	if srv.shutdownCalls.Load() != 1 {
		t.Fatalf("expected server shutdown, got %d", srv.shutdownCalls.Load())
	}
	if warm.started.Load() != 1 || warm.stopped.Load() != 1 {
		t.Fatalf("expected refresher lifecycle, got start=%d stop=%d", warm.started.Load(), warm.stopped.Load())
	}
}

func TestRunStopsOnServerError(t *testing.T) {
	cfg := testConfig(t)
	srv := &stubServer{listenErr: http.ErrAbortHandler}
	warm := &stubRefresher{}
	s := newServerWithDeps(cfg, nil, srv, warm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx, cancel)
		close(done)
	}()

	// The listen failure triggers stop, which unwinds Run.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for error-driven shutdown")
	}
}

func TestBuildCacheFallsBackOnBadRedisURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.RedisURL = "::not-a-url::"

	memory, store, client := buildCache(cfg, nil)
	if memory == nil || client != nil {
		t.Fatal("expected memory-only cache for invalid redis url")
	}
	if store != cache.Cache(memory) {
		t.Fatal("expected store to be the memory tier")
	}
}

func TestBuildAdapters(t *testing.T) {
	games, stats := buildAdapters([]string{"sportsdataio", "espn", "mlbstats", "fixture", "bogus"}, nil, nil)

	if len(games) != 4 {
		t.Fatalf("expected 4 games adapters, got %d", len(games))
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 team stats adapters, got %d", len(stats))
	}
	wantGames := []string{"sportsdataio", "espn", "mlbstats", "fixture"}
	for i, a := range games {
		if a.Name() != wantGames[i] {
			t.Fatalf("unexpected games order: got %s at %d", a.Name(), i)
		}
	}
	wantStats := []string{"sportsdataio", "mlbstats", "fixture"}
	for i, a := range stats {
		if a.Name() != wantStats[i] {
			t.Fatalf("unexpected stats order: got %s at %d", a.Name(), i)
		}
	}
}
