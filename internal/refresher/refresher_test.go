package refresher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/teststubs"
)

func TestRefresherWarmsOnStart(t *testing.T) {
	source := &teststubs.StubGamesSource{
		Games:  []domain.Game{{ID: "g1", Provider: "stub"}},
		Notify: make(chan struct{}),
	}

	r := New(source, nil, nil, time.Minute)
	r.now = func() time.Time { return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = r.Stop(context.Background())

	if source.Calls.Load() < 1 {
		t.Fatal("expected at least one execute call")
	}

	status := r.Status()
	if status.LastSuccess.IsZero() || status.ConsecutiveFailures != 0 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if !status.IsReady() {
		t.Fatal("expected ready after successful warm")
	}
}

func TestRefresherTicks(t *testing.T) {
	source := &teststubs.StubGamesSource{Notify: make(chan struct{})}

	r := New(source, nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}
	time.Sleep(35 * time.Millisecond)

	cancel()
	_ = r.Stop(context.Background())

	if source.Calls.Load() < 2 {
		t.Fatalf("expected ticker-driven refreshes, got %d", source.Calls.Load())
	}
}

func TestRefresherRecordsFailure(t *testing.T) {
	source := &teststubs.StubGamesSource{Err: errors.New("all providers failed")}

	r := New(source, nil, nil, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Canceled context stops the in-cycle retry immediately.
	r.refreshOnce(ctx)

	status := r.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %+v", status)
	}
	if status.IsReady() {
		t.Fatal("expected not ready without a success")
	}
}

func TestRefresherSuccessClearsFailures(t *testing.T) {
	source := &teststubs.StubGamesSource{}

	r := New(source, nil, nil, time.Minute)
	r.recordFailure(errors.New("blip"), time.Now())
	r.recordFailure(errors.New("blip"), time.Now())

	r.refreshOnce(context.Background())

	status := r.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected cleared failures, got %+v", status)
	}
}

func TestStatusIsReady(t *testing.T) {
	if (Status{}).IsReady() {
		t.Fatal("zero status must not be ready")
	}
	ok := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !ok.IsReady() {
		t.Fatal("expected ready below failure threshold")
	}
	bad := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if bad.IsReady() {
		t.Fatal("expected not ready at failure threshold")
	}
}

func TestStartIsIdempotent(t *testing.T) {
	source := &teststubs.StubGamesSource{Notify: make(chan struct{})}

	r := New(source, nil, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)
	r.Start(ctx)

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}
	time.Sleep(20 * time.Millisecond)

	cancel()
	_ = r.Stop(context.Background())

	if got := source.Calls.Load(); got != 1 {
		t.Fatalf("expected a single warm cycle, got %d", got)
	}
}
