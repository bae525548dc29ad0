package ratelimit

import (
	"testing"
	"time"
)

func newTestTracker(now *time.Time) *Tracker {
	tr := NewTracker()
	tr.now = func() time.Time { return *now }
	return tr
}

func TestWaitUnknownProviderIsZero(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(&now)

	if wait := tr.Wait("espn"); wait != 0 {
		t.Fatalf("expected zero wait for unknown provider, got %s", wait)
	}
}

func TestWaitWithRemainingQuotaIsZero(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(&now)

	tr.Record("espn", 100, 42, now.Add(time.Minute))

	if wait := tr.Wait("espn"); wait != 0 {
		t.Fatalf("expected zero wait with quota remaining, got %s", wait)
	}
}

func TestWaitExhaustedQuotaSuspendsUntilReset(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	tr := newTestTracker(&now)

	tr.Record("sportsdataio", 100, 0, now.Add(30*time.Second))

	if wait := tr.Wait("sportsdataio"); wait != 30*time.Second {
		t.Fatalf("expected 30s wait, got %s", wait)
	}

	// Once the reset instant passes, no wait is required.
	now = now.Add(31 * time.Second)
	if wait := tr.Wait("sportsdataio"); wait != 0 {
		t.Fatalf("expected zero wait after reset, got %s", wait)
	}
}

func TestRecordReplacesState(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(&now)

	tr.Record("espn", 100, 0, now.Add(time.Minute))
	tr.Record("espn", 100, 99, now.Add(time.Minute))

	if wait := tr.Wait("espn"); wait != 0 {
		t.Fatalf("expected refreshed quota to clear wait, got %s", wait)
	}

	state, ok := tr.Snapshot("espn")
	if !ok {
		t.Fatal("expected snapshot for recorded provider")
	}
	if state.Remaining != 99 || state.Limit != 100 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestProvidersAreIndependent(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(&now)

	tr.Record("sportsdataio", 10, 0, now.Add(time.Minute))

	if wait := tr.Wait("espn"); wait != 0 {
		t.Fatalf("expected espn unaffected by sportsdataio quota, got %s", wait)
	}
}
