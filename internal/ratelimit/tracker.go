package ratelimit

import (
	"sync"
	"time"
)

// State is the last known quota position for one provider, as reported by
// its response headers.
type State struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Tracker keeps per-provider quota bookkeeping. It is written only by the
// fetch client after each response that carries rate-limit headers and read
// before each request to decide whether to suspend.
type Tracker struct {
	mu     sync.Mutex
	states map[string]State
	now    func() time.Time
}

// NewTracker constructs an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		states: make(map[string]State),
		now:    time.Now,
	}
}

// Wait returns how long the caller must suspend before issuing a request to
// the provider: zero when quota is available or unknown, otherwise the time
// until the reported reset instant.
func (t *Tracker) Wait(provider string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[provider]
	if !ok || state.Remaining > 0 {
		return 0
	}
	if wait := state.ResetAt.Sub(t.now()); wait > 0 {
		return wait
	}
	return 0
}

// Record stores the quota position reported by a response. Callers must not
// invoke it when the response carried no rate-limit headers, so prior state
// survives header-less responses.
func (t *Tracker) Record(provider string, limit, remaining int, resetAt time.Time) {
	t.mu.Lock()
	t.states[provider] = State{Limit: limit, Remaining: remaining, ResetAt: resetAt}
	t.mu.Unlock()
}

// Snapshot returns the last recorded state for a provider, if any.
func (t *Tracker) Snapshot(provider string) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[provider]
	return state, ok
}
