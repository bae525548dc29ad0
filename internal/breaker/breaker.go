package breaker

import (
	"sync"
	"time"
)

const (
	// DefaultFailureThreshold is how many consecutive failures open a breaker.
	DefaultFailureThreshold = 3
	// DefaultResetTimeout is how long an open breaker blocks before allowing
	// a trial request.
	DefaultResetTimeout = 60 * time.Second
)

// Breaker is a per-provider two-state circuit breaker. CLOSED lets requests
// through; OPEN rejects them until the reset timeout elapses, after which the
// next request is allowed as an implicit trial. A successful trial closes the
// breaker; a failed one re-opens it and restarts the timer.
type Breaker struct {
	mu           sync.Mutex
	threshold    int
	resetTimeout time.Duration
	failures     int
	lastFailure  time.Time
	open         bool
	now          func() time.Time
}

// Status is the introspection view of one breaker.
type Status struct {
	Failures    int        `json:"failures"`
	LastFailure *time.Time `json:"lastFailure,omitempty"`
	Open        bool       `json:"isOpen"`
}

// New constructs a closed breaker. Non-positive arguments fall back to the
// defaults.
func New(threshold int, resetTimeout time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if resetTimeout <= 0 {
		resetTimeout = DefaultResetTimeout
	}
	return &Breaker{
		threshold:    threshold,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

// Allow reports whether a request may be issued. While open it returns false
// until the reset timeout has elapsed since the last failure; from then on it
// returns true so the next call acts as a trial. Allow never mutates state:
// the trial's outcome is decided by RecordSuccess or RecordFailure.
func (b *Breaker) Allow() bool {
	return !b.isOpen()
}

func (b *Breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false
	}
	return b.now().Sub(b.lastFailure) <= b.resetTimeout
}

// RecordSuccess resets the failure count and closes the breaker regardless of
// prior state.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	b.failures = 0
	b.open = false
	b.mu.Unlock()
}

// RecordFailure increments the failure count and opens the breaker once the
// threshold is reached. On an already-open breaker (a failed trial) it
// restarts the reset timer. It reports whether this call transitioned the
// breaker to open.
func (b *Breaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasOpen := b.open
	b.failures++
	b.lastFailure = b.now()
	if b.failures >= b.threshold {
		b.open = true
	}
	return b.open && !wasOpen
}

// Status returns a copy of the breaker's current state. Open reflects the
// effective gate (an elapsed reset timeout reads as closed, matching Allow).
func (b *Breaker) Status() Status {
	open := b.isOpen()

	b.mu.Lock()
	defer b.mu.Unlock()

	st := Status{Failures: b.failures, Open: open}
	if !b.lastFailure.IsZero() {
		last := b.lastFailure
		st.LastFailure = &last
	}
	return st
}
