package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	cacheHits       int
	cacheMisses     int
	breakerOpens    int
	breakerSkips    int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about gateway activity.
// It mirrors everything into OTel instruments when telemetry is enabled, but
// tests can read it directly without a meter provider.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	failovers int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a transport attempt and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last wait applied.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCacheLookup tracks a cache hit or miss for a provider.
func (r *Recorder) RecordCacheLookup(provider string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	if hit {
		stats.cacheHits++
	} else {
		stats.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(provider, hit)
	}
}

// RecordBreakerOpen tracks a breaker transitioning to open for a provider.
func (r *Recorder) RecordBreakerOpen(provider string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStatsLocked(provider).breakerOpens++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBreakerOpen(provider)
	}
}

// RecordBreakerSkip tracks the orchestrator skipping a provider because its breaker was open.
func (r *Recorder) RecordBreakerSkip(provider string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureStatsLocked(provider).breakerSkips++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBreakerSkip(provider)
	}
}

// RecordFailover tracks the orchestrator moving past a failed or skipped provider.
func (r *Recorder) RecordFailover(operation, fromProvider string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.failovers++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFailover(operation, fromProvider)
	}
}

// RecordRefreshCycle tracks one background refresh pass.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	CacheHits       int
	CacheMisses     int
	BreakerOpens    int
	BreakerSkips    int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		CacheHits:       stats.cacheHits,
		CacheMisses:     stats.cacheMisses,
		BreakerOpens:    stats.breakerOpens,
		BreakerSkips:    stats.breakerSkips,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Failovers returns the total failover count across operations.
func (r *Recorder) Failovers() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failovers
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
