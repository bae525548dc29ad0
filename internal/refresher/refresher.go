// Package refresher keeps today's slate warm in the cache so client-facing
// requests rarely pay the upstream round trip.
package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/metrics"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

const defaultInterval = 2 * time.Minute

// GamesSource resolves a date's slate. Satisfied by the orchestrator.
type GamesSource interface {
	ExecuteGames(ctx context.Context, date string) ([]domain.Game, error)
}

// Refresher executes games-by-date for today on an interval. A cycle that
// fails retries with exponential backoff before yielding to the next tick,
// so a transient blip does not leave the cache cold for a full interval.
type Refresher struct {
	source   GamesSource
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the loop has warmed the cache recently and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults.
func New(source GamesSource, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		source:   source,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		logging.Info(r.logger, "refresher started",
			slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()),
		)
		// Initial cycle to warm the cache on boot.
		r.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				r.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// refreshOnce runs one warm cycle, retrying transient failures within the
// tick. Backoff is capped below the tick interval so cycles never overlap.
func (r *Refresher) refreshOnce(ctx context.Context) {
	start := time.Now()
	r.recordAttempt(start)
	today := timeutil.FormatDate(r.now().UTC())

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = r.interval / 2

	var count int
	err := backoff.Retry(func() error {
		games, execErr := r.source.ExecuteGames(ctx, today)
		if execErr != nil {
			return execErr
		}
		count = len(games)
		return nil
	}, backoff.WithContext(policy, ctx))

	r.metrics.RecordRefreshCycle(time.Since(start), err)
	if err != nil {
		logging.Error(r.logger, "refresh cycle failed", err,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
		r.recordFailure(err, start)
		return
	}

	r.recordSuccess(start)
	logging.Info(r.logger, "refreshed games",
		slog.String(logging.FieldDate, today),
		slog.Int(logging.FieldCount, count),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
