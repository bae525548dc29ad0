package gateway

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ahump20/blaze-data-gateway/internal/breaker"
	"github.com/ahump20/blaze-data-gateway/internal/cache"
	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/metrics"
)

// Operation names. Each maps to an ordered list of provider adapters that
// can satisfy it.
const (
	OpGamesByDate     = "games-by-date"
	OpTeamSeasonStats = "team-season-stats"
)

// GamesAdapter translates one provider's scoreboard shape into normalized
// games. Adapters fetch through the shared Doer so the cache/retry/rate-limit
// policy stays uniform.
type GamesAdapter interface {
	Name() string
	FetchGames(ctx context.Context, date string) ([]domain.Game, error)
}

// TeamStatsAdapter translates one provider's season stats shape into the
// normalized record.
type TeamStatsAdapter interface {
	Name() string
	FetchTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error)
}

// Orchestrator resolves operations by trying providers in configured order.
// First success wins; failures and breaker-open skips advance to the next
// provider; exhaustion yields an AggregateError with the full trail.
type Orchestrator struct {
	games      []GamesAdapter
	teamStats  []TeamStatsAdapter
	breakerCfg config.BreakerConfig
	cache      cache.Cache
	metrics    *metrics.Recorder
	logger     *slog.Logger

	mu       sync.Mutex
	breakers map[string]*breaker.Breaker
}

// NewOrchestrator constructs an orchestrator with no adapters registered.
// Registering an adapter creates its breaker, one per provider name, and the
// breaker lives for the process lifetime.
func NewOrchestrator(breakerCfg config.BreakerConfig, store cache.Cache, recorder *metrics.Recorder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		breakerCfg: breakerCfg,
		cache:      store,
		metrics:    recorder,
		logger:     logger,
		breakers:   make(map[string]*breaker.Breaker),
	}
}

// RegisterGames appends adapters for the games-by-date operation, in
// failover order (primary first).
func (o *Orchestrator) RegisterGames(adapters ...GamesAdapter) {
	for _, a := range adapters {
		o.breakerFor(a.Name())
	}
	o.games = append(o.games, adapters...)
}

// RegisterTeamStats appends adapters for the team-season-stats operation.
func (o *Orchestrator) RegisterTeamStats(adapters ...TeamStatsAdapter) {
	for _, a := range adapters {
		o.breakerFor(a.Name())
	}
	o.teamStats = append(o.teamStats, adapters...)
}

// ExecuteGames resolves games-by-date across the registered adapters.
func (o *Orchestrator) ExecuteGames(ctx context.Context, date string) ([]domain.Game, error) {
	names := make([]string, len(o.games))
	for i, a := range o.games {
		names[i] = a.Name()
	}
	return execute(ctx, o, OpGamesByDate, names, func(ctx context.Context, i int) ([]domain.Game, error) {
		return o.games[i].FetchGames(ctx, date)
	})
}

// ExecuteTeamStats resolves team-season-stats across the registered adapters.
func (o *Orchestrator) ExecuteTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error) {
	names := make([]string, len(o.teamStats))
	for i, a := range o.teamStats {
		names[i] = a.Name()
	}
	return execute(ctx, o, OpTeamSeasonStats, names, func(ctx context.Context, i int) (domain.TeamStats, error) {
		return o.teamStats[i].FetchTeamStats(ctx, team, season)
	})
}

// execute runs the failover loop shared by all operations.
func execute[T any](ctx context.Context, o *Orchestrator, operation string, names []string, call func(context.Context, int) (T, error)) (T, error) {
	var zero T
	trail := make([]TrailEntry, 0, len(names))

	for i, name := range names {
		br := o.breakerFor(name)
		if !br.Allow() {
			trail = append(trail, TrailEntry{Provider: name, Skipped: true})
			o.metrics.RecordBreakerSkip(name)
			o.metrics.RecordFailover(operation, name)
			logging.Warn(o.logger, "provider skipped, breaker open",
				slog.String(logging.FieldOperation, operation),
				slog.String(logging.FieldProvider, name),
			)
			continue
		}

		result, err := call(ctx, i)
		if err == nil {
			br.RecordSuccess()
			return result, nil
		}

		// A canceled request says nothing about provider health; surface it
		// without touching the breaker or the trail semantics.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if IsRateLimited(err) {
			// Rate pressure is local request volume, not provider
			// unhealthiness; the breaker only counts genuine failures.
		} else if br.RecordFailure() {
			o.metrics.RecordBreakerOpen(name)
			logging.Warn(o.logger, "breaker opened",
				slog.String(logging.FieldProvider, name),
			)
		}

		trail = append(trail, TrailEntry{Provider: name, Err: err})
		o.metrics.RecordFailover(operation, name)
		logging.Warn(o.logger, "provider failed, trying next",
			slog.String(logging.FieldOperation, operation),
			slog.String(logging.FieldProvider, name),
			"error", err,
		)
	}

	return zero, &AggregateError{Operation: operation, Trail: trail}
}

func (o *Orchestrator) breakerFor(name string) *breaker.Breaker {
	o.mu.Lock()
	defer o.mu.Unlock()

	br, ok := o.breakers[name]
	if !ok {
		br = breaker.New(o.breakerCfg.FailureThreshold, o.breakerCfg.ResetTimeout)
		o.breakers[name] = br
	}
	return br
}

// BreakerStatus reports every provider breaker for the monitoring surface.
func (o *Orchestrator) BreakerStatus() map[string]breaker.Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make(map[string]breaker.Status, len(o.breakers))
	for name, br := range o.breakers {
		out[name] = br.Status()
	}
	return out
}

// CacheStats reports cache occupancy.
func (o *Orchestrator) CacheStats() cache.Stats {
	return o.cache.Stats()
}

// ClearCache evicts cached entries, optionally scoped to a provider prefix.
func (o *Orchestrator) ClearCache(prefix string) int {
	return o.cache.Clear(prefix)
}
