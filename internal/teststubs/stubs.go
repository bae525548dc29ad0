// Package teststubs holds test doubles shared by the refresher, http and
// server test suites.
package teststubs

import (
	"context"
	"sync/atomic"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
)

// StubGamesSource is a test double for the orchestrator's games surface.
type StubGamesSource struct {
	Games  []domain.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// ExecuteGames returns configured games and error while tracking calls.
func (s *StubGamesSource) ExecuteGames(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubGamesAdapter is a registerable games adapter with scripted behavior.
type StubGamesAdapter struct {
	AdapterName string
	Games       []domain.Game
	Err         error
	Calls       atomic.Int32
}

func (s *StubGamesAdapter) Name() string { return s.AdapterName }

// FetchGames returns the configured slate or error.
func (s *StubGamesAdapter) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx
	_ = date
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Games, nil
}

// StubTeamStatsAdapter is a registerable team stats adapter.
type StubTeamStatsAdapter struct {
	AdapterName string
	Stats       domain.TeamStats
	Err         error
	Calls       atomic.Int32
}

func (s *StubTeamStatsAdapter) Name() string { return s.AdapterName }

// FetchTeamStats returns the configured stat line or error.
func (s *StubTeamStatsAdapter) FetchTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error) {
	_ = ctx
	_ = team
	_ = season
	s.Calls.Add(1)
	if s.Err != nil {
		return domain.TeamStats{}, s.Err
	}
	return s.Stats, nil
}
