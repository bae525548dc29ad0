// Package mlbstats adapts MLB's public Stats API, the last resort in the
// failover chain: slowest to update, but free and rarely down.
package mlbstats

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/providers"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

// Adapter fetches schedules and standings through the shared client.
type Adapter struct {
	doer gateway.Doer
	now  func() time.Time
}

// New constructs the adapter around the shared fetch client.
func New(doer gateway.Doer) *Adapter {
	return &Adapter{doer: doer, now: time.Now}
}

func (a *Adapter) Name() string { return providerName }

// FetchGames returns the normalized slate for a YYYY-MM-DD date.
func (a *Adapter) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	date = timeutil.DateOrNow(date, a.now(), time.UTC)

	params := url.Values{}
	params.Set("sportId", sportIDMLB)
	params.Set("date", date)

	var payload scheduleResponse
	opts := gateway.Options{TTL: providers.TTLForDate(date, a.now())}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointSchedule, params, opts, &payload); err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0)
	for _, day := range payload.Dates {
		for _, g := range day.Games {
			games = append(games, mapGame(g))
		}
	}
	return games, nil
}

// FetchTeamStats resolves the team against the league roster, then reads its
// standings line for the season. Both payloads are reference data and cache
// on the long tier.
func (a *Adapter) FetchTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error) {
	teamID, err := a.resolveTeamID(ctx, team, season)
	if err != nil {
		return domain.TeamStats{}, err
	}

	params := url.Values{}
	params.Set("leagueId", leagueIDs)
	params.Set("season", season)

	var payload standingsResponse
	opts := gateway.Options{TTL: config.TTLReference}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointStandings, params, opts, &payload); err != nil {
		return domain.TeamStats{}, err
	}

	for _, record := range payload.Records {
		for _, tr := range record.TeamRecords {
			if tr.Team.ID == teamID {
				return mapTeamStats(tr, season), nil
			}
		}
	}
	return domain.TeamStats{}, fmt.Errorf("%s: no standings entry for team %q in %s", providerName, team, season)
}

// resolveTeamID accepts an abbreviation ("STL"), a numeric-free team name or
// a full name and returns the upstream team id.
func (a *Adapter) resolveTeamID(ctx context.Context, team, season string) (int, error) {
	params := url.Values{}
	params.Set("sportId", sportIDMLB)
	params.Set("season", season)

	var payload teamsResponse
	opts := gateway.Options{TTL: config.TTLReference}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointTeams, params, opts, &payload); err != nil {
		return 0, err
	}

	for _, t := range payload.Teams {
		if strings.EqualFold(t.Abbreviation, team) || strings.EqualFold(t.Name, team) {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown team %q", providerName, team)
}
