// Package sportsdataio adapts the SportsDataIO MLB scores API. It is the
// primary, keyed provider: fastest data, strictest quota.
package sportsdataio

import (
	"context"
	"fmt"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/config"
	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/providers"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

// Adapter fetches scoreboards and season stats through the shared client.
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

	var payload []gameResponse
	opts := gateway.Options{TTL: providers.TTLForDate(date, a.now())}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointGamesByDate+date, nil, opts, &payload); err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, len(payload))
	for _, g := range payload {
		games = append(games, mapGame(g))
	}
	return games, nil
}

// FetchTeamStats returns the season stat line for one team. The upstream
// endpoint is season-scoped, so the whole slate is fetched once and cached;
// the team filter happens locally.
func (a *Adapter) FetchTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error) {
	var payload []teamSeasonResponse
	opts := gateway.Options{TTL: config.TTLReference}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointTeamSeasonStats+season, nil, opts, &payload); err != nil {
		return domain.TeamStats{}, err
	}

	for _, s := range payload {
		if s.Team == team {
			return mapTeamStats(s), nil
		}
	}
	return domain.TeamStats{}, fmt.Errorf("%s: no season stats for team %q in %s", providerName, team, season)
}
