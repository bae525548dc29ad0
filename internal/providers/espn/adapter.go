// Package espn adapts ESPN's public MLB scoreboard. Unkeyed and generous,
// which makes it the natural first fallback.
package espn

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/providers"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

// Adapter fetches the scoreboard through the shared client.
type Adapter struct {
	doer gateway.Doer
	now  func() time.Time
}

// New constructs the adapter around the shared fetch client.
func New(doer gateway.Doer) *Adapter {
	return &Adapter{doer: doer, now: time.Now}
}

func (a *Adapter) Name() string { return providerName }

// FetchGames returns the normalized slate for a YYYY-MM-DD date. The
// upstream wants compact YYYYMMDD dates.
func (a *Adapter) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	date = timeutil.DateOrNow(date, a.now(), time.UTC)

	params := url.Values{}
	params.Set("dates", strings.ReplaceAll(date, "-", ""))

	var payload scoreboardResponse
	opts := gateway.Options{TTL: providers.TTLForDate(date, a.now())}
	if _, err := providers.FetchJSON(ctx, a.doer, providerName, endpointScoreboard, params, opts, &payload); err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, len(payload.Events))
	for _, event := range payload.Events {
		games = append(games, mapEvent(event))
	}
	return games, nil
}
