// Package fixture is a deterministic in-process provider for local
// development and tests. It never touches the network, so it also serves as
// the chain's terminal fallback when everything upstream is down.
package fixture

import (
	"context"
	"time"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

const providerName = "fixture"

// Adapter returns a static slate and stat lines useful for bootstrapping.
type Adapter struct {
	now func() time.Time
}

// New creates a fixture adapter with a time source.
func New() *Adapter {
	return &Adapter{now: time.Now}
}

func (a *Adapter) Name() string { return providerName }

// FetchGames returns a deterministic two-game slate anchored to the date.
func (a *Adapter) FetchGames(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx

	start := a.now().UTC().Truncate(time.Hour)
	if date != "" {
		if parsed, err := timeutil.ParseDate(date); err == nil {
			start = parsed.UTC()
		}
	}

	return []domain.Game{
		{
			ID:        "fixture-1",
			Provider:  providerName,
			League:    "MLB",
			HomeTeam:  domain.Team{ID: "stl", Name: "St. Louis Cardinals", Abbreviation: "STL"},
			AwayTeam:  domain.Team{ID: "chc", Name: "Chicago Cubs", Abbreviation: "CHC"},
			StartTime: start.Add(18 * time.Hour).Format(time.RFC3339),
			Status:    domain.StatusScheduled,
			Venue:     "Busch Stadium",
		},
		{
			ID:        "fixture-2",
			Provider:  providerName,
			League:    "MLB",
			HomeTeam:  domain.Team{ID: "hou", Name: "Houston Astros", Abbreviation: "HOU"},
			AwayTeam:  domain.Team{ID: "tex", Name: "Texas Rangers", Abbreviation: "TEX"},
			StartTime: start.Add(20 * time.Hour).Format(time.RFC3339),
			Status:    domain.StatusScheduled,
			Venue:     "Daikin Park",
		},
	}, nil
}

// FetchTeamStats returns a deterministic stat line for any requested team.
func (a *Adapter) FetchTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error) {
	_ = ctx
	return domain.TeamStats{
		Provider:      providerName,
		Team:          domain.Team{ID: "fixture-" + team, Name: team, Abbreviation: team},
		Season:        season,
		Wins:          81,
		Losses:        81,
		PointsFor:     700,
		PointsAgainst: 700,
	}, nil
}
