package mlbstats

import (
	"context"
	"net/url"
	"testing"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
)

// routedDoer serves canned payloads per endpoint.
type routedDoer struct {
	routes map[string][]byte
	calls  []string
}

func (r *routedDoer) Fetch(ctx context.Context, provider, endpoint string, params url.Values, opts gateway.Options) (*gateway.Result, error) {
	r.calls = append(r.calls, endpoint)
	data, ok := r.routes[endpoint]
	if !ok {
		return nil, &gateway.HTTPError{Provider: provider, Endpoint: endpoint, Status: 404}
	}
	return &gateway.Result{Data: data, Source: gateway.Source{Provider: provider}}, nil
}

const scheduleFixture = `{
	"dates": [
		{
			"date": "2025-04-01",
			"games": [
				{
					"gamePk": 778001,
					"gameDate": "2025-04-01T23:45:00Z",
					"status": {"abstractGameState": "Live", "detailedState": "In Progress"},
					"teams": {
						"home": {"score": 3, "team": {"id": 138, "name": "St. Louis Cardinals"}},
						"away": {"score": 1, "team": {"id": 112, "name": "Chicago Cubs"}}
					},
					"venue": {"name": "Busch Stadium"}
				},
				{
					"gamePk": 778002,
					"gameDate": "2025-04-02T00:10:00Z",
					"status": {"abstractGameState": "Final", "detailedState": "Postponed"},
					"teams": {
						"home": {"team": {"id": 117, "name": "Houston Astros"}},
						"away": {"team": {"id": 140, "name": "Texas Rangers"}}
					},
					"venue": {"name": "Daikin Park"}
				}
			]
		}
	]
}`

func TestFetchGamesMapsSchedule(t *testing.T) {
	doer := &routedDoer{routes: map[string][]byte{endpointSchedule: []byte(scheduleFixture)}}

	a := New(doer)
	games, err := a.FetchGames(context.Background(), "2025-04-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	first := games[0]
	if first.ID != "mlbstats-778001" || first.League != "MLB" {
		t.Fatalf("unexpected identity: %+v", first)
	}
	if first.Status != domain.StatusInProgress || first.Score.Home != 3 || first.Score.Away != 1 {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Venue != "Busch Stadium" {
		t.Fatalf("unexpected venue: %s", first.Venue)
	}

	// Detailed state overrides the abstract one for postponements.
	if games[1].Status != domain.StatusPostponed {
		t.Fatalf("expected postponed, got %s", games[1].Status)
	}
}

func TestFetchGamesEmptySchedule(t *testing.T) {
	doer := &routedDoer{routes: map[string][]byte{endpointSchedule: []byte(`{"dates": []}`)}}

	a := New(doer)
	games, err := a.FetchGames(context.Background(), "2025-12-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected empty slate, got %d", len(games))
	}
}

const teamsFixture = `{
	"teams": [
		{"id": 138, "name": "St. Louis Cardinals", "abbreviation": "STL"},
		{"id": 112, "name": "Chicago Cubs", "abbreviation": "CHC"}
	]
}`

const standingsFixture = `{
	"records": [
		{
			"teamRecords": [
				{"team": {"id": 112, "name": "Chicago Cubs"}, "wins": 88, "losses": 74, "runsScored": 755, "runsAllowed": 688},
				{"team": {"id": 138, "name": "St. Louis Cardinals"}, "wins": 83, "losses": 79, "runsScored": 724, "runsAllowed": 701}
			]
		}
	]
}`

func TestFetchTeamStats(t *testing.T) {
	doer := &routedDoer{routes: map[string][]byte{
		endpointTeams:     []byte(teamsFixture),
		endpointStandings: []byte(standingsFixture),
	}}

	a := New(doer)
	stats, err := a.FetchTeamStats(context.Background(), "STL", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Team.ID != "138" || stats.Wins != 83 || stats.Losses != 79 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.PointsFor != 724 || stats.PointsAgainst != 701 {
		t.Fatalf("unexpected run totals: %+v", stats)
	}
	if len(doer.calls) != 2 || doer.calls[0] != endpointTeams || doer.calls[1] != endpointStandings {
		t.Fatalf("unexpected call sequence: %v", doer.calls)
	}
}

func TestFetchTeamStatsByFullName(t *testing.T) {
	doer := &routedDoer{routes: map[string][]byte{
		endpointTeams:     []byte(teamsFixture),
		endpointStandings: []byte(standingsFixture),
	}}

	a := New(doer)
	stats, err := a.FetchTeamStats(context.Background(), "chicago cubs", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Team.ID != "112" || stats.Wins != 88 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFetchTeamStatsUnknownTeam(t *testing.T) {
	doer := &routedDoer{routes: map[string][]byte{endpointTeams: []byte(teamsFixture)}}

	a := New(doer)
	if _, err := a.FetchTeamStats(context.Background(), "XXX", "2025"); err == nil {
		t.Fatal("expected error for unknown team")
	}
	// The standings endpoint must not be hit for an unresolvable team.
	if len(doer.calls) != 1 {
		t.Fatalf("unexpected calls: %v", doer.calls)
	}
}
