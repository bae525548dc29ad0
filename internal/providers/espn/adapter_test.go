package espn

import (
	"context"
	"net/url"
	"testing"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
)

type fakeDoer struct {
	data   []byte
	err    error
	params []url.Values
}

func (f *fakeDoer) Fetch(ctx context.Context, provider, endpoint string, params url.Values, opts gateway.Options) (*gateway.Result, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Result{Data: f.data, Source: gateway.Source{Provider: provider}}, nil
}

const scoreboardFixture = `{
	"events": [
		{
			"id": "401700001",
			"date": "2025-04-01T23:45Z",
			"status": {"type": {"name": "STATUS_IN_PROGRESS", "state": "in"}},
			"competitions": [
				{
					"venue": {"fullName": "Busch Stadium"},
					"competitors": [
						{"homeAway": "home", "score": "4", "team": {"id": "24", "displayName": "St. Louis Cardinals", "abbreviation": "STL"}},
						{"homeAway": "away", "score": "2", "team": {"id": "16", "displayName": "Chicago Cubs", "abbreviation": "CHC"}}
					]
				}
			]
		},
		{
			"id": "401700002",
			"date": "2025-04-02T00:10Z",
			"status": {"type": {"name": "STATUS_POSTPONED", "state": "post"}},
			"competitions": []
		}
	]
}`

func TestFetchGamesMapsScoreboard(t *testing.T) {
	doer := &fakeDoer{data: []byte(scoreboardFixture)}

	a := New(doer)
	games, err := a.FetchGames(context.Background(), "2025-04-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	first := games[0]
	if first.ID != "espn-401700001" || first.Provider != "espn" {
		t.Fatalf("unexpected identity: %+v", first)
	}
	if first.Status != domain.StatusInProgress {
		t.Fatalf("expected in-progress, got %s", first.Status)
	}
	if first.HomeTeam.Abbreviation != "STL" || first.AwayTeam.Abbreviation != "CHC" {
		t.Fatalf("unexpected teams: %+v", first)
	}
	if first.Score.Home != 4 || first.Score.Away != 2 {
		t.Fatalf("unexpected score: %+v", first.Score)
	}
	if first.Venue != "Busch Stadium" {
		t.Fatalf("unexpected venue: %s", first.Venue)
	}

	// A postponed status name wins over the coarse "post" state.
	if games[1].Status != domain.StatusPostponed {
		t.Fatalf("expected postponed, got %s", games[1].Status)
	}

	if got := doer.params[0].Get("dates"); got != "20250401" {
		t.Fatalf("expected compact date param, got %q", got)
	}
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		name  string
		state string
		want  domain.GameStatus
	}{
		{"STATUS_SCHEDULED", "pre", domain.StatusScheduled},
		{"STATUS_IN_PROGRESS", "in", domain.StatusInProgress},
		{"STATUS_FINAL", "post", domain.StatusFinal},
		{"STATUS_POSTPONED", "post", domain.StatusPostponed},
		{"STATUS_CANCELED", "post", domain.StatusCanceled},
		{"", "", domain.StatusScheduled},
	}
	for _, tc := range cases {
		got := mapStatus(statusTypeResponse{Name: tc.name, State: tc.state})
		if got != tc.want {
			t.Fatalf("mapStatus(%q, %q) = %s, want %s", tc.name, tc.state, got, tc.want)
		}
	}
}

func TestParseScore(t *testing.T) {
	if parseScore("7") != 7 {
		t.Fatal("expected numeric score")
	}
	if parseScore("") != 0 || parseScore("n/a") != 0 {
		t.Fatal("expected unparseable scores to map to zero")
	}
}
