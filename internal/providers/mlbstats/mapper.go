package mlbstats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
)

func mapGame(g gameResponse) domain.Game {
	return domain.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.GamePk),
		Provider:  providerName,
		League:    leagueMLB,
		HomeTeam:  mapTeam(g.Teams.Home.Team),
		AwayTeam:  mapTeam(g.Teams.Away.Team),
		StartTime: g.GameDate,
		Status:    mapStatus(g.Status),
		Score: domain.Score{
			Home: g.Teams.Home.Score,
			Away: g.Teams.Away.Score,
		},
		Venue: g.Venue.Name,
	}
}

func mapTeam(t teamResponse) domain.Team {
	return domain.Team{
		ID:           strconv.Itoa(t.ID),
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
	}
}

// mapStatus prefers the detailed state for postponements and cancellations,
// which the abstract state folds into "Final".
func mapStatus(s statusResponse) domain.GameStatus {
	switch strings.ToLower(s.DetailedState) {
	case "postponed":
		return domain.StatusPostponed
	case "cancelled", "canceled":
		return domain.StatusCanceled
	}
	switch strings.ToLower(s.AbstractGameState) {
	case "live":
		return domain.StatusInProgress
	case "final":
		return domain.StatusFinal
	default:
		return domain.StatusScheduled
	}
}

func mapTeamStats(r teamRecord, season string) domain.TeamStats {
	return domain.TeamStats{
		Provider:      providerName,
		Team:          mapTeam(r.Team),
		Season:        season,
		Wins:          r.Wins,
		Losses:        r.Losses,
		PointsFor:     r.RunsScored,
		PointsAgainst: r.RunsAllowed,
	}
}
