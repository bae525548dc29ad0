package sportsdataio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
)

func mapGame(g gameResponse) domain.Game {
	return domain.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.GameID),
		Provider:  providerName,
		League:    leagueMLB,
		HomeTeam:  mapTeam(g.HomeTeamID, g.HomeTeam),
		AwayTeam:  mapTeam(g.AwayTeamID, g.AwayTeam),
		StartTime: g.DateTime,
		Status:    mapStatus(g.Status),
		Score: domain.Score{
			Home: runsOrZero(g.HomeTeamRuns),
			Away: runsOrZero(g.AwayTeamRuns),
		},
		Venue: g.Stadium,
	}
}

func mapTeam(id int, abbreviation string) domain.Team {
	return domain.Team{
		ID:           strconv.Itoa(id),
		Name:         abbreviation,
		Abbreviation: abbreviation,
	}
}

func mapStatus(status string) domain.GameStatus {
	switch strings.ToLower(status) {
	case "final", "f", "completed":
		return domain.StatusFinal
	case "inprogress", "in progress":
		return domain.StatusInProgress
	case "postponed":
		return domain.StatusPostponed
	case "canceled", "cancelled":
		return domain.StatusCanceled
	default:
		return domain.StatusScheduled
	}
}

func runsOrZero(runs *int) int {
	if runs == nil {
		return 0
	}
	return *runs
}

func mapTeamStats(s teamSeasonResponse) domain.TeamStats {
	return domain.TeamStats{
		Provider: providerName,
		Team: domain.Team{
			ID:           strconv.Itoa(s.TeamID),
			Name:         s.Name,
			Abbreviation: s.Team,
		},
		Season:        strconv.Itoa(s.Season),
		Wins:          s.Wins,
		Losses:        s.Losses,
		PointsFor:     s.Runs,
		PointsAgainst: s.OpponentRuns,
	}
}
