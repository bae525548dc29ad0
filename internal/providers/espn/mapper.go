package espn

import (
	"strconv"
	"strings"

	"github.com/ahump20/blaze-data-gateway/internal/domain"
)

func mapEvent(e eventResponse) domain.Game {
	game := domain.Game{
		ID:        providerName + "-" + e.ID,
		Provider:  providerName,
		League:    leagueMLB,
		StartTime: e.Date,
		Status:    mapStatus(e.Status.Type),
	}

	if len(e.Competitions) == 0 {
		return game
	}
	comp := e.Competitions[0]
	game.Venue = comp.Venue.FullName
	for _, competitor := range comp.Competitors {
		team := mapTeam(competitor.Team)
		score := parseScore(competitor.Score)
		if strings.EqualFold(competitor.HomeAway, "home") {
			game.HomeTeam = team
			game.Score.Home = score
		} else {
			game.AwayTeam = team
			game.Score.Away = score
		}
	}
	return game
}

func mapTeam(t teamResponse) domain.Team {
	return domain.Team{
		ID:           t.ID,
		Name:         t.DisplayName,
		Abbreviation: t.Abbreviation,
	}
}

// mapStatus reads the coarse state first ("pre"/"in"/"post") and falls back
// to the status name for terminal outliers.
func mapStatus(t statusTypeResponse) domain.GameStatus {
	switch strings.ToUpper(t.Name) {
	case "STATUS_POSTPONED":
		return domain.StatusPostponed
	case "STATUS_CANCELED", "STATUS_CANCELLED":
		return domain.StatusCanceled
	}
	switch strings.ToLower(t.State) {
	case "in":
		return domain.StatusInProgress
	case "post":
		return domain.StatusFinal
	default:
		return domain.StatusScheduled
	}
}

func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return score
}
