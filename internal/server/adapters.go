package server

import (
	"log/slog"

	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/providers/espn"
	"github.com/ahump20/blaze-data-gateway/internal/providers/fixture"
	"github.com/ahump20/blaze-data-gateway/internal/providers/mlbstats"
	"github.com/ahump20/blaze-data-gateway/internal/providers/sportsdataio"
)

// buildAdapters instantiates provider adapters in failover order. Not every
// provider serves every operation, so the two lists can differ in length.
func buildAdapters(order []string, doer gateway.Doer, logger *slog.Logger) ([]gateway.GamesAdapter, []gateway.TeamStatsAdapter) {
	games := make([]gateway.GamesAdapter, 0, len(order))
	teamStats := make([]gateway.TeamStatsAdapter, 0, len(order))

	for _, name := range order {
		switch name {
		case "sportsdataio":
			a := sportsdataio.New(doer)
			games = append(games, a)
			teamStats = append(teamStats, a)
		case "espn":
			games = append(games, espn.New(doer))
		case "mlbstats":
			a := mlbstats.New(doer)
			games = append(games, a)
			teamStats = append(teamStats, a)
		case "fixture":
			a := fixture.New()
			games = append(games, a)
			teamStats = append(teamStats, a)
		default:
			logging.Warn(logger, "unknown provider in order, skipping",
				slog.String(logging.FieldProvider, name),
			)
		}
	}

	return games, teamStats
}
