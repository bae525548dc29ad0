package mlbstats

const (
	providerName = "mlbstats"
	leagueMLB    = "MLB"

	endpointSchedule  = "/api/v1/schedule"
	endpointTeams     = "/api/v1/teams"
	endpointStandings = "/api/v1/standings"

	sportIDMLB = "1"
	// AL and NL league IDs, the standings endpoint wants them explicitly.
	leagueIDs = "103,104"
)
