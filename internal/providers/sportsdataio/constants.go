package sportsdataio

const (
	providerName = "sportsdataio"
	leagueMLB    = "MLB"

	endpointGamesByDate     = "/v3/mlb/scores/json/GamesByDate/"
	endpointTeamSeasonStats = "/v3/mlb/scores/json/TeamSeasonStats/"
)
