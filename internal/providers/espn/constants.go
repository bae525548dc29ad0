package espn

const (
	providerName = "espn"
	leagueMLB    = "MLB"

	endpointScoreboard = "/apis/site/v2/sports/baseball/mlb/scoreboard"
)
