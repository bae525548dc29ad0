package sportsdataio

type gameResponse struct {
	GameID       int    `json:"GameID"`
	Status       string `json:"Status"`
	DateTime     string `json:"DateTime"`
	HomeTeam     string `json:"HomeTeam"`
	AwayTeam     string `json:"AwayTeam"`
	HomeTeamID   int    `json:"HomeTeamID"`
	AwayTeamID   int    `json:"AwayTeamID"`
	HomeTeamRuns *int   `json:"HomeTeamRuns"`
	AwayTeamRuns *int   `json:"AwayTeamRuns"`
	Stadium      string `json:"Stadium"`
}

type teamSeasonResponse struct {
	TeamID       int     `json:"TeamID"`
	Team         string  `json:"Team"`
	Name         string  `json:"Name"`
	Season       int     `json:"Season"`
	Wins         int     `json:"Wins"`
	Losses       int     `json:"Losses"`
	Runs         float64 `json:"Runs"`
	OpponentRuns float64 `json:"OpponentRuns"`
}
