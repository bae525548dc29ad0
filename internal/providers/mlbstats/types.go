package mlbstats

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GamePk   int            `json:"gamePk"`
	GameDate string         `json:"gameDate"`
	Status   statusResponse `json:"status"`
	Teams    gameTeams      `json:"teams"`
	Venue    venueResponse  `json:"venue"`
}

type statusResponse struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type gameTeams struct {
	Home gameSide `json:"home"`
	Away gameSide `json:"away"`
}

type gameSide struct {
	Score int          `json:"score"`
	Team  teamResponse `json:"team"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type venueResponse struct {
	Name string `json:"name"`
}

type teamsResponse struct {
	Teams []teamResponse `json:"teams"`
}

type standingsResponse struct {
	Records []standingsRecord `json:"records"`
}

type standingsRecord struct {
	TeamRecords []teamRecord `json:"teamRecords"`
}

type teamRecord struct {
	Team        teamResponse `json:"team"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	RunsScored  float64      `json:"runsScored"`
	RunsAllowed float64      `json:"runsAllowed"`
}
