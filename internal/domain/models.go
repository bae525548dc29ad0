package domain

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Team represents the normalized team shape.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Game is the canonical game shape exposed by the gateway, regardless of
// which upstream provider supplied it.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	League    string     `json:"league"`
	HomeTeam  Team       `json:"homeTeam"`
	AwayTeam  Team       `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Venue     string     `json:"venue,omitempty"`
}

// TeamStats is the normalized season-level stat line for a team.
type TeamStats struct {
	Provider      string  `json:"provider"`
	Team          Team    `json:"team"`
	Season        string  `json:"season"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

// GamesResponse is the payload returned by /api/games.
type GamesResponse struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}
