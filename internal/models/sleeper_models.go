package models

// Wire types for the Sleeper v1 API.

type LeagueResponse struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

type RosterResponse struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Ties        int `json:"ties"`
	Fpts        int `json:"fpts"`
	FptsDecimal int `json:"fpts_decimal"`
}

type UserResponse struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type MatchupResponse struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

// TransactionResponse covers both native Sleeper transactions (adds/drops
// keyed by player ID) and enriched feeds that carry a players list with
// ownership percentages.
type TransactionResponse struct {
	TransactionID string                 `json:"transaction_id"`
	Type          string                 `json:"type"`
	Status        string                 `json:"status"`
	Leg           int                    `json:"leg"`
	Week          int                    `json:"week"`
	Adds          map[string]int         `json:"adds"`
	Drops         map[string]int         `json:"drops"`
	Players       []TransactionPlayerRaw `json:"players"`
}

type TransactionPlayerRaw struct {
	PlayerID  string  `json:"player_id"`
	Ownership float64 `json:"ownership"`
}
