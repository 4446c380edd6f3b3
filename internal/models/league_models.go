package models

type LeagueInfo struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

type Roster struct {
	RosterID  int      `json:"roster_id"`
	OwnerID   string   `json:"owner_id"`
	Players   []string `json:"players"`
	Wins      int      `json:"wins"`
	Losses    int      `json:"losses"`
	Ties      int      `json:"ties"`
	PointsFor float64  `json:"points_for"`
}

type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name"`
}

// MatchupEntry is one roster's line for a week. MatchupID is 0 for a bye.
type MatchupEntry struct {
	RosterID  int     `json:"roster_id"`
	MatchupID int     `json:"matchup_id"`
	Points    float64 `json:"points"`
}

type TeamRef struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Matchup pairs the two rosters sharing a matchup ID in a week.
type Matchup struct {
	Week     int     `json:"week"`
	HomeTeam TeamRef `json:"home_team"`
	AwayTeam TeamRef `json:"away_team"`
}

// StandingRow is one team's record. Rows are kept in ranking order.
type StandingRow struct {
	Name      string `json:"name"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	PointsFor int    `json:"points_for"`
}

const (
	TransactionDrop      = "drop"
	TransactionWaiver    = "waiver"
	TransactionTrade     = "trade"
	TransactionFreeAgent = "free_agent"
)

type Transaction struct {
	Type    string         `json:"type"`
	Week    int            `json:"week"`
	Players []PlayerTxInfo `json:"players"`
}

type PlayerTxInfo struct {
	PlayerID  string  `json:"player_id"`
	Ownership float64 `json:"ownership"`
}

type PlayerGameStat struct {
	PlayerID      string `json:"player_id"`
	Touchdowns    int    `json:"touchdowns"`
	Fumbles       int    `json:"fumbles"`
	Interceptions int    `json:"interceptions"`
}
