package fantasy

import (
	"context"

	"github.com/omarshaarawi/sleeperbot/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// League scopes every Sleeper call to a single league ID.
type League struct {
	api      *sleeper.API
	leagueID string
}

func NewLeague(api *sleeper.API, leagueID string) *League {
	return &League{api: api, leagueID: leagueID}
}

func (l *League) ID() string {
	return l.leagueID
}

func (l *League) GetLeagueInfo(ctx context.Context) (*models.LeagueInfo, error) {
	return l.api.GetLeague(ctx, l.leagueID)
}

func (l *League) GetRosters(ctx context.Context) ([]models.Roster, error) {
	return l.api.GetRosters(ctx, l.leagueID)
}

func (l *League) GetUsers(ctx context.Context) ([]models.User, error) {
	return l.api.GetUsers(ctx, l.leagueID)
}

func (l *League) GetMatchups(ctx context.Context, week int) ([]models.MatchupEntry, error) {
	return l.api.GetMatchups(ctx, l.leagueID, week)
}

func (l *League) GetTransactions(ctx context.Context, week int) ([]models.Transaction, error) {
	return l.api.GetTransactions(ctx, l.leagueID, week)
}

func (l *League) GetStandings(rosters []models.Roster, users []models.User) []models.StandingRow {
	return sleeper.Standings(rosters, users)
}

func (l *League) GetScoreboard(week int, rosters []models.Roster, matchups []models.MatchupEntry, users []models.User) []models.Matchup {
	return sleeper.Scoreboard(week, rosters, matchups, users)
}

func (l *League) GetPlayerStats(ctx context.Context, playerID, date string) (*models.PlayerGameStat, error) {
	return l.api.GetPlayerStats(ctx, playerID, date)
}
