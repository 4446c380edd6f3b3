package service

import (
	"context"
	"errors"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

var errBoom = errors.New("boom")

type fakeLeague struct {
	info         *models.LeagueInfo
	rosters      []models.Roster
	users        []models.User
	matchups     map[int][]models.MatchupEntry
	transactions map[int][]models.Transaction
	standings    []models.StandingRow
	scoreboard   []models.Matchup
	stats        map[string]*models.PlayerGameStat
	statErrs     map[string]error

	rostersErr  error
	matchupsErr error
	txErr       error

	matchupCalls []int
	txCalls      []int
	statCalls    []string
	statDates    []string
}

func (f *fakeLeague) GetLeagueInfo(ctx context.Context) (*models.LeagueInfo, error) {
	return f.info, nil
}

func (f *fakeLeague) GetRosters(ctx context.Context) ([]models.Roster, error) {
	return f.rosters, f.rostersErr
}

func (f *fakeLeague) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeLeague) GetMatchups(ctx context.Context, week int) ([]models.MatchupEntry, error) {
	f.matchupCalls = append(f.matchupCalls, week)
	if f.matchupsErr != nil {
		return nil, f.matchupsErr
	}
	return f.matchups[week], nil
}

func (f *fakeLeague) GetTransactions(ctx context.Context, week int) ([]models.Transaction, error) {
	f.txCalls = append(f.txCalls, week)
	if f.txErr != nil {
		return nil, f.txErr
	}
	return f.transactions[week], nil
}

func (f *fakeLeague) GetStandings(rosters []models.Roster, users []models.User) []models.StandingRow {
	return f.standings
}

func (f *fakeLeague) GetScoreboard(week int, rosters []models.Roster, matchups []models.MatchupEntry, users []models.User) []models.Matchup {
	return f.scoreboard
}

func (f *fakeLeague) GetPlayerStats(ctx context.Context, playerID, date string) (*models.PlayerGameStat, error) {
	f.statCalls = append(f.statCalls, playerID)
	f.statDates = append(f.statDates, date)
	if err := f.statErrs[playerID]; err != nil {
		return nil, err
	}
	return f.stats[playerID], nil
}
