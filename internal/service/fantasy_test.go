package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

func newTestService(league *fakeLeague) *FantasyService {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 11, 15, 0, 0, 0, time.UTC))
	return NewFantasyService(league, clock, DefaultOwnershipThreshold, nil)
}

func TestStandingsMessage(t *testing.T) {
	msg := StandingsMessage([]models.StandingRow{
		{Name: "A", Wins: 3, Losses: 1},
		{Name: "B", Wins: 2, Losses: 2},
	})

	assert.Equal(t, "🏆 *Current Standings:*\n1. A (3-1)\n2. B (2-2)\n", msg)
}

func TestMatchupsMessage(t *testing.T) {
	msg := MatchupsMessage([]models.Matchup{
		{Week: 4, HomeTeam: models.TeamRef{Name: "A", Points: 120.5}, AwayTeam: models.TeamRef{Name: "B", Points: 99}},
	}, 4)

	assert.Equal(t, "⚔️ *Week 4 Results:*\nA 120.50 - 99.00 B\n", msg)
}

func TestWeeklyAlertsAlwaysTwo(t *testing.T) {
	tests := []struct {
		name       string
		standings  []models.StandingRow
		scoreboard []models.Matchup
	}{
		{name: "empty league"},
		{
			name:       "full league",
			standings:  []models.StandingRow{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}},
			scoreboard: []models.Matchup{{Week: 2}, {Week: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			league := &fakeLeague{standings: tt.standings, scoreboard: tt.scoreboard}

			alerts, err := newTestService(league).WeeklyAlerts(context.Background(), 2)
			require.NoError(t, err)
			require.Len(t, alerts, 2)
			assert.Contains(t, alerts[0].Message, "Current Standings")
			assert.Contains(t, alerts[1].Message, "Week 2 Results")
			assert.Equal(t, []int{2}, league.matchupCalls)
		})
	}
}

func TestWeeklyAlertsPropagatesRosterError(t *testing.T) {
	league := &fakeLeague{rostersErr: errBoom}

	_, err := newTestService(league).WeeklyAlerts(context.Background(), 2)
	assert.ErrorIs(t, err, errBoom)
}

func TestHighOwnershipAlertsThreshold(t *testing.T) {
	tests := []struct {
		ownership float64
		included  bool
	}{
		{70, true},
		{69.999, false},
		{100, true},
		{0, false},
	}

	for _, tt := range tests {
		txs := []models.Transaction{{Type: "drop", Week: 1, Players: []models.PlayerTxInfo{{PlayerID: "p", Ownership: tt.ownership}}}}
		alerts := HighOwnershipAlerts(txs, DefaultOwnershipThreshold)
		assert.Equal(t, tt.included, len(alerts) == 1, "ownership %v", tt.ownership)
	}
}

func TestHighOwnershipAlertsFiltersAndOrders(t *testing.T) {
	txs := []models.Transaction{
		{Type: "trade", Week: 1, Players: []models.PlayerTxInfo{{PlayerID: "t1", Ownership: 99}}},
		{Type: "waiver", Week: 1, Players: []models.PlayerTxInfo{
			{PlayerID: "w1", Ownership: 90},
			{PlayerID: "w2", Ownership: 10},
			{PlayerID: "w3", Ownership: 75},
		}},
		{Type: "drop", Week: 2, Players: []models.PlayerTxInfo{{PlayerID: "", Ownership: 95}, {PlayerID: "d1", Ownership: 71}}},
		{Type: "drop", Week: 3},
	}

	alerts := HighOwnershipAlerts(txs, DefaultOwnershipThreshold)
	require.Len(t, alerts, 3)

	var ids []string
	for _, a := range alerts {
		assert.Equal(t, models.AlertOwnership, a.Kind)
		ids = append(ids, a.Ownership.PlayerID)
	}
	assert.Equal(t, []string{"w1", "w3", "d1"}, ids)
	assert.Equal(t, 2, alerts[2].Ownership.Week)
}

func TestDailyAlerts(t *testing.T) {
	league := &fakeLeague{transactions: map[int][]models.Transaction{
		5: {{Type: "waiver", Week: 5, Players: []models.PlayerTxInfo{{PlayerID: "123", Ownership: 85.0}}}},
	}}

	alerts, err := newTestService(league).DailyAlerts(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, []models.Alert{models.NewOwnershipAlert(models.OwnershipEvent{
		PlayerID:  "123",
		Ownership: 85.0,
		Type:      "waiver",
		Week:      5,
	})}, alerts)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, league.txCalls)
}

func TestDailyAlertsPropagatesFetchError(t *testing.T) {
	league := &fakeLeague{txErr: errBoom}

	_, err := newTestService(league).DailyAlerts(context.Background(), 3)
	assert.ErrorIs(t, err, errBoom)
}

func TestLiveGameAlerts(t *testing.T) {
	league := &fakeLeague{
		rosters: []models.Roster{
			{RosterID: 1, OwnerID: "other", Players: []string{"x"}},
			{RosterID: 2, OwnerID: "me", Players: []string{"td", "quiet", "missing", "broken", "int"}},
		},
		stats: map[string]*models.PlayerGameStat{
			"td":    {PlayerID: "td", Touchdowns: 2},
			"quiet": {PlayerID: "quiet"},
			"int":   {PlayerID: "int", Interceptions: 1, Fumbles: 1},
		},
		statErrs: map[string]error{"broken": errBoom},
	}

	alerts, err := newTestService(league).LiveGameAlerts(context.Background(), "me")
	require.NoError(t, err)

	assert.Equal(t, []string{"td", "quiet", "missing", "broken", "int"}, league.statCalls)
	assert.Equal(t, "2026-10-11", league.statDates[0])
	require.Len(t, alerts, 2)
	assert.Equal(t, models.LiveStatEvent{PlayerID: "td", Touchdowns: 2}, *alerts[0].LiveStat)
	assert.Equal(t, models.LiveStatEvent{PlayerID: "int", Fumbles: 1, Interceptions: 1}, *alerts[1].LiveStat)
}

func TestLiveGameAlertsRosterNotFound(t *testing.T) {
	league := &fakeLeague{rosters: []models.Roster{{RosterID: 1, OwnerID: "other"}}}

	alerts, err := newTestService(league).LiveGameAlerts(context.Background(), "me")
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Empty(t, league.statCalls)
}

func TestLiveGameAlertsPropagatesRosterError(t *testing.T) {
	league := &fakeLeague{rostersErr: errBoom}

	_, err := newTestService(league).LiveGameAlerts(context.Background(), "me")
	assert.ErrorIs(t, err, errBoom)
}
