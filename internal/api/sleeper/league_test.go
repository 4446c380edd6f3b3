package sleeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

func newTestAPI(t *testing.T, routes map[string]string) *API {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewAPI(NewClient(config.Sleeper{BaseURL: srv.URL, RequestsPerMinute: 60000}))
}

func TestGetRostersAndUsers(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/league/L1/rosters": `[{"roster_id":1,"owner_id":"u1","players":["4034","6794"],"settings":{"wins":3,"losses":1,"fpts":512,"fpts_decimal":34}}]`,
		"/league/L1/users":   `[{"user_id":"u1","display_name":"omar","metadata":{"team_name":"Coach Dad"}}]`,
	})

	rosters, err := api.GetRosters(context.Background(), "L1")
	require.NoError(t, err)
	require.Len(t, rosters, 1)
	assert.Equal(t, "u1", rosters[0].OwnerID)
	assert.Equal(t, []string{"4034", "6794"}, rosters[0].Players)
	assert.InDelta(t, 512.34, rosters[0].PointsFor, 0.001)

	users, err := api.GetUsers(context.Background(), "L1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Coach Dad", users[0].TeamName)
}

func TestGetMatchupsNullBody(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/league/L1/matchups/3": `null`,
		"/league/L1/matchups/2": `[{"roster_id":1,"matchup_id":1,"points":101.5},{"roster_id":2,"matchup_id":null,"points":0}]`,
	})

	entries, err := api.GetMatchups(context.Background(), "L1", 3)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = api.GetMatchups(context.Background(), "L1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].MatchupID)
	assert.Equal(t, 0, entries[1].MatchupID)
}

func TestGetMatchupsStatusError(t *testing.T) {
	api := newTestAPI(t, map[string]string{})

	_, err := api.GetMatchups(context.Background(), "L1", 1)
	require.Error(t, err)

	fetchErr, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestGetMatchupsMalformedBody(t *testing.T) {
	api := newTestAPI(t, map[string]string{"/league/L1/matchups/1": `{"oops":`})

	_, err := api.GetMatchups(context.Background(), "L1", 1)
	_, ok := AsFetchError(err)
	assert.True(t, ok)
}

func TestGetTransactions(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/league/L1/transactions/5": `[
			{"type":"waiver","week":5,"players":[{"player_id":"123","ownership":85.0}]},
			{"type":"free_agent","leg":5,"drops":{"9":1,"10":1}},
			{"type":"waiver","leg":5,"adds":{"77":2},"drops":{"12":2}},
			{"type":"trade","leg":5,"adds":{"1":1},"drops":{"2":2}}
		]`,
	})

	txs, err := api.GetTransactions(context.Background(), "L1", 5)
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, models.Transaction{Type: "waiver", Week: 5, Players: []models.PlayerTxInfo{{PlayerID: "123", Ownership: 85}}}, txs[0])

	assert.Equal(t, "drop", txs[1].Type)
	assert.Equal(t, []models.PlayerTxInfo{{PlayerID: "10"}, {PlayerID: "9"}}, txs[1].Players)

	assert.Equal(t, "waiver", txs[2].Type)
	assert.Equal(t, []models.PlayerTxInfo{{PlayerID: "12"}, {PlayerID: "77"}}, txs[2].Players)

	assert.Equal(t, "trade", txs[3].Type)
	assert.Equal(t, []models.PlayerTxInfo{{PlayerID: "2"}}, txs[3].Players)
}

func TestGetPlayerStats(t *testing.T) {
	api := newTestAPI(t, map[string]string{
		"/stats/nfl/regular/2026-10-11": `{
			"4034": {"touchdowns": 2, "fumbles": 0, "pts_ppr": 31.4},
			"6794": {},
			"111": {"touchdowns": "two"}
		}`,
	})
	ctx := context.Background()

	stat, err := api.GetPlayerStats(ctx, "4034", "2026-10-11")
	require.NoError(t, err)
	assert.Equal(t, &models.PlayerGameStat{PlayerID: "4034", Touchdowns: 2}, stat)

	stat, err = api.GetPlayerStats(ctx, "6794", "2026-10-11")
	require.NoError(t, err)
	assert.Nil(t, stat)

	stat, err = api.GetPlayerStats(ctx, "none", "2026-10-11")
	require.NoError(t, err)
	assert.Nil(t, stat)

	_, err = api.GetPlayerStats(ctx, "111", "2026-10-11")
	assert.Error(t, err)
}

func TestStandings(t *testing.T) {
	rosters := []models.Roster{
		{RosterID: 1, OwnerID: "u1", Wins: 2, Losses: 2, PointsFor: 400.9},
		{RosterID: 2, OwnerID: "u2", Wins: 3, Losses: 1, PointsFor: 380},
		{RosterID: 3, OwnerID: "u3", Wins: 2, Losses: 2, PointsFor: 450},
		{RosterID: 4, Wins: 0, Losses: 4, PointsFor: 300},
	}
	users := []models.User{
		{UserID: "u1", DisplayName: "one"},
		{UserID: "u2", DisplayName: "two", TeamName: "Team Two"},
		{UserID: "u3", DisplayName: "three"},
	}

	rows := Standings(rosters, users)
	assert.Equal(t, []models.StandingRow{
		{Name: "Team Two", Wins: 3, Losses: 1, PointsFor: 380},
		{Name: "three", Wins: 2, Losses: 2, PointsFor: 450},
		{Name: "one", Wins: 2, Losses: 2, PointsFor: 400},
		{Name: "Team 4", Wins: 0, Losses: 4, PointsFor: 300},
	}, rows)
	assert.Equal(t, 1, rosters[0].RosterID, "input order untouched")
}

func TestScoreboard(t *testing.T) {
	rosters := []models.Roster{{RosterID: 1, OwnerID: "u1"}, {RosterID: 2, OwnerID: "u2"}, {RosterID: 3}, {RosterID: 4}, {RosterID: 5}}
	users := []models.User{{UserID: "u1", TeamName: "A"}, {UserID: "u2", TeamName: "B"}}
	entries := []models.MatchupEntry{
		{RosterID: 3, MatchupID: 2, Points: 90},
		{RosterID: 1, MatchupID: 1, Points: 120.5},
		{RosterID: 5, MatchupID: 0, Points: 0},
		{RosterID: 2, MatchupID: 1, Points: 99.25},
		{RosterID: 4, MatchupID: 2, Points: 88},
	}

	matchups := Scoreboard(7, rosters, entries, users)
	assert.Equal(t, []models.Matchup{
		{Week: 7, HomeTeam: models.TeamRef{Name: "A", Points: 120.5}, AwayTeam: models.TeamRef{Name: "B", Points: 99.25}},
		{Week: 7, HomeTeam: models.TeamRef{Name: "Team 3", Points: 90}, AwayTeam: models.TeamRef{Name: "Team 4", Points: 88}},
	}, matchups)
}
