package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeague(ctx context.Context, leagueID string) (*models.LeagueInfo, error) {
	var resp models.LeagueResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s", leagueID), &resp); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}
	return &models.LeagueInfo{
		LeagueID:     resp.LeagueID,
		Name:         resp.Name,
		Season:       resp.Season,
		Status:       resp.Status,
		TotalRosters: resp.TotalRosters,
	}, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var resp []models.RosterResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), &resp); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}

	rosters := make([]models.Roster, len(resp))
	for i, r := range resp {
		rosters[i] = models.Roster{
			RosterID:  r.RosterID,
			OwnerID:   r.OwnerID,
			Players:   r.Players,
			Wins:      r.Settings.Wins,
			Losses:    r.Settings.Losses,
			Ties:      r.Settings.Ties,
			PointsFor: float64(r.Settings.Fpts) + float64(r.Settings.FptsDecimal)/100,
		}
	}
	return rosters, nil
}

func (a *API) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var resp []models.UserResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/users", leagueID), &resp); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}

	users := make([]models.User, len(resp))
	for i, u := range resp {
		users[i] = models.User{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
			TeamName:    u.Metadata.TeamName,
		}
	}
	return users, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	var resp []models.MatchupResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), &resp); err != nil {
		return nil, fmt.Errorf("fetching matchups for week %d: %w", week, err)
	}

	entries := make([]models.MatchupEntry, len(resp))
	for i, m := range resp {
		entries[i] = models.MatchupEntry{RosterID: m.RosterID, Points: m.Points}
		if m.MatchupID != nil {
			entries[i].MatchupID = *m.MatchupID
		}
	}
	return entries, nil
}

func (a *API) GetTransactions(ctx context.Context, leagueID string, week int) ([]models.Transaction, error) {
	var resp []models.TransactionResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/transactions/%d", leagueID, week), &resp); err != nil {
		return nil, fmt.Errorf("fetching transactions for week %d: %w", week, err)
	}

	txs := make([]models.Transaction, len(resp))
	for i, tx := range resp {
		txs[i] = toTransaction(tx, week)
	}
	return txs, nil
}

// toTransaction normalizes a Sleeper transaction. A free agent move that only
// releases players is reported as a drop. When the feed carries no players
// list, dropped (and, for waivers, added) player IDs are used with unknown
// ownership.
func toTransaction(tx models.TransactionResponse, week int) models.Transaction {
	out := models.Transaction{Type: tx.Type, Week: tx.Week}
	if out.Week == 0 {
		out.Week = tx.Leg
	}
	if out.Week == 0 {
		out.Week = week
	}
	if tx.Type == models.TransactionFreeAgent && len(tx.Adds) == 0 && len(tx.Drops) > 0 {
		out.Type = models.TransactionDrop
	}

	if len(tx.Players) > 0 {
		out.Players = make([]models.PlayerTxInfo, 0, len(tx.Players))
		for _, p := range tx.Players {
			out.Players = append(out.Players, models.PlayerTxInfo{PlayerID: p.PlayerID, Ownership: p.Ownership})
		}
		return out
	}

	ids := sortedKeys(tx.Drops)
	if out.Type == models.TransactionWaiver {
		ids = append(ids, sortedKeys(tx.Adds)...)
	}
	for _, id := range ids {
		out.Players = append(out.Players, models.PlayerTxInfo{PlayerID: id})
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetPlayerStats returns one player's stat line for date (YYYY-MM-DD). A
// player with no line for the day yields nil and no error.
func (a *API) GetPlayerStats(ctx context.Context, playerID, date string) (*models.PlayerGameStat, error) {
	var resp map[string]json.RawMessage
	if err := a.client.Get(ctx, fmt.Sprintf("/stats/nfl/regular/%s", date), &resp); err != nil {
		return nil, fmt.Errorf("fetching stats for %s: %w", date, err)
	}

	raw, ok := resp[playerID]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var line map[string]float64
	if err := json.Unmarshal(raw, &line); err != nil {
		return nil, &FetchError{Op: "stats " + playerID, Err: fmt.Errorf("error decoding stat line: %w", err)}
	}
	if len(line) == 0 {
		return nil, nil
	}

	return &models.PlayerGameStat{
		PlayerID:      playerID,
		Touchdowns:    int(line["touchdowns"]),
		Fumbles:       int(line["fumbles"]),
		Interceptions: int(line["interceptions"]),
	}, nil
}

// Standings joins rosters with their owners and ranks them by wins, then
// points for.
func Standings(rosters []models.Roster, users []models.User) []models.StandingRow {
	names := teamNames(rosters, users)

	ranked := make([]models.Roster, len(rosters))
	copy(ranked, rosters)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].PointsFor > ranked[j].PointsFor
	})

	rows := make([]models.StandingRow, len(ranked))
	for i, r := range ranked {
		rows[i] = models.StandingRow{
			Name:      names[r.RosterID],
			Wins:      r.Wins,
			Losses:    r.Losses,
			PointsFor: int(r.PointsFor),
		}
	}
	return rows
}

// Scoreboard pairs the week's entries by matchup ID, ordered by matchup ID.
// Byes and unpaired entries are left out.
func Scoreboard(week int, rosters []models.Roster, entries []models.MatchupEntry, users []models.User) []models.Matchup {
	names := teamNames(rosters, users)

	grouped := make(map[int][]models.MatchupEntry)
	var ids []int
	for _, e := range entries {
		if e.MatchupID == 0 {
			continue
		}
		if _, seen := grouped[e.MatchupID]; !seen {
			ids = append(ids, e.MatchupID)
		}
		grouped[e.MatchupID] = append(grouped[e.MatchupID], e)
	}
	sort.Ints(ids)

	matchups := make([]models.Matchup, 0, len(ids))
	for _, id := range ids {
		pair := grouped[id]
		if len(pair) < 2 {
			continue
		}
		matchups = append(matchups, models.Matchup{
			Week:     week,
			HomeTeam: models.TeamRef{Name: teamName(names, pair[0].RosterID), Points: pair[0].Points},
			AwayTeam: models.TeamRef{Name: teamName(names, pair[1].RosterID), Points: pair[1].Points},
		})
	}
	return matchups
}

func teamNames(rosters []models.Roster, users []models.User) map[int]string {
	byUser := make(map[string]models.User, len(users))
	for _, u := range users {
		byUser[u.UserID] = u
	}

	names := make(map[int]string, len(rosters))
	for _, r := range rosters {
		u, ok := byUser[r.OwnerID]
		switch {
		case ok && u.TeamName != "":
			names[r.RosterID] = u.TeamName
		case ok && u.DisplayName != "":
			names[r.RosterID] = u.DisplayName
		default:
			names[r.RosterID] = "Team " + strconv.Itoa(r.RosterID)
		}
	}
	return names
}

func teamName(names map[int]string, rosterID int) string {
	if name, ok := names[rosterID]; ok {
		return name
	}
	return "Team " + strconv.Itoa(rosterID)
}
