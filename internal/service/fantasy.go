package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

const DefaultOwnershipThreshold = 70.0

var ErrRosterNotFound = errors.New("roster not found")

// League is the league-scoped data surface consumed by the alert builders.
type League interface {
	MatchupFetcher
	GetLeagueInfo(ctx context.Context) (*models.LeagueInfo, error)
	GetRosters(ctx context.Context) ([]models.Roster, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetTransactions(ctx context.Context, week int) ([]models.Transaction, error)
	GetStandings(rosters []models.Roster, users []models.User) []models.StandingRow
	GetScoreboard(week int, rosters []models.Roster, matchups []models.MatchupEntry, users []models.User) []models.Matchup
	GetPlayerStats(ctx context.Context, playerID, date string) (*models.PlayerGameStat, error)
}

type FantasyService struct {
	league    League
	clock     clockwork.Clock
	threshold float64
	logger    *slog.Logger
}

func NewFantasyService(league League, clock clockwork.Clock, threshold float64, logger *slog.Logger) *FantasyService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FantasyService{league: league, clock: clock, threshold: threshold, logger: logger}
}

// WithLogger returns a copy of the service that logs to logger.
func (s *FantasyService) WithLogger(logger *slog.Logger) *FantasyService {
	c := *s
	c.logger = logger
	return &c
}

func StandingsMessage(rows []models.StandingRow) string {
	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings:*\n")
	for i, team := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s (%d-%d)\n", i+1, team.Name, team.Wins, team.Losses))
	}
	return sb.String()
}

func MatchupsMessage(matchups []models.Matchup, week int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚔️ *Week %d Results:*\n", week))
	for _, m := range matchups {
		sb.WriteString(fmt.Sprintf("%s %.2f - %.2f %s\n", m.HomeTeam.Name, m.HomeTeam.Points, m.AwayTeam.Points, m.AwayTeam.Name))
	}
	return sb.String()
}

// WeeklyAlerts returns the standings message followed by the results of
// lastWeek.
func (s *FantasyService) WeeklyAlerts(ctx context.Context, lastWeek int) ([]models.Alert, error) {
	rosters, err := s.league.GetRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching rosters: %w", err)
	}
	users, err := s.league.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	entries, err := s.league.GetMatchups(ctx, lastWeek)
	if err != nil {
		return nil, fmt.Errorf("error fetching matchups: %w", err)
	}

	standings := s.league.GetStandings(rosters, users)
	scoreboard := s.league.GetScoreboard(lastWeek, rosters, entries, users)

	s.logger.Info("Weekly summary", "teams", len(standings), "matchups", len(scoreboard), "week", lastWeek)
	return []models.Alert{
		models.NewMessageAlert(StandingsMessage(standings)),
		models.NewMessageAlert(MatchupsMessage(scoreboard, lastWeek)),
	}, nil
}

// FetchAllTransactions collects transactions for weeks 1 through lastWeek.
func (s *FantasyService) FetchAllTransactions(ctx context.Context, lastWeek int) ([]models.Transaction, error) {
	var all []models.Transaction
	for week := 1; week <= lastWeek; week++ {
		txs, err := s.league.GetTransactions(ctx, week)
		if err != nil {
			return nil, fmt.Errorf("error fetching transactions: %w", err)
		}
		all = append(all, txs...)
	}
	return all, nil
}

// HighOwnershipAlerts emits one alert per dropped or waived player whose
// ownership is at least threshold.
func HighOwnershipAlerts(txs []models.Transaction, threshold float64) []models.Alert {
	var alerts []models.Alert
	for _, tx := range txs {
		if tx.Type != models.TransactionDrop && tx.Type != models.TransactionWaiver {
			continue
		}
		for _, p := range tx.Players {
			if p.PlayerID == "" || p.Ownership < threshold {
				continue
			}
			alerts = append(alerts, models.NewOwnershipAlert(models.OwnershipEvent{
				PlayerID:  p.PlayerID,
				Ownership: p.Ownership,
				Type:      tx.Type,
				Week:      tx.Week,
			}))
		}
	}
	return alerts
}

func (s *FantasyService) DailyAlerts(ctx context.Context, lastWeek int) ([]models.Alert, error) {
	txs, err := s.FetchAllTransactions(ctx, lastWeek)
	if err != nil {
		return nil, err
	}

	alerts := HighOwnershipAlerts(txs, s.threshold)
	s.logger.Info("High ownership moves", "transactions", len(txs), "alerts", len(alerts), "threshold", s.threshold)
	return alerts, nil
}

// LiveGameAlerts reports today's touchdowns, fumbles and interceptions for
// the players on userID's roster. A missing roster yields no alerts.
func (s *FantasyService) LiveGameAlerts(ctx context.Context, userID string) ([]models.Alert, error) {
	rosters, err := s.league.GetRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching rosters: %w", err)
	}

	var roster *models.Roster
	for i := range rosters {
		if rosters[i].OwnerID == userID {
			roster = &rosters[i]
			break
		}
	}
	if roster == nil {
		s.logger.Warn("No roster found for user", "user_id", userID, "error", ErrRosterNotFound)
		return []models.Alert{}, nil
	}

	date := s.clock.Now().Format("2006-01-02")
	var alerts []models.Alert
	for _, playerID := range roster.Players {
		stat, err := s.league.GetPlayerStats(ctx, playerID, date)
		if err != nil {
			s.logger.Warn("Skipping player stats", "player_id", playerID, "date", date, "error", err)
			continue
		}
		if stat == nil {
			continue
		}
		if stat.Touchdowns > 0 || stat.Fumbles > 0 || stat.Interceptions > 0 {
			alerts = append(alerts, models.NewLiveStatAlert(models.LiveStatEvent{
				PlayerID:      playerID,
				Touchdowns:    stat.Touchdowns,
				Fumbles:       stat.Fumbles,
				Interceptions: stat.Interceptions,
			}))
		}
	}

	s.logger.Info("Live game scan", "players", len(roster.Players), "alerts", len(alerts), "date", date)
	return alerts, nil
}
