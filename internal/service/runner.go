package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/logging"
	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/notify"
	"github.com/omarshaarawi/sleeperbot/internal/repository/snapshot"
)

type Mode string

const (
	ModeWeekly Mode = "weekly"
	ModeDaily  Mode = "daily"
	ModeLive   Mode = "live"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeWeekly, ModeDaily, ModeLive:
		return m, nil
	default:
		return "", &config.ConfigurationError{Field: "ALERT_TYPE", Err: fmt.Errorf("unknown alert type %q", s)}
	}
}

// SnapshotSaver persists a run snapshot.
type SnapshotSaver interface {
	Save(s snapshot.Snapshot) (string, error)
}

type Runner struct {
	service    *FantasyService
	dispatcher *notify.Dispatcher
	logs       *logging.Registry
	snapshots  SnapshotSaver
}

// NewRunner wires the pipeline. snapshots may be nil to skip snapshots.
func NewRunner(svc *FantasyService, dispatcher *notify.Dispatcher, logs *logging.Registry, snapshots SnapshotSaver) *Runner {
	return &Runner{service: svc, dispatcher: dispatcher, logs: logs, snapshots: snapshots}
}

// Build produces the alerts for mode without dispatching them.
func (r *Runner) Build(ctx context.Context, mode Mode, userID string) ([]models.Alert, error) {
	alerts, _, err := r.build(ctx, mode, userID, r.logger(mode))
	return alerts, err
}

// Run builds the alerts for mode, dispatches them and writes a snapshot when
// enabled. Fetch errors are returned for the caller to log.
func (r *Runner) Run(ctx context.Context, mode string, userID string) ([]models.Alert, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	logger := r.logger(m)

	alerts, lastWeek, err := r.build(ctx, m, userID, logger)
	if err != nil {
		return nil, err
	}

	res := r.dispatcher.DispatchWith(logger, alerts)
	if res.Sent > 0 {
		logger.Info("Alerts sent successfully", "count", res.Sent)
	} else if len(alerts) == 0 {
		logger.Info("No alerts generated", "alert_type", m)
	}

	if r.snapshots != nil {
		r.saveSnapshot(ctx, logger, lastWeek, alerts)
	}

	return alerts, nil
}

func (r *Runner) build(ctx context.Context, mode Mode, userID string, logger *slog.Logger) ([]models.Alert, int, error) {
	svc := r.service.WithLogger(logger)

	switch mode {
	case ModeWeekly, ModeDaily:
		lastWeek, err := svc.LastPlayedWeek(ctx)
		if err != nil {
			return nil, 0, err
		}
		logger.Info("Building alerts", "alert_type", mode, "last_week", lastWeek)

		var alerts []models.Alert
		if mode == ModeWeekly {
			alerts, err = svc.WeeklyAlerts(ctx, lastWeek)
		} else {
			alerts, err = svc.DailyAlerts(ctx, lastWeek)
		}
		return alerts, lastWeek, err
	case ModeLive:
		if userID == "" {
			logger.Warn("SLEEPER_USER_ID not set, live alerts disabled")
			return []models.Alert{}, 0, nil
		}
		logger.Info("Building alerts", "alert_type", mode, "user_id", userID)
		alerts, err := svc.LiveGameAlerts(ctx, userID)
		return alerts, 0, err
	default:
		return nil, 0, &config.ConfigurationError{Field: "ALERT_TYPE", Err: fmt.Errorf("unknown alert type %q", mode)}
	}
}

func (r *Runner) saveSnapshot(ctx context.Context, logger *slog.Logger, lastWeek int, alerts []models.Alert) {
	svc := r.service.WithLogger(logger)
	snap, err := svc.CollectSnapshot(ctx, lastWeek, alerts)
	if err != nil {
		logger.Error("Error collecting snapshot", "error", err)
		return
	}
	path, err := r.snapshots.Save(snap)
	if err != nil {
		logger.Error("Error saving snapshot", "error", err)
		return
	}
	logger.Info("League data saved", "path", path)
}

func (r *Runner) logger(mode Mode) *slog.Logger {
	if r.logs == nil {
		return r.service.logger
	}
	return r.logs.Logger(string(mode))
}

// CollectSnapshot gathers league info, the results of lastWeek, every
// transaction up to lastWeek and the current standings. lastWeek is
// resolved when zero.
func (s *FantasyService) CollectSnapshot(ctx context.Context, lastWeek int, alerts []models.Alert) (snapshot.Snapshot, error) {
	var snap snapshot.Snapshot

	if lastWeek == 0 {
		week, err := s.LastPlayedWeek(ctx)
		if err != nil {
			return snap, err
		}
		lastWeek = week
	}

	info, err := s.league.GetLeagueInfo(ctx)
	if err != nil {
		return snap, fmt.Errorf("error fetching league info: %w", err)
	}
	rosters, err := s.league.GetRosters(ctx)
	if err != nil {
		return snap, fmt.Errorf("error fetching rosters: %w", err)
	}
	users, err := s.league.GetUsers(ctx)
	if err != nil {
		return snap, fmt.Errorf("error fetching users: %w", err)
	}
	entries, err := s.league.GetMatchups(ctx, lastWeek)
	if err != nil {
		return snap, fmt.Errorf("error fetching matchups: %w", err)
	}
	txs, err := s.FetchAllTransactions(ctx, lastWeek)
	if err != nil {
		return snap, err
	}

	snap.LeagueInfo = info
	snap.Matchups = s.league.GetScoreboard(lastWeek, rosters, entries, users)
	snap.Transactions = txs
	snap.Standings = s.league.GetStandings(rosters, users)
	snap.Alerts = alerts
	return snap, nil
}
