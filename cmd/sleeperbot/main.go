package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/sleeperbot/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperbot/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperbot/internal/bot"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/logging"
	"github.com/omarshaarawi/sleeperbot/internal/notify"
	"github.com/omarshaarawi/sleeperbot/internal/repository/snapshot"
	"github.com/omarshaarawi/sleeperbot/internal/scheduler"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Error loading .env file", "error", err)
	}

	root := &cobra.Command{
		Use:           "sleeperbot",
		Short:         "Relay Sleeper league alerts to Telegram (mode from ALERT_TYPE)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runOnce(cmd.Context())
			return nil
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "bot",
		Short: "Answer standings and alert requests in Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "schedule",
		Short: "Run weekly, daily and live alerts on their cron schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd.Context())
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	logs   *logging.Registry
	runner *service.Runner
	tg     *bot.TelegramBot
}

func newApp(withHandler bool) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	logs := logging.NewRegistry(cfg.LogDir, os.Stdout)

	sleeperAPI := sleeper.NewAPI(sleeper.NewClient(cfg.Sleeper))
	league := fantasy.NewLeague(sleeperAPI, cfg.Sleeper.LeagueID)
	fantasyService := service.NewFantasyService(league, clockwork.NewRealClock(), cfg.Threshold, slog.Default())

	a := &app{cfg: cfg, logs: logs}

	var sender notify.Sender
	if cfg.TelegramBot.Token != "" {
		tg, err := bot.NewTelegramBot(cfg.TelegramBot, nil)
		if err != nil {
			slog.Error("Error connecting to Telegram", "error", err)
		} else {
			a.tg = tg
			if cfg.TelegramBot.HasTelegram() {
				sender = tg
			}
		}
	}

	var snapshots service.SnapshotSaver
	if cfg.SnapshotDir != "" {
		snapshots = snapshot.NewRepository(cfg.SnapshotDir, time.Now)
	}

	a.runner = service.NewRunner(fantasyService, notify.NewDispatcher(sender, slog.Default()), logs, snapshots)

	if withHandler {
		if a.tg == nil {
			return nil, &config.ConfigurationError{Field: "TELEGRAM_BOT_TOKEN", Err: errors.New("bot mode needs working Telegram credentials")}
		}
		a.tg.SetHandler(bot.NewHandler(a.runner, cfg.Sleeper.UserID))
	}

	return a, nil
}

// runOnce never fails the process: errors are logged and the exit code is 0.
func runOnce(ctx context.Context) {
	a, err := newApp(false)
	if err != nil {
		slog.Error("Error while running alert handler", "error", err)
		return
	}
	defer a.logs.Close()

	if a.cfg.Sleeper.UserID == "" {
		slog.Warn("SLEEPER_USER_ID not set. Some features may be limited.")
	}

	if _, err := a.runner.Run(ctx, a.cfg.AlertType, a.cfg.Sleeper.UserID); err != nil {
		slog.Error("Error while running alert handler", "alert_type", a.cfg.AlertType, "error", err)
	}
}

func runBot(ctx context.Context) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.logs.Close()

	slog.Info("Telegram interactive bot is running")
	return a.tg.Start(ctx)
}

func runSchedule(ctx context.Context) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.logs.Close()

	sched, err := scheduler.NewScheduler(ctx, a.runner, a.cfg.Schedule, a.cfg.Sleeper.UserID, a.cfg.Location(), nil)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	srv := &http.Server{Addr: a.cfg.HealthAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
