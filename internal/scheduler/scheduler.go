package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

// AlertRunner runs one alert mode end to end.
type AlertRunner interface {
	Run(ctx context.Context, mode string, userID string) ([]models.Alert, error)
}

type Scheduler struct {
	s        gocron.Scheduler
	runner   AlertRunner
	schedule config.Schedule
	userID   string
	ctx      context.Context
}

func NewScheduler(ctx context.Context, runner AlertRunner, schedule config.Schedule, userID string, location *time.Location, clock clockwork.Clock) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}
	opts := []gocron.SchedulerOption{gocron.WithLocation(location)}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		runner:   runner,
		schedule: schedule,
		userID:   userID,
		ctx:      ctx,
	}, nil
}

// Start registers a job for every non-empty cron spec and starts the
// scheduler.
func (s *Scheduler) Start() error {
	jobs := []struct {
		mode service.Mode
		spec string
	}{
		{service.ModeWeekly, s.schedule.Weekly},
		{service.ModeDaily, s.schedule.Daily},
		{service.ModeLive, s.schedule.Live},
	}

	for _, job := range jobs {
		if strings.TrimSpace(job.spec) == "" {
			slog.Info("Job disabled", "alert_type", job.mode)
			continue
		}
		if err := config.ValidateCron(job.spec); err != nil {
			return fmt.Errorf("failed to create %s job: %w", job.mode, err)
		}

		_, err := s.s.NewJob(
			gocron.CronJob(job.spec, false),
			gocron.NewTask(s.runMode, job.mode),
			gocron.WithName(string(job.mode)),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", job.mode, err)
		}
		slog.Info("Job scheduled", "alert_type", job.mode, "cron", job.spec)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// Jobs lists the names of the registered jobs.
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.s.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) runMode(mode service.Mode) {
	alerts, err := s.runner.Run(s.ctx, string(mode), s.userID)
	if err != nil {
		slog.Error("Failed to run alerts", "alert_type", mode, "error", err)
		return
	}
	slog.Info("Scheduled run finished", "alert_type", mode, "alerts", len(alerts))
}
