package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the reminder service on a cron schedule: one daily
// dispatch at the configured hour and an hourly early-reminder sweep.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	logger  *slog.Logger
}

// NewScheduler wires the service's dispatch methods into cron entries.
// The daily job fires at hour:minute in loc; the early-reminder job
// fires at the top of every hour.
func NewScheduler(service *Service, loc *time.Location, hour, minute int, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := cron.New(cron.WithLocation(loc))

	dailySpec := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := c.AddFunc(dailySpec, func() {
		if err := service.SendDailyReminders(context.Background()); err != nil {
			logger.Error("daily reminder run failed", slog.Any("error", err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule daily reminders: %w", err)
	}

	if _, err := c.AddFunc("0 * * * *", func() {
		if err := service.SendEarlyReminders(context.Background()); err != nil {
			logger.Error("early reminder run failed", slog.Any("error", err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule early reminders: %w", err)
	}

	return &Scheduler{cron: c, service: service, logger: logger}, nil
}

// Start begins scheduling in a background goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("reminder scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for any running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}
