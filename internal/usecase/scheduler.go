package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ActionCountdown/internal/ports"
)

// Job is one scheduled unit of work, e.g. a static export.
type Job func(ctx context.Context, trigger time.Time) error

// Scheduler wires the ticker driver with a recurring job.
type Scheduler struct {
	driver ports.Scheduler
	job    Job
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring jobs.
func NewScheduler(driver ports.Scheduler, job Job, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{driver: driver, job: job, logger: logger}
}

// Start registers the job with the provided scheduler. Job failures are logged
// and the next tick runs regardless.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.job == nil {
		return nil
	}

	run := func(trigger time.Time) {
		if err := s.job(ctx, trigger); err != nil {
			s.logger.Error("scheduled job failed", "trigger", trigger.Format(time.RFC3339), "error", err)
			return
		}
		s.logger.Debug("scheduled job done", "trigger", trigger.Format(time.RFC3339))
	}

	return s.driver.Start(ctx, run)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
