package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler runs SendRemindersUseCase on a fixed interval.
type Scheduler struct {
	useCase  *SendRemindersUseCase
	interval time.Duration
}

// NewScheduler creates a new reminder scheduler.
func NewScheduler(useCase *SendRemindersUseCase, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{useCase: useCase, interval: interval}
}

// Start runs a pass immediately and then on every tick. It blocks until the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Reminder scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder scheduler shutting down")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	out, err := s.useCase.Execute(ctx)
	if err != nil {
		slog.Error("Reminder run failed", "error", err)
		return
	}
	slog.Info("Reminder run finished",
		"bucket_id", out.BucketID,
		"checked", out.Checked,
		"missing", out.Missing,
		"queued", out.Queued,
		"already_sent", out.AlreadySent,
		"failed", out.Failed,
	)
}
