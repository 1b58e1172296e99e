package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/email/templates"
)

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	RetentionDays int // delivered reminders older than this are purged; 0 keeps them
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:  5 * time.Second,
		BatchSize:     10,
		RetentionDays: 30,
	}
}

// Worker drains the reminder outbox through an EmailSender.
type Worker struct {
	outbox   adapter.ReminderOutbox
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   WorkerConfig
	now      func() time.Time
}

// NewWorker creates a new email worker.
func NewWorker(outbox adapter.ReminderOutbox, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultWorkerConfig().BatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultWorkerConfig().PollInterval
	}
	return &Worker{
		outbox:   outbox,
		sender:   sender,
		renderer: renderer,
		config:   config,
		now:      time.Now,
	}
}

// Start polls the outbox until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	poll := time.NewTicker(w.config.PollInterval)
	defer poll.Stop()
	purge := time.NewTicker(24 * time.Hour)
	defer purge.Stop()

	w.purge(ctx)
	w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-poll.C:
			w.drain(ctx)
		case <-purge.C:
			w.purge(ctx)
		}
	}
}

// ProcessNow delivers one batch of due reminders synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drain(ctx)
}

func (w *Worker) drain(ctx context.Context) {
	due, err := w.outbox.ClaimDue(ctx, w.now(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to claim reminder emails", "error", err)
		return
	}

	for i, reminder := range due {
		if ctx.Err() != nil {
			w.release(ctx, due[i:])
			return
		}
		w.deliver(ctx, reminder)
	}
}

// release hands back claims the worker will not get to before shutdown.
func (w *Worker) release(ctx context.Context, pending []*entity.ReminderEmail) {
	if err := w.outbox.Release(context.WithoutCancel(ctx), pending...); err != nil {
		slog.Error("Failed to release claimed reminders", "count", len(pending), "error", err)
		return
	}
	slog.Info("Released claimed reminders", "count", len(pending))
}

func (w *Worker) deliver(ctx context.Context, reminder *entity.ReminderEmail) {
	logger := slog.With(
		"reminder_id", reminder.ID,
		"facility_id", reminder.FacilityID,
		"bucket_id", reminder.BucketID,
	)

	html, text, err := w.renderer.SubmissionReminder(reminder.Reminder)
	if err != nil {
		err = domainerror.NewNotificationError(domainerror.ErrCodeReminderRenderFailed, "failed to render reminder", err)
		reminder.Failed(err, true, w.now())
		w.save(ctx, logger, reminder)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      reminder.Recipient,
		Subject: reminder.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		reminder.Failed(err, domainerror.IsPermanentDeliveryFailure(err), w.now())
		w.save(ctx, logger, reminder)
		return
	}

	reminder.Delivered(result.MessageID, w.now())
	w.save(ctx, logger, reminder)
}

// save records the outcome even when ctx was cancelled mid-send, so a
// delivered reminder never stays claimed.
func (w *Worker) save(ctx context.Context, logger *slog.Logger, reminder *entity.ReminderEmail) {
	if err := w.outbox.Save(context.WithoutCancel(ctx), reminder); err != nil {
		logger.Error("Failed to save reminder delivery state", "status", reminder.Status, "error", err)
		return
	}

	switch reminder.Status {
	case entity.DeliveryDelivered:
		logger.Info("Reminder email delivered", "message_id", reminder.ProviderID)
	case entity.DeliveryAbandoned:
		logger.Warn("Reminder email abandoned", "attempts", reminder.Attempts, "last_error", reminder.LastError)
	default:
		logger.Info("Reminder email scheduled for retry", "attempts", reminder.Attempts, "next_attempt_at", reminder.NextAttemptAt)
	}
}

func (w *Worker) purge(ctx context.Context) {
	if w.config.RetentionDays <= 0 {
		return
	}
	cutoff := w.now().AddDate(0, 0, -w.config.RetentionDays)
	deleted, err := w.outbox.PurgeDelivered(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to purge delivered reminders", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Purged delivered reminders", "count", deleted, "retention_days", w.config.RetentionDays)
	}
}
