// Package reminder contains the missing-submission reminder use case.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
)

// Config configures which bucket is checked and how reminders are deduplicated.
type Config struct {
	Granularity entity.Granularity
	Location    *time.Location
	SubmitURL   string        // base URL of the submission form
	ClaimTTL    time.Duration // how long a sent reminder blocks a resend
}

// SendRemindersOutput summarises one reminder run.
type SendRemindersOutput struct {
	BucketID    string
	Checked     int
	Missing     int
	Queued      int
	AlreadySent int
	Failed      int
}

// SendRemindersUseCase emails the contacts of every facility whose most
// recently closed bucket has no submission. Each (facility, bucket) pair is
// reminded at most once.
type SendRemindersUseCase struct {
	facilityRepo adapter.FacilityRepository
	recordRepo   adapter.RecordRepository
	ledger       adapter.ReminderLedger
	outbox       adapter.ReminderOutbox
	config       Config
	now          func() time.Time
}

// NewSendRemindersUseCase creates a new SendRemindersUseCase instance.
func NewSendRemindersUseCase(
	facilityRepo adapter.FacilityRepository,
	recordRepo adapter.RecordRepository,
	ledger adapter.ReminderLedger,
	outbox adapter.ReminderOutbox,
	config Config,
) *SendRemindersUseCase {
	if !config.Granularity.IsValid() {
		config.Granularity = entity.GranularityWeek
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.ClaimTTL <= 0 {
		config.ClaimTTL = 90 * 24 * time.Hour
	}
	return &SendRemindersUseCase{
		facilityRepo: facilityRepo,
		recordRepo:   recordRepo,
		ledger:       ledger,
		outbox:       outbox,
		config:       config,
		now:          time.Now,
	}
}

// Execute runs one reminder pass. Per-facility failures are logged and
// counted; only a failure to list facilities aborts the run.
func (uc *SendRemindersUseCase) Execute(ctx context.Context) (*SendRemindersOutput, error) {
	now := uc.now().In(uc.config.Location)
	bucket := timeline.NewBucket(timeline.Advance(now, uc.config.Granularity, -1), uc.config.Granularity, now)

	facilities, err := uc.facilityRepo.FindWithContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}

	out := &SendRemindersOutput{BucketID: bucket.ID}
	for _, f := range facilities {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out.Checked++

		logger := slog.With("facility_id", f.ID, "bucket_id", bucket.ID)

		records, err := uc.recordRepo.FindDatedRecords(ctx, adapter.RecordQuery{
			FacilityID: f.ID,
			Kind:       entity.RecordKindSubmission,
			From:       bucket.Start,
			To:         bucket.End,
		})
		if err != nil {
			logger.Error("Failed to load submissions for reminder", "error", err)
			out.Failed++
			continue
		}

		if timeline.Classify(bucket, records, now) != entity.BucketStatusNoSubmission {
			continue
		}
		out.Missing++

		claimed, err := uc.ledger.Claim(ctx, f.ID, bucket.ID, uc.config.ClaimTTL)
		if err != nil {
			logger.Error("Failed to claim reminder", "error", err)
			out.Failed++
			continue
		}
		if !claimed {
			out.AlreadySent++
			continue
		}

		if err := uc.queue(ctx, f, bucket, now); err != nil {
			logger.Error("Failed to queue reminder", "error", err)
			if releaseErr := uc.ledger.Release(ctx, f.ID, bucket.ID); releaseErr != nil {
				logger.Error("Failed to release reminder claim", "error", releaseErr)
			}
			out.Failed++
			continue
		}

		logger.Info("Submission reminder queued", "recipients", len(f.ContactEmails))
		out.Queued++
	}

	return out, nil
}

// queue enqueues one reminder per contact in a single outbox write, so a
// failure leaves nothing behind for the released claim to duplicate.
func (uc *SendRemindersUseCase) queue(ctx context.Context, f *entity.Facility, bucket entity.TimeBucket, now time.Time) error {
	reminder := entity.SubmissionReminder{
		FacilityName: f.Name,
		PeriodLabel:  fmt.Sprintf("%s %s", bucket.Granularity, bucket.ID),
		PeriodStart:  bucket.Start.Format("2006-01-02"),
		PeriodEnd:    bucket.End.AddDate(0, 0, -1).Format("2006-01-02"),
		SubmitURL: fmt.Sprintf("%s?facility_id=%s&bucket_id=%s",
			strings.TrimRight(uc.config.SubmitURL, "/"), f.ID, bucket.ID),
	}

	emails := make([]*entity.ReminderEmail, 0, len(f.ContactEmails))
	for _, recipient := range f.ContactEmails {
		emails = append(emails, entity.NewReminderEmail(f.ID, bucket.ID, recipient, reminder, now))
	}
	return uc.outbox.Enqueue(ctx, emails...)
}
