package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus tracks a reminder email through the outbox.
type DeliveryStatus string

const (
	DeliveryQueued    DeliveryStatus = "queued"
	DeliverySending   DeliveryStatus = "sending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryAbandoned DeliveryStatus = "abandoned"
)

const (
	defaultDeliveryAttempts = 4
	maxRetryBackoff         = time.Hour
)

// SubmissionReminder is the content of a missing-submission reminder.
type SubmissionReminder struct {
	FacilityName string `json:"facility_name"`
	PeriodLabel  string `json:"period_label"` // e.g. "week 2024-W11"
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	SubmitURL    string `json:"submit_url"`
}

// ReminderEmail is one reminder addressed to one facility contact. It stays
// in the outbox until the email worker delivers or abandons it.
type ReminderEmail struct {
	ID            uuid.UUID
	FacilityID    uuid.UUID
	BucketID      string
	Recipient     string
	Subject       string
	Reminder      SubmissionReminder
	Status        DeliveryStatus
	Attempts      int
	MaxAttempts   int
	LastError     string
	ProviderID    string
	CreatedAt     time.Time
	NextAttemptAt time.Time
	FinishedAt    *time.Time
}

// NewReminderEmail queues a reminder for immediate delivery.
func NewReminderEmail(facilityID uuid.UUID, bucketID, recipient string, reminder SubmissionReminder, now time.Time) *ReminderEmail {
	now = now.UTC()
	return &ReminderEmail{
		ID:            uuid.New(),
		FacilityID:    facilityID,
		BucketID:      bucketID,
		Recipient:     recipient,
		Subject:       fmt.Sprintf("Missing report for %s - %s", reminder.PeriodLabel, reminder.FacilityName),
		Reminder:      reminder,
		Status:        DeliveryQueued,
		MaxAttempts:   defaultDeliveryAttempts,
		CreatedAt:     now,
		NextAttemptAt: now,
	}
}

// Delivered records a successful hand-off to the email provider.
func (r *ReminderEmail) Delivered(providerID string, now time.Time) {
	finished := now.UTC()
	r.Status = DeliveryDelivered
	r.ProviderID = providerID
	r.FinishedAt = &finished
}

// Failed records a failed attempt. Permanent failures and the last allowed
// attempt abandon the email; otherwise it is queued again after a backoff
// that doubles from one minute up to an hour.
func (r *ReminderEmail) Failed(err error, permanent bool, now time.Time) {
	now = now.UTC()
	r.Attempts++
	r.LastError = err.Error()

	if permanent || r.Attempts >= r.MaxAttempts {
		r.Status = DeliveryAbandoned
		r.FinishedAt = &now
		return
	}

	r.Status = DeliveryQueued
	r.NextAttemptAt = now.Add(retryBackoff(r.Attempts))
}

func retryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	backoff := time.Minute
	for i := 1; i < attempts && backoff < maxRetryBackoff; i++ {
		backoff *= 2
	}
	return min(backoff, maxRetryBackoff)
}
