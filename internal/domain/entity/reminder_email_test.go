package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, retryBackoff(0))
	assert.Equal(t, time.Minute, retryBackoff(1))
	assert.Equal(t, 2*time.Minute, retryBackoff(2))
	assert.Equal(t, 4*time.Minute, retryBackoff(3))
	assert.Equal(t, 32*time.Minute, retryBackoff(6))
	assert.Equal(t, time.Hour, retryBackoff(7))
	assert.Equal(t, time.Hour, retryBackoff(40))
}

func TestReminderEmail_Failed(t *testing.T) {
	now := time.Date(2024, 3, 18, 6, 0, 0, 0, time.UTC)
	r := NewReminderEmail(uuid.New(), "2024-W11", "a@example.org", SubmissionReminder{FacilityName: "Post", PeriodLabel: "week 2024-W11"}, now)
	assert.Equal(t, "Missing report for week 2024-W11 - Post", r.Subject)

	r.Failed(errors.New("timeout"), false, now)
	assert.Equal(t, DeliveryQueued, r.Status)
	assert.Equal(t, now.Add(time.Minute), r.NextAttemptAt)

	r.Failed(errors.New("timeout"), false, now)
	assert.Equal(t, now.Add(2*time.Minute), r.NextAttemptAt)

	r.Failed(errors.New("rejected"), true, now)
	assert.Equal(t, DeliveryAbandoned, r.Status)
	assert.Equal(t, 3, r.Attempts)
	assert.Equal(t, "rejected", r.LastError)
	assert.NotNil(t, r.FinishedAt)
}
