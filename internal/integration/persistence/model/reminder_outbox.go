package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// ReminderOutboxModel represents the reminder_outbox table. One row is one
// email to one facility contact for one bucket.
type ReminderOutboxModel struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	FacilityID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_reminder_outbox_facility_bucket"`
	BucketID      string       `gorm:"type:varchar(20);not null;index:idx_reminder_outbox_facility_bucket"`
	Recipient     string       `gorm:"type:varchar(255);not null"`
	Subject       string       `gorm:"type:varchar(500);not null"`
	Content       string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status        string       `gorm:"type:varchar(20);not null;default:'queued';index:idx_reminder_outbox_due"`
	Attempts      int          `gorm:"not null;default:0"`
	MaxAttempts   int          `gorm:"not null;default:4"`
	LastError     string       `gorm:"type:text"`
	ProviderID    string       `gorm:"type:varchar(100)"`
	CreatedAt     time.Time    `gorm:"not null"`
	NextAttemptAt time.Time    `gorm:"not null;index:idx_reminder_outbox_due"`
	ClaimedAt     sql.NullTime `gorm:"type:timestamptz"`
	FinishedAt    sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the ReminderOutboxModel.
func (ReminderOutboxModel) TableName() string {
	return "reminder_outbox"
}

// ToEntity converts a row to a domain ReminderEmail. Unreadable content is
// an error so the worker never sends an empty reminder.
func (m *ReminderOutboxModel) ToEntity() (*entity.ReminderEmail, error) {
	var reminder entity.SubmissionReminder
	if err := json.Unmarshal([]byte(m.Content), &reminder); err != nil {
		return nil, fmt.Errorf("reminder %s has unreadable content: %w", m.ID, err)
	}

	var finishedAt *time.Time
	if m.FinishedAt.Valid {
		finishedAt = &m.FinishedAt.Time
	}

	return &entity.ReminderEmail{
		ID:            m.ID,
		FacilityID:    m.FacilityID,
		BucketID:      m.BucketID,
		Recipient:     m.Recipient,
		Subject:       m.Subject,
		Reminder:      reminder,
		Status:        entity.DeliveryStatus(m.Status),
		Attempts:      m.Attempts,
		MaxAttempts:   m.MaxAttempts,
		LastError:     m.LastError,
		ProviderID:    m.ProviderID,
		CreatedAt:     m.CreatedAt,
		NextAttemptAt: m.NextAttemptAt,
		FinishedAt:    finishedAt,
	}, nil
}

// ReminderOutboxFromEntity creates a row from a domain ReminderEmail.
func ReminderOutboxFromEntity(email *entity.ReminderEmail) (*ReminderOutboxModel, error) {
	content, err := json.Marshal(email.Reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminder content: %w", err)
	}

	var finishedAt sql.NullTime
	if email.FinishedAt != nil {
		finishedAt = sql.NullTime{Time: email.FinishedAt.UTC(), Valid: true}
	}

	return &ReminderOutboxModel{
		ID:            email.ID,
		FacilityID:    email.FacilityID,
		BucketID:      email.BucketID,
		Recipient:     email.Recipient,
		Subject:       email.Subject,
		Content:       string(content),
		Status:        string(email.Status),
		Attempts:      email.Attempts,
		MaxAttempts:   email.MaxAttempts,
		LastError:     email.LastError,
		ProviderID:    email.ProviderID,
		CreatedAt:     email.CreatedAt.UTC(),
		NextAttemptAt: email.NextAttemptAt.UTC(),
		FinishedAt:    finishedAt,
	}, nil
}
