package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

// reminderOutbox implements the adapter.ReminderOutbox interface.
type reminderOutbox struct {
	db *gorm.DB
}

// NewReminderOutbox creates a new reminder outbox instance.
func NewReminderOutbox(db *gorm.DB) adapter.ReminderOutbox {
	return &reminderOutbox{db: db}
}

// Enqueue stores all emails in one transaction.
func (r *reminderOutbox) Enqueue(ctx context.Context, emails ...*entity.ReminderEmail) error {
	if len(emails) == 0 {
		return nil
	}

	rows := make([]*model.ReminderOutboxModel, 0, len(emails))
	for _, email := range emails {
		row, err := model.ReminderOutboxFromEntity(email)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeOutboxUnavailable,
			"failed to enqueue reminder emails",
			err,
		)
	}
	return nil
}

// ClaimLease is how long a claimed row may stay in sending before another
// worker may take it over.
const ClaimLease = 15 * time.Minute

// ClaimDue selects due rows, including sending rows whose lease ran out, and
// stamps them with a fresh claim. The guards on the update keep two workers
// from claiming the same row.
func (r *reminderOutbox) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ReminderEmail, error) {
	var claimed []model.ReminderOutboxModel
	now = now.UTC()
	stale := now.Add(-ClaimLease)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []model.ReminderOutboxModel
		err := tx.
			Where("(status = ? AND next_attempt_at <= ?) OR (status = ? AND (claimed_at IS NULL OR claimed_at <= ?))",
				entity.DeliveryQueued, now, entity.DeliverySending, stale).
			Order("next_attempt_at ASC").
			Limit(limit).
			Find(&due).Error
		if err != nil {
			return err
		}

		for _, row := range due {
			guard := tx.Model(&model.ReminderOutboxModel{}).Where("id = ? AND status = ?", row.ID, row.Status)
			if row.Status == string(entity.DeliverySending) {
				guard = guard.Where("(claimed_at IS NULL OR claimed_at <= ?)", stale)
			}
			result := guard.Updates(map[string]any{
				"status":     entity.DeliverySending,
				"claimed_at": now,
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				row.Status = string(entity.DeliverySending)
				claimed = append(claimed, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim due reminders: %w", err)
	}

	emails := make([]*entity.ReminderEmail, 0, len(claimed))
	for i := range claimed {
		email, err := claimed[i].ToEntity()
		if err != nil {
			r.abandon(ctx, claimed[i].ID, err)
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// abandon parks a row whose content cannot be decoded.
func (r *reminderOutbox) abandon(ctx context.Context, id uuid.UUID, cause error) {
	r.db.WithContext(ctx).Model(&model.ReminderOutboxModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      entity.DeliveryAbandoned,
			"last_error":  cause.Error(),
			"finished_at": time.Now().UTC(),
		})
}

// Release puts claimed rows back to queued without touching their attempts.
func (r *reminderOutbox) Release(ctx context.Context, emails ...*entity.ReminderEmail) error {
	if len(emails) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(emails))
	for _, email := range emails {
		ids = append(ids, email.ID)
	}

	err := r.db.WithContext(ctx).Model(&model.ReminderOutboxModel{}).
		Where("id IN ? AND status = ?", ids, entity.DeliverySending).
		Updates(map[string]any{"status": entity.DeliveryQueued, "claimed_at": nil}).Error
	if err != nil {
		return domainerror.NewNotificationError(domainerror.ErrCodeOutboxUnavailable, "failed to release reminder emails", err)
	}
	for _, email := range emails {
		email.Status = entity.DeliveryQueued
	}
	return nil
}

// Save writes back the delivery state of an email.
func (r *reminderOutbox) Save(ctx context.Context, email *entity.ReminderEmail) error {
	row, err := model.ReminderOutboxFromEntity(email)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

// PurgeDelivered removes delivered emails finished before cutoff.
func (r *reminderOutbox) PurgeDelivered(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND finished_at < ?", entity.DeliveryDelivered, cutoff.UTC()).
		Delete(&model.ReminderOutboxModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
