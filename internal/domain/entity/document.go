// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRow is an uploaded report document (scanned register, lab sheet).
type DocumentRow struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	Title      string
	FileName   string
	Approved   bool
	Rejected   bool
	UploadedAt time.Time
}

// RecordedAt places the document on the timeline by its upload time.
func (d *DocumentRow) RecordedAt() time.Time { return d.UploadedAt }

// SubmissionStatus maps approval flags onto the coarse status scale. A
// rejected document has to be uploaded again, so it counts as pending.
func (d *DocumentRow) SubmissionStatus() SubmissionStatus {
	switch {
	case d.Approved:
		return SubmissionStatusConfirmed
	case d.Rejected:
		return SubmissionStatusPending
	default:
		return SubmissionStatusInProgress
	}
}
