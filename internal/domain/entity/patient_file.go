// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewState is the review workflow of a patient file.
type ReviewState string

const (
	ReviewStateDraft       ReviewState = "draft"
	ReviewStateUnderReview ReviewState = "under_review"
	ReviewStateValidated   ReviewState = "validated"
)

// PatientFile is a case investigation form opened for a patient at a facility.
type PatientFile struct {
	ID          uuid.UUID
	FacilityID  uuid.UUID
	PatientCode string
	DiseaseCode string
	Outcome     string
	Review      ReviewState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordedAt places the patient file on the timeline by its creation time.
func (p *PatientFile) RecordedAt() time.Time { return p.CreatedAt }

// SubmissionStatus maps the review workflow onto the coarse status scale.
func (p *PatientFile) SubmissionStatus() SubmissionStatus {
	switch p.Review {
	case ReviewStateValidated:
		return SubmissionStatusConfirmed
	case ReviewStateUnderReview:
		return SubmissionStatusInProgress
	default:
		return SubmissionStatusPending
	}
}

// Cases counts one case per patient file.
func (p *PatientFile) Cases() int { return 1 }

// Deaths counts the file as a death when the outcome says so.
func (p *PatientFile) Deaths() int {
	if p.Outcome == "deceased" {
		return 1
	}
	return 0
}

// IsValid reports whether r is a known review state.
func (r ReviewState) IsValid() bool {
	switch r {
	case ReviewStateDraft, ReviewStateUnderReview, ReviewStateValidated:
		return true
	default:
		return false
	}
}
