// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FacilitySubmission is a disease case report sent by a facility for a
// reporting date.
type FacilitySubmission struct {
	ID            uuid.UUID
	FacilityID    uuid.UUID
	SubmittedBy   uuid.UUID
	DiseaseCode   string
	CaseCount     int
	DeathCount    int
	ReportingDate time.Time
	Status        SubmissionStatus
	Notes         string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewFacilitySubmission creates a new FacilitySubmission entity.
func NewFacilitySubmission(
	facilityID, submittedBy uuid.UUID,
	diseaseCode string,
	caseCount, deathCount int,
	reportingDate time.Time,
	status SubmissionStatus,
	notes string,
) *FacilitySubmission {
	now := time.Now().UTC()

	return &FacilitySubmission{
		ID:            uuid.New(),
		FacilityID:    facilityID,
		SubmittedBy:   submittedBy,
		DiseaseCode:   diseaseCode,
		CaseCount:     caseCount,
		DeathCount:    deathCount,
		ReportingDate: reportingDate,
		Status:        status,
		Notes:         notes,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RecordedAt places the submission on the timeline by its reporting date.
func (s *FacilitySubmission) RecordedAt() time.Time { return s.ReportingDate }

// SubmissionStatus returns the workflow status of the submission.
func (s *FacilitySubmission) SubmissionStatus() SubmissionStatus { return s.Status }

// Cases returns the reported case count.
func (s *FacilitySubmission) Cases() int { return s.CaseCount }

// Deaths returns the reported death count.
func (s *FacilitySubmission) Deaths() int { return s.DeathCount }

// SubmissionListResult represents a page of submissions.
type SubmissionListResult struct {
	Submissions []*FacilitySubmission
	Total       int64
	Page        int
	Limit       int
	TotalPages  int
}
