// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// SubmissionStatus is the coarse workflow status carried by every dated record.
type SubmissionStatus string

const (
	SubmissionStatusPending    SubmissionStatus = "pending"
	SubmissionStatusInProgress SubmissionStatus = "in_progress"
	SubmissionStatusConfirmed  SubmissionStatus = "confirmed"
)

// IsValid reports whether s is a known submission status.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusInProgress, SubmissionStatusConfirmed:
		return true
	default:
		return false
	}
}

// RecordKind identifies which record collection a timeline is built from.
type RecordKind string

const (
	RecordKindSubmission  RecordKind = "submission"
	RecordKindPatientFile RecordKind = "patient_file"
	RecordKindDocument    RecordKind = "document"
)

// IsValid reports whether k is a known record kind.
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindSubmission, RecordKindPatientFile, RecordKindDocument:
		return true
	default:
		return false
	}
}

// DatedRecord is anything that can be placed on the timeline: it has a
// creation timestamp and a coarse submission status.
type DatedRecord interface {
	RecordedAt() time.Time
	SubmissionStatus() SubmissionStatus
}

// CaseCounter is implemented by records that carry epidemiological counts.
type CaseCounter interface {
	Cases() int
	Deaths() int
}
