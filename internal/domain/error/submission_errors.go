package error

import "errors"

// Submission domain errors.
var (
	// ErrSubmissionNotFound is returned when a submission is not found in the system.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrSubmissionVersionConflict is returned when an edit was based on a stale version.
	ErrSubmissionVersionConflict = errors.New("submission was modified by someone else")

	// ErrInvalidSubmissionStatus is returned when the status is not a known workflow status.
	ErrInvalidSubmissionStatus = errors.New("status must be: pending, in_progress, or confirmed")

	// ErrInvalidCaseCount is returned when case or death counts are inconsistent.
	ErrInvalidCaseCount = errors.New("counts must be non-negative and deaths cannot exceed cases")

	// ErrMissingDiseaseCode is returned when no disease code is given.
	ErrMissingDiseaseCode = errors.New("disease code is required")

	// ErrFutureReportingDate is returned when a report is dated in the future.
	ErrFutureReportingDate = errors.New("reporting date cannot be in the future")
)

// SubmissionErrorCode defines error codes for submission errors.
// Format: SUB-XXYYYY where XX is category and YYYY is specific error.
type SubmissionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSubmissionStatus SubmissionErrorCode = "SUB-010001"
	ErrCodeInvalidCaseCount        SubmissionErrorCode = "SUB-010002"
	ErrCodeMissingDiseaseCode      SubmissionErrorCode = "SUB-010003"
	ErrCodeFutureReportingDate     SubmissionErrorCode = "SUB-010004"
	ErrCodeMissingVersion          SubmissionErrorCode = "SUB-010005"
	ErrCodeNotesTooLong            SubmissionErrorCode = "SUB-010006"
	ErrCodeMissingReportingDate    SubmissionErrorCode = "SUB-010007"

	// Lookup errors (02XXXX)
	ErrCodeSubmissionNotFound SubmissionErrorCode = "SUB-020001"

	// Concurrency errors (03XXXX)
	ErrCodeSubmissionVersionConflict SubmissionErrorCode = "SUB-030001"
)

// SubmissionError is a submission error carrying a SubmissionErrorCode.
type SubmissionError = CodedError[SubmissionErrorCode]

// NewSubmissionError creates a new SubmissionError.
func NewSubmissionError(code SubmissionErrorCode, message string, err error) *SubmissionError {
	return coded(code, message, err)
}
