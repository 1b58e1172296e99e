package error

import "errors"

// Record domain errors.
var (
	// ErrMissingRecordFields is returned when a patient file or document lacks required fields.
	ErrMissingRecordFields = errors.New("required record fields are missing")

	// ErrInvalidReviewState is returned when a patient file review state is unknown.
	ErrInvalidReviewState = errors.New("review must be: draft, under_review, or validated")

	// ErrConflictingApproval is returned when a document is both approved and rejected.
	ErrConflictingApproval = errors.New("a document cannot be approved and rejected")
)

// RecordErrorCode defines error codes for patient file and document errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRecordFields RecordErrorCode = "REC-010001"
	ErrCodeInvalidReviewState  RecordErrorCode = "REC-010002"
	ErrCodeConflictingApproval RecordErrorCode = "REC-010003"
)

// RecordError is a record error carrying a RecordErrorCode.
type RecordError = CodedError[RecordErrorCode]

// NewRecordError creates a new RecordError.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return coded(code, message, err)
}
