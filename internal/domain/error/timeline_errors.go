package error

import "errors"

// Timeline domain errors.
var (
	// ErrInvalidReferenceDate is returned when a reference date is zero or out of range.
	ErrInvalidReferenceDate = errors.New("reference date must be a valid calendar date")

	// ErrInvalidGranularity is returned when granularity is not valid.
	ErrInvalidGranularity = errors.New("granularity must be: day, week, month, or year")

	// ErrInvalidWindowSize is returned when the window size is out of range.
	ErrInvalidWindowSize = errors.New("window size must be between 1 and 60")

	// ErrInvalidBucketID is returned when a bucket id does not parse under a granularity.
	ErrInvalidBucketID = errors.New("bucket id does not match granularity")

	// ErrInvalidRecordKind is returned when the requested record collection is unknown.
	ErrInvalidRecordKind = errors.New("kind must be: submission, patient_file, or document")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// TimelineErrorCode defines error codes for timeline errors.
// Format: TML-XXYYYY where XX is category and YYYY is specific error.
type TimelineErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReferenceDate TimelineErrorCode = "TML-010001"
	ErrCodeInvalidGranularity   TimelineErrorCode = "TML-010002"
	ErrCodeInvalidWindowSize    TimelineErrorCode = "TML-010003"
	ErrCodeInvalidBucketID      TimelineErrorCode = "TML-010004"
	ErrCodeInvalidRecordKind    TimelineErrorCode = "TML-010005"
	ErrCodeInvalidDateFormat    TimelineErrorCode = "TML-010006"
	ErrCodeMissingFacility      TimelineErrorCode = "TML-010007"

	// Internal errors (99XXXX)
	ErrCodeTimelineInternalError TimelineErrorCode = "TML-990001"
)

// TimelineError is a timeline error carrying a TimelineErrorCode.
type TimelineError = CodedError[TimelineErrorCode]

// NewTimelineError creates a new TimelineError.
func NewTimelineError(code TimelineErrorCode, message string, err error) *TimelineError {
	return coded(code, message, err)
}
