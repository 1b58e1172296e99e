package error

import "errors"

// Facility domain errors.
var (
	// ErrFacilityNotFound is returned when a facility is not found in the system.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrFacilityCodeExists is returned when another facility already uses the code.
	ErrFacilityCodeExists = errors.New("facility code already exists")

	// ErrInvalidPopulation is returned when the catchment population is negative.
	ErrInvalidPopulation = errors.New("population cannot be negative")

	// ErrInvalidContactEmail is returned when a contact email is malformed.
	ErrInvalidContactEmail = errors.New("invalid contact email")

	// ErrMissingFacilityFields is returned when name or code are blank.
	ErrMissingFacilityFields = errors.New("name and code are required")
)

// FacilityErrorCode defines error codes for facility errors.
// Format: FAC-XXYYYY where XX is category and YYYY is specific error.
type FacilityErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFacilityFields FacilityErrorCode = "FAC-010001"
	ErrCodeInvalidPopulation     FacilityErrorCode = "FAC-010002"
	ErrCodeInvalidContactEmail   FacilityErrorCode = "FAC-010003"
	ErrCodeFacilityCodeExists    FacilityErrorCode = "FAC-010004"

	// Lookup errors (02XXXX)
	ErrCodeFacilityNotFound FacilityErrorCode = "FAC-020001"
)

// FacilityError is a facility error carrying a FacilityErrorCode.
type FacilityError = CodedError[FacilityErrorCode]

// NewFacilityError creates a new FacilityError.
func NewFacilityError(code FacilityErrorCode, message string, err error) *FacilityError {
	return coded(code, message, err)
}
