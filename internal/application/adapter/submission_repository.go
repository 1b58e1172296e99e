// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// SubmissionFilter defines filter options for listing submissions.
type SubmissionFilter struct {
	FacilityID  uuid.UUID
	StartDate   *time.Time // inclusive
	EndDate     *time.Time // exclusive
	DiseaseCode string
	Status      *entity.SubmissionStatus
}

// SubmissionPagination defines pagination options.
type SubmissionPagination struct {
	Page  int
	Limit int
}

// SubmissionRepository defines the interface for facility submission persistence.
type SubmissionRepository interface {
	// Create creates a new submission in the database.
	Create(ctx context.Context, submission *entity.FacilitySubmission) error

	// FindByID retrieves a submission by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FacilitySubmission, error)

	// FindByFilter retrieves submissions ordered by reporting date with pagination.
	FindByFilter(ctx context.Context, filter SubmissionFilter, pagination SubmissionPagination) (*entity.SubmissionListResult, error)

	// UpdateIfVersion saves the submission only when the stored version still
	// equals expectedVersion. It reports false when another edit won the race.
	UpdateIfVersion(ctx context.Context, submission *entity.FacilitySubmission, expectedVersion int) (bool, error)
}
