package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListSubmissionsInput represents the input for listing submissions.
type ListSubmissionsInput struct {
	FacilityID  uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time // exclusive
	DiseaseCode string
	Status      *entity.SubmissionStatus
	Page        int
	Limit       int
}

// ListSubmissionsUseCase lists the submissions of a facility.
type ListSubmissionsUseCase struct {
	submissionRepo adapter.SubmissionRepository
}

// NewListSubmissionsUseCase creates a new ListSubmissionsUseCase instance.
func NewListSubmissionsUseCase(submissionRepo adapter.SubmissionRepository) *ListSubmissionsUseCase {
	return &ListSubmissionsUseCase{submissionRepo: submissionRepo}
}

// Execute returns one page of submissions ordered by reporting date.
func (uc *ListSubmissionsUseCase) Execute(ctx context.Context, input ListSubmissionsInput) (*entity.SubmissionListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, invalidStatus(*input.Status)
	}

	result, err := uc.submissionRepo.FindByFilter(ctx, adapter.SubmissionFilter{
		FacilityID:  input.FacilityID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		DiseaseCode: input.DiseaseCode,
		Status:      input.Status,
	}, adapter.SubmissionPagination{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return result, nil
}
