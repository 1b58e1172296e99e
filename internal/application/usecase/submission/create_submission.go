// Package submission contains facility submission use cases.
package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/facility"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// MaxNotesLength is the maximum length for submission notes.
const MaxNotesLength = 1000

// CreateSubmissionInput represents the input for submission creation.
type CreateSubmissionInput struct {
	FacilityID    uuid.UUID
	SubmittedBy   uuid.UUID
	DiseaseCode   string
	CaseCount     int
	DeathCount    int
	ReportingDate time.Time
	Status        entity.SubmissionStatus // defaults to pending
	Notes         string
}

// CreateSubmissionOutput represents the output of submission creation.
type CreateSubmissionOutput struct {
	Submission *entity.FacilitySubmission
}

// CreateSubmissionUseCase records a facility's case report.
type CreateSubmissionUseCase struct {
	submissionRepo adapter.SubmissionRepository
	facilityRepo   adapter.FacilityRepository
	now            func() time.Time
}

// NewCreateSubmissionUseCase creates a new CreateSubmissionUseCase instance.
func NewCreateSubmissionUseCase(
	submissionRepo adapter.SubmissionRepository,
	facilityRepo adapter.FacilityRepository,
) *CreateSubmissionUseCase {
	return &CreateSubmissionUseCase{
		submissionRepo: submissionRepo,
		facilityRepo:   facilityRepo,
		now:            time.Now,
	}
}

// Execute validates and stores the submission.
func (uc *CreateSubmissionUseCase) Execute(ctx context.Context, input CreateSubmissionInput) (*CreateSubmissionOutput, error) {
	if _, err := facility.Lookup(ctx, uc.facilityRepo, input.FacilityID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.SubmissionStatusPending
	}

	diseaseCode := strings.ToUpper(strings.TrimSpace(input.DiseaseCode))
	if err := validateFields(diseaseCode, input.CaseCount, input.DeathCount, status, input.Notes); err != nil {
		return nil, err
	}
	if err := validateReportingDate(input.ReportingDate, uc.now()); err != nil {
		return nil, err
	}

	submission := entity.NewFacilitySubmission(
		input.FacilityID,
		input.SubmittedBy,
		diseaseCode,
		input.CaseCount,
		input.DeathCount,
		input.ReportingDate,
		status,
		strings.TrimSpace(input.Notes),
	)

	if err := uc.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &CreateSubmissionOutput{Submission: submission}, nil
}

func validateFields(diseaseCode string, caseCount, deathCount int, status entity.SubmissionStatus, notes string) error {
	if diseaseCode == "" {
		return domainerror.NewSubmissionError(
			domainerror.ErrCodeMissingDiseaseCode,
			"disease code is required",
			domainerror.ErrMissingDiseaseCode,
		)
	}
	if caseCount < 0 || deathCount < 0 || deathCount > caseCount {
		return domainerror.NewSubmissionError(
			domainerror.ErrCodeInvalidCaseCount,
			fmt.Sprintf("invalid counts: %d cases, %d deaths", caseCount, deathCount),
			domainerror.ErrInvalidCaseCount,
		)
	}
	if !status.IsValid() {
		return invalidStatus(status)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewSubmissionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			nil,
		)
	}
	return nil
}

func invalidStatus(status entity.SubmissionStatus) error {
	return domainerror.NewSubmissionError(
		domainerror.ErrCodeInvalidSubmissionStatus,
		fmt.Sprintf("unknown status %q", status),
		domainerror.ErrInvalidSubmissionStatus,
	)
}

// validateReportingDate rejects missing dates and dates after the end of today.
func validateReportingDate(reportingDate, now time.Time) error {
	if reportingDate.IsZero() {
		return domainerror.NewSubmissionError(
			domainerror.ErrCodeMissingReportingDate,
			"reporting date is required",
			nil,
		)
	}
	y, m, d := now.Date()
	endOfToday := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	if !reportingDate.Before(endOfToday) {
		return domainerror.NewSubmissionError(
			domainerror.ErrCodeFutureReportingDate,
			"reporting date cannot be in the future",
			domainerror.ErrFutureReportingDate,
		)
	}
	return nil
}
