package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// UpdateSubmissionInput represents an inline edit. Nil fields are left as
// they are. Version is the version the editor started from.
type UpdateSubmissionInput struct {
	SubmissionID  uuid.UUID
	EditedBy      uuid.UUID
	Version       int
	DiseaseCode   *string
	CaseCount     *int
	DeathCount    *int
	ReportingDate *time.Time
	Status        *entity.SubmissionStatus
	Notes         *string
}

// UpdateSubmissionOutput represents the output of an inline edit.
type UpdateSubmissionOutput struct {
	Submission *entity.FacilitySubmission
}

// UpdateSubmissionUseCase applies inline edits with optimistic concurrency:
// the row is only written when nobody saved it since the editor loaded it.
type UpdateSubmissionUseCase struct {
	submissionRepo adapter.SubmissionRepository
	now            func() time.Time
}

// NewUpdateSubmissionUseCase creates a new UpdateSubmissionUseCase instance.
func NewUpdateSubmissionUseCase(submissionRepo adapter.SubmissionRepository) *UpdateSubmissionUseCase {
	return &UpdateSubmissionUseCase{
		submissionRepo: submissionRepo,
		now:            time.Now,
	}
}

// Execute performs the edit and returns the row with its new version.
func (uc *UpdateSubmissionUseCase) Execute(ctx context.Context, input UpdateSubmissionInput) (*UpdateSubmissionOutput, error) {
	if input.Version < 1 {
		return nil, domainerror.NewSubmissionError(
			domainerror.ErrCodeMissingVersion,
			"version is required for inline edits",
			nil,
		)
	}

	submission, err := uc.submissionRepo.FindByID(ctx, input.SubmissionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSubmissionNotFound) {
			return nil, notFound(input.SubmissionID)
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if submission.Version != input.Version {
		return nil, conflict(submission.Version)
	}

	if input.DiseaseCode != nil {
		submission.DiseaseCode = strings.ToUpper(strings.TrimSpace(*input.DiseaseCode))
	}
	if input.CaseCount != nil {
		submission.CaseCount = *input.CaseCount
	}
	if input.DeathCount != nil {
		submission.DeathCount = *input.DeathCount
	}
	if input.Status != nil {
		submission.Status = *input.Status
	}
	if input.Notes != nil {
		submission.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.ReportingDate != nil {
		if err := validateReportingDate(*input.ReportingDate, uc.now()); err != nil {
			return nil, err
		}
		submission.ReportingDate = *input.ReportingDate
	}

	if err := validateFields(submission.DiseaseCode, submission.CaseCount, submission.DeathCount, submission.Status, submission.Notes); err != nil {
		return nil, err
	}

	submission.Version = input.Version + 1
	submission.UpdatedAt = uc.now().UTC()

	saved, err := uc.submissionRepo.UpdateIfVersion(ctx, submission, input.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	if !saved {
		current, findErr := uc.submissionRepo.FindByID(ctx, input.SubmissionID)
		if findErr != nil {
			return nil, notFound(input.SubmissionID)
		}
		slog.InfoContext(ctx, "inline edit lost the race",
			"submission_id", input.SubmissionID,
			"edited_by", input.EditedBy,
			"expected_version", input.Version,
			"current_version", current.Version,
		)
		return nil, conflict(current.Version)
	}

	return &UpdateSubmissionOutput{Submission: submission}, nil
}

func notFound(id uuid.UUID) error {
	return domainerror.NewSubmissionError(
		domainerror.ErrCodeSubmissionNotFound,
		fmt.Sprintf("submission %s not found", id),
		domainerror.ErrSubmissionNotFound,
	)
}

func conflict(currentVersion int) error {
	return domainerror.NewSubmissionError(
		domainerror.ErrCodeSubmissionVersionConflict,
		fmt.Sprintf("submission is now at version %d, reload before editing", currentVersion),
		domainerror.ErrSubmissionVersionConflict,
	)
}
