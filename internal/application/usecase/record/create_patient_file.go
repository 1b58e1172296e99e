// Package record contains use cases for the auxiliary record kinds shown on
// timelines: patient files and uploaded documents.
package record

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

// CreatePatientFileInput represents the input for opening a patient file.
type CreatePatientFileInput struct {
	FacilityID  uuid.UUID
	PatientCode string
	DiseaseCode string
	Outcome     string
	Review      entity.ReviewState // defaults to draft
}

// CreatePatientFileUseCase opens a case investigation file.
type CreatePatientFileUseCase struct {
	recordRepo   adapter.RecordRepository
	facilityRepo adapter.FacilityRepository
}

// NewCreatePatientFileUseCase creates a new CreatePatientFileUseCase instance.
func NewCreatePatientFileUseCase(recordRepo adapter.RecordRepository, facilityRepo adapter.FacilityRepository) *CreatePatientFileUseCase {
	return &CreatePatientFileUseCase{recordRepo: recordRepo, facilityRepo: facilityRepo}
}

// Execute stores the patient file.
func (uc *CreatePatientFileUseCase) Execute(ctx context.Context, input CreatePatientFileInput) (*entity.PatientFile, error) {
	if _, err := facility.Lookup(ctx, uc.facilityRepo, input.FacilityID); err != nil {
		return nil, err
	}

	patientCode := strings.TrimSpace(input.PatientCode)
	diseaseCode := strings.ToUpper(strings.TrimSpace(input.DiseaseCode))
	if patientCode == "" || diseaseCode == "" {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordFields,
			"patient code and disease code are required",
			domainerror.ErrMissingRecordFields,
		)
	}

	review := input.Review
	if review == "" {
		review = entity.ReviewStateDraft
	}
	if !review.IsValid() {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidReviewState,
			fmt.Sprintf("unknown review state %q", review),
			domainerror.ErrInvalidReviewState,
		)
	}

	now := time.Now().UTC()
	file := &entity.PatientFile{
		ID:          uuid.New(),
		FacilityID:  input.FacilityID,
		PatientCode: patientCode,
		DiseaseCode: diseaseCode,
		Outcome:     strings.ToLower(strings.TrimSpace(input.Outcome)),
		Review:      review,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.recordRepo.CreatePatientFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to create patient file: %w", err)
	}
	return file, nil
}
