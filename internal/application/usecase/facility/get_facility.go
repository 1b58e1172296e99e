package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// GetFacilityUseCase loads a single facility.
type GetFacilityUseCase struct {
	facilityRepo adapter.FacilityRepository
}

// NewGetFacilityUseCase creates a new GetFacilityUseCase instance.
func NewGetFacilityUseCase(facilityRepo adapter.FacilityRepository) *GetFacilityUseCase {
	return &GetFacilityUseCase{facilityRepo: facilityRepo}
}

// Execute returns the facility or a FAC-020001 error.
func (uc *GetFacilityUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Facility, error) {
	return Lookup(ctx, uc.facilityRepo, id)
}

// Lookup loads a facility for another use case. A missing row becomes the
// FAC-020001 error; any other failure is wrapped.
func Lookup(ctx context.Context, facilityRepo adapter.FacilityRepository, id uuid.UUID) (*entity.Facility, error) {
	facility, err := facilityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrFacilityNotFound) {
			return nil, NotFoundError(id)
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	return facility, nil
}

// NotFoundError builds the error returned when a facility id is unknown.
func NotFoundError(id uuid.UUID) error {
	return domainerror.NewFacilityError(
		domainerror.ErrCodeFacilityNotFound,
		fmt.Sprintf("facility %s not found", id),
		domainerror.ErrFacilityNotFound,
	)
}
