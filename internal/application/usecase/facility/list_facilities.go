package facility

import (
	"context"
	"fmt"
	"strings"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

// ListFacilitiesInput represents the input for listing facilities.
type ListFacilitiesInput struct {
	Zone   string
	Search string
}

// ListFacilitiesOutput represents the output of listing facilities.
type ListFacilitiesOutput struct {
	Facilities []*entity.Facility
}

// ListFacilitiesUseCase handles facility listing.
type ListFacilitiesUseCase struct {
	facilityRepo adapter.FacilityRepository
}

// NewListFacilitiesUseCase creates a new ListFacilitiesUseCase instance.
func NewListFacilitiesUseCase(facilityRepo adapter.FacilityRepository) *ListFacilitiesUseCase {
	return &ListFacilitiesUseCase{facilityRepo: facilityRepo}
}

// Execute lists facilities ordered by name.
func (uc *ListFacilitiesUseCase) Execute(ctx context.Context, input ListFacilitiesInput) (*ListFacilitiesOutput, error) {
	facilities, err := uc.facilityRepo.FindAll(ctx, adapter.FacilityFilter{
		Zone:   strings.TrimSpace(input.Zone),
		Search: strings.TrimSpace(input.Search),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	if facilities == nil {
		facilities = []*entity.Facility{}
	}
	return &ListFacilitiesOutput{Facilities: facilities}, nil
}
