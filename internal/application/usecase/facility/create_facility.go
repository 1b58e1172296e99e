// Package facility contains facility management use cases.
package facility

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// CreateFacilityInput represents the input for facility creation.
type CreateFacilityInput struct {
	Name          string
	Code          string
	Zone          string
	Population    int
	ContactEmails []string
	CreatedBy     uuid.UUID
}

// CreateFacilityOutput represents the output of facility creation.
type CreateFacilityOutput struct {
	Facility *entity.Facility
}

// CreateFacilityUseCase handles facility creation.
type CreateFacilityUseCase struct {
	facilityRepo adapter.FacilityRepository
}

// NewCreateFacilityUseCase creates a new CreateFacilityUseCase instance.
func NewCreateFacilityUseCase(facilityRepo adapter.FacilityRepository) *CreateFacilityUseCase {
	return &CreateFacilityUseCase{facilityRepo: facilityRepo}
}

// Execute validates and stores a facility. Codes are upper-cased and unique.
func (uc *CreateFacilityUseCase) Execute(ctx context.Context, input CreateFacilityInput) (*CreateFacilityOutput, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	if name == "" || code == "" {
		return nil, domainerror.NewFacilityError(
			domainerror.ErrCodeMissingFacilityFields,
			"name and code are required",
			domainerror.ErrMissingFacilityFields,
		)
	}

	if input.Population < 0 {
		return nil, domainerror.NewFacilityError(
			domainerror.ErrCodeInvalidPopulation,
			"population cannot be negative",
			domainerror.ErrInvalidPopulation,
		)
	}

	contacts, err := normalizeContacts(input.ContactEmails)
	if err != nil {
		return nil, err
	}

	exists, err := uc.facilityRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check facility code: %w", err)
	}
	if exists {
		return nil, domainerror.NewFacilityError(
			domainerror.ErrCodeFacilityCodeExists,
			fmt.Sprintf("facility code %s is already in use", code),
			domainerror.ErrFacilityCodeExists,
		)
	}

	facility := entity.NewFacility(name, code, strings.TrimSpace(input.Zone), input.Population, contacts, input.CreatedBy)
	if err := uc.facilityRepo.Create(ctx, facility); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}

	return &CreateFacilityOutput{Facility: facility}, nil
}

// normalizeContacts lower-cases, validates and de-duplicates contact emails.
func normalizeContacts(emails []string) ([]string, error) {
	seen := make(map[string]bool, len(emails))
	contacts := make([]string, 0, len(emails))

	for _, raw := range emails {
		email := entity.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		if !entity.ValidEmail(email) {
			return nil, domainerror.NewFacilityError(
				domainerror.ErrCodeInvalidContactEmail,
				fmt.Sprintf("invalid contact email %q", raw),
				domainerror.ErrInvalidContactEmail,
			)
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		contacts = append(contacts, email)
	}

	return contacts, nil
}
