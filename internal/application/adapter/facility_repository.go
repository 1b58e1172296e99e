// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// FacilityFilter defines filter options for listing facilities.
type FacilityFilter struct {
	Zone   string
	Search string // Case-insensitive name match
}

// FacilityRepository defines the interface for facility persistence operations.
type FacilityRepository interface {
	// Create creates a new facility in the database.
	Create(ctx context.Context, facility *entity.Facility) error

	// FindByID retrieves a facility by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error)

	// ExistsByCode checks if a facility with the given code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// FindAll retrieves facilities matching the filter, ordered by name.
	FindAll(ctx context.Context, filter FacilityFilter) ([]*entity.Facility, error)

	// FindWithContacts retrieves facilities that have at least one contact email.
	FindWithContacts(ctx context.Context) ([]*entity.Facility, error)
}
