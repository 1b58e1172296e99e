// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a health facility reporting into the system.
type Facility struct {
	ID            uuid.UUID
	Name          string
	Code          string
	Zone          string
	Population    int // Catchment population used for incidence rates
	ContactEmails []string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewFacility creates a new Facility entity.
func NewFacility(name, code, zone string, population int, contactEmails []string, createdBy uuid.UUID) *Facility {
	now := time.Now().UTC()

	return &Facility{
		ID:            uuid.New(),
		Name:          name,
		Code:          code,
		Zone:          zone,
		Population:    population,
		ContactEmails: contactEmails,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
