package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// FacilityModel represents the facilities table in the database.
// Contact emails use the Postgres array literal format in a text column.
type FacilityModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name          string         `gorm:"type:varchar(200);not null;index"`
	Code          string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	Zone          string         `gorm:"type:varchar(100);index"`
	Population    int            `gorm:"not null;default:0"`
	ContactEmails pq.StringArray `gorm:"type:text"`
	CreatedBy     uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

// TableName returns the table name for the FacilityModel.
func (FacilityModel) TableName() string {
	return "facilities"
}

// ToEntity converts a FacilityModel to a domain Facility entity.
func (m *FacilityModel) ToEntity() *entity.Facility {
	contacts := make([]string, len(m.ContactEmails))
	copy(contacts, m.ContactEmails)

	return &entity.Facility{
		ID:            m.ID,
		Name:          m.Name,
		Code:          m.Code,
		Zone:          m.Zone,
		Population:    m.Population,
		ContactEmails: contacts,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FacilityFromEntity creates a FacilityModel from a domain Facility entity.
func FacilityFromEntity(f *entity.Facility) *FacilityModel {
	contacts := pq.StringArray{}
	contacts = append(contacts, f.ContactEmails...)

	return &FacilityModel{
		ID:            f.ID,
		Name:          f.Name,
		Code:          f.Code,
		Zone:          f.Zone,
		Population:    f.Population,
		ContactEmails: contacts,
		CreatedBy:     f.CreatedBy,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
