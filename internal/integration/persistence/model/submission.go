package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// SubmissionModel represents the facility_submissions table in the database.
type SubmissionModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FacilityID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_submissions_facility_date"`
	SubmittedBy   uuid.UUID      `gorm:"type:uuid"`
	DiseaseCode   string         `gorm:"type:varchar(20);not null"`
	CaseCount     int            `gorm:"not null;default:0"`
	DeathCount    int            `gorm:"not null;default:0"`
	ReportingDate time.Time      `gorm:"not null;index:idx_submissions_facility_date"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes         string         `gorm:"type:text"`
	Version       int            `gorm:"not null;default:1"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the SubmissionModel.
func (SubmissionModel) TableName() string {
	return "facility_submissions"
}

// ToEntity converts a SubmissionModel to a domain FacilitySubmission entity.
func (m *SubmissionModel) ToEntity() *entity.FacilitySubmission {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.FacilitySubmission{
		ID:            m.ID,
		FacilityID:    m.FacilityID,
		SubmittedBy:   m.SubmittedBy,
		DiseaseCode:   m.DiseaseCode,
		CaseCount:     m.CaseCount,
		DeathCount:    m.DeathCount,
		ReportingDate: m.ReportingDate,
		Status:        entity.SubmissionStatus(m.Status),
		Notes:         m.Notes,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// SubmissionFromEntity creates a SubmissionModel from a domain FacilitySubmission entity.
// Timestamps are stored in UTC so range filters compare consistently.
func SubmissionFromEntity(s *entity.FacilitySubmission) *SubmissionModel {
	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: s.DeletedAt.UTC(), Valid: true}
	}

	return &SubmissionModel{
		ID:            s.ID,
		FacilityID:    s.FacilityID,
		SubmittedBy:   s.SubmittedBy,
		DiseaseCode:   s.DiseaseCode,
		CaseCount:     s.CaseCount,
		DeathCount:    s.DeathCount,
		ReportingDate: s.ReportingDate.UTC(),
		Status:        string(s.Status),
		Notes:         s.Notes,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt.UTC(),
		UpdatedAt:     s.UpdatedAt.UTC(),
		DeletedAt:     deletedAt,
	}
}
