package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// PatientFileModel represents the patient_files table in the database.
type PatientFileModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FacilityID  uuid.UUID `gorm:"type:uuid;not null;index:idx_patient_files_facility_created"`
	PatientCode string    `gorm:"type:varchar(50);not null"`
	DiseaseCode string    `gorm:"type:varchar(20);not null"`
	Outcome     string    `gorm:"type:varchar(30)"`
	Review      string    `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt   time.Time `gorm:"not null;index:idx_patient_files_facility_created"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the PatientFileModel.
func (PatientFileModel) TableName() string {
	return "patient_files"
}

// ToEntity converts a PatientFileModel to a domain PatientFile entity.
func (m *PatientFileModel) ToEntity() *entity.PatientFile {
	return &entity.PatientFile{
		ID:          m.ID,
		FacilityID:  m.FacilityID,
		PatientCode: m.PatientCode,
		DiseaseCode: m.DiseaseCode,
		Outcome:     m.Outcome,
		Review:      entity.ReviewState(m.Review),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PatientFileFromEntity creates a PatientFileModel from a domain PatientFile entity.
func PatientFileFromEntity(p *entity.PatientFile) *PatientFileModel {
	return &PatientFileModel{
		ID:          p.ID,
		FacilityID:  p.FacilityID,
		PatientCode: p.PatientCode,
		DiseaseCode: p.DiseaseCode,
		Outcome:     p.Outcome,
		Review:      string(p.Review),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

// DocumentModel represents the documents table in the database. UpdatedAt is
// kept for change detection only.
type DocumentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FacilityID uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_facility_uploaded"`
	Title      string    `gorm:"type:varchar(200);not null"`
	FileName   string    `gorm:"type:varchar(255);not null"`
	Approved   bool      `gorm:"not null;default:false"`
	Rejected   bool      `gorm:"not null;default:false"`
	UploadedAt time.Time `gorm:"not null;index:idx_documents_facility_uploaded"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the DocumentModel.
func (DocumentModel) TableName() string {
	return "documents"
}

// ToEntity converts a DocumentModel to a domain DocumentRow entity.
func (m *DocumentModel) ToEntity() *entity.DocumentRow {
	return &entity.DocumentRow{
		ID:         m.ID,
		FacilityID: m.FacilityID,
		Title:      m.Title,
		FileName:   m.FileName,
		Approved:   m.Approved,
		Rejected:   m.Rejected,
		UploadedAt: m.UploadedAt,
	}
}

// DocumentFromEntity creates a DocumentModel from a domain DocumentRow entity.
func DocumentFromEntity(d *entity.DocumentRow) *DocumentModel {
	return &DocumentModel{
		ID:         d.ID,
		FacilityID: d.FacilityID,
		Title:      d.Title,
		FileName:   d.FileName,
		Approved:   d.Approved,
		Rejected:   d.Rejected,
		UploadedAt: d.UploadedAt.UTC(),
		UpdatedAt:  d.UploadedAt.UTC(),
	}
}
