package dto

import (
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// CreatePatientFileRequest represents the request body for opening a patient file.
type CreatePatientFileRequest struct {
	PatientCode string `json:"patient_code" binding:"required"`
	DiseaseCode string `json:"disease_code" binding:"required"`
	Outcome     string `json:"outcome"`
	Review      string `json:"review"`
}

// PatientFileResponse represents a patient file in API responses.
type PatientFileResponse struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facility_id"`
	PatientCode string    `json:"patient_code"`
	DiseaseCode string    `json:"disease_code"`
	Outcome     string    `json:"outcome"`
	Review      string    `json:"review"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateDocumentRequest represents the request body for registering a document.
type CreateDocumentRequest struct {
	Title    string `json:"title" binding:"required"`
	FileName string `json:"file_name" binding:"required"`
	Approved bool   `json:"approved"`
	Rejected bool   `json:"rejected"`
}

// DocumentResponse represents a document in API responses.
type DocumentResponse struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	Approved   bool      `json:"approved"`
	Rejected   bool      `json:"rejected"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ToPatientFileResponse converts a PatientFile entity to PatientFileResponse DTO.
func ToPatientFileResponse(p *entity.PatientFile) PatientFileResponse {
	return PatientFileResponse{
		ID:          p.ID.String(),
		FacilityID:  p.FacilityID.String(),
		PatientCode: p.PatientCode,
		DiseaseCode: p.DiseaseCode,
		Outcome:     p.Outcome,
		Review:      string(p.Review),
		Status:      string(p.SubmissionStatus()),
		CreatedAt:   p.CreatedAt,
	}
}

// ToDocumentResponse converts a DocumentRow entity to DocumentResponse DTO.
func ToDocumentResponse(d *entity.DocumentRow) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID.String(),
		FacilityID: d.FacilityID.String(),
		Title:      d.Title,
		FileName:   d.FileName,
		Approved:   d.Approved,
		Rejected:   d.Rejected,
		Status:     string(d.SubmissionStatus()),
		UploadedAt: d.UploadedAt,
	}
}
