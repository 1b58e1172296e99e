package dto

import (
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// DateLayout is the calendar date format used by every API date field.
const DateLayout = "2006-01-02"

// CreateSubmissionRequest represents the request body for creating a submission.
type CreateSubmissionRequest struct {
	DiseaseCode   string `json:"disease_code" binding:"required"`
	CaseCount     int    `json:"case_count"`
	DeathCount    int    `json:"death_count"`
	ReportingDate string `json:"reporting_date" binding:"required"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

// UpdateSubmissionRequest is an inline edit. Version must be the version the
// client last read; omitted fields keep their stored value.
type UpdateSubmissionRequest struct {
	Version       int     `json:"version" binding:"required"`
	DiseaseCode   *string `json:"disease_code"`
	CaseCount     *int    `json:"case_count"`
	DeathCount    *int    `json:"death_count"`
	ReportingDate *string `json:"reporting_date"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

// SubmissionResponse represents a submission in API responses.
type SubmissionResponse struct {
	ID            string    `json:"id"`
	FacilityID    string    `json:"facility_id"`
	SubmittedBy   string    `json:"submitted_by"`
	DiseaseCode   string    `json:"disease_code"`
	CaseCount     int       `json:"case_count"`
	DeathCount    int       `json:"death_count"`
	ReportingDate string    `json:"reporting_date"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	Version       int       `json:"version"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaginationResponse describes the page returned by a list endpoint.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SubmissionListResponse represents the response for listing submissions.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Pagination  PaginationResponse   `json:"pagination"`
}

// ToSubmissionResponse converts a FacilitySubmission entity to SubmissionResponse DTO.
func ToSubmissionResponse(s *entity.FacilitySubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:            s.ID.String(),
		FacilityID:    s.FacilityID.String(),
		SubmittedBy:   s.SubmittedBy.String(),
		DiseaseCode:   s.DiseaseCode,
		CaseCount:     s.CaseCount,
		DeathCount:    s.DeathCount,
		ReportingDate: s.ReportingDate.Format(DateLayout),
		Status:        string(s.Status),
		Notes:         s.Notes,
		Version:       s.Version,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSubmissionListResponse converts a page of submissions to a list response.
func ToSubmissionListResponse(result *entity.SubmissionListResult) SubmissionListResponse {
	out := SubmissionListResponse{
		Submissions: make([]SubmissionResponse, len(result.Submissions)),
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, s := range result.Submissions {
		out.Submissions[i] = ToSubmissionResponse(s)
	}
	return out
}
