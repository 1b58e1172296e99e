package dto

import (
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// CreateFacilityRequest represents the request body for creating a facility.
type CreateFacilityRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Code          string   `json:"code" binding:"required,max=50"`
	Zone          string   `json:"zone" binding:"max=100"`
	Population    int      `json:"population"`
	ContactEmails []string `json:"contact_emails"`
}

// FacilityResponse represents a facility in API responses.
type FacilityResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Zone          string    `json:"zone"`
	Population    int       `json:"population"`
	ContactEmails []string  `json:"contact_emails"`
	CreatedAt     time.Time `json:"created_at"`
}

// FacilityListResponse represents the response for listing facilities.
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// ToFacilityResponse converts a Facility entity to FacilityResponse DTO.
func ToFacilityResponse(f *entity.Facility) FacilityResponse {
	contacts := f.ContactEmails
	if contacts == nil {
		contacts = []string{}
	}
	return FacilityResponse{
		ID:            f.ID.String(),
		Name:          f.Name,
		Code:          f.Code,
		Zone:          f.Zone,
		Population:    f.Population,
		ContactEmails: contacts,
		CreatedAt:     f.CreatedAt,
	}
}

// ToFacilityListResponse converts facility entities to a list response.
func ToFacilityListResponse(facilities []*entity.Facility) FacilityListResponse {
	out := FacilityListResponse{Facilities: make([]FacilityResponse, len(facilities))}
	for i, f := range facilities {
		out.Facilities[i] = ToFacilityResponse(f)
	}
	return out
}
