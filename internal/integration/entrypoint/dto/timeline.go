package dto

import (
	"time"

	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
)

// BucketResponse is one time bucket of a window.
type BucketResponse struct {
	ID           string    `json:"id"`
	Granularity  string    `json:"granularity"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Label        string    `json:"label"`
	DisplayValue string    `json:"display_value"`
	IsCurrent    bool      `json:"is_current"`
	IsSelected   bool      `json:"is_selected"`
	Status       string    `json:"status,omitempty"`
}

// TimelineResponse is the classified window of a facility timeline.
type TimelineResponse struct {
	FacilityID    string           `json:"facility_id"`
	Kind          string           `json:"kind"`
	Granularity   string           `json:"granularity"`
	ReferenceDate string           `json:"reference_date"`
	SelectedID    string           `json:"selected_id"`
	Buckets       []BucketResponse `json:"buckets"`
}

// BucketSummaryResponse is the detail panel of one bucket.
type BucketSummaryResponse struct {
	Bucket           BucketResponse `json:"bucket"`
	Population       int            `json:"population"`
	Records          int            `json:"records"`
	Cases            int            `json:"cases"`
	Deaths           int            `json:"deaths"`
	IncidencePer100k string         `json:"incidence_per_100k"`
	CaseFatalityRate string         `json:"case_fatality_rate"`
}

// SelectionResponse is the caller's selection with the window it produces.
type SelectionResponse struct {
	Granularity      string           `json:"granularity"`
	SelectedBucketID string           `json:"selected_bucket_id"`
	ReferenceDate    string           `json:"reference_date"`
	WindowSize       int              `json:"window_size"`
	Window           []BucketResponse `json:"window"`
}

// SelectBucketRequest selects a bucket of the active granularity.
type SelectBucketRequest struct {
	BucketID string `json:"bucket_id" binding:"required"`
}

// PickDateRequest re-anchors the selection on a calendar date.
type PickDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// SetGranularityRequest switches the active granularity.
type SetGranularityRequest struct {
	Granularity string `json:"granularity" binding:"required"`
}

// ToBucketResponse converts a TimeBucket to BucketResponse DTO.
func ToBucketResponse(b entity.TimeBucket, selectedID string) BucketResponse {
	return BucketResponse{
		ID:           b.ID,
		Granularity:  string(b.Granularity),
		Start:        b.Start,
		End:          b.End,
		Label:        b.Label,
		DisplayValue: b.DisplayValue,
		IsCurrent:    b.IsCurrent,
		IsSelected:   b.ID == selectedID,
	}
}

// ToTimelineResponse converts a classified window to TimelineResponse DTO.
func ToTimelineResponse(out *timeline.GetTimelineOutput) TimelineResponse {
	resp := TimelineResponse{
		FacilityID:    out.FacilityID.String(),
		Kind:          string(out.Kind),
		Granularity:   string(out.Granularity),
		ReferenceDate: out.ReferenceDate.Format(DateLayout),
		SelectedID:    out.SelectedID,
		Buckets:       make([]BucketResponse, len(out.Buckets)),
	}
	for i, b := range out.Buckets {
		resp.Buckets[i] = ToBucketResponse(b.TimeBucket, out.SelectedID)
		resp.Buckets[i].Status = string(b.Status)
	}
	return resp
}

// ToBucketSummaryResponse converts a bucket summary to BucketSummaryResponse DTO.
func ToBucketSummaryResponse(out *timeline.GetBucketSummaryOutput) BucketSummaryResponse {
	bucket := ToBucketResponse(out.Bucket, out.Bucket.ID)
	bucket.Status = string(out.Summary.Status)
	return BucketSummaryResponse{
		Bucket:           bucket,
		Population:       out.Population,
		Records:          out.Summary.Records,
		Cases:            out.Summary.Cases,
		Deaths:           out.Summary.Deaths,
		IncidencePer100k: out.Summary.IncidencePer100k.StringFixed(2),
		CaseFatalityRate: out.Summary.CaseFatalityRate.StringFixed(2),
	}
}

// ToSelectionResponse converts a selection to SelectionResponse DTO.
func ToSelectionResponse(out *timeline.SelectionOutput) SelectionResponse {
	resp := SelectionResponse{
		Granularity:      string(out.State.Granularity),
		SelectedBucketID: out.State.SelectedBucketID,
		ReferenceDate:    out.State.ReferenceDate.Format(DateLayout),
		WindowSize:       out.WindowSize,
		Window:           make([]BucketResponse, len(out.Window)),
	}
	for i, b := range out.Window {
		resp.Window[i] = ToBucketResponse(b, out.State.SelectedBucketID)
	}
	return resp
}
