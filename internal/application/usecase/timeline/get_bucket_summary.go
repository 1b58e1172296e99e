package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/facility"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// GetBucketSummaryInput names one bucket of a facility timeline.
type GetBucketSummaryInput struct {
	FacilityID  uuid.UUID
	Kind        entity.RecordKind
	Granularity entity.Granularity
	BucketID    string
}

// GetBucketSummaryOutput is the detail panel of a selected bucket.
type GetBucketSummaryOutput struct {
	Bucket     entity.TimeBucket
	Population int
	Summary    BucketSummary
}

// GetBucketSummaryUseCase aggregates the records of a single bucket.
type GetBucketSummaryUseCase struct {
	recordRepo   adapter.RecordRepository
	facilityRepo adapter.FacilityRepository
	location     *time.Location
	now          func() time.Time
}

// NewGetBucketSummaryUseCase creates a new GetBucketSummaryUseCase instance.
func NewGetBucketSummaryUseCase(
	recordRepo adapter.RecordRepository,
	facilityRepo adapter.FacilityRepository,
	location *time.Location,
) *GetBucketSummaryUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GetBucketSummaryUseCase{
		recordRepo:   recordRepo,
		facilityRepo: facilityRepo,
		location:     location,
		now:          time.Now,
	}
}

// Execute returns counts, incidence and status for the bucket.
func (uc *GetBucketSummaryUseCase) Execute(ctx context.Context, input GetBucketSummaryInput) (*GetBucketSummaryOutput, error) {
	if input.FacilityID == uuid.Nil {
		return nil, domainerror.NewTimelineError(domainerror.ErrCodeMissingFacility, "facility_id is required", nil)
	}
	if !input.Kind.IsValid() {
		return nil, invalidKindError(input.Kind)
	}

	start, err := ParseBucketID(input.BucketID, input.Granularity, uc.location)
	if err != nil {
		return nil, err
	}

	f, err := facility.Lookup(ctx, uc.facilityRepo, input.FacilityID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.location)
	bucket := NewBucket(start, input.Granularity, now)

	records, err := uc.recordRepo.FindDatedRecords(ctx, adapter.RecordQuery{
		FacilityID: input.FacilityID,
		Kind:       input.Kind,
		From:       bucket.Start,
		To:         bucket.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return &GetBucketSummaryOutput{
		Bucket:     bucket,
		Population: f.Population,
		Summary:    Summarize(bucket, records, f.Population, now),
	}, nil
}
