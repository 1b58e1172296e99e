package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/facility"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// GetTimelineInput represents a timeline request for one facility and record kind.
type GetTimelineInput struct {
	FacilityID    uuid.UUID
	Kind          entity.RecordKind
	Granularity   entity.Granularity
	ReferenceDate *time.Time // defaults to now
	WindowSize    int        // 0 uses the granularity default
	SelectedID    string     // defaults to the bucket containing the reference date
}

// ClassifiedBucket is a bucket with its derived status.
type ClassifiedBucket struct {
	entity.TimeBucket
	Status entity.BucketStatus
}

// GetTimelineOutput represents a classified window.
type GetTimelineOutput struct {
	FacilityID    uuid.UUID
	Kind          entity.RecordKind
	Granularity   entity.Granularity
	ReferenceDate time.Time
	SelectedID    string
	Buckets       []ClassifiedBucket
}

// GetTimelineUseCase builds the status strip shown above a record table.
type GetTimelineUseCase struct {
	recordRepo   adapter.RecordRepository
	facilityRepo adapter.FacilityRepository
	statusCache  adapter.StatusCache
	location     *time.Location
	now          func() time.Time
}

// NewGetTimelineUseCase creates a new GetTimelineUseCase instance. Buckets are
// aligned to calendar boundaries in location.
func NewGetTimelineUseCase(
	recordRepo adapter.RecordRepository,
	facilityRepo adapter.FacilityRepository,
	statusCache adapter.StatusCache,
	location *time.Location,
) *GetTimelineUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GetTimelineUseCase{
		recordRepo:   recordRepo,
		facilityRepo: facilityRepo,
		statusCache:  statusCache,
		location:     location,
		now:          time.Now,
	}
}

// Execute generates the window and classifies every bucket in it.
func (uc *GetTimelineUseCase) Execute(ctx context.Context, input GetTimelineInput) (*GetTimelineOutput, error) {
	if input.FacilityID == uuid.Nil {
		return nil, domainerror.NewTimelineError(domainerror.ErrCodeMissingFacility, "facility_id is required", nil)
	}
	if !input.Kind.IsValid() {
		return nil, invalidKindError(input.Kind)
	}

	now := uc.now().In(uc.location)
	ref := now
	if input.ReferenceDate != nil {
		ref = input.ReferenceDate.In(uc.location)
	}

	size := input.WindowSize
	if size == 0 {
		size = DefaultWindowSize(input.Granularity)
	}

	buckets, err := GenerateAt(ref, input.Granularity, size, now)
	if err != nil {
		return nil, err
	}

	selected := Identify(ref, input.Granularity)
	if input.SelectedID != "" {
		if _, err := ParseBucketID(input.SelectedID, input.Granularity, uc.location); err != nil {
			return nil, err
		}
		selected = input.SelectedID
	}

	if _, err := facility.Lookup(ctx, uc.facilityRepo, input.FacilityID); err != nil {
		return nil, err
	}

	query := adapter.RecordQuery{
		FacilityID: input.FacilityID,
		Kind:       input.Kind,
		From:       buckets[0].Start,
		To:         buckets[len(buckets)-1].End,
	}

	statuses, err := uc.classify(ctx, query, buckets, now)
	if err != nil {
		return nil, err
	}

	out := &GetTimelineOutput{
		FacilityID:    input.FacilityID,
		Kind:          input.Kind,
		Granularity:   input.Granularity,
		ReferenceDate: ref,
		SelectedID:    selected,
		Buckets:       make([]ClassifiedBucket, len(buckets)),
	}
	for i, bucket := range buckets {
		out.Buckets[i] = ClassifiedBucket{TimeBucket: bucket, Status: statuses[i]}
	}
	return out, nil
}

// classify returns one status per bucket. Statuses of closed buckets are read
// from and written to the cache under the current data version; records are
// only fetched when some bucket is missing from it.
func (uc *GetTimelineUseCase) classify(ctx context.Context, query adapter.RecordQuery, buckets []entity.TimeBucket, now time.Time) ([]entity.BucketStatus, error) {
	version, err := uc.recordRepo.DataVersion(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read data version: %w", err)
	}

	keys := make([]string, len(buckets))
	var closedKeys []string
	for i, bucket := range buckets {
		if bucket.End.After(now) {
			continue
		}
		keys[i] = statusCacheKey(query, version, bucket)
		closedKeys = append(closedKeys, keys[i])
	}

	cached := map[string]entity.BucketStatus{}
	if len(closedKeys) == len(buckets) {
		cached, err = uc.statusCache.GetMany(ctx, closedKeys)
		if err != nil {
			slog.WarnContext(ctx, "status cache read failed", "error", err)
			cached = map[string]entity.BucketStatus{}
		}
		if len(cached) == len(buckets) {
			statuses := make([]entity.BucketStatus, len(buckets))
			for i := range buckets {
				statuses[i] = cached[keys[i]]
			}
			return statuses, nil
		}
	}

	records, err := uc.recordRepo.FindDatedRecords(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	statuses := ClassifyWindow(buckets, records, now)

	if len(closedKeys) > 0 {
		fresh := make(map[string]entity.BucketStatus, len(closedKeys))
		for i, key := range keys {
			if key != "" {
				fresh[key] = statuses[i]
			}
		}
		if err := uc.statusCache.SetMany(ctx, fresh); err != nil {
			slog.WarnContext(ctx, "status cache write failed", "error", err)
		}
	}

	return statuses, nil
}

func statusCacheKey(query adapter.RecordQuery, version string, bucket entity.TimeBucket) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", query.FacilityID, query.Kind, bucket.Granularity, version, bucket.ID)
}

func invalidKindError(kind entity.RecordKind) error {
	return domainerror.NewTimelineError(
		domainerror.ErrCodeInvalidRecordKind,
		fmt.Sprintf("unknown record kind %q", kind),
		domainerror.ErrInvalidRecordKind,
	)
}
