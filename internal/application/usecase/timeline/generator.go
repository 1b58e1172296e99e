// Package timeline contains the time-bucket navigation use cases.
package timeline

import (
	"fmt"
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// MaxWindowSize bounds the number of buckets a single window may hold.
const MaxWindowSize = 60

var defaultWindowSizes = map[entity.Granularity]int{
	entity.GranularityDay:   10,
	entity.GranularityWeek:  8,
	entity.GranularityMonth: 8,
	entity.GranularityYear:  5,
}

// DefaultWindowSize returns the number of buckets shown for a granularity
// when the caller does not ask for a specific size.
func DefaultWindowSize(granularity entity.Granularity) int {
	if size, ok := defaultWindowSizes[granularity]; ok {
		return size
	}
	return defaultWindowSizes[entity.GranularityDay]
}

// Generate returns windowSize contiguous buckets around the bucket containing
// referenceDate. IsCurrent is evaluated against the wall clock.
func Generate(referenceDate time.Time, granularity entity.Granularity, windowSize int) ([]entity.TimeBucket, error) {
	return GenerateAt(referenceDate, granularity, windowSize, time.Now())
}

// GenerateAt is Generate with an explicit "now".
//
// The window holds (windowSize-1)/2 buckets before the centre bucket and the
// rest after it, so an even window leans towards the future: ten days around
// 2024-03-15 run from 2024-03-11 to 2024-03-20.
func GenerateAt(referenceDate time.Time, granularity entity.Granularity, windowSize int, now time.Time) ([]entity.TimeBucket, error) {
	if err := ValidateReferenceDate(referenceDate); err != nil {
		return nil, err
	}
	if !granularity.IsValid() {
		return nil, invalidGranularityError(granularity)
	}
	if windowSize < 1 || windowSize > MaxWindowSize {
		return nil, domainerror.NewTimelineError(
			domainerror.ErrCodeInvalidWindowSize,
			fmt.Sprintf("window size %d is out of range", windowSize),
			domainerror.ErrInvalidWindowSize,
		)
	}

	before := (windowSize - 1) / 2
	cursor := FloorToGranularity(Advance(referenceDate, granularity, -before), granularity)
	if !idRepresentable(cursor) || !idRepresentable(Advance(cursor, granularity, windowSize-1)) {
		return nil, domainerror.NewTimelineError(
			domainerror.ErrCodeInvalidReferenceDate,
			fmt.Sprintf("a window of %d %s buckets around %s leaves the years 0001-9999",
				windowSize, granularity, referenceDate.Format(time.DateOnly)),
			domainerror.ErrInvalidReferenceDate,
		)
	}

	buckets := make([]entity.TimeBucket, 0, windowSize)
	for i := 0; i < windowSize; i++ {
		bucket := NewBucket(cursor, granularity, now)
		buckets = append(buckets, bucket)
		cursor = bucket.End
	}

	return buckets, nil
}

// NewBucket builds the bucket containing t.
func NewBucket(t time.Time, granularity entity.Granularity, now time.Time) entity.TimeBucket {
	start := FloorToGranularity(t, granularity)
	end := Advance(start, granularity, 1)
	label, displayValue := Format(start, granularity)

	return entity.TimeBucket{
		ID:           Identify(start, granularity),
		Granularity:  granularity,
		Start:        start,
		End:          end,
		Label:        label,
		DisplayValue: displayValue,
		IsCurrent:    !now.Before(start) && now.Before(end),
	}
}

// idRepresentable reports whether a bucket starting at start gets an id that
// ParseBucketID accepts.
func idRepresentable(start time.Time) bool {
	return start.Year() >= 1 && start.Year() <= 9999
}

// ValidateReferenceDate rejects zero dates and dates whose year cannot be
// written as a four digit bucket id.
func ValidateReferenceDate(t time.Time) error {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return domainerror.NewTimelineError(
			domainerror.ErrCodeInvalidReferenceDate,
			"reference date is missing or out of range",
			domainerror.ErrInvalidReferenceDate,
		)
	}
	return nil
}
