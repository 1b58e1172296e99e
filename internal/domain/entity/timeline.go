// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Granularity represents the unit of time aggregation used by the timeline.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Granularities lists every supported granularity, finest first.
var Granularities = []Granularity{
	GranularityDay,
	GranularityWeek,
	GranularityMonth,
	GranularityYear,
}

// IsValid reports whether g is one of the supported granularities.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return true
	default:
		return false
	}
}

// BucketStatus is the coarse status derived for a time bucket from the
// records that fall inside it. It is never stored.
type BucketStatus string

const (
	BucketStatusComplete     BucketStatus = "complete"
	BucketStatusInProgress   BucketStatus = "in_progress"
	BucketStatusPending      BucketStatus = "pending"
	BucketStatusNoSubmission BucketStatus = "no_submission"
	BucketStatusNoData       BucketStatus = "no_data"
)

// TimeBucket is a half-open interval [Start, End) aligned to a granularity.
type TimeBucket struct {
	ID           string
	Granularity  Granularity
	Start        time.Time
	End          time.Time
	Label        string
	DisplayValue string
	IsCurrent    bool
}

// Contains reports whether t falls inside the bucket.
func (b TimeBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// SelectionState tracks what a user is looking at on the timeline.
type SelectionState struct {
	Granularity      Granularity
	SelectedBucketID string
	ReferenceDate    time.Time
}
