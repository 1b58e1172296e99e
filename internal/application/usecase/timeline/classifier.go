package timeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// Record statuses ranked from least to most advanced. The bucket reports the
// lowest rank present.
const (
	rankNone = iota
	rankPending
	rankInProgress
	rankConfirmed
)

var per100k = decimal.NewFromInt(100000)

func statusRank(status entity.SubmissionStatus) int {
	switch status {
	case entity.SubmissionStatusConfirmed:
		return rankConfirmed
	case entity.SubmissionStatusInProgress:
		return rankInProgress
	default:
		// Unknown statuses are treated as not yet started.
		return rankPending
	}
}

func rankStatus(rank int) entity.BucketStatus {
	switch rank {
	case rankConfirmed:
		return entity.BucketStatusComplete
	case rankInProgress:
		return entity.BucketStatusInProgress
	default:
		return entity.BucketStatusPending
	}
}

// emptyStatus is the status of a bucket with no records: a closed bucket is
// missing its submission, an open or future one has nothing due yet.
func emptyStatus(bucket entity.TimeBucket, now time.Time) entity.BucketStatus {
	if !bucket.End.After(now) {
		return entity.BucketStatusNoSubmission
	}
	return entity.BucketStatusNoData
}

// Classify derives the status of bucket from the records that fall inside it.
// A single pending record makes the whole bucket pending, and the bucket is
// complete only when every record in it is confirmed.
func Classify(bucket entity.TimeBucket, records []entity.DatedRecord, now time.Time) entity.BucketStatus {
	worst := rankNone
	for _, record := range records {
		if record == nil || !bucket.Contains(record.RecordedAt()) {
			continue
		}
		rank := statusRank(record.SubmissionStatus())
		if worst == rankNone || rank < worst {
			worst = rank
		}
		if worst == rankPending {
			break
		}
	}

	if worst == rankNone {
		return emptyStatus(bucket, now)
	}
	return rankStatus(worst)
}

// ClassifyWindow classifies every bucket of a sorted window in a single pass
// over records. The result is indexed like buckets.
func ClassifyWindow(buckets []entity.TimeBucket, records []entity.DatedRecord, now time.Time) []entity.BucketStatus {
	worst := make([]int, len(buckets))
	for _, record := range records {
		if record == nil {
			continue
		}
		i := bucketIndex(buckets, record.RecordedAt())
		if i < 0 {
			continue
		}
		rank := statusRank(record.SubmissionStatus())
		if worst[i] == rankNone || rank < worst[i] {
			worst[i] = rank
		}
	}

	statuses := make([]entity.BucketStatus, len(buckets))
	for i, bucket := range buckets {
		if worst[i] == rankNone {
			statuses[i] = emptyStatus(bucket, now)
			continue
		}
		statuses[i] = rankStatus(worst[i])
	}
	return statuses
}

// bucketIndex returns the index of the bucket containing t, or -1.
func bucketIndex(buckets []entity.TimeBucket, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool {
		return t.Before(buckets[i].End)
	})
	if i < len(buckets) && buckets[i].Contains(t) {
		return i
	}
	return -1
}

// BucketSummary aggregates the records of one bucket.
type BucketSummary struct {
	BucketID         string
	Status           entity.BucketStatus
	Records          int
	Cases            int
	Deaths           int
	IncidencePer100k decimal.Decimal
	CaseFatalityRate decimal.Decimal // percentage of cases
}

// Summarize counts the records inside bucket and derives incidence and case
// fatality. Incidence is zero when the population is unknown.
func Summarize(bucket entity.TimeBucket, records []entity.DatedRecord, population int, now time.Time) BucketSummary {
	summary := BucketSummary{
		BucketID:         bucket.ID,
		Status:           Classify(bucket, records, now),
		IncidencePer100k: decimal.Zero,
		CaseFatalityRate: decimal.Zero,
	}

	for _, record := range records {
		if record == nil || !bucket.Contains(record.RecordedAt()) {
			continue
		}
		summary.Records++
		if counter, ok := record.(entity.CaseCounter); ok {
			summary.Cases += counter.Cases()
			summary.Deaths += counter.Deaths()
		}
	}

	cases := decimal.NewFromInt(int64(summary.Cases))
	if population > 0 {
		summary.IncidencePer100k = cases.Mul(per100k).Div(decimal.NewFromInt(int64(population))).Round(2)
	}
	if summary.Cases > 0 {
		summary.CaseFatalityRate = decimal.NewFromInt(int64(summary.Deaths)).Mul(decimal.NewFromInt(100)).Div(cases).Round(2)
	}

	return summary
}
