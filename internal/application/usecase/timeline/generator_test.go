package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids(buckets []entity.TimeBucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.ID
	}
	return out
}

func TestGenerateAt_DayWindowAroundReference(t *testing.T) {
	buckets, err := GenerateAt(date(2024, 3, 15), entity.GranularityDay, 10, date(2024, 3, 15))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15",
		"2024-03-16", "2024-03-17", "2024-03-18", "2024-03-19", "2024-03-20",
	}, ids(buckets))
}

func TestGenerateAt_WeekContainingFridayStartsOnMonday(t *testing.T) {
	buckets, err := GenerateAt(date(2024, 3, 15), entity.GranularityWeek, 8, date(2024, 3, 15))
	require.NoError(t, err)

	centre := buckets[(8-1)/2]
	assert.Equal(t, "2024-W11", centre.ID)
	assert.Equal(t, date(2024, 3, 11), centre.Start)
	assert.Equal(t, date(2024, 3, 18), centre.End)
	assert.Equal(t, "W11", centre.Label)
	assert.Equal(t, "11", centre.DisplayValue)
}

func TestGenerateAt_MonthAndYearWindows(t *testing.T) {
	months, err := GenerateAt(date(2024, 3, 15), entity.GranularityMonth, 8, date(2024, 3, 15))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-12", "2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06", "2024-07",
	}, ids(months))

	years, err := GenerateAt(date(2024, 6, 1), entity.GranularityYear, 5, date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"2022", "2023", "2024", "2025", "2026"}, ids(years))

	evenYears, err := GenerateAt(date(2024, 6, 1), entity.GranularityYear, 6, date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"2022", "2023", "2024", "2025", "2026", "2027"}, ids(evenYears))
}

func TestGenerateAt_WindowsAreContiguousAndContainReference(t *testing.T) {
	references := []time.Time{
		date(2024, 3, 15),
		date(2024, 2, 29),
		date(2023, 12, 31),
		date(2021, 1, 3),
		time.Date(2024, 10, 27, 23, 59, 59, 0, time.UTC),
	}

	for _, granularity := range entity.Granularities {
		for _, size := range []int{1, 2, 5, 7, 10} {
			for _, ref := range references {
				buckets, err := GenerateAt(ref, granularity, size, ref)
				require.NoError(t, err)
				require.Len(t, buckets, size, "granularity=%s size=%d ref=%s", granularity, size, ref)

				found := false
				for i, b := range buckets {
					assert.True(t, b.Start.Before(b.End))
					if i > 0 {
						assert.True(t, buckets[i-1].End.Equal(b.Start), "gap before %s", b.ID)
					}
					if b.Contains(ref) {
						found = true
					}
				}
				assert.True(t, found, "reference %s missing from %s window of %d", ref, granularity, size)
			}
		}
	}
}

func TestGenerateAt_IsCurrent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	buckets, err := GenerateAt(date(2024, 3, 15), entity.GranularityDay, 10, now)
	require.NoError(t, err)

	var current []string
	for _, b := range buckets {
		if b.IsCurrent {
			current = append(current, b.ID)
		}
	}
	assert.Equal(t, []string{"2024-03-15"}, current)

	future, err := GenerateAt(date(2030, 1, 1), entity.GranularityYear, 3, now)
	require.NoError(t, err)
	for _, b := range future {
		assert.False(t, b.IsCurrent)
	}
}

func TestGenerateAt_KeepsLocalMidnightAcrossDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("timezone database not available")
	}

	// Clocks jumped from 00:00 to 01:00 on 2018-11-04 in Sao Paulo.
	ref := time.Date(2018, 11, 5, 9, 0, 0, 0, loc)
	buckets, err := GenerateAt(ref, entity.GranularityDay, 10, ref)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2018-11-01", "2018-11-02", "2018-11-03", "2018-11-04", "2018-11-05",
		"2018-11-06", "2018-11-07", "2018-11-08", "2018-11-09", "2018-11-10",
	}, ids(buckets))
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i-1].End.Equal(buckets[i].Start))
	}
}

func TestGenerateAt_Errors(t *testing.T) {
	tests := []struct {
		name        string
		ref         time.Time
		granularity entity.Granularity
		size        int
		code        domainerror.TimelineErrorCode
		sentinel    error
	}{
		{
			name:        "zero reference date",
			ref:         time.Time{},
			granularity: entity.GranularityDay,
			size:        10,
			code:        domainerror.ErrCodeInvalidReferenceDate,
			sentinel:    domainerror.ErrInvalidReferenceDate,
		},
		{
			name:        "year beyond four digits",
			ref:         date(10000, 1, 1),
			granularity: entity.GranularityDay,
			size:        10,
			code:        domainerror.ErrCodeInvalidReferenceDate,
			sentinel:    domainerror.ErrInvalidReferenceDate,
		},
		{
			name:        "window runs past year 9999",
			ref:         date(9999, 6, 1),
			granularity: entity.GranularityYear,
			size:        5,
			code:        domainerror.ErrCodeInvalidReferenceDate,
			sentinel:    domainerror.ErrInvalidReferenceDate,
		},
		{
			name:        "window runs before year 1",
			ref:         date(1, 1, 2),
			granularity: entity.GranularityYear,
			size:        5,
			code:        domainerror.ErrCodeInvalidReferenceDate,
			sentinel:    domainerror.ErrInvalidReferenceDate,
		},
		{
			name:        "unknown granularity",
			ref:         date(2024, 3, 15),
			granularity: entity.Granularity("quarter"),
			size:        4,
			code:        domainerror.ErrCodeInvalidGranularity,
			sentinel:    domainerror.ErrInvalidGranularity,
		},
		{
			name:        "empty window",
			ref:         date(2024, 3, 15),
			granularity: entity.GranularityWeek,
			size:        0,
			code:        domainerror.ErrCodeInvalidWindowSize,
			sentinel:    domainerror.ErrInvalidWindowSize,
		},
		{
			name:        "window too large",
			ref:         date(2024, 3, 15),
			granularity: entity.GranularityWeek,
			size:        MaxWindowSize + 1,
			code:        domainerror.ErrCodeInvalidWindowSize,
			sentinel:    domainerror.ErrInvalidWindowSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets, err := GenerateAt(tt.ref, tt.granularity, tt.size, time.Now())
			require.Error(t, err)
			assert.Nil(t, buckets)

			var timelineErr *domainerror.TimelineError
			require.True(t, errors.As(err, &timelineErr))
			assert.Equal(t, tt.code, timelineErr.Code)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestGenerateAt_WindowsAtTheEdgesOfTheCalendarRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		ref         time.Time
		granularity entity.Granularity
		size        int
	}{
		{"last years", date(9999, 6, 1), entity.GranularityYear, 1},
		{"first years", date(1, 1, 2), entity.GranularityYear, 2},
		{"last weeks", date(9999, 12, 1), entity.GranularityWeek, 5},
		{"first days", date(1, 1, 5), entity.GranularityDay, 3},
		{"last months", date(9999, 11, 15), entity.GranularityMonth, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets, err := GenerateAt(tt.ref, tt.granularity, tt.size, time.Now())
			require.NoError(t, err)
			for _, b := range buckets {
				start, err := ParseBucketID(b.ID, tt.granularity, time.UTC)
				require.NoError(t, err, b.ID)
				assert.True(t, start.Equal(b.Start), b.ID)
			}
		})
	}
}

func TestDefaultWindowSize(t *testing.T) {
	assert.Equal(t, 10, DefaultWindowSize(entity.GranularityDay))
	assert.Equal(t, 8, DefaultWindowSize(entity.GranularityWeek))
	assert.Equal(t, 8, DefaultWindowSize(entity.GranularityMonth))
	assert.Equal(t, 5, DefaultWindowSize(entity.GranularityYear))
}
