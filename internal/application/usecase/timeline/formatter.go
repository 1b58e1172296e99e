package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

const (
	dayIDLayout   = "2006-01-02"
	monthIDLayout = "2006-01"
	yearIDLayout  = "2006"
)

var weekdayInitials = map[time.Weekday]string{
	time.Monday:    "M",
	time.Tuesday:   "T",
	time.Wednesday: "W",
	time.Thursday:  "T",
	time.Friday:    "F",
	time.Saturday:  "S",
	time.Sunday:    "S",
}

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// startOfDay returns the first instant of the calendar day in loc.
func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if noon := time.Date(y, m, d, 12, 0, 0, 0, loc); t.Day() != noon.Day() {
		// Midnight was skipped by a daylight saving jump and time.Date
		// resolved it to the evening before. The day starts at the jump.
		_, end := t.ZoneBounds()
		return end
	}
	return t
}

// FloorToGranularity returns the start of the bucket containing t, in t's location.
// Weeks start on Monday. Unknown granularities floor to the start of the day.
func FloorToGranularity(t time.Time, granularity entity.Granularity) time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	switch granularity {
	case entity.GranularityWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday is 7
		}
		return startOfDay(y, m, d-(weekday-1), loc)
	case entity.GranularityMonth:
		return startOfDay(y, m, 1, loc)
	case entity.GranularityYear:
		return startOfDay(y, time.January, 1, loc)
	default:
		return startOfDay(y, m, d, loc)
	}
}

// Advance returns the start of the bucket n units away from the bucket containing t.
// n may be negative.
func Advance(t time.Time, granularity entity.Granularity, n int) time.Time {
	start := FloorToGranularity(t, granularity)
	y, m, d := start.Date()
	loc := start.Location()

	switch granularity {
	case entity.GranularityWeek:
		return startOfDay(y, m, d+7*n, loc)
	case entity.GranularityMonth:
		return startOfDay(y, m+time.Month(n), 1, loc)
	case entity.GranularityYear:
		return startOfDay(y+n, time.January, 1, loc)
	default:
		return startOfDay(y, m, d+n, loc)
	}
}

// Identify returns the stable id of the bucket containing t.
//   - day:   2024-03-15
//   - week:  2024-W11 (ISO year and ISO week)
//   - month: 2024-03
//   - year:  2024
func Identify(t time.Time, granularity entity.Granularity) string {
	start := FloorToGranularity(t, granularity)

	switch granularity {
	case entity.GranularityWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case entity.GranularityMonth:
		return start.Format(monthIDLayout)
	case entity.GranularityYear:
		return start.Format(yearIDLayout)
	default:
		return start.Format(dayIDLayout)
	}
}

// Format returns the short label and the display value of the bucket containing t.
func Format(t time.Time, granularity entity.Granularity) (label, displayValue string) {
	start := FloorToGranularity(t, granularity)

	switch granularity {
	case entity.GranularityWeek:
		_, week := start.ISOWeek()
		return "W" + strconv.Itoa(week), strconv.Itoa(week)
	case entity.GranularityMonth:
		return monthAbbreviations[start.Month()], strconv.Itoa(int(start.Month()))
	case entity.GranularityYear:
		return "", strconv.Itoa(start.Year())
	default:
		return weekdayInitials[start.Weekday()], strconv.Itoa(start.Day())
	}
}

// ParseBucketID is the inverse of Identify: it returns the start of the bucket
// named by id under the given granularity, in loc. A nil loc means UTC.
func ParseBucketID(id string, granularity entity.Granularity, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if !granularity.IsValid() {
		return time.Time{}, invalidGranularityError(granularity)
	}

	var (
		parsed time.Time
		err    error
	)

	// Ids are parsed as UTC calendar dates and then placed in loc, so a
	// midnight lost to daylight saving still maps to its own day.
	switch granularity {
	case entity.GranularityWeek:
		parsed, err = parseISOWeek(id)
	case entity.GranularityMonth:
		parsed, err = time.Parse(monthIDLayout, id)
	case entity.GranularityYear:
		parsed, err = time.Parse(yearIDLayout, id)
	default:
		parsed, err = time.Parse(dayIDLayout, id)
	}

	var start time.Time
	if err == nil {
		start = startOfDay(parsed.Year(), parsed.Month(), parsed.Day(), loc)
	}

	// Only canonical ids are accepted, so "2024-W1" or a week 53 that does
	// not exist in its ISO year are rejected.
	if err != nil || Identify(start, granularity) != id {
		return time.Time{}, domainerror.NewTimelineError(
			domainerror.ErrCodeInvalidBucketID,
			fmt.Sprintf("bucket id %q is not a valid %s id", id, granularity),
			domainerror.ErrInvalidBucketID,
		)
	}

	return start, nil
}

// parseISOWeek parses ids in the form YYYY-Www.
func parseISOWeek(id string) (time.Time, error) {
	yearPart, weekPart, ok := strings.Cut(id, "-W")
	if !ok || len(yearPart) != 4 || len(weekPart) != 2 {
		return time.Time{}, fmt.Errorf("malformed week id %q", id)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, err
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return time.Time{}, err
	}
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("week %d out of range", week)
	}

	// January 4th is always in ISO week 1.
	firstMonday := FloorToGranularity(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC), entity.GranularityWeek)
	return Advance(firstMonday, entity.GranularityWeek, week-1), nil
}

func invalidGranularityError(granularity entity.Granularity) error {
	return domainerror.NewTimelineError(
		domainerror.ErrCodeInvalidGranularity,
		fmt.Sprintf("unknown granularity %q", granularity),
		domainerror.ErrInvalidGranularity,
	)
}
