package timeline

import (
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// Selection is the navigation state of one timeline: the active granularity,
// the selected bucket and the reference date the visible window is centred on.
// All transitions are synchronous and leave the state untouched on error.
type Selection struct {
	state      entity.SelectionState
	windowSize int // 0 follows DefaultWindowSize of the active granularity
}

// NewSelection creates a selection anchored on referenceDate with the bucket
// containing it selected. A windowSize of 0 uses the per-granularity default.
func NewSelection(granularity entity.Granularity, referenceDate time.Time, windowSize int) (*Selection, error) {
	s := &Selection{windowSize: windowSize}
	if err := s.reset(granularity, referenceDate); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreSelection rebuilds a selection from a persisted state. A state with no
// selected bucket selects the bucket containing its reference date.
func RestoreSelection(state entity.SelectionState, windowSize int) (*Selection, error) {
	s := &Selection{windowSize: windowSize}
	if err := s.reset(state.Granularity, state.ReferenceDate); err != nil {
		return nil, err
	}
	if state.SelectedBucketID != "" {
		if _, err := ParseBucketID(state.SelectedBucketID, state.Granularity, state.ReferenceDate.Location()); err != nil {
			return nil, err
		}
		s.state.SelectedBucketID = state.SelectedBucketID
	}
	return s, nil
}

func (s *Selection) reset(granularity entity.Granularity, referenceDate time.Time) error {
	if err := ValidateReferenceDate(referenceDate); err != nil {
		return err
	}
	if !granularity.IsValid() {
		return invalidGranularityError(granularity)
	}
	s.state = entity.SelectionState{
		Granularity:      granularity,
		ReferenceDate:    referenceDate,
		SelectedBucketID: Identify(referenceDate, granularity),
	}
	return nil
}

// State returns a copy of the current state.
func (s *Selection) State() entity.SelectionState {
	return s.state
}

// WindowSize returns the number of buckets in the visible window.
func (s *Selection) WindowSize() int {
	if s.windowSize > 0 {
		return s.windowSize
	}
	return DefaultWindowSize(s.state.Granularity)
}

// Window generates the visible window around the reference date.
func (s *Selection) Window(now time.Time) ([]entity.TimeBucket, error) {
	return GenerateAt(s.state.ReferenceDate, s.state.Granularity, s.WindowSize(), now)
}

// Select marks bucketID as selected. When the bucket is part of the visible
// window the reference date moves to its start, so the next window stays
// anchored on the click. The id must be valid for the active granularity.
func (s *Selection) Select(bucketID string) error {
	if _, err := ParseBucketID(bucketID, s.state.Granularity, s.state.ReferenceDate.Location()); err != nil {
		return err
	}

	window, err := s.Window(s.state.ReferenceDate)
	if err != nil {
		return err
	}

	s.state.SelectedBucketID = bucketID
	for _, bucket := range window {
		if bucket.ID == bucketID {
			s.state.ReferenceDate = bucket.Start
			break
		}
	}
	return nil
}

// PickDate anchors the selection on the start of date's day and selects the
// bucket containing it.
func (s *Selection) PickDate(date time.Time) error {
	if err := ValidateReferenceDate(date); err != nil {
		return err
	}

	day := FloorToGranularity(date, entity.GranularityDay)
	s.state.ReferenceDate = day
	s.state.SelectedBucketID = Identify(day, s.state.Granularity)
	return nil
}

// SetGranularity switches granularity and selects the bucket containing the
// current reference date. The reference date itself is kept.
func (s *Selection) SetGranularity(granularity entity.Granularity) error {
	if !granularity.IsValid() {
		return invalidGranularityError(granularity)
	}

	s.state.Granularity = granularity
	s.state.SelectedBucketID = Identify(s.state.ReferenceDate, granularity)
	return nil
}
