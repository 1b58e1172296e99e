package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

// SelectionOutput is a user's selection with the window it produces.
type SelectionOutput struct {
	State      entity.SelectionState
	WindowSize int
	Window     []entity.TimeBucket
}

// ManageSelectionUseCase keeps the timeline selection of each user across
// requests. Every transition loads the stored state, applies the change and
// saves it back; a failed transition leaves the stored state untouched.
type ManageSelectionUseCase struct {
	store              adapter.SelectionStore
	defaultGranularity entity.Granularity
	windowSize         int
	location           *time.Location
	now                func() time.Time
}

// NewManageSelectionUseCase creates a new ManageSelectionUseCase instance.
// Users without a stored selection start on defaultGranularity around today.
func NewManageSelectionUseCase(
	store adapter.SelectionStore,
	defaultGranularity entity.Granularity,
	windowSize int,
	location *time.Location,
) *ManageSelectionUseCase {
	if location == nil {
		location = time.UTC
	}
	if !defaultGranularity.IsValid() {
		defaultGranularity = entity.GranularityWeek
	}
	return &ManageSelectionUseCase{
		store:              store,
		defaultGranularity: defaultGranularity,
		windowSize:         windowSize,
		location:           location,
		now:                time.Now,
	}
}

// Get returns the current selection without changing it.
func (uc *ManageSelectionUseCase) Get(ctx context.Context, userID uuid.UUID) (*SelectionOutput, error) {
	return uc.apply(ctx, userID, nil)
}

// Select marks a bucket of the active granularity as selected.
func (uc *ManageSelectionUseCase) Select(ctx context.Context, userID uuid.UUID, bucketID string) (*SelectionOutput, error) {
	return uc.apply(ctx, userID, func(s *Selection) error { return s.Select(bucketID) })
}

// PickDate re-anchors the selection on a calendar date.
func (uc *ManageSelectionUseCase) PickDate(ctx context.Context, userID uuid.UUID, date time.Time) (*SelectionOutput, error) {
	return uc.apply(ctx, userID, func(s *Selection) error { return s.PickDate(date.In(uc.location)) })
}

// SetGranularity switches the granularity of the selection.
func (uc *ManageSelectionUseCase) SetGranularity(ctx context.Context, userID uuid.UUID, granularity entity.Granularity) (*SelectionOutput, error) {
	return uc.apply(ctx, userID, func(s *Selection) error { return s.SetGranularity(granularity) })
}

func (uc *ManageSelectionUseCase) apply(ctx context.Context, userID uuid.UUID, transition func(*Selection) error) (*SelectionOutput, error) {
	selection, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if transition != nil {
		if err := transition(selection); err != nil {
			return nil, err
		}
		if err := uc.store.Save(ctx, userID, selection.State()); err != nil {
			return nil, fmt.Errorf("failed to save selection: %w", err)
		}
	}

	window, err := selection.Window(uc.now().In(uc.location))
	if err != nil {
		return nil, err
	}

	return &SelectionOutput{
		State:      selection.State(),
		WindowSize: selection.WindowSize(),
		Window:     window,
	}, nil
}

// load restores the stored selection. A missing or unreadable state starts a
// fresh selection around today.
func (uc *ManageSelectionUseCase) load(ctx context.Context, userID uuid.UUID) (*Selection, error) {
	state, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	if state != nil {
		state.ReferenceDate = state.ReferenceDate.In(uc.location)
		selection, err := RestoreSelection(*state, uc.windowSize)
		if err == nil {
			return selection, nil
		}
		slog.WarnContext(ctx, "discarding unreadable timeline selection", "user_id", userID, "error", err)
	}

	today := FloorToGranularity(uc.now().In(uc.location), entity.GranularityDay)
	return NewSelection(uc.defaultGranularity, today, uc.windowSize)
}
