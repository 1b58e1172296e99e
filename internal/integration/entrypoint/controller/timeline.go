package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// TimelineController handles the timeline strip, bucket summaries and the
// per-user selection.
type TimelineController struct {
	getTimelineUseCase      *timeline.GetTimelineUseCase
	getBucketSummaryUseCase *timeline.GetBucketSummaryUseCase
	selectionUseCase        *timeline.ManageSelectionUseCase
	defaultGranularity      entity.Granularity
	location                *time.Location
}

// NewTimelineController creates a new timeline controller instance.
func NewTimelineController(
	getTimelineUseCase *timeline.GetTimelineUseCase,
	getBucketSummaryUseCase *timeline.GetBucketSummaryUseCase,
	selectionUseCase *timeline.ManageSelectionUseCase,
	defaultGranularity entity.Granularity,
	location *time.Location,
) *TimelineController {
	if location == nil {
		location = time.UTC
	}
	if !defaultGranularity.IsValid() {
		defaultGranularity = entity.GranularityWeek
	}
	return &TimelineController{
		getTimelineUseCase:      getTimelineUseCase,
		getBucketSummaryUseCase: getBucketSummaryUseCase,
		selectionUseCase:        selectionUseCase,
		defaultGranularity:      defaultGranularity,
		location:                location,
	}
}

func (c *TimelineController) granularity(ctx *gin.Context) entity.Granularity {
	if raw := ctx.Query("granularity"); raw != "" {
		return entity.Granularity(raw)
	}
	return c.defaultGranularity
}

func recordKind(ctx *gin.Context) entity.RecordKind {
	return entity.RecordKind(ctx.DefaultQuery("kind", string(entity.RecordKindSubmission)))
}

// facilityIDQuery parses facility_id. A missing value yields uuid.Nil, which
// the use cases reject.
func facilityIDQuery(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.Query("facility_id")
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "facility_id must be a UUID", string(domainerror.ErrCodeMissingFacility))
		return uuid.Nil, false
	}
	return id, true
}

// GetTimeline handles GET /timeline requests.
func (c *TimelineController) GetTimeline(ctx *gin.Context) {
	facilityID, ok := facilityIDQuery(ctx)
	if !ok {
		return
	}

	input := timeline.GetTimelineInput{
		FacilityID:  facilityID,
		Kind:        recordKind(ctx),
		Granularity: c.granularity(ctx),
		SelectedID:  ctx.Query("selected"),
	}

	if raw := ctx.Query("reference_date"); raw != "" {
		ref, err := parseDate(raw, c.location)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.ReferenceDate = &ref
	}

	size, valid := queryInt(ctx, "window_size")
	if !valid {
		writeError(ctx, http.StatusBadRequest, domainerror.ErrInvalidWindowSize.Error(), string(domainerror.ErrCodeInvalidWindowSize))
		return
	}
	input.WindowSize = size

	output, err := c.getTimelineUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimelineResponse(output))
}

// GetBucketSummary handles GET /timeline/summary requests.
func (c *TimelineController) GetBucketSummary(ctx *gin.Context) {
	facilityID, ok := facilityIDQuery(ctx)
	if !ok {
		return
	}

	output, err := c.getBucketSummaryUseCase.Execute(ctx.Request.Context(), timeline.GetBucketSummaryInput{
		FacilityID:  facilityID,
		Kind:        recordKind(ctx),
		Granularity: c.granularity(ctx),
		BucketID:    ctx.Query("bucket_id"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBucketSummaryResponse(output))
}

// GetSelection handles GET /timeline/selection requests.
func (c *TimelineController) GetSelection(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.selectionUseCase.Get(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSelectionResponse(output))
}

// Select handles POST /timeline/selection/select requests.
func (c *TimelineController) Select(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SelectBucketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "bucket_id is required", string(domainerror.ErrCodeInvalidBucketID))
		return
	}

	output, err := c.selectionUseCase.Select(ctx.Request.Context(), userID, req.BucketID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSelectionResponse(output))
}

// PickDate handles POST /timeline/selection/pick-date requests.
func (c *TimelineController) PickDate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.PickDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "date is required", string(domainerror.ErrCodeInvalidDateFormat))
		return
	}

	date, err := parseDate(req.Date, c.location)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.selectionUseCase.PickDate(ctx.Request.Context(), userID, date)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSelectionResponse(output))
}

// SetGranularity handles POST /timeline/selection/granularity requests.
func (c *TimelineController) SetGranularity(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SetGranularityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "granularity is required", string(domainerror.ErrCodeInvalidGranularity))
		return
	}

	output, err := c.selectionUseCase.SetGranularity(ctx.Request.Context(), userID, entity.Granularity(req.Granularity))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSelectionResponse(output))
}
