package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/usecase/submission"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// SubmissionController handles facility submission endpoints. Calendar dates
// are read as midnight in the timeline location so they land in the same
// buckets the timeline shows.
type SubmissionController struct {
	listUseCase   *submission.ListSubmissionsUseCase
	createUseCase *submission.CreateSubmissionUseCase
	updateUseCase *submission.UpdateSubmissionUseCase
	location      *time.Location
}

// NewSubmissionController creates a new submission controller instance.
func NewSubmissionController(
	listUseCase *submission.ListSubmissionsUseCase,
	createUseCase *submission.CreateSubmissionUseCase,
	updateUseCase *submission.UpdateSubmissionUseCase,
	location *time.Location,
) *SubmissionController {
	if location == nil {
		location = time.UTC
	}
	return &SubmissionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		location:      location,
	}
}

// List handles GET /facilities/:id/submissions requests.
func (c *SubmissionController) List(ctx *gin.Context) {
	facilityID, ok := facilityIDParam(ctx)
	if !ok {
		return
	}

	input := submission.ListSubmissionsInput{
		FacilityID:  facilityID,
		DiseaseCode: ctx.Query("disease_code"),
	}

	if raw := ctx.Query("start_date"); raw != "" {
		start, err := parseDate(raw, c.location)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.StartDate = &start
	}
	// end_date is inclusive on the wire and exclusive in the filter.
	if raw := ctx.Query("end_date"); raw != "" {
		end, err := parseDate(raw, c.location)
		if err != nil {
			handleError(ctx, err)
			return
		}
		end = end.AddDate(0, 0, 1)
		input.EndDate = &end
	}
	if raw := ctx.Query("status"); raw != "" {
		status := entity.SubmissionStatus(raw)
		input.Status = &status
	}

	var valid bool
	if input.Page, valid = queryInt(ctx, "page"); !valid {
		writeError(ctx, http.StatusBadRequest, "page must be a number", "")
		return
	}
	if input.Limit, valid = queryInt(ctx, "limit"); !valid {
		writeError(ctx, http.StatusBadRequest, "limit must be a number", "")
		return
	}

	result, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubmissionListResponse(result))
}

// Create handles POST /facilities/:id/submissions requests.
func (c *SubmissionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	facilityID, ok := facilityIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingDiseaseCode))
		return
	}

	reportingDate, err := parseDate(req.ReportingDate, c.location)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), submission.CreateSubmissionInput{
		FacilityID:    facilityID,
		SubmittedBy:   userID,
		DiseaseCode:   req.DiseaseCode,
		CaseCount:     req.CaseCount,
		DeathCount:    req.DeathCount,
		ReportingDate: reportingDate,
		Status:        entity.SubmissionStatus(req.Status),
		Notes:         req.Notes,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubmissionResponse(output.Submission))
}

// Update handles PATCH /submissions/:id requests.
func (c *SubmissionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	submissionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusNotFound, "Submission not found", string(domainerror.ErrCodeSubmissionNotFound))
		return
	}

	var req dto.UpdateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "version is required for inline edits", string(domainerror.ErrCodeMissingVersion))
		return
	}

	input := submission.UpdateSubmissionInput{
		SubmissionID: submissionID,
		EditedBy:     userID,
		Version:      req.Version,
		DiseaseCode:  req.DiseaseCode,
		CaseCount:    req.CaseCount,
		DeathCount:   req.DeathCount,
		Notes:        req.Notes,
	}
	if req.ReportingDate != nil {
		reportingDate, err := parseDate(*req.ReportingDate, c.location)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.ReportingDate = &reportingDate
	}
	if req.Status != nil {
		status := entity.SubmissionStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubmissionResponse(output.Submission))
}
