package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epiwatch/backend/internal/application/usecase/facility"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// FacilityController handles facility endpoints.
type FacilityController struct {
	listUseCase   *facility.ListFacilitiesUseCase
	createUseCase *facility.CreateFacilityUseCase
	getUseCase    *facility.GetFacilityUseCase
}

// NewFacilityController creates a new facility controller instance.
func NewFacilityController(
	listUseCase *facility.ListFacilitiesUseCase,
	createUseCase *facility.CreateFacilityUseCase,
	getUseCase *facility.GetFacilityUseCase,
) *FacilityController {
	return &FacilityController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
	}
}

// List handles GET /facilities requests.
func (c *FacilityController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), facility.ListFacilitiesInput{
		Zone:   ctx.Query("zone"),
		Search: ctx.Query("search"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFacilityListResponse(output.Facilities))
}

// Create handles POST /facilities requests.
func (c *FacilityController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateFacilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingFacilityFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), facility.CreateFacilityInput{
		Name:          req.Name,
		Code:          req.Code,
		Zone:          req.Zone,
		Population:    req.Population,
		ContactEmails: req.ContactEmails,
		CreatedBy:     userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFacilityResponse(output.Facility))
}

// Get handles GET /facilities/:id requests.
func (c *FacilityController) Get(ctx *gin.Context) {
	id, ok := facilityIDParam(ctx)
	if !ok {
		return
	}

	f, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFacilityResponse(f))
}
