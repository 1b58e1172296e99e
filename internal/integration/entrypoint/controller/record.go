package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epiwatch/backend/internal/application/usecase/record"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// RecordController handles patient file and document endpoints.
type RecordController struct {
	createPatientFileUseCase *record.CreatePatientFileUseCase
	createDocumentUseCase    *record.CreateDocumentUseCase
}

// NewRecordController creates a new record controller instance.
func NewRecordController(
	createPatientFileUseCase *record.CreatePatientFileUseCase,
	createDocumentUseCase *record.CreateDocumentUseCase,
) *RecordController {
	return &RecordController{
		createPatientFileUseCase: createPatientFileUseCase,
		createDocumentUseCase:    createDocumentUseCase,
	}
}

// CreatePatientFile handles POST /facilities/:id/patient-files requests.
func (c *RecordController) CreatePatientFile(ctx *gin.Context) {
	facilityID, ok := facilityIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreatePatientFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingRecordFields))
		return
	}

	file, err := c.createPatientFileUseCase.Execute(ctx.Request.Context(), record.CreatePatientFileInput{
		FacilityID:  facilityID,
		PatientCode: req.PatientCode,
		DiseaseCode: req.DiseaseCode,
		Outcome:     req.Outcome,
		Review:      entity.ReviewState(req.Review),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPatientFileResponse(file))
}

// CreateDocument handles POST /facilities/:id/documents requests.
func (c *RecordController) CreateDocument(ctx *gin.Context) {
	facilityID, ok := facilityIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingRecordFields))
		return
	}

	doc, err := c.createDocumentUseCase.Execute(ctx.Request.Context(), record.CreateDocumentInput{
		FacilityID: facilityID,
		Title:      req.Title,
		FileName:   req.FileName,
		Approved:   req.Approved,
		Rejected:   req.Rejected,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}
