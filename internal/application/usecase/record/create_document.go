package record

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/facility"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

// CreateDocumentInput represents the metadata of an uploaded document.
type CreateDocumentInput struct {
	FacilityID uuid.UUID
	Title      string
	FileName   string
	Approved   bool
	Rejected   bool
}

// CreateDocumentUseCase registers an uploaded document.
type CreateDocumentUseCase struct {
	recordRepo   adapter.RecordRepository
	facilityRepo adapter.FacilityRepository
}

// NewCreateDocumentUseCase creates a new CreateDocumentUseCase instance.
func NewCreateDocumentUseCase(recordRepo adapter.RecordRepository, facilityRepo adapter.FacilityRepository) *CreateDocumentUseCase {
	return &CreateDocumentUseCase{recordRepo: recordRepo, facilityRepo: facilityRepo}
}

// Execute stores the document row. The file name is reduced to its base name.
func (uc *CreateDocumentUseCase) Execute(ctx context.Context, input CreateDocumentInput) (*entity.DocumentRow, error) {
	if _, err := facility.Lookup(ctx, uc.facilityRepo, input.FacilityID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	fileName := strings.TrimSpace(input.FileName)
	if fileName != "" {
		fileName = filepath.Base(fileName)
	}
	if title == "" || fileName == "" || fileName == "." {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordFields,
			"title and file name are required",
			domainerror.ErrMissingRecordFields,
		)
	}

	if input.Approved && input.Rejected {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeConflictingApproval,
			"a document cannot be approved and rejected",
			domainerror.ErrConflictingApproval,
		)
	}

	document := &entity.DocumentRow{
		ID:         uuid.New(),
		FacilityID: input.FacilityID,
		Title:      title,
		FileName:   fileName,
		Approved:   input.Approved,
		Rejected:   input.Rejected,
		UploadedAt: time.Now().UTC(),
	}

	if err := uc.recordRepo.CreateDocument(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}
