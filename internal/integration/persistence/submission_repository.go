// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

// submissionRepository implements the adapter.SubmissionRepository interface.
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository instance.
func NewSubmissionRepository(db *gorm.DB) adapter.SubmissionRepository {
	return &submissionRepository{
		db: db,
	}
}

// Create creates a new submission in the database.
func (r *submissionRepository) Create(ctx context.Context, submission *entity.FacilitySubmission) error {
	return r.db.WithContext(ctx).Create(model.SubmissionFromEntity(submission)).Error
}

// FindByID retrieves a submission by its ID. Soft-deleted rows are not returned.
func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FacilitySubmission, error) {
	var submissionModel model.SubmissionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&submissionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubmissionNotFound
		}
		return nil, result.Error
	}
	return submissionModel.ToEntity(), nil
}

// FindByFilter retrieves submissions ordered by reporting date with pagination.
func (r *submissionRepository) FindByFilter(
	ctx context.Context,
	filter adapter.SubmissionFilter,
	pagination adapter.SubmissionPagination,
) (*entity.SubmissionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Where("facility_id = ?", filter.FacilityID)

	if filter.StartDate != nil {
		query = query.Where("reporting_date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("reporting_date < ?", filter.EndDate.UTC())
	}
	if filter.DiseaseCode != "" {
		query = query.Where("disease_code = ?", filter.DiseaseCode)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var submissionModels []model.SubmissionModel
	result := query.
		Order("reporting_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&submissionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	submissions := make([]*entity.FacilitySubmission, len(submissionModels))
	for i := range submissionModels {
		submissions[i] = submissionModels[i].ToEntity()
	}

	return &entity.SubmissionListResult{
		Submissions: submissions,
		Total:       total,
		Page:        pagination.Page,
		Limit:       pagination.Limit,
		TotalPages:  totalPages,
	}, nil
}

// UpdateIfVersion writes the editable columns in a single conditional UPDATE
// so two concurrent edits of the same version cannot both succeed.
func (r *submissionRepository) UpdateIfVersion(
	ctx context.Context,
	submission *entity.FacilitySubmission,
	expectedVersion int,
) (bool, error) {
	updatedAt := submission.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&model.SubmissionModel{}).
		Where("id = ? AND version = ?", submission.ID, expectedVersion).
		Updates(map[string]any{
			"disease_code":   submission.DiseaseCode,
			"case_count":     submission.CaseCount,
			"death_count":    submission.DeathCount,
			"reporting_date": submission.ReportingDate.UTC(),
			"status":         string(submission.Status),
			"notes":          submission.Notes,
			"version":        submission.Version,
			"updated_at":     updatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
