// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

// facilityRepository implements the adapter.FacilityRepository interface.
type facilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository creates a new facility repository instance.
func NewFacilityRepository(db *gorm.DB) adapter.FacilityRepository {
	return &facilityRepository{
		db: db,
	}
}

// Create creates a new facility in the database.
func (r *facilityRepository) Create(ctx context.Context, facility *entity.Facility) error {
	return r.db.WithContext(ctx).Create(model.FacilityFromEntity(facility)).Error
}

// FindByID retrieves a facility by its ID.
func (r *facilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error) {
	var facilityModel model.FacilityModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&facilityModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFacilityNotFound
		}
		return nil, result.Error
	}
	return facilityModel.ToEntity(), nil
}

// ExistsByCode checks if a facility with the given code exists.
func (r *facilityRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.FacilityModel{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindAll retrieves facilities matching the filter, ordered by name.
func (r *facilityRepository) FindAll(ctx context.Context, filter adapter.FacilityFilter) ([]*entity.Facility, error) {
	query := r.db.WithContext(ctx).Model(&model.FacilityModel{})

	if filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	var facilityModels []model.FacilityModel
	if err := query.Order("name ASC").Find(&facilityModels).Error; err != nil {
		return nil, err
	}

	return toFacilityEntities(facilityModels), nil
}

// FindWithContacts retrieves facilities that have at least one contact email.
func (r *facilityRepository) FindWithContacts(ctx context.Context) ([]*entity.Facility, error) {
	var facilityModels []model.FacilityModel
	result := r.db.WithContext(ctx).
		Where("contact_emails IS NOT NULL AND contact_emails <> ?", "{}").
		Order("name ASC").
		Find(&facilityModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toFacilityEntities(facilityModels), nil
}

func toFacilityEntities(models []model.FacilityModel) []*entity.Facility {
	facilities := make([]*entity.Facility, len(models))
	for i := range models {
		facilities[i] = models[i].ToEntity()
	}
	return facilities
}
