// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"gorm.io/gorm"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

// recordRepository implements the adapter.RecordRepository interface over
// the submission, patient file and document tables.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) adapter.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// recordSource maps a record kind to the table and column that date it.
type recordSource struct {
	model     any
	dateField string
	// softDelete marks tables whose deleted rows still change the data version.
	softDelete bool
}

func sourceFor(kind entity.RecordKind) (recordSource, error) {
	switch kind {
	case entity.RecordKindSubmission:
		return recordSource{model: &model.SubmissionModel{}, dateField: "reporting_date", softDelete: true}, nil
	case entity.RecordKindPatientFile:
		return recordSource{model: &model.PatientFileModel{}, dateField: "created_at"}, nil
	case entity.RecordKindDocument:
		return recordSource{model: &model.DocumentModel{}, dateField: "uploaded_at"}, nil
	default:
		return recordSource{}, domainerror.ErrInvalidRecordKind
	}
}

func (r *recordRepository) scoped(ctx context.Context, src recordSource, query adapter.RecordQuery) *gorm.DB {
	return r.db.WithContext(ctx).Model(src.model).
		Where("facility_id = ?", query.FacilityID).
		Where(src.dateField+" >= ? AND "+src.dateField+" < ?", query.From.UTC(), query.To.UTC())
}

// FindDatedRecords retrieves the records matching the query, oldest first.
func (r *recordRepository) FindDatedRecords(ctx context.Context, query adapter.RecordQuery) ([]entity.DatedRecord, error) {
	src, err := sourceFor(query.Kind)
	if err != nil {
		return nil, err
	}
	db := r.scoped(ctx, src, query).Order(src.dateField + " ASC")

	switch query.Kind {
	case entity.RecordKindSubmission:
		var rows []model.SubmissionModel
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]entity.DatedRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToEntity()
		}
		return records, nil
	case entity.RecordKindPatientFile:
		var rows []model.PatientFileModel
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]entity.DatedRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToEntity()
		}
		return records, nil
	default:
		var rows []model.DocumentModel
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]entity.DatedRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToEntity()
		}
		return records, nil
	}
}

type versionRow struct {
	Total       int64
	LastUpdated sql.NullString
	LastDeleted sql.NullString
}

// DataVersion hashes the row count and latest modification times of the
// matching rows. Soft-deleted submissions are included so a deletion moves
// the version forward.
func (r *recordRepository) DataVersion(ctx context.Context, query adapter.RecordQuery) (string, error) {
	src, err := sourceFor(query.Kind)
	if err != nil {
		return "", err
	}

	db := r.scoped(ctx, src, query)
	selectExpr := "COUNT(*) AS total, MAX(updated_at) AS last_updated"
	if src.softDelete {
		db = db.Unscoped()
		selectExpr += ", MAX(deleted_at) AS last_deleted"
	}

	var row versionRow
	if err := db.Select(selectExpr).Scan(&row).Error; err != nil {
		return "", err
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", row.Total, row.LastUpdated.String, row.LastDeleted.String)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// CreatePatientFile stores a new patient file.
func (r *recordRepository) CreatePatientFile(ctx context.Context, file *entity.PatientFile) error {
	return r.db.WithContext(ctx).Create(model.PatientFileFromEntity(file)).Error
}

// CreateDocument stores a new document row.
func (r *recordRepository) CreateDocument(ctx context.Context, document *entity.DocumentRow) error {
	return r.db.WithContext(ctx).Create(model.DocumentFromEntity(document)).Error
}
