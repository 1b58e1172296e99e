// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// RecordQuery selects the dated records of one kind for a facility within
// the half-open interval [From, To).
type RecordQuery struct {
	FacilityID uuid.UUID
	Kind       entity.RecordKind
	From       time.Time
	To         time.Time
}

// RecordRepository reads every record kind that can be placed on a timeline.
type RecordRepository interface {
	// FindDatedRecords retrieves the records matching the query.
	FindDatedRecords(ctx context.Context, query RecordQuery) ([]entity.DatedRecord, error)

	// DataVersion returns an opaque token that changes whenever a record
	// matching the query is created, updated or deleted.
	DataVersion(ctx context.Context, query RecordQuery) (string, error)

	// CreatePatientFile stores a new patient file.
	CreatePatientFile(ctx context.Context, file *entity.PatientFile) error

	// CreateDocument stores a new document row.
	CreateDocument(ctx context.Context, document *entity.DocumentRow) error
}
