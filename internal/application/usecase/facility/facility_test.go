package facility

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
)

type fakeFacilityRepo struct {
	byID map[uuid.UUID]*entity.Facility
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{byID: map[uuid.UUID]*entity.Facility{}}
}

func (r *fakeFacilityRepo) Create(_ context.Context, f *entity.Facility) error {
	r.byID[f.ID] = f
	return nil
}

func (r *fakeFacilityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Facility, error) {
	if f, ok := r.byID[id]; ok {
		return f, nil
	}
	return nil, domainerror.ErrFacilityNotFound
}

func (r *fakeFacilityRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, f := range r.byID {
		if f.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFacilityRepo) FindAll(_ context.Context, filter adapter.FacilityFilter) ([]*entity.Facility, error) {
	var out []*entity.Facility
	for _, f := range r.byID {
		if filter.Zone != "" && f.Zone != filter.Zone {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFacilityRepo) FindWithContacts(context.Context) ([]*entity.Facility, error) {
	return nil, nil
}

func facilityCode(t *testing.T, err error) domainerror.FacilityErrorCode {
	t.Helper()
	var facilityErr *domainerror.FacilityError
	require.True(t, errors.As(err, &facilityErr), "expected FacilityError, got %v", err)
	return facilityErr.Code
}

func TestCreateFacility(t *testing.T) {
	repo := newFakeFacilityRepo()
	uc := NewCreateFacilityUseCase(repo)

	out, err := uc.Execute(context.Background(), CreateFacilityInput{
		Name:          " Riverside Clinic ",
		Code:          "rsc-01",
		Zone:          "North",
		Population:    25000,
		ContactEmails: []string{"Head@Riverside.org", "head@riverside.org", "", "lab@riverside.org"},
		CreatedBy:     uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Riverside Clinic", out.Facility.Name)
	assert.Equal(t, "RSC-01", out.Facility.Code)
	assert.Equal(t, []string{"head@riverside.org", "lab@riverside.org"}, out.Facility.ContactEmails)

	_, err = uc.Execute(context.Background(), CreateFacilityInput{Name: "Other", Code: "RSC-01"})
	assert.Equal(t, domainerror.ErrCodeFacilityCodeExists, facilityCode(t, err))
}

func TestCreateFacility_Validation(t *testing.T) {
	uc := NewCreateFacilityUseCase(newFakeFacilityRepo())

	tests := []struct {
		name  string
		input CreateFacilityInput
		code  domainerror.FacilityErrorCode
	}{
		{"missing code", CreateFacilityInput{Name: "Clinic"}, domainerror.ErrCodeMissingFacilityFields},
		{"negative population", CreateFacilityInput{Name: "Clinic", Code: "C1", Population: -1}, domainerror.ErrCodeInvalidPopulation},
		{"bad contact", CreateFacilityInput{Name: "Clinic", Code: "C1", ContactEmails: []string{"not-an-email"}}, domainerror.ErrCodeInvalidContactEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.code, facilityCode(t, err))
		})
	}
}

func TestListAndGetFacility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFacilityRepo()
	north := entity.NewFacility("Beta Post", "B", "North", 100, nil, uuid.New())
	south := entity.NewFacility("Alpha Clinic", "A", "South", 100, nil, uuid.New())
	require.NoError(t, repo.Create(ctx, north))
	require.NoError(t, repo.Create(ctx, south))

	list, err := NewListFacilitiesUseCase(repo).Execute(ctx, ListFacilitiesInput{})
	require.NoError(t, err)
	require.Len(t, list.Facilities, 2)
	assert.Equal(t, "Alpha Clinic", list.Facilities[0].Name)

	list, err = NewListFacilitiesUseCase(repo).Execute(ctx, ListFacilitiesInput{Zone: "Nowhere"})
	require.NoError(t, err)
	assert.NotNil(t, list.Facilities)
	assert.Empty(t, list.Facilities)

	got, err := NewGetFacilityUseCase(repo).Execute(ctx, north.ID)
	require.NoError(t, err)
	assert.Equal(t, north, got)

	_, err = NewGetFacilityUseCase(repo).Execute(ctx, uuid.New())
	assert.Equal(t, domainerror.ErrCodeFacilityNotFound, facilityCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrFacilityNotFound)
}
