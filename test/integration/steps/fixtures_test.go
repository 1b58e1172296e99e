package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/reminder"
	"github.com/epiwatch/backend/internal/domain/entity"
	"github.com/epiwatch/backend/internal/integration/adapters"
	"github.com/epiwatch/backend/internal/integration/cache"
	"github.com/epiwatch/backend/internal/integration/persistence"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
	"github.com/epiwatch/backend/test/integration/mock"
)

const defaultPassword = "DefaultPass123!"

var hasher = adapters.NewBcryptHasher(bcrypt.MinCost)

func (s *scenario) aUserExistsWithEmail(email string) error {
	return s.createUser(email, defaultPassword, "Test User", entity.UserRoleDataEntry)
}

func (s *scenario) aUserExistsWithEmailAndPassword(email, password string) error {
	return s.createUser(email, password, "Test User", entity.UserRoleDataEntry)
}

func (s *scenario) iAmLoggedInAsA(role string) error {
	email := fmt.Sprintf("%s-%s@epiwatch.test", role, uuid.NewString()[:8])
	if err := s.createUser(email, defaultPassword, "Test "+role, entity.UserRole(role)); err != nil {
		return err
	}
	return s.theUserIsLoggedInWithValidTokens()
}

func (s *scenario) createUser(email, password, name string, role entity.UserRole) error {
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	user := entity.NewUser(email, name, hash, time.Now().UTC())
	user.Role = role
	if err := persistence.NewUserRepository(s.store.Conn).Create(context.Background(), user); err != nil {
		return err
	}
	s.userID = user.ID
	return nil
}

// theUserIsLoggedInWithValidTokens signs the current user in with the same
// issuer configuration the server validates against.
func (s *scenario) theUserIsLoggedInWithValidTokens() error {
	ctx := context.Background()
	user, err := persistence.NewUserRepository(s.store.Conn).FindByID(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	issuer := adapters.NewJWTIssuer(testJWTSecret, adapters.TokenDurations{}, persistence.NewRefreshTokenStore(s.store.Conn))
	session, err := issuer.Issue(ctx, adapter.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return fmt.Errorf("issue session: %w", err)
	}
	s.accessToken, s.refreshToken = session.AccessToken, session.RefreshToken
	return nil
}

func (s *scenario) aFacilityExistsWithPopulation(code string, population int) error {
	now := time.Now().UTC()
	row := &model.FacilityModel{
		ID:         uuid.New(),
		Name:       code + " Health Centre",
		Code:       code,
		Zone:       "North",
		Population: population,
		CreatedBy:  s.userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Conn.Create(row).Error; err != nil {
		return err
	}
	s.facilityID = row.ID
	return nil
}

func (s *scenario) theFacilityHasTheContact(contact string) error {
	var row model.FacilityModel
	if err := s.store.Conn.First(&row, "id = ?", s.facilityID).Error; err != nil {
		return fmt.Errorf("current facility: %w", err)
	}
	row.ContactEmails = append(row.ContactEmails, contact)
	return s.store.Conn.Save(&row).Error
}

func (s *scenario) aSubmissionExists(status, date string, cases, deaths int) error {
	reportingDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row := &model.SubmissionModel{
		ID:            uuid.New(),
		FacilityID:    s.facilityID,
		SubmittedBy:   s.userID,
		DiseaseCode:   "A00",
		CaseCount:     cases,
		DeathCount:    deaths,
		ReportingDate: reportingDate,
		Status:        status,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Conn.Create(row).Error; err != nil {
		return err
	}
	s.submissionID = row.ID
	return nil
}

// theReminderJobRuns performs one reminder pass over the last closed week.
func (s *scenario) theReminderJobRuns() error {
	sendReminders := reminder.NewSendRemindersUseCase(
		persistence.NewFacilityRepository(s.store.Conn),
		persistence.NewRecordRepository(s.store.Conn),
		cache.NewReminderLedger(mock.Redis()),
		persistence.NewReminderOutbox(s.store.Conn),
		reminder.Config{
			Granularity: entity.GranularityWeek,
			Location:    time.UTC,
			SubmitURL:   "http://localhost:5173/submissions/new",
			ClaimTTL:    time.Hour,
		},
	)
	_, err := sendReminders.Execute(context.Background())
	return err
}
