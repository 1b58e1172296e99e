// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/epiwatch/backend/config"
	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/application/usecase/auth"
	"github.com/epiwatch/backend/internal/application/usecase/facility"
	"github.com/epiwatch/backend/internal/application/usecase/record"
	"github.com/epiwatch/backend/internal/application/usecase/reminder"
	"github.com/epiwatch/backend/internal/application/usecase/submission"
	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
	infradb "github.com/epiwatch/backend/internal/infra/db"
	"github.com/epiwatch/backend/internal/infra/server/router"
	"github.com/epiwatch/backend/internal/integration/adapters"
	"github.com/epiwatch/backend/internal/integration/cache"
	"github.com/epiwatch/backend/internal/integration/email"
	"github.com/epiwatch/backend/internal/integration/email/templates"
	"github.com/epiwatch/backend/internal/integration/entrypoint/controller"
	"github.com/epiwatch/backend/internal/integration/entrypoint/middleware"
	"github.com/epiwatch/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router

	// EmailWorker and ReminderScheduler are nil when disabled in config.
	EmailWorker       *email.Worker
	ReminderScheduler *reminder.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	location := cfg.Timeline.Location()
	defaultGranularity := entity.Granularity(cfg.Timeline.DefaultGranularity)

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	refreshTokens := persistence.NewRefreshTokenStore(db)
	facilityRepo := persistence.NewFacilityRepository(db)
	submissionRepo := persistence.NewSubmissionRepository(db)
	recordRepo := persistence.NewRecordRepository(db)
	reminderOutbox := persistence.NewReminderOutbox(db)

	// Redis-backed stores
	selectionStore := cache.NewSelectionStore(redisClient, cfg.Timeline.SelectionTTL)
	reminderLedger := cache.NewReminderLedger(redisClient)
	statusCache := newStatusCache(cfg, redisClient)

	// Services
	passwords := adapters.NewBcryptHasher(cfg.JWT.BcryptCost)
	tokens := adapters.NewJWTIssuer(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, refreshTokens)

	// Auth use cases
	registerUseCase := auth.NewRegisterUseCase(userRepo, passwords, tokens)
	loginUseCase := auth.NewLoginUseCase(userRepo, passwords, tokens)
	refreshUseCase := auth.NewRefreshUseCase(userRepo, tokens)
	logoutUseCase := auth.NewLogoutUseCase(tokens)

	// Facility use cases
	listFacilitiesUseCase := facility.NewListFacilitiesUseCase(facilityRepo)
	createFacilityUseCase := facility.NewCreateFacilityUseCase(facilityRepo)
	getFacilityUseCase := facility.NewGetFacilityUseCase(facilityRepo)

	// Submission and record use cases
	listSubmissionsUseCase := submission.NewListSubmissionsUseCase(submissionRepo)
	createSubmissionUseCase := submission.NewCreateSubmissionUseCase(submissionRepo, facilityRepo)
	updateSubmissionUseCase := submission.NewUpdateSubmissionUseCase(submissionRepo)
	createPatientFileUseCase := record.NewCreatePatientFileUseCase(recordRepo, facilityRepo)
	createDocumentUseCase := record.NewCreateDocumentUseCase(recordRepo, facilityRepo)

	// Timeline use cases
	getTimelineUseCase := timeline.NewGetTimelineUseCase(recordRepo, facilityRepo, statusCache, location)
	getBucketSummaryUseCase := timeline.NewGetBucketSummaryUseCase(recordRepo, facilityRepo, location)
	selectionUseCase := timeline.NewManageSelectionUseCase(selectionStore, defaultGranularity, cfg.Timeline.WindowSize, location)

	// Controllers
	healthController := controller.NewHealthController(
		func(ctx context.Context) error { return infradb.Ping(ctx, db) },
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshUseCase, logoutUseCase)
	facilityController := controller.NewFacilityController(listFacilitiesUseCase, createFacilityUseCase, getFacilityUseCase)
	submissionController := controller.NewSubmissionController(listSubmissionsUseCase, createSubmissionUseCase, updateSubmissionUseCase, location)
	recordController := controller.NewRecordController(createPatientFileUseCase, createDocumentUseCase)
	timelineController := controller.NewTimelineController(getTimelineUseCase, getBucketSummaryUseCase, selectionUseCase, defaultGranularity, location)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter(redisClient, "login", cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := router.NewRouter(
		healthController,
		authController,
		facilityController,
		submissionController,
		recordController,
		timelineController,
		loginRateLimiter,
		authMiddleware,
	)

	injector := &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}

	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		injector.EmailWorker = email.NewWorker(reminderOutbox, newEmailSender(cfg), renderer, email.WorkerConfig{
			PollInterval:  cfg.Email.PollInterval,
			BatchSize:     cfg.Email.BatchSize,
			RetentionDays: cfg.Email.RetentionDays,
		})
	}

	if cfg.Reminder.Enabled {
		sendReminders := reminder.NewSendRemindersUseCase(facilityRepo, recordRepo, reminderLedger, reminderOutbox, reminder.Config{
			Granularity: entity.Granularity(cfg.Reminder.Granularity),
			Location:    location,
			SubmitURL:   cfg.Reminder.SubmitURL,
			ClaimTTL:    cfg.Reminder.ClaimTTL,
		})
		injector.ReminderScheduler = reminder.NewScheduler(sendReminders, cfg.Reminder.Interval)
	}

	return injector, nil
}

// BackgroundJobs returns the enabled long-running loops. Each returns once
// ctx is cancelled.
func (i *Injector) BackgroundJobs() []func(context.Context) {
	var jobs []func(context.Context)
	if i.EmailWorker != nil {
		jobs = append(jobs, i.EmailWorker.Start)
	}
	if i.ReminderScheduler != nil {
		jobs = append(jobs, i.ReminderScheduler.Start)
	}
	return jobs
}

func newStatusCache(cfg *config.Config, redisClient *redis.Client) adapter.StatusCache {
	if cfg.Timeline.StatusCache == "memory" {
		return cache.NewMemoryStatusCache(0)
	}
	return cache.NewRedisStatusCache(redisClient, cfg.Timeline.StatusCacheTTL)
}

// newEmailSender returns the Resend client, or a log-only sender when no API
// key is configured.
func newEmailSender(cfg *config.Config) adapter.EmailSender {
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails are logged instead of sent")
		return email.NewLogEmailSender()
	}
	return email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
}
