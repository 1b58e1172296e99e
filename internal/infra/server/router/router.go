// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/epiwatch/backend/internal/domain/entity"
	"github.com/epiwatch/backend/internal/integration/entrypoint/controller"
	"github.com/epiwatch/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	facilityController   *controller.FacilityController
	submissionController *controller.SubmissionController
	recordController     *controller.RecordController
	timelineController   *controller.TimelineController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies. Route groups
// whose controller is nil are not registered.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	facilityController *controller.FacilityController,
	submissionController *controller.SubmissionController,
	recordController *controller.RecordController,
	timelineController *controller.TimelineController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		facilityController:   facilityController,
		submissionController: submissionController,
		recordController:     recordController,
		timelineController:   timelineController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.facilityController != nil {
		facilities := protected.Group("/facilities")
		{
			facilities.GET("", r.facilityController.List)
			facilities.POST("",
				middleware.RequireRole(entity.UserRoleSupervisor, entity.UserRoleAdmin),
				r.facilityController.Create,
			)
			facilities.GET("/:id", r.facilityController.Get)

			if r.submissionController != nil {
				facilities.GET("/:id/submissions", r.submissionController.List)
				facilities.POST("/:id/submissions", r.submissionController.Create)
			}

			if r.recordController != nil {
				facilities.POST("/:id/patient-files", r.recordController.CreatePatientFile)
				facilities.POST("/:id/documents", r.recordController.CreateDocument)
			}
		}
	}

	if r.submissionController != nil {
		protected.PATCH("/submissions/:id", r.submissionController.Update)
	}

	if r.timelineController != nil {
		timeline := protected.Group("/timeline")
		{
			timeline.GET("", r.timelineController.GetTimeline)
			timeline.GET("/summary", r.timelineController.GetBucketSummary)

			selection := timeline.Group("/selection")
			{
				selection.GET("", r.timelineController.GetSelection)
				selection.POST("/select", r.timelineController.Select)
				selection.POST("/pick-date", r.timelineController.PickDate)
				selection.POST("/granularity", r.timelineController.SetGranularity)
			}
		}
	}
}
