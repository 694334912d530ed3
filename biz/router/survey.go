package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/vivasst/risk_survey/biz/handler"
	"github.com/vivasst/risk_survey/biz/middleware"
	"github.com/vivasst/risk_survey/pkg/common"
)

// RegisterSurveyRoutes configures HTTP routes for the survey engine.
func RegisterSurveyRoutes(r *server.Hertz, h *handler.SurveyHandler, perms common.PermissionChecker, features common.FeatureChecker) {
	if h == nil {
		return
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireFeature(features, "riskSurvey"))
	write := middleware.RequirePermission(perms, "riskSurvey:write")
	admin := middleware.RequirePermission(perms, "riskSurvey:admin")

	environments := v1.Group("/environments")
	environments.POST("", write, h.CreateEnvironment)
	environments.GET("", h.ListEnvironments)
	environments.GET("/:id", h.GetEnvironment)
	environments.PUT("/:id", write, h.UpdateEnvironment)
	environments.DELETE("/:id", write, h.DeleteEnvironment)
	environments.POST("/:id/finalize", write, h.FinalizeEnvironment)
	environments.GET("/:id/snapshot", h.GetSnapshot)

	roles := v1.Group("/job-roles")
	roles.POST("", write, h.CreateJobRole)
	roles.GET("", h.ListJobRoles)
	roles.GET("/:id", h.GetJobRole)
	roles.PUT("/:id", write, h.UpdateJobRole)
	roles.DELETE("/:id", write, h.DeleteJobRole)

	activities := v1.Group("/activities")
	activities.POST("", write, h.CreateActivity)
	activities.GET("", h.ListActivities)
	activities.GET("/:id", h.GetActivity)
	activities.PUT("/:id", write, h.UpdateActivity)
	activities.DELETE("/:id", write, h.DeleteActivity)

	hazards := v1.Group("/hazards")
	hazards.POST("", write, h.CreateHazard)
	hazards.GET("", h.ListHazards)
	hazards.GET("/:id", h.GetHazard)
	hazards.PUT("/:id", write, h.UpdateHazard)
	hazards.DELETE("/:id", write, h.DeleteHazard)

	assessments := v1.Group("/assessments")
	assessments.PUT("", write, h.UpsertAssessment)
	assessments.GET("", h.GetAssessment)

	measurements := v1.Group("/measurements")
	measurements.POST("", write, h.RecordMeasurement)
	measurements.GET("", h.ListMeasurements)
	measurements.PUT("/:id", write, h.UpdateMeasurement)
	measurements.DELETE("/:id", write, h.DeleteMeasurement)

	library := v1.Group("/hazard-library")
	library.POST("", admin, h.CreateLibraryEntry)
	library.GET("", h.ListLibraryEntries)
	library.GET("/:id", h.GetLibraryEntry)
	library.PUT("/:id", admin, h.UpdateLibraryEntry)
	library.DELETE("/:id", admin, h.DeactivateLibraryEntry)

	devices := v1.Group("/devices")
	devices.POST("", admin, h.RegisterDevice)
	devices.GET("", h.ListDevices)
	devices.GET("/:id", h.GetDevice)
	devices.PUT("/:id", admin, h.UpdateDevice)
	devices.DELETE("/:id", admin, h.DeactivateDevice)

	references := v1.Group("/references")
	references.PUT("", admin, h.UpsertReference)
	references.GET("", h.ListReferences)
	references.PUT("/classification-ranges", admin, h.SaveClassificationRanges)
	references.GET("/classification-ranges", h.ListClassificationRanges)

	v1.GET("/audit", h.ListAudit)
	v1.GET("/dashboard", h.Dashboard)

	migration := v1.Group("/admin/migrations")
	migration.Use(middleware.RequireFeature(features, "riskSurvey:legacyMigration"))
	migration.Use(middleware.MigrationLockMw()...)
	migration.POST("/legacy-risks", admin, h.RunLegacyMigration)

	r.GET("/ping", handler.Ping)
}

// RegisterAttachmentRoutes configures the attachment upload/serve routes.
func RegisterAttachmentRoutes(r *server.Hertz, h *handler.AttachmentHandler, perms common.PermissionChecker) {
	if h == nil {
		return
	}
	v1 := r.Group("/api/v1")
	write := middleware.RequirePermission(perms, "riskSurvey:write")

	attachment := v1.Group("/attachment")
	attachment.POST("/upload", write, h.Upload)
	attachment.GET("/file/:fileID/:fileName", h.GetFile)
	attachment.DELETE("/file/:fileID/:fileName", write, h.Delete)
}
