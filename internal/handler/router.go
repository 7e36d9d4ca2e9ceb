package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/middleware"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth     *AuthHandler
	Schedule *ScheduleHandler
	Catalog  *CatalogHandler
	Conflict *ConflictHandler
	File     *FileHandler
	Report   *ReportHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts all endpoints under the API prefix. Destructive
// operations sit behind the JWT guard.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService, metrics *service.MetricsService) {
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	entries := api.Group("/schedule-entries")
	{
		entries.GET("", h.Schedule.List)
		entries.POST("", h.Schedule.Create)
		entries.POST("/preview-conflicts", h.Schedule.PreviewConflicts)
		entries.GET("/:id", h.Schedule.Get)
		entries.PUT("/:id", h.Schedule.Update)
		entries.DELETE("/:id", h.Schedule.Delete)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/:kind", h.Catalog.List)
		catalog.POST("/:kind", h.Catalog.Create)
	}

	conflicts := api.Group("/conflicts")
	{
		conflicts.GET("", h.Conflict.Report)
		conflicts.GET("/entries/:id", h.Conflict.ForEntry)
	}

	files := api.Group("/files")
	{
		files.POST("/import-csv", middleware.OptionalJWT(auth), h.File.ImportCSV)
		files.GET("/export-csv", h.File.ExportCSV)
		files.POST("/timetable-png", h.File.SaveTimetablePNG)
		files.POST("/reset", middleware.JWT(auth), h.File.Reset)
	}

	api.GET("/reports/timetable", h.Report.Timetable)
}
