package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/lpu-scheduler-api/api/swagger"
	"github.com/noah-isme/lpu-scheduler-api/internal/handler"
	"github.com/noah-isme/lpu-scheduler-api/internal/repository"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	"github.com/noah-isme/lpu-scheduler-api/pkg/cache"
	"github.com/noah-isme/lpu-scheduler-api/pkg/config"
	"github.com/noah-isme/lpu-scheduler-api/pkg/database"
	"github.com/noah-isme/lpu-scheduler-api/pkg/export"
	"github.com/noah-isme/lpu-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lpu-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lpu-scheduler-api/pkg/middleware/requestid"
	"github.com/noah-isme/lpu-scheduler-api/pkg/storage"
)

// @title LPU Scheduler API
// @version 1.0.0
// @description Class schedule management with time normalization and conflict detection
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, conflict caching disabled", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare exports directory", "error", err)
	}

	entryRepo := repository.NewScheduleEntryRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(service.AuthConfig{
		AdminEmail:        cfg.Admin.Email,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		TokenSecret:       cfg.JWT.Secret,
		TokenExpiry:       cfg.JWT.Expiration,
		Issuer:            "lpu-scheduler-api",
	}, nil, logr)
	conflictSvc := service.NewConflictService(entryRepo, cacheRepo, cfg.Conflicts.CacheTTL, logr)
	scheduleSvc := service.NewScheduleService(entryRepo, conflictSvc, nil, logr)
	catalogSvc := service.NewCatalogService(catalogRepo, nil, logr)
	importSvc := service.NewImportService(entryRepo, catalogRepo, conflictSvc, logr)
	exportSvc := service.NewExportService(entryRepo, export.NewCSVExporter(), export.NewPDFExporter(), store, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Schedule: handler.NewScheduleHandler(scheduleSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Conflict: handler.NewConflictHandler(conflictSvc, metricsSvc),
		File:     handler.NewFileHandler(importSvc, exportSvc, metricsSvc),
		Report:   handler.NewReportHandler(exportSvc),
		Metrics:  handler.NewMetricsHandler(metricsSvc),
	}
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc, metricsSvc)

	r.GET("/readyz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
