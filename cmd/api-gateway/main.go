package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/siakad-dev/siakad-api/api/swagger"
	"github.com/siakad-dev/siakad-api/internal/handler"
	"github.com/siakad-dev/siakad-api/internal/middleware"
	"github.com/siakad-dev/siakad-api/internal/models"
	"github.com/siakad-dev/siakad-api/internal/repository"
	"github.com/siakad-dev/siakad-api/internal/service"
	"github.com/siakad-dev/siakad-api/pkg/cache"
	"github.com/siakad-dev/siakad-api/pkg/config"
	"github.com/siakad-dev/siakad-api/pkg/database"
	"github.com/siakad-dev/siakad-api/pkg/export"
	"github.com/siakad-dev/siakad-api/pkg/logger"
	corsmiddleware "github.com/siakad-dev/siakad-api/pkg/middleware/cors"
	reqidmiddleware "github.com/siakad-dev/siakad-api/pkg/middleware/requestid"
)

// @title SIAKAD Schedule Validation API
// @version 1.0.0
// @description Conflict detection and workload validation for class schedules
// @BasePath /api/v1
// @schemes http

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
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Repositories.
	itemRepo := repository.NewScheduleItemRepository(db)
	scheduleRepo := repository.NewProgramScheduleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	lecturerRepo := repository.NewLecturerRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	conflictLogRepo := repository.NewConflictLogRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	validatorSvc := service.NewValidatorService(
		itemRepo, enrollmentRepo, lecturerRepo, roomRepo, courseRepo,
		scheduleRepo, conflictLogRepo, metricsSvc, nil, logr,
		service.ValidatorConfig{
			MinDurationMinutes: cfg.Validator.MinDurationMinutes,
			WorkdayStart:       cfg.Validator.WorkdayStart,
			WorkdayEnd:         cfg.Validator.WorkdayEnd,
			LunchStart:         cfg.Validator.LunchStart,
			LunchEnd:           cfg.Validator.LunchEnd,
			DefaultMaxSKS:      cfg.Validator.DefaultMaxSKS,
			WorkloadWarnRatio:  cfg.Validator.WorkloadWarnRatio,
		},
	)
	availabilitySvc := service.NewAvailabilityService(itemRepo, roomRepo, nil, logr)
	workloadSvc := service.NewWorkloadService(itemRepo, lecturerRepo, periodRepo, cacheRepo, logr, cfg.Validator.DefaultMaxSKS, cfg.Validator.WorkloadCacheTTL)
	reportSvc := service.NewReportService(scheduleRepo, validatorSvc, periodRepo, cacheRepo, logr, cfg.Validator.ReportCacheTTL)
	exportSvc := service.NewExportService(reportSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	conflictLogSvc := service.NewConflictLogService(conflictLogRepo, nil, logr)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)

	// Handlers.
	validationHandler := handler.NewValidationHandler(validatorSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	workloadHandler := handler.NewWorkloadHandler(workloadSvc, reportSvc, exportSvc)
	conflictLogHandler := handler.NewConflictLogHandler(conflictLogSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleKaprodi)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleKaprodi, models.RoleDosen)

	api.POST("/validations/schedule-item", staff, validationHandler.ValidateItem)
	api.POST("/validations/schedule-items:batch", staff, validationHandler.ValidateBatch)
	api.GET("/validations/dosen-conflicts", anyRole, validationHandler.CheckDosenConflict)
	api.GET("/validations/ruangan-conflicts", anyRole, validationHandler.CheckRuanganConflict)
	api.GET("/validations/mahasiswa-conflicts", staff, validationHandler.CheckMahasiswaConflict)
	api.GET("/schedules/:id/validation", staff, validationHandler.ValidateSchedule)

	api.GET("/rooms/available", anyRole, availabilityHandler.AvailableRooms)
	api.GET("/lecturers/:id/available-slots", anyRole, availabilityHandler.AvailableSlots)
	api.GET("/lecturers/:id/workload", middleware.RBAC(string(models.RoleAdmin), string(models.RoleKaprodi), "SELF"), workloadHandler.LecturerWorkload)

	api.GET("/periods/:id/conflict-report", staff, workloadHandler.ConflictReport)
	if cfg.Reports.Enabled {
		api.GET("/periods/:id/conflict-report/export", staff, workloadHandler.ExportConflictReport)
	}

	api.GET("/conflict-logs", staff, conflictLogHandler.List)
	api.GET("/conflict-logs/stats", staff, conflictLogHandler.Stats)
	api.GET("/conflict-logs/:id", staff, conflictLogHandler.Get)
	api.PATCH("/conflict-logs/:id/resolve", staff, conflictLogHandler.Resolve)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
