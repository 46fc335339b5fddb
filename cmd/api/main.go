package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edulane/tutoring-api/api/swagger"
	"github.com/edulane/tutoring-api/internal/handler"
	"github.com/edulane/tutoring-api/internal/middleware"
	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/internal/progress"
	"github.com/edulane/tutoring-api/internal/repository"
	"github.com/edulane/tutoring-api/internal/service"
	"github.com/edulane/tutoring-api/pkg/cache"
	"github.com/edulane/tutoring-api/pkg/config"
	"github.com/edulane/tutoring-api/pkg/database"
	"github.com/edulane/tutoring-api/pkg/jobs"
	"github.com/edulane/tutoring-api/pkg/logger"
	corsmiddleware "github.com/edulane/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edulane/tutoring-api/pkg/middleware/requestid"
	"github.com/edulane/tutoring-api/pkg/storage"
)

// @title EduLane Tutoring API
// @version 1.0.0
// @description Progress reporting and helpdesk backend for the tutoring platform
// @BasePath /
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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Progress.CacheTTL, logr, true)
	}

	studentRepo := repository.NewStudentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	weights := progress.Weights{
		Attendance: cfg.Progress.AttendanceWeight,
		Score:      cfg.Progress.ScoreWeight,
	}

	progressSvc := service.NewProgressService(service.ProgressServiceParams{
		Students:    studentRepo,
		Sessions:    sessionRepo,
		Assessments: assessmentRepo,
		Cache:       cacheSvc,
		Metrics:     metricsSvc,
		Logger:      logr,
		Config: service.ProgressServiceConfig{
			Weights:  weights,
			CacheTTL: cfg.Progress.CacheTTL,
		},
	})

	dashboardSvc := service.NewClassDashboardService(service.ClassDashboardParams{
		Students:    studentRepo,
		Sessions:    sessionRepo,
		Upcoming:    sessionRepo,
		Assessments: assessmentRepo,
		Cache:       cacheSvc,
		Logger:      logr,
		Config: service.ClassDashboardConfig{
			Weights:                weights,
			CacheTTL:               cfg.Dashboard.CacheTTL,
			LowAttendanceThreshold: cfg.Dashboard.LowAttendanceThreshold,
			AtRiskProgressMax:      cfg.Dashboard.AtRiskProgressMax,
		},
	})

	validate := validator.New()
	signer := storage.NewSignedURLSigner(cfg.JWT.Secret, time.Hour)
	supportSvc := service.NewSupportService(supportRepo, validate, signer, cacheSvc, logr, service.SupportServiceConfig{
		MaxAttachments:  cfg.Support.MaxAttachments,
		DefaultPageSize: cfg.Support.DefaultPageSize,
		CacheTTL:        cfg.Support.CacheTTL,
	})
	insightsSvc := service.NewInsightsService(nil, nil, nil, logr)

	auditQueue := jobs.NewQueue("audit", func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.AuditLog)
		if !ok {
			return fmt.Errorf("unexpected audit payload %T", job.Payload)
		}
		return auditRepo.CreateAuditLog(ctx, entry)
	}, jobs.QueueConfig{Workers: 2, Logger: logr})
	auditQueue.Start(context.Background())
	defer auditQueue.Stop()

	progressHandler := handler.NewProgressHandler(progressSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	supportHandler := handler.NewSupportHandler(supportSvc)
	insightsHandler := handler.NewInsightsHandler(insightsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	verifier := middleware.NewTokenVerifier(cfg.JWT.Secret)
	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(verifier))

	students := api.Group("/students")
	{
		students.GET("/:id/progress", progressHandler.StudentProgress)
		students.GET("/:id/insights", insightsHandler.Student)
	}

	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	{
		dashboard.GET("/class", dashboardHandler.Class)
		dashboard.GET("/class/export", dashboardHandler.ExportCSV)
	}

	system := api.Group("/system")
	system.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		system.GET("/status", metricsHandler.SystemStatus)
	}

	if cfg.Support.Enabled {
		support := api.Group("/support/tickets")
		{
			support.POST("", middleware.Audit(auditQueue, models.AuditActionTicketCreate, "support_ticket"), supportHandler.Create)
			support.GET("", supportHandler.List)
			support.GET("/:id", supportHandler.Get)
			support.POST("/:id/messages", middleware.Audit(auditQueue, models.AuditActionTicketReply, "support_ticket"), supportHandler.Reply)
			support.PATCH("/:id/status", middleware.Audit(auditQueue, models.AuditActionTicketTransition, "support_ticket"), supportHandler.Transition)
		}

		// The signed token is the credential here, so this route sits
		// outside the JWT group; claims are attached only for log attribution.
		r.GET("/support/attachments/:token", middleware.OptionalJWT(verifier), supportHandler.DownloadAttachment)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
