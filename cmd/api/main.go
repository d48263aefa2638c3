package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pathbridge-backend/config"
	_ "pathbridge-backend/docs" // Important for Swagger
	v1 "pathbridge-backend/internal/delivery/http/v1"
	"pathbridge-backend/internal/repository/postgres"
	"pathbridge-backend/internal/usecase"
	"pathbridge-backend/pkg/cache"
	"pathbridge-backend/pkg/database"
	"pathbridge-backend/pkg/logger"
	"pathbridge-backend/pkg/redis"
	"pathbridge-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           PathBridge API
// @version         1.0
// @description     Backend for the alumni-student networking platform using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting pathbridge backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.RunMigrations(postgres.MigrationsFS(), postgres.MigrationsDir, cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional; rate limiting and view cache degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
	}
	defer redis.Close()

	viewCache := cache.NewViewCache(
		redis.Client(),
		time.Duration(cfg.ViewCacheTTLSec)*time.Second,
		logger.Log,
	)

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	assignmentRepo := postgres.NewAssignmentRepository(dbPool)
	submissionRepo := postgres.NewSubmissionRepository(dbPool)
	messageRepo := postgres.NewMessageRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	followRepo := postgres.NewFollowRepository(dbPool)
	meetingRepo := postgres.NewMeetingRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(userRepo)
	profileUC := usecase.NewProfileUsecase(userRepo, followRepo, validate)
	assignmentUC := usecase.NewAssignmentUsecase(assignmentRepo, viewCache)
	submissionUC := usecase.NewSubmissionUsecase(
		submissionRepo,
		assignmentRepo,
		messageRepo,
		notificationRepo,
		viewCache,
		cfg.AllowLateSubmissions,
	)
	messageUC := usecase.NewMessageUsecase(messageRepo, notificationRepo, userRepo, viewCache)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, viewCache)
	followUC := usecase.NewFollowUsecase(followRepo, notificationRepo, userRepo, viewCache)
	alumniUC := usecase.NewAlumniUsecase(userRepo)
	mentorshipUC := usecase.NewMentorshipUsecase(userRepo, meetingRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		ProfileUC:      profileUC,
		AssignmentUC:   assignmentUC,
		SubmissionUC:   submissionUC,
		MessageUC:      messageUC,
		NotificationUC: notificationUC,
		FollowUC:       followUC,
		AlumniUC:       alumniUC,
		MentorshipUC:   mentorshipUC,
		ViewCache:      viewCache,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
