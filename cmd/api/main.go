package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lumenhq/lumen-api/internal/config"
	"github.com/lumenhq/lumen-api/internal/database"
	"github.com/lumenhq/lumen-api/internal/handler"
	"github.com/lumenhq/lumen-api/internal/middleware"
	"github.com/lumenhq/lumen-api/internal/observability"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/router"
	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/storage"
	cloud "github.com/lumenhq/lumen-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.Open(db, logger)
	if err != nil {
		log.Fatalf("failed to prepare storage: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, analytics caching disabled")
	}

	var uploader service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		cld, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cld
	} else {
		logger.Warn().Msg("cloudinary not configured, uploads disabled")
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepository(store)
	enrollmentRepo := repository.NewEnrollmentRepository(store)
	assignmentRepo := repository.NewAssignmentRepository(store)
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	seedService := service.NewSeedService(store, logger)
	seeded, err := seedService.EnsureSeedData(context.Background())
	if err != nil {
		log.Fatalf("failed to seed sample data: %v", err)
	}
	if seeded {
		logger.Info().Msg("sample dataset seeded")
	}

	notificationService := service.NewNotificationService(logger)
	courseService := service.NewCourseService(courseRepo, validate, logger)
	ratingService := service.NewRatingService(courseRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, enrollmentRepo, courseRepo, userRepo, validate, notificationService, logger)
	userService := service.NewUserService(userRepo, enrollmentRepo, validate, logger)
	authService := service.NewAuthService(userRepo, sessionRepo, validate, cfg.JWTSecret, logger)
	searchService := service.NewSearchService(sessionRepo, logger)
	analyticsService := service.NewAnalyticsService(courseRepo, enrollmentRepo, assignmentRepo, assignmentService, redisClient, cfg.AnalyticsCacheTTL, logger)

	var uploadService service.UploadService
	if uploader != nil {
		uploadService = service.NewUploadService(uploader, cfg.UploadMaxSizeMB, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, ratingService, enrollmentService, userService, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(enrollmentService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsService, logger),
		SearchHandler:     handler.NewSearchHandler(searchService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		RealtimeHandler:   handler.NewRealtimeHandler(notificationService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return database.ConnectPostgres(cfg.DatabaseURL)
	}

	return database.ConnectSQLite(cfg.SQLitePath)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
