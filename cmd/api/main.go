package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/cryptovlab/coursework-api/internal/config"
	"github.com/cryptovlab/coursework-api/internal/handler"
	"github.com/cryptovlab/coursework-api/internal/middleware"
	"github.com/cryptovlab/coursework-api/internal/models"
	"github.com/cryptovlab/coursework-api/internal/repository"
	"github.com/cryptovlab/coursework-api/internal/router"
	"github.com/cryptovlab/coursework-api/internal/service"
	"github.com/cryptovlab/coursework-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	fs := afero.NewOsFs()

	assignmentCollection, err := store.NewCollection[models.Assignment](fs, cfg.AssignmentsFile(), "assignments", store.AssignmentsSchema)
	if err != nil {
		log.Fatalf("failed to open assignments collection: %v", err)
	}

	submissionCollection, err := store.NewCollection[models.Submission](fs, cfg.SubmissionsFile(), "submissions", store.SubmissionsSchema)
	if err != nil {
		log.Fatalf("failed to open submissions collection: %v", err)
	}

	activityCollection, err := store.NewCollection[models.ActivityEvent](fs, cfg.ActivitiesFile(), "activities", store.ActivitiesSchema)
	if err != nil {
		log.Fatalf("failed to open activities collection: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(assignmentCollection)
	submissionRepo := repository.NewSubmissionRepository(submissionCollection)
	activityRepo := repository.NewActivityLogRepository(activityCollection)

	activityService := service.NewActivityService(activityRepo, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, validate, activityService, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, activityService, logger)
	gradingService := service.NewGradingService(submissionRepo, validate, activityService, logger)
	statsService := service.NewStatsService(assignmentRepo, submissionRepo, cfg.RecentSubmissionLimit, logger)
	seedService := service.NewSeedService(assignmentService, assignmentRepo, cfg.SeedSampleData, logger)

	if cfg.SeedSampleData {
		if _, err := seedService.SeedSampleAssignments(context.Background(), cfg.SeedActor); err != nil && !errors.Is(err, service.ErrSeedNotEmpty) {
			log.Fatalf("failed to seed sample assignments: %v", err)
		}
	}

	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	gradingHandler := handler.NewGradingHandler(gradingService, logger)
	statsHandler := handler.NewStatsHandler(statsService, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app)
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: assignmentHandler,
		SubmissionHandler: submissionHandler,
		GradingHandler:    gradingHandler,
		StatsHandler:      statsHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Str("data_dir", cfg.DataDir).Msg("coursework service started")

	waitForShutdown(app)
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
