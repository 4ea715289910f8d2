package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/devquiz-service/internal/bank"
	"github.com/SAP-F-2025/devquiz-service/internal/cache"
	"github.com/SAP-F-2025/devquiz-service/internal/config"
	"github.com/SAP-F-2025/devquiz-service/internal/handlers"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories/memory"
	"github.com/SAP-F-2025/devquiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/devquiz-service/internal/services"
	"github.com/SAP-F-2025/devquiz-service/internal/utils"
	"github.com/SAP-F-2025/devquiz-service/internal/validator"
	"github.com/SAP-F-2025/devquiz-service/pkg"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := validator.New()

	repo, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.SeedOnStart || cfg.DatabaseURL == "" {
		seed, err := bank.Default(v)
		if err != nil {
			return err
		}
		if _, err := services.SeedQuestionBank(ctx, repo, seed, logger); err != nil {
			return err
		}
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()
	eventService := services.NewQuizEventService(eventPublisher, logger)

	generator := cfg.Feedback.CreateGenerator(ctx, logger)
	quizService := services.NewQuizService(repo, eventService, generator, logger, services.QuizOptions{
		FeedbackTimeout: cfg.Feedback.Timeout,
		EnableDebug:     !cfg.IsProduction(),
	})
	defer quizService.Close()

	importExportService, err := services.NewImportExportService(repo, eventService, logger, v)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestID(), utils.LoggerMiddleware(utils.NewSlogLogger(logger)))
	handlers.NewHandlerManager(quizService, importExportService, v, utils.NewSlogLogger(logger)).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("DevQuiz service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildRepository picks postgres when DATABASE_URL is set and the in-memory bank otherwise, then
// puts the redis cache in front when REDIS_URL is set.
func buildRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.QuestionRepository, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var repo repositories.QuestionRepository
	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, cleanup, err
		}
		if sqlDB, err := db.DB(); err == nil {
			cleanups = append(cleanups, func() { sqlDB.Close() })
		}
		repo = postgres.NewQuestionPostgreSQL(db)
		logger.Info("Using PostgreSQL question bank")
	} else {
		repo = memory.NewQuestionMemory()
		logger.Info("Using in-memory question bank")
	}

	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		cleanups = append(cleanups, func() { client.Close() })
		repo = repositories.NewCachedQuestionRepository(
			repo,
			cache.NewRedisCache(client, "devquiz:", logger),
			cfg.QuestionCacheTTL,
			logger,
		)
		logger.Info("Question bank cache enabled", "ttl", cfg.QuestionCacheTTL)
	}

	return repo, cleanup, nil
}
