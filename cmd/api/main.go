package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-board/internal/api/http"
	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/filestore"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/persistence"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/worker"
)

type repositories struct {
	users        repository.UserRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg)
	sessions := auth.NewMemorySessionStore()
	if redis.Enabled() {
		sessions = auth.NewRedisSessionStore(redis.Client, cfg.Redis.UserCacheTTL())
	}

	files, err := filestore.New(cfg.FileStore)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}
	if _, ok := files.(filestore.Unconfigured); ok {
		logger.Warn("cloudinary credentials not provided; resume uploads disabled")
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	cleanup := worker.NewResumeCleanupWorker(files, logger, cfg.FileStore.CleanupQueueSize)
	cleanup.Register(dispatcher)
	cleanup.Start(ctx)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     repos.users,
		SessionStore: sessions,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    repos.jobs,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo:  repos.applications,
		JobRepo:          repos.jobs,
		FileStore:        files,
		AllowedMimeTypes: cfg.FileStore.AllowedMimeTypes,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users, sessions, cfg.Auth.CookieName, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, *cfg, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:          handlers.NewUsersHandler(authService, cfg.Auth),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
	cancel()
	cleanup.Wait()
}

func newRepositories(pg *persistence.Postgres) repositories {
	pool := pg.PoolHandle()
	if pool == nil {
		store := repository.NewMemoryStore()
		return repositories{users: store.Users(), jobs: store.Jobs(), applications: store.Applications()}
	}
	return repositories{
		users:        repository.NewUserRepository(pool),
		jobs:         repository.NewJobRepository(pool),
		applications: repository.NewApplicationRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
