package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/YoussefTakali/esprithub/internal/api/http"
	"github.com/YoussefTakali/esprithub/internal/api/http/handlers"
	"github.com/YoussefTakali/esprithub/internal/auth"
	"github.com/YoussefTakali/esprithub/internal/config"
	"github.com/YoussefTakali/esprithub/internal/events"
	"github.com/YoussefTakali/esprithub/internal/github"
	"github.com/YoussefTakali/esprithub/internal/observability"
	"github.com/YoussefTakali/esprithub/internal/persistence"
	"github.com/YoussefTakali/esprithub/internal/repository"
	"github.com/YoussefTakali/esprithub/internal/service"
	"github.com/YoussefTakali/esprithub/internal/worker"
)

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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	userRepo := repository.NewUserRepository(pg.PoolHandle())
	githubClient := github.NewClient(cfg.GitHub)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(*cfg, userRepo, dispatcher, logger)
	githubService := service.NewGithubService(userRepo, githubClient, dispatcher, logger)
	dashboardService := service.NewDashboardService(userRepo, redis, logger)
	dashboardService.RegisterInvalidation(dispatcher)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Github:         handlers.NewGithubHandler(githubService),
		Users:          handlers.NewUsersHandler(userService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, userService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
