package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/usecase-catalog/internal/api/http"
	"github.com/spec-kit/usecase-catalog/internal/api/http/handlers"
	"github.com/spec-kit/usecase-catalog/internal/auth"
	"github.com/spec-kit/usecase-catalog/internal/config"
	"github.com/spec-kit/usecase-catalog/internal/domain"
	"github.com/spec-kit/usecase-catalog/internal/observability"
	"github.com/spec-kit/usecase-catalog/internal/persistence"
	"github.com/spec-kit/usecase-catalog/internal/repository"
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

	var (
		pg          *persistence.Postgres
		useCaseRepo repository.UseCaseRepository
		userRepo    repository.UserRepository
	)

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Info("using in-memory store")
		useCaseRepo = repository.NewMemoryUseCaseRepository()
		userRepo = repository.NewMemoryUserRepository()
		if err := seedMemoryAccounts(ctx, userRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed dev account", zap.Error(err))
		}
	default:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		useCaseRepo = repository.NewUseCaseRepository(pg.PoolHandle())
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	if redis != nil {
		useCaseRepo = repository.NewCachedUseCaseRepository(useCaseRepo, redis.Client, cfg.Redis.CacheTTL(), logger)
	}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authMiddleware := auth.NewMiddleware(tokenManager)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		UseCases:       handlers.NewUseCasesHandler(useCaseRepo),
		Auth:           handlers.NewAuthHandler(userRepo, tokenManager),
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

// seedMemoryAccounts provisions a development login for the in-memory
// driver, which starts empty and is not reachable by the external seeder.
// Without it no token could be issued and every write endpoint would be
// unreachable. Credentials come from the environment with throwaway
// defaults.
func seedMemoryAccounts(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	email := envOr("DEV_ADMIN_EMAIL", "admin@example.com")
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(envOr("DEV_ADMIN_PASSWORD", "admin-dev-password"), bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	logger.Info("seeded development admin account", zap.String("email", email))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
