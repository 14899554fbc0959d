package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/frontdesk/visitor-register/internal/api/http"
	"github.com/frontdesk/visitor-register/internal/api/http/handlers"
	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/config"
	"github.com/frontdesk/visitor-register/internal/events"
	"github.com/frontdesk/visitor-register/internal/observability"
	"github.com/frontdesk/visitor-register/internal/persistence"
	"github.com/frontdesk/visitor-register/internal/repository"
	"github.com/frontdesk/visitor-register/internal/repository/memory"
	"github.com/frontdesk/visitor-register/internal/service"
	"github.com/frontdesk/visitor-register/internal/worker"
)

type repositories struct {
	users    repository.UserRepository
	staff    repository.StaffRepository
	visitors repository.VisitorRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg)
	metrics := observability.NewMetrics()

	tokens, err := auth.NewTokenManager(cfg.TokenSecrets(), cfg.Auth.AccessTokenTTL)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	limiter := auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService, metrics)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: repos.users,
		Tokens:   tokens,
		Limiter:  limiter,
		Metrics:  metrics,
	})
	staffService := service.NewStaffService(repos.staff)
	visitorService := service.NewVisitorService(service.VisitorDependencies{
		VisitorRepo: repos.visitors,
		StaffRepo:   repos.staff,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Location:    cfg.App.Location(),
	})
	exportService := service.NewExportService(visitorService, logger)

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, httptransport.MiddlewareConfig{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Timeout:        cfg.App.RequestTimeout(),
	}, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Visitors:       handlers.NewVisitorsHandler(visitorService, exportService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.Validator()),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func buildRepositories(pg *persistence.Postgres) repositories {
	if pg.Enabled() {
		return repositories{
			users:    repository.NewUserRepository(pg.Pool),
			staff:    repository.NewStaffRepository(pg.Pool),
			visitors: repository.NewVisitorRepository(pg.Pool),
		}
	}
	staff := memory.NewStaffRepository(memory.DefaultStaff()...)
	return repositories{
		users:    memory.NewUserRepository(),
		staff:    staff,
		visitors: memory.NewVisitorRepository(staff),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
