package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gridwatch/outage-service/internal/api/http"
	"github.com/gridwatch/outage-service/internal/api/http/handlers"
	"github.com/gridwatch/outage-service/internal/auth"
	"github.com/gridwatch/outage-service/internal/config"
	"github.com/gridwatch/outage-service/internal/events"
	"github.com/gridwatch/outage-service/internal/observability"
	"github.com/gridwatch/outage-service/internal/persistence"
	"github.com/gridwatch/outage-service/internal/repository"
	"github.com/gridwatch/outage-service/internal/service"
	"github.com/gridwatch/outage-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	areaRepo := repository.NewAreaRepository(pool)
	outageRepo := repository.NewOutageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var amqpPublisher *events.AMQPPublisher
	if cfg.Notify.AMQPURL != "" {
		amqpPublisher, err = events.NewAMQPPublisher(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			logger.Warn("amqp broker unavailable; alerts limited to webhook", zap.Error(err))
		} else {
			defer amqpPublisher.Close() //nolint:errcheck
		}
	}

	authService := service.NewAuthService(cfg.Auth, userRepo)
	areaService := service.NewAreaService(areaRepo, outageRepo)
	outageService := service.NewOutageService(service.OutageDependencies{
		OutageRepo: outageRepo,
		UserRepo:   userRepo,
		AreaRepo:   areaRepo,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(notificationRepo, outageRepo, dispatcher)
	reportService := service.NewReportService(outageRepo, areaRepo, userRepo, redis, cfg.Notify.StatsTTL(), logger)
	alertService := service.NewAlertService(dispatcher, logger, cfg.Notify, amqpPublisher)

	worker.StartAlertWorker(alertService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics(cfg.App.Name)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Areas:          handlers.NewAreasHandler(areaService),
		Outages:        handlers.NewOutagesHandler(outageService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
		MetricsHandler: metrics.Handler(),
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
