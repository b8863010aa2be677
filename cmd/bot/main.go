package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soundcheckk/studio_bot/internal/app"
	"github.com/soundcheckk/studio_bot/internal/config"
	"github.com/soundcheckk/studio_bot/internal/controller"
	"github.com/soundcheckk/studio_bot/internal/observability"
	"github.com/soundcheckk/studio_bot/internal/repository"
	"github.com/soundcheckk/studio_bot/internal/service"
	"go.uber.org/zap"
)

const release = "studio_bot@dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting studio bot",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr))

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Environment, release)
	if err != nil {
		logger.Warn("Sentry init failed, continuing without it", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create db pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping db", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	studentRepo := repository.NewStudentRepository(pool, logger)
	eventRepo := repository.NewEventRepository(pool, logger)
	ledgerRepo := repository.NewLedgerRepository(pool, logger)

	// Сервисы
	rosterService := service.NewRosterService(studentRepo, logger)
	eventService := service.NewEventService(eventRepo, logger)
	ledgerService := service.NewLedgerService(ledgerRepo, logger)
	calendarService := service.NewCalendarService(rosterService, eventService, ledgerService, logger)

	// Служебный HTTP: healthz и метрики
	app.StartHTTP(ctx, cfg.HTTPAddr, pool)

	// Фоновое обновление реестра учеников
	refresher := app.NewRosterRefresher(rosterService, cfg.RosterRefresh, logger)
	refresher.Start(ctx)
	defer refresher.Stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		rosterService,
		eventService,
		ledgerService,
		calendarService,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Studio bot stopped")
}
