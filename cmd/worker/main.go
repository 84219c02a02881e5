package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/pkg/events"
	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/pkg/telemetry"
	"github.com/pyamsoft/fridge/pkg/workflows"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	cronscheduler "github.com/pyamsoft/fridge/services/butler/infrastructure/scheduler/cron"
	temporalscheduler "github.com/pyamsoft/fridge/services/butler/infrastructure/scheduler/temporal"
	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:      cfg,
		Db:          pool,
		Logger:      log,
		EventBus:    eventBus,
		Redis:       redisClient,
		Preferences: preferences.NewStore(redisClient),
	}

	if cfg.ButlerBackend == config.ButlerBackendTemporal {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
	}

	fridge := fridgesvcs.New(appConfig)
	butler := butlersvcs.New(appConfig, fridge)

	scheduler, stopScheduler, err := startScheduler(ctx, appConfig, butler.Runner)
	if err != nil {
		log.Error("failed to start butler scheduler", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	w := newWorker(appConfig, fridge, scheduler)
	if err := w.registerSubscribers(ctx); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	go w.runHouseholdSync(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()
	if err := stopScheduler(context.Background()); err != nil {
		log.Error("butler scheduler stop failed", "error", err)
	}

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// startScheduler returns the butler scheduler for BUTLER_BACKEND and a func
// that stops it.
func startScheduler(ctx context.Context, a *app.Application, runner *butlersvcs.Runner) (butlersvcs.Scheduler, func(context.Context) error, error) {
	if a.Config.ButlerBackend != config.ButlerBackendTemporal {
		s := cronscheduler.New(runner, a.Logger)
		s.Start(ctx)
		return s, s.Stop, nil
	}

	tw, err := a.TemporalClient.NewWorker(a.Config.TemporalTaskQueue)
	if err != nil {
		return nil, nil, err
	}
	temporalscheduler.Register(tw, runner)
	if err := tw.Start(); err != nil {
		return nil, nil, err
	}
	s := temporalscheduler.NewScheduler(
		a.TemporalClient.Client,
		a.TemporalClient.Namespace,
		a.Config.TemporalTaskQueue,
		a.Logger,
	)
	stop := func(context.Context) error {
		tw.Stop()
		return nil
	}
	return s, stop, nil
}
