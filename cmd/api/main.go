package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/pyamsoft/fridge/docs/swagger"
	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/events"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/pkg/telemetry"
	"github.com/pyamsoft/fridge/pkg/workflows"
	butlerApi "github.com/pyamsoft/fridge/services/butler/application/api"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	fridgeApi "github.com/pyamsoft/fridge/services/fridge/application/api"
	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	locatorApi "github.com/pyamsoft/fridge/services/locator/application/api"
	locatorsvcs "github.com/pyamsoft/fridge/services/locator/application/services"
)

// @title					Fridge API
// @version				1.0
// @description			Household food inventory with expiration reminders and nearby store lookup.
// @license.name			Apache 2.0
// @license.url			https://www.apache.org/licenses/LICENSE-2.0
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)
	log.Info("session store initialized", "backend", "redis")

	errhttp.SetProduction(cfg.Environment == config.EnvProduction)

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Preferences:  preferences.NewStore(redisClient),
		SessionStore: sessionStore,
	}
	svcs := newServices(appConfig)

	if n, err := svcs.fridge.Category.SeedDefaults(ctx); err != nil {
		log.Error("failed to seed categories", "error", err)
		os.Exit(1) //nolint:gocritic
	} else if n > 0 {
		log.Info("default categories seeded", "count", n)
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
		EventBus: eventBus,
	}
	// The API never runs orders itself, but reports whether the Temporal
	// backend the worker depends on is reachable.
	if cfg.ButlerBackend == config.ButlerBackendTemporal {
		tc, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Warn("temporal unreachable, health will not report scheduler", "error", err)
		} else {
			defer tc.Close()
			checks.Scheduler = tc
		}
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

type services struct {
	fridge  *fridgesvcs.Services
	butler  *butlersvcs.Services
	locator *locatorsvcs.Services
}

func newServices(a *app.Application) *services {
	fridge := fridgesvcs.New(a)
	butler := butlersvcs.New(a, fridge)
	return &services{
		fridge:  fridge,
		butler:  butler,
		locator: locatorsvcs.New(a, butler),
	}
}

// registerRoutes mounts all service routes under /api. Only household
// creation is public; everything else sits behind the session middleware.
func registerRoutes(r chi.Router, a *app.Application, s *services) {
	fridgeApi.PublicRoutes(r, a, s.fridge)
	fridgeApi.FridgeRoutes(r, a, s.fridge)
	butlerApi.ButlerRoutes(r, a, s.butler)
	locatorApi.LocatorRoutes(r, a, s.locator)
}
