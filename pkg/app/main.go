package app

import (
	"github.com/gorilla/sessions"

	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/pkg/events"
	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every bounded context's Routes call during server initialization
// and to the worker's subscriber setup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item committed", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Preferences    *preferences.Store
	TemporalClient *workflows.TemporalClient // nil unless BUTLER_BACKEND=temporal
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
