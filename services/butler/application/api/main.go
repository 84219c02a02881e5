package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/services/butler/application/handlers"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
)

// ButlerRoutes registers the session-protected settings, inbox and order endpoints.
func ButlerRoutes(r chi.Router, a *app.Application, svcs *butlersvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		settings := handlers.NewSettingsHandler(svcs)
		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Put)

		notifications := handlers.NewNotificationHandler(svcs)
		r.Get("/notifications", notifications.List)
		r.Post("/notifications/{id}/read", notifications.MarkRead)
		r.Delete("/notifications/{id}", notifications.Dismiss)

		r.Post("/butler/orders", handlers.NewPostOrderHandler(svcs).Execute)
	})
}
