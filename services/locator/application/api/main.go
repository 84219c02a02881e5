package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/services/locator/application/handlers"
	appsvcs "github.com/pyamsoft/fridge/services/locator/application/services"
)

// LocatorRoutes registers the session-protected /locator endpoints.
func LocatorRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	h := handlers.NewLocatorHandler(svcs)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Route("/locator", func(r chi.Router) {
			r.Post("/refresh", h.Refresh)
			r.Get("/stores", h.Stores)
			r.Delete("/stores/{id}", h.DeleteStore)
			r.Get("/zones", h.Zones)
			r.Delete("/zones/{id}", h.DeleteZone)
			r.Get("/nearby", h.Nearby)
			r.Post("/checkin", h.CheckIn)
		})
	})
}
