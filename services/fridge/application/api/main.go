package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/services/fridge/application/handlers"
	appsvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
)

// PublicRoutes registers the fridge endpoints reachable without a session.
func PublicRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Post("/households", handlers.NewPostHouseholdHandler(svcs, a.SessionStore).Execute)
}

// FridgeRoutes registers the session-protected fridge endpoints on the provided chi router.
func FridgeRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Get("/households/me", handlers.NewGetCurrentHouseholdHandler(svcs).Execute)
		r.Delete("/session", handlers.NewDeleteSessionHandler(a.SessionStore).Execute)

		entry := handlers.NewEntryHandler(svcs)
		entryItems := handlers.NewEntryItemsHandler(svcs)
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", handlers.NewListEntriesHandler(svcs).Execute)
			r.Post("/", handlers.NewPostEntryHandler(svcs).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", entry.Get)
				r.Put("/", entry.Rename)
				r.Delete("/", entry.Delete)
				r.Post("/archive", entry.Archive)
				r.Post("/unarchive", entry.Unarchive)
				r.Get("/items", entryItems.List)
				r.Post("/items", entryItems.Create)
			})
		})

		item := handlers.NewItemHandler(svcs)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/expiring", item.Expiring)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", item.Get)
				r.Put("/", item.Update)
				r.Delete("/", item.Delete)
				r.Post("/consume", item.Consume)
				r.Post("/spoil", item.Spoil)
				r.Post("/restore", item.Restore)
				r.Get("/similar", item.Similar)
			})
		})

		categories := handlers.NewCategoryHandler(svcs)
		r.Get("/categories", categories.List)
		r.Get("/categories/{id}/items", categories.Items)
	})
}
