package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kindred/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                        liveness + db check (public)
//	GET  /api/v1/holidays/{year}        holidays for a year, ?category=
//	GET  /api/v1/holidays/upcoming      holidays in the next ?days=
//	GET  /api/v1/holidays/check         is ?date= a holiday for ?religion=/?nationality=
//	     /api/v1/contacts...            contact CRUD, search, export (authenticated)
//	GET  /api/v1/reminders/upcoming     combined reminder feed (authenticated)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Holiday lookups are public: they read only the embedded catalog.
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/upcoming", handlers.GetUpcomingHolidays)
			r.Get("/check", handlers.CheckHoliday)
			r.Get("/{year}", handlers.GetHolidaysForYear)
		})

		// Contact and reminder data requires the API key.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", handlers.ListContacts)
				r.Post("/", handlers.CreateContact)
				r.Get("/search", handlers.SearchContacts)
				r.Get("/export", handlers.ExportContacts)
				r.Get("/{id}", handlers.GetContact)
				r.Put("/{id}", handlers.UpdateContact)
				r.Delete("/{id}", handlers.DeleteContact)
			})

			r.Get("/reminders/upcoming", handlers.GetUpcomingReminders)
		})
	})

	return r
}
