package routes

import (
	"aerocost/api/internal/api"
	"aerocost/api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers, jobsHandler *api.JobsHandler) {
	loginLimiter := middleware.NewRateLimiter(deps.Config.Auth.LoginRatePerSec, deps.Config.Auth.LoginBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		// Public
		v1.With(loginLimiter.Middleware).Post("/users/login", handlers.Login())

		// Authenticated
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Tokens))

			authed.Post("/users/logout", handlers.Logout())
			authed.Get("/users/me", handlers.Me())
			authed.Get("/users/{id}", handlers.GetUser())
			authed.Put("/users/{id}", handlers.UpdateUser())

			authed.Route("/aircraft", func(ac chi.Router) {
				ac.Get("/", handlers.ListAircraft())
				ac.Post("/", handlers.CreateAircraft())
				ac.Get("/{id}", handlers.GetAircraft())
				ac.Put("/{id}", handlers.UpdateAircraft())
				ac.Delete("/{id}", handlers.DeleteAircraft())
			})

			authed.Route("/fixed-costs/{aircraftId}", func(fc chi.Router) {
				fc.Get("/", handlers.GetFixedCost())
				fc.Post("/", handlers.UpsertFixedCost())
				fc.Put("/", handlers.UpsertFixedCost())
				fc.Delete("/", handlers.DeleteFixedCost())
			})

			authed.Route("/variable-costs/{aircraftId}", func(vc chi.Router) {
				vc.Get("/", handlers.GetVariableCost())
				vc.Post("/", handlers.UpsertVariableCost())
				vc.Put("/", handlers.UpsertVariableCost())
				vc.Delete("/", handlers.DeleteVariableCost())
			})

			authed.Route("/routes", func(rt chi.Router) {
				rt.Get("/", handlers.ListRoutes())
				rt.Post("/", handlers.CreateRoute())
				rt.Get("/{id}", handlers.GetRoute())
				rt.Put("/{id}", handlers.UpdateRoute())
				rt.Delete("/{id}", handlers.DeleteRoute())
			})

			authed.Route("/fx-rates", func(fx chi.Router) {
				fx.Get("/", handlers.ListFxRates())
				fx.Post("/", handlers.CreateFxRate())
				fx.Get("/current", handlers.CurrentFxRate())
				fx.Delete("/{id}", handlers.DeleteFxRate())
			})

			authed.Route("/calculations/{aircraftId}", func(calc chi.Router) {
				calc.Get("/base-cost", handlers.BaseCost())
				calc.Get("/route-cost", handlers.RouteCost())
				calc.Get("/leg-cost", handlers.LegCost())
				calc.Get("/monthly-projection", handlers.MonthlyProjection())
				calc.Get("/complete", handlers.CompleteCalculation())
			})

			authed.Get("/dashboard/{aircraftId}", handlers.Dashboard())

			authed.Route("/flights", func(fl chi.Router) {
				fl.Get("/", handlers.ListFlights())
				fl.Post("/", handlers.CreateFlight())
				fl.Post("/aircraft/{id}/recalculate-costs", handlers.RecalculateCosts())
				fl.Get("/{id}", handlers.GetFlight())
				fl.Put("/{id}", handlers.UpdateFlight())
				fl.Delete("/{id}", handlers.DeleteFlight())
				fl.Post("/{id}/complete", handlers.CompleteFlight())
			})

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Get("/users", handlers.ListUsers())
				admin.Post("/users", handlers.CreateUser())
				admin.Delete("/users/{id}", handlers.DeleteUser())

				// Background jobs management
				admin.Post("/admin/jobs/reconcile-costs", jobsHandler.TriggerCostReconcile())
			})
		})
	})
}
