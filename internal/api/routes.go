package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all routes for the bridge.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// Webhook senders are servers, but the diagnostic routes get used
	// from browser tooling during integration setup.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	// Production webhook endpoints
	r.Post("/webhook/dixa/csat", h.HandleCSATWebhook)
	r.Post("/webhook/voyado/review", h.HandleReviewWebhook)
	r.Post("/webhook/voyado/points", h.HandlePointsBalanceWebhook)

	// Observation
	r.Get("/latest-csat", h.GetLatestCSAT)

	// Diagnostic routes for wiring up the two vendor integrations
	r.Get("/test-lookup/{type}/{identifier}", h.TestLookup)
	r.Post("/test-add-points", h.TestAddPoints)
	r.Post("/test-add-interaction", h.TestAddInteraction)
	r.Post("/test-voyado-review", h.TestReview)
	r.Get("/test-dixa-enduser-lookup", h.TestEndUserLookup)
	r.Post("/test-dixa-enduser-create", h.TestEndUserCreate)

	return r
}
