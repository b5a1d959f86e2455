package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tesseract-Nexus/admin-bff/internal/auth"
	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/metrics"
)

// SetupRoutes configures the full BFF route surface.
func SetupRoutes(h *Handlers, verifier *auth.Verifier, corsCfg config.CORSConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)

	// CORS - the dashboard sends credentials, so origins are explicit.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-Tenant-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Liveness and metrics (no auth required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(verifier.Middleware)

		// Tenants
		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.ListMyTenants)
			r.Post("/", h.CreateTenant)
			r.Get("/check-slug", h.CheckSlug)
			r.Get("/validate", h.ValidateSlug)
			r.Get("/{id}", h.GetTenant)
			r.Get("/{id}/context", h.GetTenantContext)
			r.Get("/{id}/onboarding-data", h.GetOnboardingData)
			r.Get("/{id}/growthbook", h.GetGrowthBook)
		})
		r.Get("/domains", h.ListAdminDomains)

		// Campaigns
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.CreateCampaign)
			r.Get("/stats", h.CampaignStats)
			r.Get("/{id}", h.GetCampaign)
			r.Put("/{id}", h.UpdateCampaign)
			r.Post("/{id}/send", h.SendCampaign)
			r.Post("/{id}/pause", h.PauseCampaign)
			r.Post("/{id}/resume", h.ResumeCampaign)
		})
		r.Get("/segments", h.ListSegments)

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Get("/{id}", h.GetOrder)
			r.Get("/{id}/transitions", h.OrderTransitions)
			r.Put("/{id}/status", h.UpdateOrderStatus)
			r.Put("/{id}/payment-status", h.UpdatePaymentStatus)
			r.Put("/{id}/fulfillment-status", h.UpdateFulfillmentStatus)
			r.Post("/{id}/cancel", h.CancelOrder)
			r.Post("/{id}/receipt", h.GenerateReceipt)
		})

		// Payment gateway configs
		r.Route("/payments/configs", func(r chi.Router) {
			r.Get("/", h.ListGatewayConfigs)
			r.Post("/", h.CreateGatewayConfig)
			r.Put("/{id}", h.UpdateGatewayConfig)
			r.Post("/{code}/enable", h.SetGatewayEnabled)
			r.Delete("/{id}", h.DeleteGatewayConfig)
		})

		// Shipping
		r.Route("/shipping", func(r chi.Router) {
			r.Get("/carrier-configs", h.ListCarrierConfigs)
			r.Post("/carrier-configs/{id}/test-connection", h.TestCarrierConnection)
			r.Get("/settings", h.GetShippingSettings)
			r.Put("/settings", h.UpdateShippingSettings)
		})

		// Settings documents
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)

		// Audit trail
		r.Get("/audit", h.ListAudit)
	})

	return r
}
