package router

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/controllers"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/middleware"
)

type ApiRouter struct {
	deps Deps
}

func NewApiRouter(deps Deps) *ApiRouter {
	return &ApiRouter{deps: deps}
}

// InstallRouter registers the admin API under /api/v1 behind the shared-key
// middleware, plus the Prometheus scrape endpoint.
func (h *ApiRouter) InstallRouter(app *fiber.App) {
	adminIPN := controllers.NewAdminIPNController(h.deps.Repos, h.deps.Service, h.deps.Runner)
	properties := controllers.NewPropertyController(h.deps.Repos)
	tenants := controllers.NewTenantController(h.deps.Repos)
	units := controllers.NewUnitController(h.deps.Repos)
	payments := controllers.NewPaymentController(h.deps.Repos)
	audits := controllers.NewAuditController(h.deps.Repos)

	app.Get("/metrics/prometheus", adaptPrometheus())

	v1 := app.Group("/api/v1", middleware.AdminKeyMiddleware())

	ipnGroup := v1.Group("/ipn")
	ipnGroup.Get("/logs", adminIPN.HandleListLogs)
	ipnGroup.Get("/logs/:id", adminIPN.HandleGetLog)
	ipnGroup.Post("/logs/:id/retry", adminIPN.HandleRetryLog)
	ipnGroup.Get("/config", adminIPN.HandleGetConfig)
	ipnGroup.Put("/config", adminIPN.HandleUpdateConfig)
	ipnGroup.Get("/statistics", adminIPN.HandleListStatistics)
	ipnGroup.Get("/scenarios", adminIPN.HandleListScenarios)
	ipnGroup.Post("/scenarios/:id/run", adminIPN.HandleRunScenario)
	ipnGroup.Get("/test-logs", adminIPN.HandleListTestLogs)

	v1.Get("/properties", properties.HandleList)
	v1.Get("/properties/:id", properties.HandleGet)
	v1.Post("/properties", properties.HandleCreate)
	v1.Put("/properties/:id", properties.HandleUpdate)
	v1.Delete("/properties/:id", properties.HandleDelete)

	v1.Get("/tenants", tenants.HandleList)
	v1.Get("/tenants/:id", tenants.HandleGet)
	v1.Post("/tenants", tenants.HandleCreate)
	v1.Put("/tenants/:id", tenants.HandleUpdate)
	v1.Patch("/tenants/:id/kyc", tenants.HandleUpdateKYCStatus)
	v1.Delete("/tenants/:id", tenants.HandleDelete)

	v1.Get("/units", units.HandleList)
	v1.Get("/units/:id", units.HandleGet)
	v1.Post("/units", units.HandleCreate)
	v1.Put("/units/:id", units.HandleUpdate)
	v1.Patch("/units/:id/status", units.HandleUpdateStatus)

	v1.Get("/payments", payments.HandleList)
	v1.Get("/payments/verify", payments.HandleVerifyByReference)
	v1.Get("/payments/:id", payments.HandleGet)

	v1.Get("/audit-logs", audits.HandleList)
	v1.Post("/audit-logs", audits.HandleCreate)
}

func adaptPrometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/plain; version=0.0.4")
		metrics.WritePrometheus(c.Context(), true)
		return nil
	}
}
