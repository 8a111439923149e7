package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agropet/agropet-api/internal/application/auth"
	"github.com/agropet/agropet-api/internal/application/billing"
	appsub "github.com/agropet/agropet-api/internal/application/subscription"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	StatusSvc   *appsub.StatusService
	Entitlement *appsub.EntitlementService
	Approval    *billing.ApprovalUseCase
	Payments    *billing.PaymentRequestUseCase
	PlanRepo    repository.PlanRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Métricas Prometheus (gate y aprobaciones).
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo de planes (público, para el registro)
	planHandler := NewPlanHandler(deps.PlanRepo)
	api.Get("/plans", planHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Suscripción del tenant autenticado
	subHandler := NewSubscriptionHandler(deps.StatusSvc, deps.Payments)
	sub := protected.Group("/subscription")
	sub.Get("/", subHandler.GetStatus)
	sub.Post("/payment-requests", subHandler.ReportPayment)
	sub.Get("/payment-requests", subHandler.ListPayments)

	// Operador: bandeja, aprobación y concesiones manuales.
	// La autorización fina (lista de operadores) la aplica el use case.
	adminHandler := NewAdminHandler(deps.Approval, deps.Payments)
	admin := protected.Group("/admin")
	admin.Get("/payment-requests", adminHandler.ListPending)
	admin.Post("/payment-requests/:id/approve", adminHandler.ApprovePayment)
	admin.Post("/tenants/:id/grant", adminHandler.GrantAccess)

	// Namespace del tenant: /api/t/:tenantSlug/:segment/...
	// El gate solo restringe los seis segmentos de módulo; el resto
	// (dashboard, financeiro, configuracoes...) pasa sin verificación.
	tenantHandler := NewTenantHandler()
	tenant := protected.Group("/t/:tenantSlug", RequireTenantSlug("tenantSlug"))
	tenant.Get("/:segment", ModuleGate(deps.Entitlement), tenantHandler.ModuleHome)
	tenant.Get("/:segment/*", ModuleGate(deps.Entitlement), tenantHandler.ModuleHome)
}
