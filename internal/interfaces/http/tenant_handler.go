package http

import (
	"github.com/gofiber/fiber/v2"
)

// TenantHandler rutas del namespace del tenant (/t/:tenantSlug/...).
// Los flujos CRUD de cada módulo viven en sus propios servicios; aquí solo
// está el "home" del módulo que el gate protege.
type TenantHandler struct{}

// NewTenantHandler construye el handler del namespace del tenant.
func NewTenantHandler() *TenantHandler {
	return &TenantHandler{}
}

// ModuleHome godoc
// @Summary      Home de un módulo del tenant (detrás del gate de entitlements)
// @Tags         tenant
// @Produce      json
// @Param        tenantSlug  path  string  true  "slug del tenant"
// @Param        segment     path  string  true  "segmento del módulo o sección"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/t/{tenantSlug}/{segment} [get]
func (h *TenantHandler) ModuleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tenant":  c.Params("tenantSlug"),
		"segment": c.Params("segment"),
		"status":  "ok",
	})
}
