package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain/entity"
)

// moduleChecker es el contrato mínimo que necesita el gate para verificar acceso.
// Lo implementa *subscription.EntitlementService; el uso de interfaz evita el
// import circular y simplifica los tests.
type moduleChecker interface {
	HasModuleAccess(ctx context.Context, tenantID, moduleID string) (bool, error)
}

// segmentModules tabla estática segmento de ruta → módulo. El gate solo
// restringe estos seis namespaces; cualquier otro segmento (dashboard,
// financeiro, servicos, configuracoes, admin) pasa sin verificación.
var segmentModules = map[string]string{
	"pet-sitter": entity.ModulePetSitter,
	"creche":     entity.ModuleCreche,
	"clinica":    entity.ModuleClinica,
	"equinos":    entity.ModuleEquinos,
	"leite":      entity.ModuleLeite,
	"corte":      entity.ModuleCorte,
}

// ModuleGate intercepta las rutas con namespace de módulo
// (/t/:tenantSlug/:segment/...) y verifica el entitlement del tenant.
// Debe usarse DESPUÉS de AuthMiddleware y RequireTenantSlug.
//
// Comportamiento:
//   - Segmento fuera de la tabla → pasa (allow-by-default; la coincidencia es
//     case-sensitive igual que la tabla original de rutas).
//   - 403 Forbidden → módulo no contratado o vencido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Sin tenant_id en el contexto → 401 (el AuthMiddleware debería haberlo puesto).
func ModuleGate(checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := segmentModules[c.Params("segment")]
		if !ok {
			return c.Next()
		}

		tenantID := GetTenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}

		active, err := checker.HasModuleAccess(c.Context(), tenantID, moduleID)
		if err != nil {
			// Fallo de infraestructura: distinto de "módulo no contratado".
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !active {
			gateDenied.WithLabelValues(moduleID).Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleID + "' no está activo para este tenant",
			})
		}

		gateAllowed.WithLabelValues(moduleID).Inc()
		return c.Next()
	}
}
