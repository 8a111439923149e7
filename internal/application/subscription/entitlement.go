package subscription

import (
	"context"
	"fmt"

	"github.com/agropet/agropet-api/internal/domain/repository"
)

// EntitlementService decide si un tenant puede acceder a un módulo.
// Es el único punto de la aplicación que conoce la regla de acceso:
//
//	hasAccess = plan.IsPremium OR (entitlement activo y sin vencer)
//
// Siempre consulta la base de datos; no confía en claims de sesión para que
// una renovación o concesión surta efecto en la siguiente petición.
type EntitlementService struct {
	tenantRepo repository.TenantRepository
	planRepo   repository.PlanRepository
	moduleRepo repository.TenantModuleRepository
}

// NewEntitlementService construye el servicio de entitlements.
func NewEntitlementService(
	tenantRepo repository.TenantRepository,
	planRepo repository.PlanRepository,
	moduleRepo repository.TenantModuleRepository,
) *EntitlementService {
	return &EntitlementService{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
	}
}

// HasModuleAccess informa si el tenant puede usar el módulo.
// Devuelve false (sin error) si el módulo no está contratado o venció.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *EntitlementService) HasModuleAccess(ctx context.Context, tenantID, moduleID string) (bool, error) {
	if tenantID == "" || moduleID == "" {
		return false, fmt.Errorf("entitlement: tenantID y moduleID son obligatorios")
	}

	// Bypass premium: el plan premium ignora el ledger por módulo.
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return false, err
	}
	if tenant == nil {
		return false, nil
	}
	if tenant.PlanID != "" {
		plan, err := s.planRepo.GetByID(ctx, tenant.PlanID)
		if err != nil {
			return false, err
		}
		if plan != nil && plan.IsPremium {
			return true, nil
		}
	}

	return s.moduleRepo.HasActiveModule(ctx, tenantID, moduleID)
}
