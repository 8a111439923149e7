package subscription

import (
	"context"
	"time"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain/repository"
	domsub "github.com/agropet/agropet-api/internal/domain/subscription"
)

// StatusService responde preguntas de estado de suscripción para un tenant.
// Solo lectura: nunca muta Tenant ni el ledger de módulos.
type StatusService struct {
	tenantRepo repository.TenantRepository
	planRepo   repository.PlanRepository
	moduleRepo repository.TenantModuleRepository
	now        func() time.Time
}

// NewStatusService construye el evaluador de suscripciones.
func NewStatusService(
	tenantRepo repository.TenantRepository,
	planRepo repository.PlanRepository,
	moduleRepo repository.TenantModuleRepository,
) *StatusService {
	return &StatusService{
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		moduleRepo: moduleRepo,
		now:        time.Now,
	}
}

// GetSubscriptionStatus calcula el resumen de suscripción del tenant:
// etiqueta de estado, plan, fecha de vencimiento, días restantes y las
// banderas por-vencer/vencida. Tenant inexistente → (nil, nil): el caller
// lo trata como "sin datos que mostrar", no como error.
func (s *StatusService) GetSubscriptionStatus(ctx context.Context, tenantID string) (*dto.SubscriptionStatusResponse, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, nil
	}

	eval := domsub.Evaluate(tenant.TrialEndsAt, s.now())
	resp := &dto.SubscriptionStatusResponse{
		Status:         tenant.SubscriptionStatus,
		ExpiresAt:      tenant.TrialEndsAt,
		DaysRemaining:  eval.DaysRemaining,
		IsExpiringSoon: eval.IsExpiringSoon,
		IsExpired:      eval.IsExpired,
	}

	if tenant.PlanID != "" {
		plan, err := s.planRepo.GetByID(ctx, tenant.PlanID)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			resp.PlanName = plan.Name
			resp.PlanPrice = plan.Price.StringFixed(2)
		}
	}

	modules, err := s.moduleRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		resp.Modules = append(resp.Modules, dto.ModuleStatus{
			ModuleID:  m.ModuleID,
			IsActive:  m.IsActive,
			ExpiresAt: m.ExpiresAt,
		})
	}
	return resp, nil
}
