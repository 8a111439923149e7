package repository

import (
	"context"
	"time"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// TenantModuleRepository puerto de persistencia del ledger de entitlements.
type TenantModuleRepository interface {
	Create(ctx context.Context, tm *entity.TenantModule) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantModule, error)

	// HasActiveModule informa si el tenant tiene el módulo activo y sin vencer.
	// Exige is_active = true Y (expires_at nulo O futuro): ambas condiciones,
	// la regla elegida para resolver la ambigüedad is_active vs expires_at.
	HasActiveModule(ctx context.Context, tenantID, moduleID string) (bool, error)

	// ExtendAll fija is_active = true y expires_at para TODOS los módulos del
	// tenant. Se invoca en cada renovación; por eso todos los módulos de un
	// tenant comparten horizonte de vencimiento.
	ExtendAll(ctx context.Context, tenantID string, expiresAt time.Time) error
}
