package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

var _ repository.TenantModuleRepository = (*TenantModuleRepo)(nil)

// TenantModuleRepo implementación del ledger de entitlements sobre PostgreSQL (usable con pool o tx).
type TenantModuleRepo struct {
	q Querier
}

// NewTenantModuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantModuleRepository(q Querier) *TenantModuleRepo {
	return &TenantModuleRepo{q: q}
}

// Create persiste una fila de entitlement (identidad compuesta tenant_id + module_id).
func (r *TenantModuleRepo) Create(ctx context.Context, tm *entity.TenantModule) error {
	query := `
		INSERT INTO tenant_modules (tenant_id, module_id, is_active, activated_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		tm.TenantID, tm.ModuleID, tm.IsActive, tm.ActivatedAt, tm.ExpiresAt,
		tm.CreatedAt, tm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant module: %w", err)
	}
	return nil
}

// ListByTenant devuelve los entitlements del tenant en orden estable.
func (r *TenantModuleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantModule, error) {
	query := `
		SELECT tenant_id, module_id, is_active, activated_at, expires_at, created_at, updated_at
		FROM tenant_modules WHERE tenant_id = $1 ORDER BY module_id`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantModule
	for rows.Next() {
		var tm entity.TenantModule
		if err := rows.Scan(&tm.TenantID, &tm.ModuleID, &tm.IsActive, &tm.ActivatedAt,
			&tm.ExpiresAt, &tm.CreatedAt, &tm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant module: %w", err)
		}
		list = append(list, &tm)
	}
	return list, rows.Err()
}

// HasActiveModule informa si el tenant tiene el módulo activo y sin vencer.
// Consulta directa para una respuesta O(1) vía índice; exige ambas condiciones
// (is_active Y no vencido), la regla elegida para la ambigüedad is_active/expires_at.
func (r *TenantModuleRepo) HasActiveModule(ctx context.Context, tenantID, moduleID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tenant_modules
			 WHERE tenant_id = $1
			   AND module_id = $2
			   AND is_active = true
			   AND (expires_at IS NULL OR expires_at >= now())
		)`
	var active bool
	if err := r.q.QueryRow(ctx, query, tenantID, moduleID).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleID, err)
	}
	return active, nil
}

// ExtendAll fija is_active = true y expires_at para todos los módulos del tenant.
// Escritura en bloque: todos los módulos comparten horizonte tras una renovación.
func (r *TenantModuleRepo) ExtendAll(ctx context.Context, tenantID string, expiresAt time.Time) error {
	query := `
		UPDATE tenant_modules
		   SET is_active = true, expires_at = $2, updated_at = now()
		 WHERE tenant_id = $1`
	_, err := r.q.Exec(ctx, query, tenantID, expiresAt)
	if err != nil {
		return fmt.Errorf("extend tenant modules: %w", err)
	}
	return nil
}
