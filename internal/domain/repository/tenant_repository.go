package repository

import (
	"context"
	"time"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure. Fila inexistente → (nil, nil).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)

	// ActivateSubscription marca el tenant ACTIVE y fija las fechas de facturación.
	// Único escritor de los campos de suscripción junto con MarkPastDue.
	ActivateSubscription(ctx context.Context, tenantID string, expiresAt, nextBillingAt time.Time, lastPaymentAt *time.Time) error

	// MarkPastDue transiciona a PAST_DUE los tenants ACTIVE cuyo vencimiento
	// superó la ventana de gracia. Devuelve cuántas filas cambió.
	MarkPastDue(ctx context.Context, cutoff time.Time) (int64, error)
}
