package billing

import (
	"context"

	"github.com/agropet/agropet-api/internal/domain/repository"
)

// BillingTxRunner ejecuta las escrituras del flujo de aprobación dentro de una
// única transacción: solicitud de pago, tenant y ledger de módulos comitean
// juntos o no comitea ninguno.
// La implementación vive en infrastructure/postgres.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		moduleRepo repository.TenantModuleRepository,
		paymentRepo repository.PaymentRequestRepository,
	) error) error
}
