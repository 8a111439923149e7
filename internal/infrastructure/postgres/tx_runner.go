package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agropet/agropet-api/internal/application/auth"
	"github.com/agropet/agropet-api/internal/application/billing"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

var _ auth.RegistrationTxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción con los repos del alta de tenant
// (tenant + usuario admin + módulos) y hace Commit o Rollback.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	moduleRepo repository.TenantModuleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tenantRepo := NewTenantRepository(tx)
	userRepo := NewUserRepository(tx)
	moduleRepo := NewTenantModuleRepository(tx)

	if err := fn(tenantRepo, userRepo, moduleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos del flujo de aprobación
// (tenant + ledger de módulos + solicitud de pago). Las tres escrituras
// comitean juntas o ninguna.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	moduleRepo repository.TenantModuleRepository,
	paymentRepo repository.PaymentRequestRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tenantRepo := NewTenantRepository(tx)
	moduleRepo := NewTenantModuleRepository(tx)
	paymentRepo := NewPaymentRequestRepository(tx)

	if err := fn(tenantRepo, moduleRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
