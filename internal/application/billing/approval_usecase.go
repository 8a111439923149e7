package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
	domsub "github.com/agropet/agropet-api/internal/domain/subscription"
)

// ApprovalUseCase transiciones de operador: aprobar una solicitud de pago
// pendiente o conceder acceso manual (cortesía/partner) sin pago.
//
// Ambas operaciones escriben tenant + ledger de módulos (+ solicitud) en una
// sola transacción. Entre invocaciones concurrentes para el mismo tenant no
// hay lock adicional: gana la última escritura sobre las fechas de vencimiento,
// aceptado dada la baja concurrencia de la acción administrativa.
type ApprovalUseCase struct {
	txRunner    BillingTxRunner
	paymentRepo repository.PaymentRequestRepository
	tenantRepo  repository.TenantRepository
	operators   Operators
	now         func() time.Time
}

// NewApprovalUseCase construye el caso de uso de aprobación.
func NewApprovalUseCase(
	txRunner BillingTxRunner,
	paymentRepo repository.PaymentRequestRepository,
	tenantRepo repository.TenantRepository,
	operators Operators,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		txRunner:    txRunner,
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		operators:   operators,
		now:         time.Now,
	}
}

// ApprovePayment aprueba una solicitud PENDING y extiende la suscripción:
//
//  1. solicitud → APPROVED, processed_at = now
//  2. tenant → ACTIVE, trial_ends_at = next_billing_at = now + 1 mes,
//     last_payment_at = now
//  3. todos los módulos del tenant → is_active = true, expires_at = la misma fecha
//
// Las tres escrituras comitean juntas o ninguna.
func (uc *ApprovalUseCase) ApprovePayment(ctx context.Context, operatorEmail, requestID string) (*dto.PaymentRequestResponse, error) {
	if err := uc.operators.Authorize(operatorEmail); err != nil {
		return nil, err
	}
	req, err := uc.paymentRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.PaymentPending {
		return nil, domain.ErrRequestNotPending
	}

	now := uc.now()
	periodEnd := domsub.PeriodEnd(now)

	err = uc.txRunner.RunBilling(ctx, func(
		tenantRepo repository.TenantRepository,
		moduleRepo repository.TenantModuleRepository,
		paymentRepo repository.PaymentRequestRepository,
	) error {
		if err := paymentRepo.Approve(ctx, req.ID, now); err != nil {
			return err
		}
		if err := tenantRepo.ActivateSubscription(ctx, req.TenantID, periodEnd, periodEnd, &now); err != nil {
			return err
		}
		return moduleRepo.ExtendAll(ctx, req.TenantID, periodEnd)
	})
	if err != nil {
		return nil, err
	}

	req.Status = entity.PaymentApproved
	req.ProcessedAt = &now
	return ToPaymentRequestResponse(req), nil
}

// GrantManualAccess concede N días de acceso sin pago: tenant → ACTIVE con
// vencimiento now+N, módulos extendidos a la misma fecha y una PaymentRequest
// de auditoría (monto 0, APPROVED) con días y motivo embebidos en notes.
//
// days y reason se validan aquí, en el servidor; el prompt del cliente no basta.
// Concesiones repetidas no suman: cada una fija now+N (last-write-wins).
func (uc *ApprovalUseCase) GrantManualAccess(ctx context.Context, operatorEmail, tenantID string, days int, reason string) (*dto.PaymentRequestResponse, error) {
	if err := uc.operators.Authorize(operatorEmail); err != nil {
		return nil, err
	}
	if days < 1 || strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	now := uc.now()
	grantEnd := domsub.GrantEnd(now, days)
	audit := &entity.PaymentRequest{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Amount:      decimal.Zero,
		Status:      entity.PaymentApproved,
		Notes:       fmt.Sprintf("concesión manual: %d días. motivo: %s (operador: %s)", days, strings.TrimSpace(reason), operatorEmail),
		RequestedAt: now,
		ProcessedAt: &now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		tenantRepo repository.TenantRepository,
		moduleRepo repository.TenantModuleRepository,
		paymentRepo repository.PaymentRequestRepository,
	) error {
		if err := tenantRepo.ActivateSubscription(ctx, tenantID, grantEnd, grantEnd, nil); err != nil {
			return err
		}
		if err := moduleRepo.ExtendAll(ctx, tenantID, grantEnd); err != nil {
			return err
		}
		return paymentRepo.Create(ctx, audit)
	})
	if err != nil {
		return nil, err
	}
	return ToPaymentRequestResponse(audit), nil
}

// ToPaymentRequestResponse mapea la entidad PaymentRequest al DTO de salida.
func ToPaymentRequestResponse(pr *entity.PaymentRequest) *dto.PaymentRequestResponse {
	if pr == nil {
		return nil
	}
	return &dto.PaymentRequestResponse{
		ID:          pr.ID,
		TenantID:    pr.TenantID,
		Amount:      pr.Amount.StringFixed(2),
		Status:      pr.Status,
		Notes:       pr.Notes,
		RequestedAt: pr.RequestedAt,
		ProcessedAt: pr.ProcessedAt,
	}
}
