package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

// PaymentRequestUseCase ciclo de vida de solicitudes de pago auto-reportadas.
// No hay pasarela: el tenant avisa "ya pagué" y un operador confirma a mano.
type PaymentRequestUseCase struct {
	paymentRepo repository.PaymentRequestRepository
	tenantRepo  repository.TenantRepository
	planRepo    repository.PlanRepository
	now         func() time.Time
}

// NewPaymentRequestUseCase construye el caso de uso de solicitudes de pago.
func NewPaymentRequestUseCase(
	paymentRepo repository.PaymentRequestRepository,
	tenantRepo repository.TenantRepository,
	planRepo repository.PlanRepository,
) *PaymentRequestUseCase {
	return &PaymentRequestUseCase{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		planRepo:    planRepo,
		now:         time.Now,
	}
}

// RequestConfirmation inserta una solicitud PENDING para el tenant autenticado
// con el precio de su plan actual. No muta el estado de suscripción: la
// confirmación es asíncrona y humana.
func (uc *PaymentRequestUseCase) RequestConfirmation(ctx context.Context, tenantID, notes string) (*dto.PaymentRequestResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if tenant.PlanID == "" {
		return nil, domain.ErrTenantWithoutPlan
	}
	plan, err := uc.planRepo.GetByID(ctx, tenant.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrTenantWithoutPlan
	}

	pr := &entity.PaymentRequest{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Amount:      plan.Price,
		Status:      entity.PaymentPending,
		Notes:       notes,
		RequestedAt: uc.now(),
	}
	if err := uc.paymentRepo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return ToPaymentRequestResponse(pr), nil
}

// ListPending lista solicitudes PENDING para la bandeja del operador.
func (uc *PaymentRequestUseCase) ListPending(ctx context.Context, limit, offset int) (*dto.PaymentRequestListResponse, error) {
	list, err := uc.paymentRepo.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPaymentRequestList(list, limit, offset), nil
}

// ListByTenant historial de solicitudes del propio tenant (auditoría).
func (uc *PaymentRequestUseCase) ListByTenant(ctx context.Context, tenantID string, limit, offset int) (*dto.PaymentRequestListResponse, error) {
	list, err := uc.paymentRepo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPaymentRequestList(list, limit, offset), nil
}

func toPaymentRequestList(list []*entity.PaymentRequest, limit, offset int) *dto.PaymentRequestListResponse {
	items := make([]dto.PaymentRequestResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *ToPaymentRequestResponse(pr))
	}
	return &dto.PaymentRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
