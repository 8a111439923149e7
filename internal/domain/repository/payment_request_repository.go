package repository

import (
	"context"
	"time"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// PaymentRequestRepository puerto de persistencia de solicitudes de pago.
// Las filas son append-only salvo la única transición PENDING → APPROVED.
type PaymentRequestRepository interface {
	Create(ctx context.Context, pr *entity.PaymentRequest) error
	GetByID(ctx context.Context, id string) (*entity.PaymentRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.PaymentRequest, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PaymentRequest, error)

	// Approve marca la solicitud APPROVED y fija processed_at.
	Approve(ctx context.Context, id string, processedAt time.Time) error
}
