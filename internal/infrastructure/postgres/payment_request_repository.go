package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

var _ repository.PaymentRequestRepository = (*PaymentRequestRepo)(nil)

const paymentRequestColumns = `id, tenant_id, amount, status, notes, requested_at, processed_at`

// PaymentRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type PaymentRequestRepo struct {
	q Querier
}

// NewPaymentRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRequestRepository(q Querier) *PaymentRequestRepo {
	return &PaymentRequestRepo{q: q}
}

// Create persiste una solicitud de pago.
func (r *PaymentRequestRepo) Create(ctx context.Context, pr *entity.PaymentRequest) error {
	query := `
		INSERT INTO payment_requests (id, tenant_id, amount, status, notes, requested_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		pr.ID, pr.TenantID, pr.Amount, pr.Status, pr.Notes, pr.RequestedAt, pr.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *PaymentRequestRepo) GetByID(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE id = $1`
	var pr entity.PaymentRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&pr.ID, &pr.TenantID, &pr.Amount, &pr.Status, &pr.Notes, &pr.RequestedAt, &pr.ProcessedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment request: %w", err)
	}
	return &pr, nil
}

// ListPending lista solicitudes PENDING, más antiguas primero (bandeja del operador).
func (r *PaymentRequestRepo) ListPending(ctx context.Context, limit, offset int) ([]*entity.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + `
		FROM payment_requests WHERE status = $1
		ORDER BY requested_at ASC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, entity.PaymentPending, limit, offset)
}

// ListByTenant historial de solicitudes de un tenant, más recientes primero.
func (r *PaymentRequestRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + `
		FROM payment_requests WHERE tenant_id = $1
		ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

// Approve marca la solicitud APPROVED y fija processed_at.
// Solo transiciona filas PENDING; si la fila ya fue procesada no toca nada.
func (r *PaymentRequestRepo) Approve(ctx context.Context, id string, processedAt time.Time) error {
	query := `
		UPDATE payment_requests
		   SET status = $2, processed_at = $3
		 WHERE id = $1 AND status = $4`
	cmd, err := r.q.Exec(ctx, query, id, entity.PaymentApproved, processedAt, entity.PaymentPending)
	if err != nil {
		return fmt.Errorf("approve payment request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRequestNotPending
	}
	return nil
}

func (r *PaymentRequestRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PaymentRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.PaymentRequest
	for rows.Next() {
		var pr entity.PaymentRequest
		if err := rows.Scan(&pr.ID, &pr.TenantID, &pr.Amount, &pr.Status, &pr.Notes,
			&pr.RequestedAt, &pr.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan payment request: %w", err)
		}
		list = append(list, &pr)
	}
	return list, rows.Err()
}
