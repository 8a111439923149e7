package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

// Asegura que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, name, slug, document, plan_id, subscription_status,
	trial_ends_at, next_billing_at, last_payment_at, created_at, updated_at`

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para tenants. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant. Devuelve domain.ErrSlugAlreadyExists si el slug está en uso.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, document, plan_id, subscription_status,
			trial_ends_at, next_billing_at, last_payment_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Slug, nullIfEmpty(t.Document), nullIfEmpty(t.PlanID),
		t.SubscriptionStatus, t.TrialEndsAt, t.NextBillingAt, t.LastPaymentAt,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySlug obtiene un tenant por slug.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return r.scanOne(ctx, query, slug)
}

// List devuelve tenants con paginación.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ActivateSubscription marca el tenant ACTIVE y fija las fechas de facturación.
// lastPaymentAt nil deja last_payment_at intacto (concesión manual sin pago).
func (r *TenantRepo) ActivateSubscription(ctx context.Context, tenantID string, expiresAt, nextBillingAt time.Time, lastPaymentAt *time.Time) error {
	query := `
		UPDATE tenants
		   SET subscription_status = $2,
		       trial_ends_at       = $3,
		       next_billing_at     = $4,
		       last_payment_at     = COALESCE($5, last_payment_at),
		       updated_at          = now()
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, tenantID, entity.SubscriptionActive, expiresAt, nextBillingAt, lastPaymentAt)
	if err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// MarkPastDue transiciona a PAST_DUE los tenants ACTIVE con vencimiento anterior a cutoff.
func (r *TenantRepo) MarkPastDue(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE tenants
		   SET subscription_status = $1, updated_at = now()
		 WHERE subscription_status = $2
		   AND trial_ends_at IS NOT NULL
		   AND trial_ends_at < $3`
	cmd, err := r.q.Exec(ctx, query, entity.SubscriptionPastDue, entity.SubscriptionActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark past due: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *TenantRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// rowScanner abstrae pgx.Row y pgx.Rows para compartir el scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*entity.Tenant, error) {
	var t entity.Tenant
	var document, planID *string
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &document, &planID, &t.SubscriptionStatus,
		&t.TrialEndsAt, &t.NextBillingAt, &t.LastPaymentAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if document != nil {
		t.Document = *document
	}
	if planID != nil {
		t.PlanID = *planID
	}
	return &t, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
