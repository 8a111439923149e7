package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agropet/agropet-api/internal/domain"
	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El fakeTxRunner toma un snapshot del estado antes de ejecutar fn y lo
// restaura si fn falla: el mismo contrato todo-o-nada que la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) List(_ context.Context, _, _ int) ([]*entity.Tenant, error) {
	out := make([]*entity.Tenant, 0, len(f.tenants))
	for _, t := range f.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTenantRepo) ActivateSubscription(_ context.Context, tenantID string, expiresAt, nextBillingAt time.Time, lastPaymentAt *time.Time) error {
	t, ok := f.tenants[tenantID]
	if !ok {
		return domain.ErrTenantNotFound
	}
	t.SubscriptionStatus = entity.SubscriptionActive
	t.TrialEndsAt = &expiresAt
	t.NextBillingAt = &nextBillingAt
	if lastPaymentAt != nil {
		t.LastPaymentAt = lastPaymentAt
	}
	return nil
}

func (f *fakeTenantRepo) MarkPastDue(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, t := range f.tenants {
		if t.SubscriptionStatus == entity.SubscriptionActive && t.TrialEndsAt != nil && t.TrialEndsAt.Before(cutoff) {
			t.SubscriptionStatus = entity.SubscriptionPastDue
			n++
		}
	}
	return n, nil
}

type fakeModuleRepo struct {
	rows []*entity.TenantModule
	err  error // inyección de fallo para probar el rollback
}

func (f *fakeModuleRepo) Create(_ context.Context, tm *entity.TenantModule) error {
	f.rows = append(f.rows, tm)
	return nil
}

func (f *fakeModuleRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.TenantModule, error) {
	var out []*entity.TenantModule
	for _, r := range f.rows {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) HasActiveModule(_ context.Context, tenantID, moduleID string) (bool, error) {
	for _, r := range f.rows {
		if r.TenantID == tenantID && r.ModuleID == moduleID {
			return r.IsActive && (r.ExpiresAt == nil || !r.ExpiresAt.Before(time.Now())), nil
		}
	}
	return false, nil
}

func (f *fakeModuleRepo) ExtendAll(_ context.Context, tenantID string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	for _, r := range f.rows {
		if r.TenantID == tenantID {
			r.IsActive = true
			exp := expiresAt
			r.ExpiresAt = &exp
		}
	}
	return nil
}

type fakePaymentRepo struct {
	requests map[string]*entity.PaymentRequest
}

func (f *fakePaymentRepo) Create(_ context.Context, pr *entity.PaymentRequest) error {
	f.requests[pr.ID] = pr
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id string) (*entity.PaymentRequest, error) {
	pr, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (f *fakePaymentRepo) ListPending(_ context.Context, _, _ int) ([]*entity.PaymentRequest, error) {
	var out []*entity.PaymentRequest
	for _, pr := range f.requests {
		if pr.Status == entity.PaymentPending {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.PaymentRequest, error) {
	var out []*entity.PaymentRequest
	for _, pr := range f.requests {
		if pr.TenantID == tenantID {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Approve(_ context.Context, id string, processedAt time.Time) error {
	pr, ok := f.requests[id]
	if !ok || pr.Status != entity.PaymentPending {
		return domain.ErrRequestNotPending
	}
	pr.Status = entity.PaymentApproved
	pr.ProcessedAt = &processedAt
	return nil
}

// fakeTxRunner simula la transacción: snapshot antes, restore si fn falla.
type fakeTxRunner struct {
	tenants  *fakeTenantRepo
	modules  *fakeModuleRepo
	payments *fakePaymentRepo
}

func (f *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	repository.TenantRepository,
	repository.TenantModuleRepository,
	repository.PaymentRequestRepository,
) error) error {
	tenantSnap := make(map[string]*entity.Tenant, len(f.tenants.tenants))
	for k, v := range f.tenants.tenants {
		cp := *v
		tenantSnap[k] = &cp
	}
	moduleSnap := make([]*entity.TenantModule, len(f.modules.rows))
	for i, r := range f.modules.rows {
		cp := *r
		moduleSnap[i] = &cp
	}
	paymentSnap := make(map[string]*entity.PaymentRequest, len(f.payments.requests))
	for k, v := range f.payments.requests {
		cp := *v
		paymentSnap[k] = &cp
	}

	if err := fn(f.tenants, f.modules, f.payments); err != nil {
		f.tenants.tenants = tenantSnap
		f.modules.rows = moduleSnap
		f.payments.requests = paymentSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	opEmail      = "billing@agropet.test"
	demoTenantID = "t-1"
	pendingReqID = "pr-1"
)

var fixedNow = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *ApprovalUseCase
	tenants  *fakeTenantRepo
	modules  *fakeModuleRepo
	payments *fakePaymentRepo
}

func newFixture() *fixture {
	trialEnd := fixedNow.AddDate(0, 0, -2) // trial ya vencido
	tenants := &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		demoTenantID: {
			ID:                 demoTenantID,
			Name:               "Clínica Demo",
			Slug:               "clinica-demo",
			SubscriptionStatus: entity.SubscriptionTrial,
			TrialEndsAt:        &trialEnd,
		},
	}}
	modules := &fakeModuleRepo{rows: []*entity.TenantModule{
		{TenantID: demoTenantID, ModuleID: entity.ModuleClinica, IsActive: true, ExpiresAt: &trialEnd},
		{TenantID: demoTenantID, ModuleID: entity.ModuleCreche, IsActive: true, ExpiresAt: &trialEnd},
	}}
	payments := &fakePaymentRepo{requests: map[string]*entity.PaymentRequest{
		pendingReqID: {
			ID:          pendingReqID,
			TenantID:    demoTenantID,
			Amount:      decimal.RequireFromString("99.90"),
			Status:      entity.PaymentPending,
			Notes:       "pix enviado",
			RequestedAt: fixedNow.Add(-2 * time.Hour),
		},
	}}

	tx := &fakeTxRunner{tenants: tenants, modules: modules, payments: payments}
	uc := NewApprovalUseCase(tx, payments, tenants, Operators{opEmail})
	uc.now = func() time.Time { return fixedNow }

	return &fixture{uc: uc, tenants: tenants, modules: modules, payments: payments}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApprovePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestApprovePayment_ExtiendeUnMesCalendario(t *testing.T) {
	f := newFixture()

	out, err := f.uc.ApprovePayment(context.Background(), opEmail, pendingReqID)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.PaymentApproved, out.Status)
	require.NotNil(t, out.ProcessedAt)
	assert.Equal(t, fixedNow, *out.ProcessedAt)

	// Tenant: ACTIVE, vencimiento y próxima facturación a un mes calendario.
	periodEnd := fixedNow.AddDate(0, 1, 0)
	tenant := f.tenants.tenants[demoTenantID]
	assert.Equal(t, entity.SubscriptionActive, tenant.SubscriptionStatus)
	assert.Equal(t, periodEnd, *tenant.TrialEndsAt)
	assert.Equal(t, periodEnd, *tenant.NextBillingAt)
	require.NotNil(t, tenant.LastPaymentAt)
	assert.Equal(t, fixedNow, *tenant.LastPaymentAt)

	// Módulos: todos extendidos a la misma fecha.
	for _, m := range f.modules.rows {
		assert.True(t, m.IsActive)
		assert.Equal(t, periodEnd, *m.ExpiresAt, "módulo %s", m.ModuleID)
	}
}

func TestApprovePayment_NoOperador_NoEscribeNada(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApprovePayment(context.Background(), "intruso@mail.test", pendingReqID)
	assert.ErrorIs(t, err, domain.ErrNotOperator)

	// Nada cambió: solicitud PENDING, tenant en TRIAL.
	assert.Equal(t, entity.PaymentPending, f.payments.requests[pendingReqID].Status)
	assert.Equal(t, entity.SubscriptionTrial, f.tenants.tenants[demoTenantID].SubscriptionStatus)
}

func TestApprovePayment_SolicitudInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApprovePayment(context.Background(), opEmail, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprovePayment_YaProcesada_RetornaConflicto(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ApprovePayment(context.Background(), opEmail, pendingReqID)
	require.NoError(t, err)

	// Segunda aprobación de la misma solicitud → conflicto.
	_, err = f.uc.ApprovePayment(context.Background(), opEmail, pendingReqID)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

// Si la extensión de módulos falla a mitad de la transacción, la solicitud y el
// tenant deben quedar como estaban: las tres escrituras comitean juntas o ninguna.
func TestApprovePayment_FalloEnModulos_RevierteTodo(t *testing.T) {
	f := newFixture()
	f.modules.err = errors.New("deadlock detected")

	_, err := f.uc.ApprovePayment(context.Background(), opEmail, pendingReqID)
	require.Error(t, err)

	assert.Equal(t, entity.PaymentPending, f.payments.requests[pendingReqID].Status,
		"la solicitud debe seguir PENDING tras el rollback")
	tenant := f.tenants.tenants[demoTenantID]
	assert.Equal(t, entity.SubscriptionTrial, tenant.SubscriptionStatus,
		"el tenant no debe quedar ACTIVE si los módulos no se extendieron")
	assert.Nil(t, tenant.LastPaymentAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// GrantManualAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestGrantManualAccess_ConcedeDiasYAudita(t *testing.T) {
	f := newFixture()

	out, err := f.uc.GrantManualAccess(context.Background(), opEmail, demoTenantID, 30, "cortesía partner")
	require.NoError(t, err)
	require.NotNil(t, out)

	grantEnd := fixedNow.AddDate(0, 0, 30)
	tenant := f.tenants.tenants[demoTenantID]
	assert.Equal(t, entity.SubscriptionActive, tenant.SubscriptionStatus)
	assert.Equal(t, grantEnd, *tenant.TrialEndsAt)
	assert.Nil(t, tenant.LastPaymentAt,
		"una concesión sin pago no debe registrar last_payment_at")

	for _, m := range f.modules.rows {
		assert.Equal(t, grantEnd, *m.ExpiresAt, "módulo %s", m.ModuleID)
	}

	// Fila de auditoría: monto 0, APPROVED de nacimiento, días y motivo en notes.
	assert.Equal(t, "0.00", out.Amount)
	assert.Equal(t, entity.PaymentApproved, out.Status)
	assert.Contains(t, out.Notes, "30 días")
	assert.Contains(t, out.Notes, "cortesía partner")
	assert.Contains(t, out.Notes, opEmail)
	require.NotNil(t, f.payments.requests[out.ID], "la auditoría debe persistirse")
}

// Concesiones repetidas no suman días: cada una fija now+N.
func TestGrantManualAccess_LastWriteWins(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GrantManualAccess(context.Background(), opEmail, demoTenantID, 30, "primera")
	require.NoError(t, err)
	_, err = f.uc.GrantManualAccess(context.Background(), opEmail, demoTenantID, 7, "segunda")
	require.NoError(t, err)

	tenant := f.tenants.tenants[demoTenantID]
	assert.Equal(t, fixedNow.AddDate(0, 0, 7), *tenant.TrialEndsAt,
		"la segunda concesión reemplaza a la primera aunque sea más corta")
}

func TestGrantManualAccess_Validacion(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GrantManualAccess(context.Background(), opEmail, demoTenantID, 0, "motivo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "days < 1 debe rechazarse")

	_, err = f.uc.GrantManualAccess(context.Background(), opEmail, demoTenantID, 10, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reason en blanco debe rechazarse")
}

func TestGrantManualAccess_TenantInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GrantManualAccess(context.Background(), opEmail, "no-existe", 10, "motivo")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestGrantManualAccess_NoOperador(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GrantManualAccess(context.Background(), "intruso@mail.test", demoTenantID, 10, "motivo")
	assert.ErrorIs(t, err, domain.ErrNotOperator)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operators
// ──────────────────────────────────────────────────────────────────────────────

func TestOperators_Authorize(t *testing.T) {
	ops := Operators{"Billing@AgroPet.test", " otro@agropet.test "}

	assert.NoError(t, ops.Authorize("billing@agropet.test"), "comparación case-insensitive")
	assert.NoError(t, ops.Authorize("otro@agropet.test"), "espacios en la config se ignoran")
	assert.ErrorIs(t, ops.Authorize("nadie@mail.test"), domain.ErrNotOperator)
	assert.ErrorIs(t, ops.Authorize(""), domain.ErrNotOperator)
	assert.ErrorIs(t, Operators(nil).Authorize("billing@agropet.test"), domain.ErrNotOperator,
		"lista vacía = nadie autorizado")
}
