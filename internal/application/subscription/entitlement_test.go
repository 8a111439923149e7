package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos de los puertos de lectura
// ──────────────────────────────────────────────────────────────────────────────

type stubTenantRepo struct {
	tenant *entity.Tenant
	err    error
}

func (s *stubTenantRepo) Create(context.Context, *entity.Tenant) error { return nil }
func (s *stubTenantRepo) GetByID(context.Context, string) (*entity.Tenant, error) {
	return s.tenant, s.err
}
func (s *stubTenantRepo) GetBySlug(context.Context, string) (*entity.Tenant, error) {
	return s.tenant, s.err
}
func (s *stubTenantRepo) List(context.Context, int, int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (s *stubTenantRepo) ActivateSubscription(context.Context, string, time.Time, time.Time, *time.Time) error {
	return nil
}
func (s *stubTenantRepo) MarkPastDue(context.Context, time.Time) (int64, error) { return 0, nil }

type stubPlanRepo struct {
	plan *entity.Plan
	err  error
}

func (s *stubPlanRepo) GetByID(context.Context, string) (*entity.Plan, error) { return s.plan, s.err }
func (s *stubPlanRepo) List(context.Context) ([]*entity.Plan, error)          { return nil, nil }

type stubModuleRepo struct {
	active  bool
	err     error
	calls   int
	modules []*entity.TenantModule
}

func (s *stubModuleRepo) Create(context.Context, *entity.TenantModule) error { return nil }
func (s *stubModuleRepo) ListByTenant(context.Context, string) ([]*entity.TenantModule, error) {
	return s.modules, nil
}
func (s *stubModuleRepo) HasActiveModule(context.Context, string, string) (bool, error) {
	s.calls++
	return s.active, s.err
}
func (s *stubModuleRepo) ExtendAll(context.Context, string, time.Time) error { return nil }

func tenantWithPlan(planID string) *entity.Tenant {
	return &entity.Tenant{
		ID:                 "t-1",
		Slug:               "clinica-demo",
		PlanID:             planID,
		SubscriptionStatus: entity.SubscriptionActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// HasModuleAccess
// ──────────────────────────────────────────────────────────────────────────────

// Plan premium: acceso a cualquier módulo sin consultar el ledger.
func TestHasModuleAccess_PremiumBypass(t *testing.T) {
	modules := &stubModuleRepo{active: false}
	svc := NewEntitlementService(
		&stubTenantRepo{tenant: tenantWithPlan("plan-premium")},
		&stubPlanRepo{plan: &entity.Plan{ID: "plan-premium", IsPremium: true}},
		modules,
	)

	ok, err := svc.HasModuleAccess(context.Background(), "t-1", entity.ModuleCorte)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, modules.calls, "el bypass premium no debe tocar el ledger de módulos")
}

// Plan normal: decide el ledger (activo y sin vencer).
func TestHasModuleAccess_PlanNormalConsultaLedger(t *testing.T) {
	modules := &stubModuleRepo{active: true}
	svc := NewEntitlementService(
		&stubTenantRepo{tenant: tenantWithPlan("plan-clinica")},
		&stubPlanRepo{plan: &entity.Plan{ID: "plan-clinica"}},
		modules,
	)

	ok, err := svc.HasModuleAccess(context.Background(), "t-1", entity.ModuleClinica)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, modules.calls)
}

func TestHasModuleAccess_ModuloNoContratado(t *testing.T) {
	svc := NewEntitlementService(
		&stubTenantRepo{tenant: tenantWithPlan("")},
		&stubPlanRepo{},
		&stubModuleRepo{active: false},
	)

	ok, err := svc.HasModuleAccess(context.Background(), "t-1", entity.ModuleLeite)
	require.NoError(t, err)
	assert.False(t, ok, "módulo no contratado o vencido → false sin error")
}

// Tenant inexistente: denegado sin error (no es un fallo de infraestructura).
func TestHasModuleAccess_TenantInexistente(t *testing.T) {
	svc := NewEntitlementService(&stubTenantRepo{}, &stubPlanRepo{}, &stubModuleRepo{})

	ok, err := svc.HasModuleAccess(context.Background(), "t-404", entity.ModuleCreche)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Fallo de DB: el error se propaga, no se degrada a "denegado".
func TestHasModuleAccess_ErrorDeInfraSePropaga(t *testing.T) {
	svc := NewEntitlementService(
		&stubTenantRepo{err: errors.New("timeout")},
		&stubPlanRepo{},
		&stubModuleRepo{},
	)

	_, err := svc.HasModuleAccess(context.Background(), "t-1", entity.ModuleClinica)
	assert.Error(t, err)
}

func TestHasModuleAccess_ArgumentosVacios(t *testing.T) {
	svc := NewEntitlementService(&stubTenantRepo{}, &stubPlanRepo{}, &stubModuleRepo{})

	_, err := svc.HasModuleAccess(context.Background(), "", entity.ModuleClinica)
	assert.Error(t, err)
	_, err = svc.HasModuleAccess(context.Background(), "t-1", "")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSubscriptionStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSubscriptionStatus_ResumenCompleto(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 0, 2)
	tenant := tenantWithPlan("plan-clinica")
	tenant.TrialEndsAt = &expires

	modExpiry := expires
	svc := NewStatusService(
		&stubTenantRepo{tenant: tenant},
		&stubPlanRepo{plan: &entity.Plan{
			ID:    "plan-clinica",
			Name:  "Clínica",
			Price: decimal.RequireFromString("99.90"),
		}},
		&stubModuleRepo{modules: []*entity.TenantModule{
			{ModuleID: entity.ModuleClinica, IsActive: true, ExpiresAt: &modExpiry},
		}},
	)
	svc.now = func() time.Time { return now }

	out, err := svc.GetSubscriptionStatus(context.Background(), "t-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.SubscriptionActive, out.Status)
	assert.Equal(t, "Clínica", out.PlanName)
	assert.Equal(t, "99.90", out.PlanPrice)
	assert.Equal(t, 2, out.DaysRemaining)
	assert.True(t, out.IsExpiringSoon)
	assert.False(t, out.IsExpired)
	require.Len(t, out.Modules, 1)
	assert.Equal(t, entity.ModuleClinica, out.Modules[0].ModuleID)
}

// Tenant inexistente → (nil, nil): sin datos, no error.
func TestGetSubscriptionStatus_TenantInexistente(t *testing.T) {
	svc := NewStatusService(&stubTenantRepo{}, &stubPlanRepo{}, &stubModuleRepo{})

	out, err := svc.GetSubscriptionStatus(context.Background(), "t-404")
	require.NoError(t, err)
	assert.Nil(t, out)
}
