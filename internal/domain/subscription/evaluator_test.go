package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agropet/agropet-api/internal/domain/subscription"
)

var base = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Evaluate — aritmética de vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_CasosDeVencimiento(t *testing.T) {
	cases := []struct {
		name      string
		expiresAt *time.Time
		want      subscription.Evaluation
	}{
		{
			name:      "dos días restantes: por vencer, no vencido",
			expiresAt: ptr(base.AddDate(0, 0, 2)),
			want:      subscription.Evaluation{DaysRemaining: 2, IsExpiringSoon: true, IsExpired: false},
		},
		{
			name:      "vencido ayer: días negativos",
			expiresAt: ptr(base.AddDate(0, 0, -1)),
			want:      subscription.Evaluation{DaysRemaining: -1, IsExpiringSoon: false, IsExpired: true},
		},
		{
			name:      "vence exactamente ahora: día 0, por vencer",
			expiresAt: ptr(base),
			want:      subscription.Evaluation{DaysRemaining: 0, IsExpiringSoon: true, IsExpired: false},
		},
		{
			name:      "justo en el borde de la ventana (3 días)",
			expiresAt: ptr(base.AddDate(0, 0, 3)),
			want:      subscription.Evaluation{DaysRemaining: 3, IsExpiringSoon: true, IsExpired: false},
		},
		{
			name:      "fuera de la ventana (4 días)",
			expiresAt: ptr(base.AddDate(0, 0, 4)),
			want:      subscription.Evaluation{DaysRemaining: 4, IsExpiringSoon: false, IsExpired: false},
		},
		{
			name:      "fracción de día redondea hacia arriba (36h → 2 días)",
			expiresAt: ptr(base.Add(36 * time.Hour)),
			want:      subscription.Evaluation{DaysRemaining: 2, IsExpiringSoon: true, IsExpired: false},
		},
		{
			name:      "sin vencimiento: 0 días y por vencer",
			expiresAt: nil,
			want:      subscription.Evaluation{DaysRemaining: 0, IsExpiringSoon: true, IsExpired: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := subscription.Evaluate(tc.expiresAt, base)
			assert.Equal(t, tc.want, got)
		})
	}
}

// IsExpiringSoon e IsExpired nunca pueden ser true a la vez.
func TestEvaluate_EstadosExcluyentes(t *testing.T) {
	for d := -10; d <= 10; d++ {
		ev := subscription.Evaluate(ptr(base.AddDate(0, 0, d)), base)
		assert.False(t, ev.IsExpiringSoon && ev.IsExpired,
			"días=%d: por-vencer y vencido son excluyentes", d)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PeriodEnd / GrantEnd — extensión de períodos
// ──────────────────────────────────────────────────────────────────────────────

// El período pagado es un mes CALENDARIO, no 30 días fijos.
func TestPeriodEnd_MesCalendario(t *testing.T) {
	from := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
	got := subscription.PeriodEnd(from)
	// AddDate normaliza el 31 de febrero a principios de marzo.
	assert.Equal(t, time.March, got.Month())

	from = time.Date(2026, time.April, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.May, 15, 10, 0, 0, 0, time.UTC), subscription.PeriodEnd(from))
}

// Las concesiones manuales fijan now+N; no se acumulan entre sí.
func TestGrantEnd_NoAditivo(t *testing.T) {
	first := subscription.GrantEnd(base, 30)
	second := subscription.GrantEnd(base, 7)

	assert.Equal(t, base.AddDate(0, 0, 30), first)
	assert.Equal(t, base.AddDate(0, 0, 7), second)
	assert.True(t, second.Before(first),
		"una concesión posterior más corta reduce el horizonte (last-write-wins)")
}

// ──────────────────────────────────────────────────────────────────────────────
// IsOverdue — ventana de gracia del barrido
// ──────────────────────────────────────────────────────────────────────────────

func TestIsOverdue(t *testing.T) {
	grace := 5

	// Vencido hace 6 días con gracia de 5 → moroso.
	assert.True(t, subscription.IsOverdue(ptr(base.AddDate(0, 0, -6)), grace, base))

	// Vencido hace 3 días, aún dentro de la gracia → no moroso.
	assert.False(t, subscription.IsOverdue(ptr(base.AddDate(0, 0, -3)), grace, base))

	// Sin vencimiento → nunca moroso.
	assert.False(t, subscription.IsOverdue(nil, grace, base))
}
