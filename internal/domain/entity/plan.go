package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan representa un tier de suscripción. Datos de referencia: solo los edita
// tooling administrativo, nunca una acción del tenant.
//
// IsPremium = true implica acceso irrestricto a todos los módulos (bypass del
// ledger de entitlements). AllowedModules es informativo para tiers no premium.
type Plan struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal // precio mensual
	IsPremium      bool
	AllowedModules []string // ids de módulo, ver constantes Module*
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
