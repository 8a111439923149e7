package dto

import "time"

// SubscriptionStatusResponse resumen de suscripción para el tenant autenticado.
// Sin efectos secundarios: se calcula en cada lectura.
type SubscriptionStatusResponse struct {
	Status         string         `json:"status"` // TRIAL | ACTIVE | PAST_DUE | CANCELED | INACTIVE
	PlanName       string         `json:"plan_name,omitempty"`
	PlanPrice      string         `json:"plan_price,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	DaysRemaining  int            `json:"days_remaining"`
	IsExpiringSoon bool           `json:"is_expiring_soon"`
	IsExpired      bool           `json:"is_expired"`
	Modules        []ModuleStatus `json:"modules,omitempty"`
}

// ModuleStatus estado de un módulo del tenant en el resumen de suscripción.
type ModuleStatus struct {
	ModuleID  string     `json:"module_id"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
