package entity

import "time"

// Estados de suscripción de un Tenant.
// TRIAL es el único estado inicial (se asigna al registrar).
// CANCELED e INACTIVE están reservados: ningún flujo actual transiciona a ellos.
const (
	SubscriptionTrial    = "TRIAL"
	SubscriptionActive   = "ACTIVE"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
	SubscriptionInactive = "INACTIVE"
)

// Tenant representa un negocio cliente (clínica, creche, pet-sitter, pecuaria)
// con su propio namespace identificado por slug.
//
// TrialEndsAt cumple doble función: fin del período de prueba en TRIAL y fecha
// de vencimiento del acceso en ACTIVE (se extiende en cada aprobación de pago).
type Tenant struct {
	ID                 string
	Name               string
	Slug               string // único, URL-safe
	Document           string // documento fiscal (CNPJ/NIT), opcional
	PlanID             string // vacío = sin plan asignado
	SubscriptionStatus string // ver constantes Subscription*
	TrialEndsAt        *time.Time
	NextBillingAt      *time.Time
	LastPaymentAt      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
