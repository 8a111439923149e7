package dto

import "time"

// RegisterTenantRequest alta de un negocio: crea tenant + usuario admin + módulos
// seleccionados en una sola transacción.
type RegisterTenantRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=200"`
	Slug     string   `json:"slug" validate:"omitempty,max=60"` // vacío = derivado del nombre
	Document string   `json:"document" validate:"omitempty,max=30"`
	PlanID   string   `json:"plan_id" validate:"omitempty,uuid"`
	Modules  []string `json:"modules" validate:"required,min=1"`

	AdminName     string `json:"admin_name" validate:"omitempty,max=200"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Document           string     `json:"document,omitempty"`
	PlanID             string     `json:"plan_id,omitempty"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	NextBillingAt      *time.Time `json:"next_billing_at,omitempty"`
	LastPaymentAt      *time.Time `json:"last_payment_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// RegisterTenantResponse alta completada: tenant + usuario admin creado.
type RegisterTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}

// PlanResponse salida de un plan del catálogo.
type PlanResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Price          string   `json:"price"` // decimal serializado como string
	IsPremium      bool     `json:"is_premium"`
	AllowedModules []string `json:"allowed_modules,omitempty"`
}

// PlanListResponse listado del catálogo de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
}
