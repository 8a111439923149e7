package entity

import "time"

// Módulos SaaS disponibles (catálogo estático; deben coincidir con el CHECK de tenant_modules).
const (
	ModuleClinica   = "clinica"    // clínica veterinaria
	ModuleCreche    = "creche"     // daycare / hospedagem
	ModulePetSitter = "pet-sitter" // atención a domicilio
	ModuleEquinos   = "equinos"    // reproducción equina
	ModuleLeite     = "leite"      // ganadería de leche
	ModuleCorte     = "corte"      // ganadería de corte
)

// AllModules catálogo completo, en orden estable para seeds y listados.
var AllModules = []string{
	ModuleClinica,
	ModuleCreche,
	ModulePetSitter,
	ModuleEquinos,
	ModuleLeite,
	ModuleCorte,
}

// IsKnownModule informa si el id pertenece al catálogo.
func IsKnownModule(id string) bool {
	for _, m := range AllModules {
		if m == id {
			return true
		}
	}
	return false
}

// TenantModule representa la activación de un módulo para un tenant
// (identidad compuesta tenant_id + module_id).
//
// El acceso exige IsActive = true Y (ExpiresAt nulo O en el futuro); ambas
// condiciones se escriben juntas en cada renovación, por lo que en la práctica
// todos los módulos de un tenant comparten el mismo horizonte de vencimiento.
// El esquema admite vencimientos independientes por módulo para facturación
// futura por módulo.
type TenantModule struct {
	TenantID    string
	ModuleID    string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
