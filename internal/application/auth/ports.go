package auth

import (
	"context"

	"github.com/agropet/agropet-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el alta de un tenant (tenant + usuario admin +
// módulos seleccionados) dentro de una única transacción.
// La implementación vive en infrastructure/postgres.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		userRepo repository.UserRepository,
		moduleRepo repository.TenantModuleRepository,
	) error) error
}
