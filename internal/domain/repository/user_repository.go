package repository

import (
	"context"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error)
}
