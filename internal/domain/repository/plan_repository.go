package repository

import (
	"context"

	"github.com/agropet/agropet-api/internal/domain/entity"
)

// PlanRepository puerto de lectura del catálogo de planes.
// Los planes son datos de referencia: no hay escritura desde la aplicación.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	List(ctx context.Context) ([]*entity.Plan, error)
}
