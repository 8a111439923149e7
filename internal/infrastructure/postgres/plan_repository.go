package postgres

import (
	"context"
	"fmt"

	"github.com/agropet/agropet-api/internal/domain/entity"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
// Solo lectura: el catálogo se puebla vía seed/migraciones.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de persistencia para planes.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	query := `
		SELECT id, name, description, price, is_premium, allowed_modules, created_at, updated_at
		FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.IsPremium, &p.AllowedModules,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo completo ordenado por precio ascendente.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	query := `
		SELECT id, name, description, price, is_premium, allowed_modules, created_at, updated_at
		FROM plans ORDER BY price ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsPremium,
			&p.AllowedModules, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
