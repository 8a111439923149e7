package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain/repository"
)

// PlanHandler catálogo de planes (público, para el flujo de registro).
type PlanHandler struct {
	repo repository.PlanRepository
}

// NewPlanHandler construye el handler de planes.
func NewPlanHandler(repo repository.PlanRepository) *PlanHandler {
	return &PlanHandler{repo: repo}
}

// List godoc
// @Summary      Listar el catálogo de planes
// @Tags         plans
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, dto.PlanResponse{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Price:          p.Price.StringFixed(2),
			IsPremium:      p.IsPremium,
			AllowedModules: p.AllowedModules,
		})
	}
	return c.JSON(dto.PlanListResponse{Items: items})
}
